package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/logging"
	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

var testNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

const testHeader = `0 HEAD
1 SOUR TEST
2 VERS 1.0
1 GEDC
2 VERS 5.5
2 FORM LINEAGE-LINKED
1 CHAR UTF-8`

// gedcomFile wraps record lines with a header and trailer.
func gedcomFile(lines ...string) string {
	return testHeader + "\n" + strings.Join(lines, "\n") + "\n0 TRLR\n"
}

func testOptions() Options {
	return Options{
		Source: "test.ged",
		Logger: logging.Discard(),
		Now:    func() time.Time { return testNow },
	}
}

func importText(t *testing.T, store storage.Store, text string, opts Options) (*Report, error) {
	t.Helper()
	return Import(context.Background(), strings.NewReader(text), store, opts)
}

// mustImport imports into a fresh in-memory store.
func mustImport(t *testing.T, text string) (*Report, storage.Store) {
	t.Helper()
	store := storage.NewMemStore()
	report, err := importText(t, store, text, testOptions())
	require.NoError(t, err)
	return report, store
}

func readTx(t *testing.T, store storage.Store) storage.Tx {
	t.Helper()
	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	return tx
}

func findPerson(t *testing.T, tx storage.Tx, id string) *model.Person {
	t.Helper()
	obj, err := tx.FindByID(model.KindPerson, id)
	require.NoError(t, err, "person %s", id)
	return obj.(*model.Person)
}

func findFamily(t *testing.T, tx storage.Tx, id string) *model.Family {
	t.Helper()
	obj, err := tx.FindByID(model.KindFamily, id)
	require.NoError(t, err, "family %s", id)
	return obj.(*model.Family)
}

func getEvent(t *testing.T, tx storage.Tx, h model.Handle) *model.Event {
	t.Helper()
	obj, err := tx.Get(model.KindEvent, h)
	require.NoError(t, err)
	return obj.(*model.Event)
}

func getPlace(t *testing.T, tx storage.Tx, h model.Handle) *model.Place {
	t.Helper()
	obj, err := tx.Get(model.KindPlace, h)
	require.NoError(t, err)
	return obj.(*model.Place)
}

func getNote(t *testing.T, tx storage.Tx, h model.Handle) *model.Note {
	t.Helper()
	obj, err := tx.Get(model.KindNote, h)
	require.NoError(t, err)
	return obj.(*model.Note)
}

func messageTexts(r *Report) []string {
	out := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Text
	}
	return out
}

// recordingProgress counts progress callbacks.
type recordingProgress struct {
	NoOpProgressReporter
	scanSteps int
	total     int
	steps     int
	repair    bool
	done      *Report
}

func (r *recordingProgress) OnScanStep()            { r.scanSteps++ }
func (r *recordingProgress) SetTotal(lines int)     { r.total = lines }
func (r *recordingProgress) Step()                  { r.steps++ }
func (r *recordingProgress) OnRepairStart()         { r.repair = true }
func (r *recordingProgress) OnComplete(rep *Report) { r.done = rep }
