package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/idmap"
	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/place"
	"github.com/mvp-joe/kinship/internal/storage"
)

// parser is the main pass: a recursive descent over logical lines where
// every nesting level dispatches through the handler table of its
// context.
type parser struct {
	ctx    context.Context
	lx     *gedcom.Lexer
	tx     storage.Tx
	log    *slog.Logger
	report *Report
	stage  *gedcom.StageOne
	cs     charset.Charset
	now    time.Time

	ids     map[model.Kind]*idmap.Map
	handles map[model.Kind]map[string]model.Handle // local id -> handle
	defined map[model.Kind]map[string]bool         // local ids of level-0 records

	placeForm *place.Parser
	places    *placeRegistry
}

func newParser(ctx context.Context, lx *gedcom.Lexer, tx storage.Tx, stage *gedcom.StageOne, cs charset.Charset, report *Report, opts Options) (*parser, error) {
	p := &parser{
		ctx:       ctx,
		lx:        lx,
		tx:        tx,
		log:       opts.Logger,
		report:    report,
		stage:     stage,
		cs:        cs,
		now:       opts.Now(),
		ids:       make(map[model.Kind]*idmap.Map, len(model.Kinds)),
		handles:   make(map[model.Kind]map[string]model.Handle, len(model.Kinds)),
		defined:   make(map[model.Kind]map[string]bool, len(model.Kinds)),
		placeForm: place.NewParser(opts.PlaceForm),
		places:    newPlaceRegistry(),
	}
	for _, kind := range model.Kinds {
		kind := kind
		p.ids[kind] = idmap.New(kind,
			func(id string) (bool, error) { return tx.HasID(kind, id) },
			func() (string, error) { return tx.NextID(kind) },
			"")
		p.handles[kind] = make(map[string]model.Handle)
		p.defined[kind] = make(map[string]bool)
	}
	if err := p.places.load(tx); err != nil {
		return nil, err
	}
	return p, nil
}

// parse runs the main pass from HEAD to TRLR.
func (p *parser) parse() error {
	line, err := p.lx.ReadLine()
	if errors.Is(err, io.EOF) {
		return fatal(0, ErrNotGedcom)
	}
	if err != nil {
		return err
	}
	if line.Level != 0 || line.Token != gedcom.TokHEAD {
		return fatal(line.LineNo, ErrNotGedcom)
	}
	if err := p.parseHeader(line); err != nil {
		return err
	}

	top := &state{level: 0}
	for {
		if err := p.ctx.Err(); err != nil {
			return fmt.Errorf("import cancelled: %w", err)
		}
		line, err := p.readLine()
		if err != nil {
			return err
		}
		if line.Level != 0 {
			p.warn(top, line, "Line ignored as not understood")
			if err := p.skip(line.Level); err != nil {
				return err
			}
			continue
		}
		if line.Token == gedcom.TokTRLR {
			return nil
		}
		if err := p.dispatch(ctxTop, line, top); err != nil {
			return err
		}
	}
}

// parseLevel consumes the lines of st.level. The first line above it is
// pushed back for the caller.
func (p *parser) parseLevel(st *state, ctx parseContext) error {
	for {
		line, err := p.readLine()
		if err != nil {
			return err
		}
		if line.Level < st.level {
			p.lx.Unread(line)
			return nil
		}
		if line.Level > st.level {
			p.warn(st, line, "Line ignored as not understood")
			if err := p.skip(line.Level); err != nil {
				return err
			}
			continue
		}
		if err := p.dispatch(ctx, line, st); err != nil {
			return err
		}
	}
}

// readLine returns the next logical line. The file may only end after
// TRLR, so end of input is fatal here.
func (p *parser) readLine() (*gedcom.Line, error) {
	line, err := p.lx.ReadLine()
	if errors.Is(err, io.EOF) {
		return nil, fatal(p.lx.LineNo(), ErrTruncated)
	}
	if err != nil {
		return nil, fatal(p.lx.LineNo(), err)
	}
	return line, nil
}

// skip discards every line below level.
func (p *parser) skip(level int) error {
	for {
		line, err := p.readLine()
		if err != nil {
			return err
		}
		if line.Level <= level {
			p.lx.Unread(line)
			return nil
		}
	}
}

// warn records a recoverable problem against the current record.
func (p *parser) warn(st *state, line *gedcom.Line, text string) {
	msg := Message{Text: text}
	if line != nil {
		msg.Line = line.LineNo
		msg.Text = fmt.Sprintf("%s: %s", text, describe(line))
	}
	if st != nil && st.diag != nil {
		msg.Record = st.diag.record
		st.diag.msgs = append(st.diag.msgs, msg)
	}
	p.report.Messages = append(p.report.Messages, msg)
	p.log.Debug("GEDCOM diagnostic", "line", msg.Line, "record", msg.Record, "message", text)
}

func describe(line *gedcom.Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d ", line.Level)
	if line.XRef != "" {
		fmt.Fprintf(&b, "@%s@ ", line.XRef)
	}
	b.WriteString(line.TokenText)
	if line.Raw != "" {
		b.WriteString(" ")
		b.WriteString(line.Raw)
	}
	return b.String()
}

// handle returns the handle and local id for an id as written in the
// file. The first reference allocates both.
func (p *parser) handle(kind model.Kind, xref string) (model.Handle, string, error) {
	local, err := p.ids[kind].Map(xref)
	if err != nil {
		return "", "", err
	}
	h, ok := p.handles[kind][local]
	if !ok {
		h = model.NewHandle()
		p.handles[kind][local] = h
	}
	return h, local, nil
}

// load finds or creates the object with an id as written in the file.
func (p *parser) load(kind model.Kind, xref string) (model.Object, error) {
	h, local, err := p.handle(kind, xref)
	if err != nil {
		return nil, err
	}
	return p.loadHandle(kind, h, local)
}

func (p *parser) loadHandle(kind model.Kind, h model.Handle, local string) (model.Object, error) {
	obj, err := p.tx.Get(kind, h)
	if err == nil {
		return obj, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return model.New(kind, h, local)
}

// fresh creates an object that has no id in the file, such as an inline
// note or an event.
func (p *parser) fresh(kind model.Kind) (model.Object, error) {
	h, local, err := p.handle(kind, "")
	if err != nil {
		return nil, err
	}
	p.defined[kind][local] = true
	return model.New(kind, h, local)
}

// put writes an object to the transaction.
func (p *parser) put(obj model.Object) error {
	if t, ok := obj.(interface {
		ChangedAt() int64
		Touch(time.Time)
	}); ok && t.ChangedAt() == 0 {
		t.Touch(p.now)
	}
	if err := p.tx.Put(obj); err != nil {
		return fatal(p.lx.LineNo(), err)
	}
	return nil
}

// openRecord starts a level-0 record: the object is found or created and
// marked as defined by the file.
func (p *parser) openRecord(kind model.Kind, line *gedcom.Line) (model.Object, *state, error) {
	var (
		obj model.Object
		err error
	)
	if line.XRef == "" {
		obj, err = p.fresh(kind)
	} else {
		obj, err = p.load(kind, line.XRef)
	}
	if err != nil {
		return nil, nil, err
	}
	p.defined[kind][obj.GetID()] = true

	record := fmt.Sprintf("%s (%s) %s", kind.Tag(), kind, obj.GetID())
	st := &state{level: 1, diag: &diagnostics{record: record}}
	return obj, st, nil
}

// closeRecord attaches the diagnostics of a record as a note and writes
// the record.
func (p *parser) closeRecord(obj model.Object, st *state) error {
	if len(st.diag.msgs) > 0 {
		lines := make([]string, len(st.diag.msgs))
		for i, m := range st.diag.msgs {
			lines[i] = m.String()
		}
		text := fmt.Sprintf("Records not imported into %s:\n\n%s", st.diag.record, strings.Join(lines, "\n"))
		note, err := p.newNote(text, model.NoteImport)
		if err != nil {
			return err
		}
		if holder, ok := obj.(interface{ AddNote(model.Handle) bool }); ok {
			holder.AddNote(note.Handle)
		}
	}
	p.report.Created[obj.Kind()]++
	return p.put(obj)
}

// newNote creates and writes a note.
func (p *parser) newNote(text string, typ model.NoteType) (*model.Note, error) {
	obj, err := p.fresh(model.KindNote)
	if err != nil {
		return nil, err
	}
	note := obj.(*model.Note)
	note.Text = text
	note.Type = typ
	if err := p.put(note); err != nil {
		return nil, err
	}
	return note, nil
}

// familyHandles resolves family ids collected by the pre-pass.
func (p *parser) familyHandles(xrefs []string) ([]model.Handle, error) {
	out := make([]model.Handle, 0, len(xrefs))
	for _, x := range xrefs {
		h, _, err := p.handle(model.KindFamily, x)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// sortedLocal returns the local ids of a kind that received a handle, in
// id order.
func (p *parser) sortedLocal(kind model.Kind) []string {
	ids := make([]string, 0, len(p.handles[kind]))
	for id := range p.handles[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func unsupported(p *parser, line *gedcom.Line, st *state) error {
	if line.Token == gedcom.TokUnknown {
		p.warn(st, line, "Line ignored as not understood")
	} else {
		p.warn(st, line, "Tag recognized but not supported")
	}
	return p.skip(line.Level)
}

func ignore(p *parser, line *gedcom.Line, st *state) error {
	return p.skip(line.Level)
}
