// Package importer reads a GEDCOM 5.5 file into a storage.Store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/lineage"
	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

// Implementation Plan:
// 1. Stage one - scan the raw bytes for encoding, line count and family membership
// 2. Decoder - pick the charset from BOM, HEAD.CHAR and the configured default
// 3. Lexer - logical lines with continuations merged and values coerced
// 4. Main pass - context-driven dispatch over the handler registry
// 5. Repair - placeholders for dangling ids and two-way family links
// 6. Lineage - cycle, generation and tree checks over the committed families
// 7. Commit - one transaction, rolled back on any fatal error

// Options configures an import.
type Options struct {
	// Source names the input in the report, usually the file name.
	Source string
	// DefaultCharset decodes files with neither a byte order mark nor a
	// HEAD.CHAR line.
	DefaultCharset charset.Charset
	// Lookahead is the lexer read-ahead depth.
	Lookahead int
	// IgnoreTags are glob patterns of tags skipped without a diagnostic.
	IgnoreTags []string
	// PlaceForm is the place hierarchy used when the header has no PLAC.FORM.
	PlaceForm string
	// SkipLineage disables the pedigree checks after the import.
	SkipLineage bool

	Progress ProgressReporter
	Logger   *slog.Logger
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.DefaultCharset == charset.Unknown {
		o.DefaultCharset = charset.ANSEL
	}
	if o.Lookahead <= 0 {
		o.Lookahead = gedcom.DefaultLookahead
	}
	if o.Progress == nil {
		o.Progress = &NoOpProgressReporter{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Import reads a GEDCOM file from src into store. The whole import runs in
// one transaction: a fatal error or a cancelled context leaves the store
// unchanged. Recoverable problems never fail the import; they are listed
// in the report and attached to the records as notes.
func Import(ctx context.Context, src io.ReadSeeker, store storage.Store, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	start := time.Now()
	opts.Logger = opts.Logger.With("component", "importer")
	log := opts.Logger
	report := newReport(opts.Source)

	opts.Progress.OnScanStart()
	stage, err := gedcom.ScanStageOne(src,
		gedcom.WithScanProgress(opts.Progress.OnScanStep),
		gedcom.WithScanLogger(log))
	if errors.Is(err, gedcom.ErrEmptyFile) {
		return nil, fatal(0, ErrNotGedcom)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", opts.Source, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", opts.Source, err)
	}

	cs := stage.Charset(opts.DefaultCharset)
	report.Charset = cs
	log.Info("Stage one complete",
		"lines", stage.Lines,
		"individuals", stage.Individuals,
		"families", stage.Families,
		"charset", cs)

	ignore, err := gedcom.NewMatcher(opts.IgnoreTags...)
	if err != nil {
		return nil, err
	}
	lx := gedcom.NewLexer(charset.NewReader(src, cs),
		gedcom.WithLookahead(opts.Lookahead),
		gedcom.WithIgnore(ignore),
		gedcom.WithLogger(log),
		gedcom.WithOnLine(func(*gedcom.Line) {
			report.Lines++
			opts.Progress.Step()
		}))
	opts.Progress.SetTotal(stage.Lines)

	tx, err := store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := newParser(ctx, lx, tx, stage, cs, report, opts)
	if err != nil {
		return nil, err
	}
	if err := p.parse(); err != nil {
		log.Error("Import aborted", "error", err)
		return nil, err
	}

	opts.Progress.OnRepairStart()
	if err := p.repair(); err != nil {
		return nil, err
	}
	if !opts.SkipLineage {
		res, err := lineage.Check(tx)
		if err != nil {
			return nil, fmt.Errorf("failed to check lineage: %w", err)
		}
		report.Lineage = res
		for _, c := range res.Cycles {
			report.Messages = append(report.Messages, Message{Text: c.String()})
		}
	}

	for _, kind := range model.Kinds {
		n, err := tx.Count(kind)
		if err != nil {
			return nil, err
		}
		report.Total[kind] = n
	}
	if err := tx.SetMetadata("last_import", opts.Source); err != nil {
		return nil, err
	}
	if err := tx.SetMetadata("last_import_at", p.now.UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	report.Invalid = lx.Errors()
	report.Duration = time.Since(start)
	log.Info("Import complete",
		"lines", report.Lines,
		"warnings", report.Warnings(),
		"missing_references", report.MissingReferences,
		"repaired_links", report.RepairedLinks,
		"duration", report.Duration)
	opts.Progress.OnComplete(report)
	return report, nil
}
