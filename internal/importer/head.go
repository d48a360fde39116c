package importer

import (
	"fmt"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/place"
)

// parseHeader reads the lines below HEAD.
func (p *parser) parseHeader(line *gedcom.Line) error {
	st := &state{level: 1, diag: &diagnostics{record: "HEAD"}}
	if err := p.parseLevel(st, ctxHead); err != nil {
		return err
	}
	p.log.Info("GEDCOM header parsed",
		"source", p.report.Header.SourceSystem,
		"version", p.report.Header.GedcomVersion,
		"charset", p.cs)
	return nil
}

// headText returns a handler storing the line value in a header field.
func headText(field func(h *Header) *string) lineHandler {
	return func(p *parser, line *gedcom.Line, st *state) error {
		*field(&p.report.Header) = line.Text()
		return p.parseLevel(st.sub(), ctxEmpty)
	}
}

var (
	headDestination   = headText(func(h *Header) *string { return &h.Destination })
	headFile          = headText(func(h *Header) *string { return &h.File })
	headCopyright     = headText(func(h *Header) *string { return &h.Copyright })
	headLanguage      = headText(func(h *Header) *string { return &h.Language })
	headSourceVersion = headText(func(h *Header) *string { return &h.SourceVersion })
	headSourceName    = headText(func(h *Header) *string { return &h.SourceName })
	headGedcVersion   = headText(func(h *Header) *string { return &h.GedcomVersion })
	headGedcForm      = headText(func(h *Header) *string { return &h.GedcomForm })
)

func headSource(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.SourceSystem = line.Text()
	return p.parseLevel(st.sub(), ctxHeadSource)
}

// headCorp keeps the company name; its address lines are not kept.
func headCorp(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.SourceCorp = line.Text()
	return p.skip(line.Level)
}

func headDate(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Date = line.Text()
	return p.parseLevel(st.sub(), ctxHeadDate)
}

func headTime(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Date = fmt.Sprintf("%s %s", p.report.Header.Date, line.Text())
	return p.skip(line.Level)
}

func headSubmitter(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Submitter = gedcom.StripPointer(line.Text())
	return p.skip(line.Level)
}

func headNote(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Note = line.Data
	return p.skip(line.Level)
}

func headGedc(p *parser, line *gedcom.Line, st *state) error {
	return p.parseLevel(st.sub(), ctxGedc)
}

// headCharset records the declared character set. The decoder was chosen
// by the pre-pass, which already knew the declaration, so this only
// reports a declaration that the byte order mark contradicts.
func headCharset(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Charset = line.Text()
	declared := charset.FromDeclared(line.Text())
	detected := p.stage.Detected
	if detected != charset.Unknown && declared != detected && !(declared.IsUTF16() && detected.IsUTF16()) {
		p.warn(st, line, fmt.Sprintf("Character set %s ignored, the file is encoded as %s", line.Text(), detected))
	}
	return p.skip(line.Level)
}

func headPlace(p *parser, line *gedcom.Line, st *state) error {
	return p.parseLevel(st.sub(), ctxHeadPlace)
}

// headPlaceForm sets the default hierarchy of PLAC values.
func headPlaceForm(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.PlaceForm = line.Text()
	p.placeForm = place.NewParser(line.Text())
	return p.skip(line.Level)
}

func duplicateHeader(p *parser, line *gedcom.Line, st *state) error {
	p.warn(st, line, "Duplicate HEAD record ignored")
	return p.skip(line.Level)
}

// submitterRecord resolves the submitter named by the header. Other
// submitter records are skipped.
func submitterRecord(p *parser, line *gedcom.Line, st *state) error {
	if line.XRef == "" || line.XRef != p.report.Header.Submitter {
		return p.skip(line.Level)
	}
	sub := &state{level: 1, diag: &diagnostics{record: "SUBM " + line.XRef}}
	return p.parseLevel(sub, ctxSubm)
}

func submitterName(p *parser, line *gedcom.Line, st *state) error {
	p.report.Header.Submitter = line.Text()
	return p.skip(line.Level)
}
