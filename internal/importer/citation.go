package importer

import (
	"strconv"
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// parseCitation reads a SOUR citation. A pointer cites a source record;
// free text creates a new source holding the text.
func (p *parser) parseCitation(line *gedcom.Line, st *state) (model.Citation, error) {
	c := model.Citation{Confidence: model.ConfidenceNormal}

	var src *model.Source
	if xref, ok := line.Pointer(); ok {
		h, _, err := p.handle(model.KindSource, xref)
		if err != nil {
			return model.Citation{}, err
		}
		c.Source = h
	} else {
		obj, err := p.fresh(model.KindSource)
		if err != nil {
			return model.Citation{}, err
		}
		src = obj.(*model.Source)
		title, _, multiline := strings.Cut(strings.TrimSpace(line.Data), "\n")
		src.Title = strings.TrimSpace(title)
		if multiline {
			note, err := p.newNote(line.Data, model.NoteSourceText)
			if err != nil {
				return model.Citation{}, err
			}
			src.AddNote(note.Handle)
		}
		c.Source = src.Handle
	}

	sub := st.child()
	sub.citation = &c
	sub.notes = &c.Notes
	sub.mediaRefs = &c.Media
	sub.private = &c.Private
	if err := p.parseLevel(sub, ctxCitation); err != nil {
		return model.Citation{}, err
	}
	if src != nil {
		if err := p.put(src); err != nil {
			return model.Citation{}, err
		}
	}
	return c, nil
}

func citationPage(p *parser, line *gedcom.Line, st *state) error {
	st.citation.Page = line.Text()
	return p.skip(line.Level)
}

// citationQuality maps QUAY 0-3 to a confidence level.
func citationQuality(p *parser, line *gedcom.Line, st *state) error {
	n, err := strconv.Atoi(line.Text())
	if err != nil || n < 0 || n > 3 {
		p.warn(st, line, "Invalid quality ignored")
		return p.skip(line.Level)
	}
	st.citation.Confidence = model.ConfidenceFromQuality(n)
	return p.skip(line.Level)
}

func citationData(p *parser, line *gedcom.Line, st *state) error {
	return p.parseLevel(st.sub(), ctxCitationData)
}

func citationDate(p *parser, line *gedcom.Line, st *state) error {
	st.citation.Date = *line.Date
	return p.skip(line.Level)
}

// citationText keeps the transcribed text as a note on the citation.
func citationText(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() == "" {
		return p.skip(line.Level)
	}
	note, err := p.newNote(line.Data, model.NoteSourceText)
	if err != nil {
		return err
	}
	st.citation.Notes = append(st.citation.Notes, note.Handle)
	return p.skip(line.Level)
}

func citationEvent(p *parser, line *gedcom.Line, st *state) error {
	st.citation.Event = line.Text()
	return p.parseLevel(st.sub(), ctxCitationEvent)
}

func citationRole(p *parser, line *gedcom.Line, st *state) error {
	st.citation.Role = line.Text()
	return p.skip(line.Level)
}
