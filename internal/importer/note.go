package importer

import (
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// noteRecord imports a NOTE record. The text is the value of the level-0
// line with its continuations.
func noteRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindNote, line)
	if err != nil {
		return err
	}
	note := obj.(*model.Note)
	note.Text = line.Data
	if note.Type == "" {
		note.Type = model.NoteGeneral
	}
	st.targets(&note.Base)
	st.note = note
	st.mediaRefs = nil

	if err := p.parseLevel(st, ctxNoteRecord); err != nil {
		return err
	}
	if note.Text == "" {
		p.warn(st, line, "Empty note")
	}
	return p.closeRecord(note, st)
}
