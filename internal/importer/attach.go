package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/mvp-joe/kinship/internal/date"
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// inlineNote creates a note from the text of a NOTE line.
func inlineNote(p *parser, line *gedcom.Line, st *state) error {
	if st.notes == nil {
		return unsupported(p, line, st)
	}
	if line.Text() == "" {
		p.warn(st, line, "Empty note ignored")
		return p.skip(line.Level)
	}

	obj, err := p.fresh(model.KindNote)
	if err != nil {
		return err
	}
	note := obj.(*model.Note)
	note.Text = line.Data
	note.Type = model.NoteGeneral

	sub := st.child()
	sub.note = note
	sub.citations = &note.Citations
	if err := p.parseLevel(sub, ctxNote); err != nil {
		return err
	}
	if err := p.put(note); err != nil {
		return err
	}
	*st.notes = append(*st.notes, note.Handle)
	return nil
}

// noteRef attaches a NOTE record by reference.
func noteRef(p *parser, line *gedcom.Line, st *state) error {
	if st.notes == nil {
		return unsupported(p, line, st)
	}
	xref, _ := line.Pointer()
	h, _, err := p.handle(model.KindNote, xref)
	if err != nil {
		return err
	}
	if !containsHandle(*st.notes, h) {
		*st.notes = append(*st.notes, h)
	}
	return p.parseLevel(st.child(), ctxEmpty)
}

// citation attaches a source citation.
func citation(p *parser, line *gedcom.Line, st *state) error {
	if st.citations == nil {
		return unsupported(p, line, st)
	}
	c, err := p.parseCitation(line, st)
	if err != nil {
		return err
	}
	*st.citations = append(*st.citations, c)
	return nil
}

// mediaRef attaches a media object, either by reference or defined
// inline.
func mediaRef(p *parser, line *gedcom.Line, st *state) error {
	if st.mediaRefs == nil {
		return unsupported(p, line, st)
	}

	if xref, ok := line.Pointer(); ok {
		h, _, err := p.handle(model.KindMedia, xref)
		if err != nil {
			return err
		}
		ref := model.MediaRef{Ref: h}
		sub := st.child()
		sub.notes = &ref.Notes
		sub.citations = &ref.Citations
		if err := p.parseLevel(sub, ctxMediaRef); err != nil {
			return err
		}
		*st.mediaRefs = append(*st.mediaRefs, ref)
		return nil
	}

	obj, err := p.fresh(model.KindMedia)
	if err != nil {
		return err
	}
	m := obj.(*model.MediaObject)
	sub := st.child().targets(&m.Base)
	sub.media = m
	sub.mediaRefs = nil
	sub.attrs = &m.Attributes
	if err := p.parseLevel(sub, ctxMedia); err != nil {
		return err
	}
	if m.Path == "" {
		p.warn(st, line, "Media object without a file")
	}
	if err := p.put(m); err != nil {
		return err
	}
	*st.mediaRefs = append(*st.mediaRefs, model.MediaRef{Ref: m.Handle})
	return nil
}

var idAttributeTypes = map[gedcom.Token]model.AttributeType{
	gedcom.TokREFN: model.AttrReference,
	gedcom.TokRIN:  model.AttrRecordID,
	gedcom.TokUID:  model.AttrUID,
	gedcom.TokAFN:  model.AttrAncestralFile,
	gedcom.TokRFN:  model.AttrRecordFile,
}

// idAttribute keeps REFN, RIN and _UID as attributes. Objects without
// attributes report the line instead.
func idAttribute(p *parser, line *gedcom.Line, st *state) error {
	if st.attrs == nil {
		return unsupported(p, line, st)
	}
	if line.Text() != "" {
		*st.attrs = append(*st.attrs, model.Attribute{Type: idAttributeTypes[line.Token], Value: line.Text()})
	}
	return p.skip(line.Level)
}

// restriction handles RESN. Confidential and privacy restrictions make
// the object private.
func restriction(p *parser, line *gedcom.Line, st *state) error {
	value := strings.ToLower(line.Text())
	if st.private != nil && (value == "confidential" || value == "privacy") {
		*st.private = true
	}
	if st.attrs != nil && value != "" {
		*st.attrs = append(*st.attrs, model.Attribute{Type: model.AttrRestriction, Value: line.Text()})
	}
	return p.skip(line.Level)
}

func url(p *parser, line *gedcom.Line, st *state) error {
	if st.urls == nil || line.Text() == "" {
		return unsupported(p, line, st)
	}
	u := model.URL{Path: line.Text(), Type: "Web Home"}
	if line.Token == gedcom.TokEMAIL {
		u.Type = "E-mail"
	}
	*st.urls = append(*st.urls, u)
	return p.skip(line.Level)
}

// attribute handles standard attributes and FACT.
func attribute(p *parser, line *gedcom.Line, st *state) error {
	if st.attrs == nil {
		return unsupported(p, line, st)
	}
	var a model.Attribute
	if line.Attr != nil {
		a = *line.Attr
	} else {
		a.Value = line.Text()
	}

	sub := st.child()
	sub.attr = &a
	sub.notes = &a.Notes
	sub.citations = &a.Citations
	if err := p.parseLevel(sub, ctxAttribute); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = model.AttributeType("Fact")
	}
	*st.attrs = append(*st.attrs, a)
	return nil
}

func attributeType(p *parser, line *gedcom.Line, st *state) error {
	if st.attr.Type == "" {
		st.attr.Type = model.AttributeType(line.Text())
	}
	return p.skip(line.Level)
}

// change reads CHAN. Its NOTE lines attach to the record.
func change(p *parser, line *gedcom.Line, st *state) error {
	if st.changed == nil {
		return p.skip(line.Level)
	}
	return p.parseLevel(st.sub(), ctxChange)
}

func changeDate(p *parser, line *gedcom.Line, st *state) error {
	d := date.Parse(line.Text())
	v := d.Start
	if d.Modifier != date.ModNone || d.Calendar != date.Gregorian || v.Day == 0 || v.Month == 0 || v.BC {
		p.warn(st, line, "Invalid change date ignored")
		return p.skip(line.Level)
	}
	*st.changed = time.Date(v.Year, time.Month(v.Month), v.Day, 0, 0, 0, 0, time.UTC).Unix()
	return p.parseLevel(st.sub(), ctxChange)
}

// changeTime adds "HH:MM[:SS[.fff]]" to the change date.
func changeTime(p *parser, line *gedcom.Line, st *state) error {
	if *st.changed == 0 {
		return p.skip(line.Level)
	}
	parts := strings.Split(strings.SplitN(line.Text(), ".", 2)[0], ":")
	if len(parts) < 2 || len(parts) > 3 {
		p.warn(st, line, "Invalid change time ignored")
		return p.skip(line.Level)
	}
	limits := []int{24, 60, 60}
	units := []int64{3600, 60, 1}
	var offset int64
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= limits[i] {
			p.warn(st, line, "Invalid change time ignored")
			return p.skip(line.Level)
		}
		offset += int64(n) * units[i]
	}
	*st.changed += offset
	return p.skip(line.Level)
}

func containsHandle(list []model.Handle, h model.Handle) bool {
	for _, x := range list {
		if x == h {
			return true
		}
	}
	return false
}
