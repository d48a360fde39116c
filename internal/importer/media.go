package importer

import (
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// mediaRecord imports an OBJE record. Inline OBJE structures are handled
// by mediaRef with the same line handlers.
func mediaRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindMedia, line)
	if err != nil {
		return err
	}
	m := obj.(*model.MediaObject)
	st.targets(&m.Base)
	st.media = m
	st.mediaRefs = nil
	st.attrs = &m.Attributes

	if err := p.parseLevel(st, ctxMedia); err != nil {
		return err
	}
	if m.Path == "" {
		p.warn(st, line, "Media object without a file")
	}
	return p.closeRecord(m, st)
}

// mediaFile handles FILE. GEDCOM 5.5.1 allows several files per object;
// only the first is kept.
func mediaFile(p *parser, line *gedcom.Line, st *state) error {
	if st.media.Path != "" {
		p.warn(st, line, "Additional media file ignored")
		return p.skip(line.Level)
	}
	st.media.Path = line.Text()
	return p.parseLevel(st.sub(), ctxMediaFile)
}

func mediaForm(p *parser, line *gedcom.Line, st *state) error {
	if st.media.MimeType == "" {
		st.media.MimeType = model.MimeFromForm(line.Text())
	}
	return p.skip(line.Level)
}

func mediaTitle(p *parser, line *gedcom.Line, st *state) error {
	st.media.Description = line.Text()
	return p.skip(line.Level)
}

func mediaDate(p *parser, line *gedcom.Line, st *state) error {
	st.media.Date = *line.Date
	return p.skip(line.Level)
}
