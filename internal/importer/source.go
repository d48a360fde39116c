package importer

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// sourceRecord imports a SOUR record.
func sourceRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindSource, line)
	if err != nil {
		return err
	}
	src := obj.(*model.Source)
	st.targets(&src.Base)
	st.source = src
	st.attrs = &src.Attributes

	if err := p.parseLevel(st, ctxSource); err != nil {
		return err
	}
	return p.closeRecord(src, st)
}

// sourceField handles TITL, AUTH, PUBL and ABBR.
func sourceField(p *parser, line *gedcom.Line, st *state) error {
	text := strings.TrimSpace(line.Data)
	switch line.Token {
	case gedcom.TokTITL:
		st.source.Title = text
	case gedcom.TokAUTH:
		st.source.Author = text
	case gedcom.TokPUBL:
		st.source.PubInfo = text
	case gedcom.TokABBR:
		st.source.Abbrev = text
	}
	return p.parseLevel(st.child(), ctxEmpty)
}

// sourceText keeps the TEXT of a source as a note.
func sourceText(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		note, err := p.newNote(line.Data, model.NoteSourceText)
		if err != nil {
			return err
		}
		st.source.AddNote(note.Handle)
	}
	return p.parseLevel(st.child(), ctxEmpty)
}

// sourceRepository handles REPO, either a pointer to a repository record
// or a repository described in place.
func sourceRepository(p *parser, line *gedcom.Line, st *state) error {
	var (
		ref    model.RepoRef
		inline inlineRepo
	)
	if xref, ok := line.Pointer(); ok {
		h, _, err := p.handle(model.KindRepository, xref)
		if err != nil {
			return err
		}
		ref.Ref = h
	} else {
		obj, err := p.fresh(model.KindRepository)
		if err != nil {
			return err
		}
		inline.repo = obj.(*model.Repository)
		inline.repo.Name = line.Text()
		ref.Ref = inline.repo.Handle
	}

	sub := st.child()
	sub.repoRef = &ref
	sub.notes = &ref.Notes
	sub.private = &ref.Private
	sub.inline = &inline
	if err := p.parseLevel(sub, ctxRepoRef); err != nil {
		return err
	}
	if inline.repo != nil {
		if inline.repo.Name == "" {
			p.warn(st, line, "Repository without a name")
		}
		if err := p.put(inline.repo); err != nil {
			return err
		}
	}
	st.source.RepoRefs = append(st.source.RepoRefs, ref)
	return nil
}

func repoRefCallNumber(p *parser, line *gedcom.Line, st *state) error {
	st.repoRef.CallNumber = line.Text()
	return p.parseLevel(st.sub(), ctxCallNumber)
}

func repoRefMedia(p *parser, line *gedcom.Line, st *state) error {
	st.repoRef.MediaType = line.Text()
	return p.skip(line.Level)
}

func inlineRepoName(p *parser, line *gedcom.Line, st *state) error {
	if st.inline == nil || st.inline.repo == nil {
		return unsupported(p, line, st)
	}
	st.inline.repo.Name = line.Text()
	return p.skip(line.Level)
}

func inlineRepoAddress(p *parser, line *gedcom.Line, st *state) error {
	if st.inline == nil || st.inline.repo == nil {
		return unsupported(p, line, st)
	}
	repo := st.inline.repo
	var addr model.Address
	loc, err := p.readAddress(line, st, &addr)
	if err != nil {
		return err
	}
	addr.Location = loc
	repo.Addresses = append(repo.Addresses, addr)
	return nil
}

func sourceData(p *parser, line *gedcom.Line, st *state) error {
	return p.parseLevel(st.sub(), ctxSourceData)
}

// sourceDataEvent keeps the recorded event types. Their DATE and PLAC
// lines are not kept.
func sourceDataEvent(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.source.Attributes = append(st.source.Attributes, model.Attribute{Type: model.AttrEvent, Value: line.Text()})
	}
	return p.skip(line.Level)
}

func sourceDataAgency(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.source.Attributes = append(st.source.Attributes, model.Attribute{Type: model.AttrAgency, Value: line.Text()})
	}
	return p.skip(line.Level)
}

// sourceMedia handles a MEDI written directly below SOUR by some
// programs. It applies to the last repository reference.
func sourceMedia(p *parser, line *gedcom.Line, st *state) error {
	refs := st.source.RepoRefs
	if len(refs) == 0 {
		return unsupported(p, line, st)
	}
	refs[len(refs)-1].MediaType = line.Text()
	return p.skip(line.Level)
}
