package importer

import (
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// repoRecord imports a REPO record.
func repoRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindRepository, line)
	if err != nil {
		return err
	}
	repo := obj.(*model.Repository)
	st.targets(&repo.Base)
	st.repo = repo
	st.urls = &repo.URLs
	st.attrs = &repo.Attributes

	if err := p.parseLevel(st, ctxRepo); err != nil {
		return err
	}
	return p.closeRecord(repo, st)
}

func repoName(p *parser, line *gedcom.Line, st *state) error {
	st.repo.Name = line.Text()
	return p.skip(line.Level)
}

func repoAddress(p *parser, line *gedcom.Line, st *state) error {
	var addr model.Address
	loc, err := p.readAddress(line, st, &addr)
	if err != nil {
		return err
	}
	addr.Location = loc
	st.repo.Addresses = append(st.repo.Addresses, addr)
	return nil
}

func repoPhone(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.repo.Addresses = append(st.repo.Addresses, model.Address{Location: model.Location{Phone: line.Text()}})
	}
	return p.skip(line.Level)
}
