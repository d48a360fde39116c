package importer

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// familyRecord imports a FAM record.
func familyRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindFamily, line)
	if err != nil {
		return err
	}
	fam := obj.(*model.Family)
	if fam.Relationship == "" {
		fam.Relationship = model.FamilyUnknown
	}
	st.targets(&fam.Base)
	st.family = fam
	st.attrs = &fam.Attributes

	if err := p.parseLevel(st, ctxFamily); err != nil {
		return err
	}
	return p.closeRecord(fam, st)
}

// familySpouse handles HUSB and WIFE.
func familySpouse(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		p.warn(st, line, "Spouse without a person id ignored")
		return p.skip(line.Level)
	}
	h, _, err := p.handle(model.KindPerson, xref)
	if err != nil {
		return err
	}
	slot := &st.family.Father
	if line.Token == gedcom.TokWIFE {
		slot = &st.family.Mother
	}
	if !slot.IsZero() && *slot != h {
		p.warn(st, line, "Spouse replaced")
	}
	*slot = h
	return p.parseLevel(st.child(), ctxEmpty)
}

// familyChild handles CHIL. Relations given below the line override those
// already recorded for the child, for instance by the child's FAMC.
func familyChild(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		p.warn(st, line, "Child without a person id ignored")
		return p.skip(line.Level)
	}
	h, _, err := p.handle(model.KindPerson, xref)
	if err != nil {
		return err
	}

	ref := model.ChildRef{Ref: h}
	sub := st.child()
	sub.childRef = &ref
	sub.notes = &ref.Notes
	sub.citations = &ref.Citations
	sub.private = &ref.Private
	if err := p.parseLevel(sub, ctxChild); err != nil {
		return err
	}

	fam := st.family
	i := fam.ChildIndex(h)
	if i < 0 {
		if ref.FatherRel == "" {
			ref.FatherRel = model.ChildBirth
		}
		if ref.MotherRel == "" {
			ref.MotherRel = model.ChildBirth
		}
		fam.Children = append(fam.Children, ref)
		return nil
	}

	existing := &fam.Children[i]
	if ref.FatherRel != "" {
		existing.FatherRel = ref.FatherRel
	}
	if ref.MotherRel != "" {
		existing.MotherRel = ref.MotherRel
	}
	existing.Notes = append(existing.Notes, ref.Notes...)
	existing.Citations = append(existing.Citations, ref.Citations...)
	existing.Private = existing.Private || ref.Private
	return nil
}

func childPedigree(p *parser, line *gedcom.Line, st *state) error {
	rel := pedigreeRel(line.Text())
	st.childRef.FatherRel, st.childRef.MotherRel = rel, rel
	return p.skip(line.Level)
}

func childRelation(p *parser, line *gedcom.Line, st *state) error {
	if line.Token == gedcom.TokFRel {
		st.childRef.FatherRel = pedigreeRel(line.Text())
	} else {
		st.childRef.MotherRel = pedigreeRel(line.Text())
	}
	return p.skip(line.Level)
}

// familyEvent handles family events. A marriage makes the couple married
// unless TYPE said otherwise.
func familyEvent(p *parser, line *gedcom.Line, st *state) error {
	ev, ref, _, err := p.parseEvent(line, st, model.RoleFamily)
	if err != nil {
		return err
	}
	st.family.EventRefs = append(st.family.EventRefs, ref)
	if ev.Type == model.EventMarriage && st.family.Relationship == model.FamilyUnknown {
		st.family.Relationship = model.FamilyMarried
	}
	return nil
}

// familyAddress keeps a family address as a residence event.
func familyAddress(p *parser, line *gedcom.Line, st *state) error {
	loc, err := p.readAddress(line, st, nil)
	if err != nil {
		return err
	}
	ph, err := p.resolvePlace(placeData{title: addressTitle(loc), location: loc})
	if err != nil {
		return err
	}

	obj, err := p.fresh(model.KindEvent)
	if err != nil {
		return err
	}
	ev := obj.(*model.Event)
	ev.Type = model.EventResidence
	ev.Place = ph
	if err := p.put(ev); err != nil {
		return err
	}
	st.family.EventRefs = append(st.family.EventRefs, model.EventRef{Ref: ev.Handle, Role: model.RoleFamily})
	return nil
}

var familyTypes = map[string]model.FamilyRelType{
	"married":     model.FamilyMarried,
	"unmarried":   model.FamilyUnmarried,
	"not married": model.FamilyUnmarried,
	"civil union": model.FamilyCivilUnion,
	"unknown":     model.FamilyUnknown,
}

func familyType(p *parser, line *gedcom.Line, st *state) error {
	if t, ok := familyTypes[strings.ToLower(collapse(line.Text()))]; ok {
		st.family.Relationship = t
	} else {
		p.warn(st, line, "Unknown family type ignored")
	}
	return p.skip(line.Level)
}
