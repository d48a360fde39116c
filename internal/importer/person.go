package importer

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// personRecord imports an INDI record.
func personRecord(p *parser, line *gedcom.Line, _ *state) error {
	obj, st, err := p.openRecord(model.KindPerson, line)
	if err != nil {
		return err
	}
	person := obj.(*model.Person)
	st.targets(&person.Base)
	st.person = person
	st.attrs = &person.Attributes
	st.urls = &person.URLs

	if err := p.parseLevel(st, ctxPerson); err != nil {
		return err
	}
	if err := p.backfillPerson(person, line.XRef); err != nil {
		return err
	}
	return p.closeRecord(person, st)
}

// backfillPerson adds the family links the pre-pass found in FAM records
// but the person record does not list.
func (p *parser) backfillPerson(person *model.Person, xref string) error {
	if xref == "" {
		return nil
	}
	famc, err := p.familyHandles(p.stage.Famc[xref])
	if err != nil {
		return err
	}
	for _, h := range famc {
		person.AddParentFamily(h)
	}
	fams, err := p.familyHandles(p.stage.Fams[xref])
	if err != nil {
		return err
	}
	for _, h := range fams {
		person.AddFamily(h)
	}
	return nil
}

// parseNameText splits "Given /Surname/ Suffix".
func parseNameText(text string) model.Name {
	var n model.Name
	given, rest, found := strings.Cut(text, "/")
	if !found {
		n.FirstName = collapse(text)
		return n
	}
	surname, suffix, _ := strings.Cut(rest, "/")
	n.FirstName = collapse(given)
	n.Suffix = collapse(strings.ReplaceAll(suffix, "/", " "))
	if s := collapse(surname); s != "" {
		n.Surnames = []model.Surname{{Surname: s, Primary: true}}
	}
	return n
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// readName parses the lines below a name into n.
func (p *parser) readName(st *state, n *model.Name) error {
	sub := st.child()
	sub.name = n
	sub.notes = &n.Notes
	sub.citations = &n.Citations
	sub.private = &n.Private
	return p.parseLevel(sub, ctxName)
}

// personName handles NAME. The first name of a person is the primary
// name; later ones become alternate names.
func personName(p *parser, line *gedcom.Line, st *state) error {
	name := parseNameText(line.Data)
	name.Type = model.NameBirth
	if err := p.readName(st, &name); err != nil {
		return err
	}
	if st.person.PrimaryName.Type == "" && st.person.PrimaryName.IsEmpty() {
		st.person.PrimaryName = name
		return nil
	}
	st.person.AlternateNames = append(st.person.AlternateNames, name)
	return nil
}

// personAlias handles ALIA, which is either a pointer to another person
// or a name.
func personAlias(p *parser, line *gedcom.Line, st *state) error {
	if xref, ok := line.Pointer(); ok {
		h, _, err := p.handle(model.KindPerson, xref)
		if err != nil {
			return err
		}
		st.person.Associations = append(st.person.Associations, model.PersonRef{Ref: h, Relation: "Alias"})
		return p.parseLevel(st.child(), ctxEmpty)
	}
	return personAlternateName(p, line, st)
}

// personAlternateName handles _AKA, ALIA with a name value and _MARNM.
// A married name without slashes is taken as the surname alone.
func personAlternateName(p *parser, line *gedcom.Line, st *state) error {
	text := line.Text()
	if text == "" {
		p.warn(st, line, "Empty name ignored")
		return p.skip(line.Level)
	}

	var name model.Name
	if line.Token == gedcom.TokMarriedName && !strings.Contains(text, "/") {
		name.Surnames = []model.Surname{{Surname: collapse(text), Primary: true}}
	} else {
		name = parseNameText(text)
	}
	name.Type = model.NameAKA
	if line.Token == gedcom.TokMarriedName {
		name.Type = model.NameMarried
	}
	if name.FirstName == "" && st.name != nil {
		name.FirstName = st.name.FirstName
	}
	if err := p.readName(st, &name); err != nil {
		return err
	}
	st.person.AlternateNames = append(st.person.AlternateNames, name)
	return nil
}

func personSex(p *parser, line *gedcom.Line, st *state) error {
	st.person.Gender = line.Sex
	return p.skip(line.Level)
}

// personEvent handles individual events, EVEN and TITL.
func personEvent(p *parser, line *gedcom.Line, st *state) error {
	ev, ref, adoption, err := p.parseEvent(line, st, model.RolePrimary)
	if err != nil {
		return err
	}
	st.person.AddEventRef(ref, ev.Type)
	if adoption.family.IsZero() {
		return nil
	}
	return p.linkEventFamily(st.person, ev.Type, adoption)
}

// linkEventFamily applies the FAMC of an individual event. An
// adoption marks the child as adopted by the parents named in ADOP.
func (p *parser) linkEventFamily(person *model.Person, typ model.EventType, a adoptionResult) error {
	person.AddParentFamily(a.family)
	obj, err := p.loadHandle(model.KindFamily, a.family, a.local)
	if err != nil {
		return err
	}
	fam := obj.(*model.Family)
	i := fam.ChildIndex(person.Handle)
	if i < 0 {
		fam.Children = append(fam.Children, model.NewChildRef(person.Handle))
		i = len(fam.Children) - 1
	}
	if typ == model.EventAdopted {
		ref := &fam.Children[i]
		switch a.by {
		case "HUSB":
			ref.FatherRel = model.ChildAdopted
		case "WIFE":
			ref.MotherRel = model.ChildAdopted
		default:
			ref.FatherRel, ref.MotherRel = model.ChildAdopted, model.ChildAdopted
		}
	}
	return p.put(fam)
}

// pedigreeRel maps a PEDI, _FREL or _MREL value.
func pedigreeRel(value string) model.ChildRel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "birth", "natural", "biological":
		return model.ChildBirth
	case "adopted":
		return model.ChildAdopted
	case "step", "stepchild":
		return model.ChildStepchild
	case "foster":
		return model.ChildFoster
	case "sponsored":
		return model.ChildSponsored
	default:
		return model.ChildUnknown
	}
}

// parseFamilyLink reads the lines below a FAMC.
func (p *parser) parseFamilyLink(st *state) (FamilyLinkResult, error) {
	res := FamilyLinkResult{FatherRel: model.ChildBirth, MotherRel: model.ChildBirth}
	sub := st.child()
	sub.link = &res
	sub.notes = &res.Notes
	sub.citations = &res.Citations
	if err := p.parseLevel(sub, ctxFamc); err != nil {
		return FamilyLinkResult{}, err
	}
	return res, nil
}

// personFamc handles FAMC. A link that is not a plain birth link, or that
// carries citations, is written to the family's child reference.
func personFamc(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		p.warn(st, line, "Family link without a family id ignored")
		return p.skip(line.Level)
	}
	fh, local, err := p.handle(model.KindFamily, xref)
	if err != nil {
		return err
	}
	link, err := p.parseFamilyLink(st)
	if err != nil {
		return err
	}

	person := st.person
	person.AddParentFamily(fh)
	if link.Primary {
		moveFirst(person.ParentFamilies, fh)
	}
	for _, n := range link.Notes {
		person.AddNote(n)
	}
	if link.isBirth() && len(link.Citations) == 0 {
		return nil
	}

	obj, err := p.loadHandle(model.KindFamily, fh, local)
	if err != nil {
		return err
	}
	fam := obj.(*model.Family)
	i := fam.ChildIndex(person.Handle)
	if i < 0 {
		fam.Children = append(fam.Children, model.NewChildRef(person.Handle))
		i = len(fam.Children) - 1
	}
	ref := &fam.Children[i]
	ref.FatherRel, ref.MotherRel = link.FatherRel, link.MotherRel
	ref.Citations = append(ref.Citations, link.Citations...)
	return p.put(fam)
}

func moveFirst(list []model.Handle, h model.Handle) {
	for i, x := range list {
		if x == h {
			copy(list[1:i+1], list[:i])
			list[0] = h
			return
		}
	}
}

func famcPedigree(p *parser, line *gedcom.Line, st *state) error {
	rel := pedigreeRel(line.Text())
	st.link.FatherRel, st.link.MotherRel = rel, rel
	return p.skip(line.Level)
}

func famcRelation(p *parser, line *gedcom.Line, st *state) error {
	if line.Token == gedcom.TokFRel {
		st.link.FatherRel = pedigreeRel(line.Text())
	} else {
		st.link.MotherRel = pedigreeRel(line.Text())
	}
	return p.skip(line.Level)
}

func famcPrimary(p *parser, line *gedcom.Line, st *state) error {
	st.link.Primary = strings.EqualFold(line.Text(), "Y")
	return p.skip(line.Level)
}

// personFams handles FAMS. Its notes attach to the person.
func personFams(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		p.warn(st, line, "Family link without a family id ignored")
		return p.skip(line.Level)
	}
	fh, _, err := p.handle(model.KindFamily, xref)
	if err != nil {
		return err
	}
	st.person.AddFamily(fh)
	return p.parseLevel(st.sub(), ctxFams)
}

func personAssociation(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		p.warn(st, line, "Association without a person id ignored")
		return p.skip(line.Level)
	}
	h, _, err := p.handle(model.KindPerson, xref)
	if err != nil {
		return err
	}
	ref := model.PersonRef{Ref: h}
	sub := st.child()
	sub.assoc = &ref
	sub.notes = &ref.Notes
	sub.citations = &ref.Citations
	sub.private = &ref.Private
	if err := p.parseLevel(sub, ctxAsso); err != nil {
		return err
	}
	st.person.Associations = append(st.person.Associations, ref)
	return nil
}

func associationRelation(p *parser, line *gedcom.Line, st *state) error {
	st.assoc.Relation = line.Text()
	return p.skip(line.Level)
}

// associationType accepts the GEDCOM 5.5 TYPE of an ASSO, which must name
// an individual.
func associationType(p *parser, line *gedcom.Line, st *state) error {
	if !strings.EqualFold(line.Text(), "INDI") {
		p.warn(st, line, "Association type not supported")
	}
	return p.skip(line.Level)
}

func personAddress(p *parser, line *gedcom.Line, st *state) error {
	var addr model.Address
	loc, err := p.readAddress(line, st, &addr)
	if err != nil {
		return err
	}
	addr.Location = loc
	st.person.Addresses = append(st.person.Addresses, addr)
	return nil
}

// personPhone keeps a PHON outside an address as an address holding
// only the phone number.
func personPhone(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.person.Addresses = append(st.person.Addresses, model.Address{Location: model.Location{Phone: line.Text()}})
	}
	return p.skip(line.Level)
}

var ordinanceTypes = map[gedcom.Token]model.LdsType{
	gedcom.TokBAPL: model.LdsBaptism,
	gedcom.TokCONL: model.LdsConfirmation,
	gedcom.TokENDL: model.LdsEndowment,
	gedcom.TokSLGC: model.LdsSealToParents,
	gedcom.TokSLGS: model.LdsSealToSpouse,
}

// ordinance handles the LDS ordinances of people and families.
func ordinance(p *parser, line *gedcom.Line, st *state) error {
	o := model.LdsOrd{Type: ordinanceTypes[line.Token]}
	sub := st.child()
	sub.lds = &o
	sub.notes = &o.Notes
	sub.citations = &o.Citations
	sub.private = &o.Private
	if err := p.parseLevel(sub, ctxLds); err != nil {
		return err
	}
	if st.family != nil {
		st.family.LdsOrds = append(st.family.LdsOrds, o)
	} else {
		st.person.LdsOrds = append(st.person.LdsOrds, o)
	}
	return nil
}

func ordinanceDate(p *parser, line *gedcom.Line, st *state) error {
	st.lds.Date = *line.Date
	return p.skip(line.Level)
}

func ordinanceTemple(p *parser, line *gedcom.Line, st *state) error {
	st.lds.Temple = strings.ToUpper(line.Text())
	return p.skip(line.Level)
}

func ordinancePlace(p *parser, line *gedcom.Line, st *state) error {
	pd, err := p.readPlace(line, st)
	if err != nil {
		return err
	}
	h, err := p.resolvePlace(pd)
	if err != nil {
		return err
	}
	st.lds.Place = h
	return nil
}

func ordinanceStatus(p *parser, line *gedcom.Line, st *state) error {
	st.lds.Status = line.Text()
	return p.skip(line.Level)
}

// ordinanceFamily is the parent family of a sealing to parents.
func ordinanceFamily(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if !ok {
		return unsupported(p, line, st)
	}
	h, _, err := p.handle(model.KindFamily, xref)
	if err != nil {
		return err
	}
	st.lds.Family = h
	return p.skip(line.Level)
}

func nameGiven(p *parser, line *gedcom.Line, st *state) error {
	if text := line.Text(); text != "" {
		st.name.FirstName = text
	}
	return p.skip(line.Level)
}

// nameSurname handles SURN. Several surnames may be separated by commas;
// the first replaces the primary surname.
func nameSurname(p *parser, line *gedcom.Line, st *state) error {
	for i, part := range strings.Split(line.Text(), ",") {
		part = collapse(part)
		if part == "" {
			continue
		}
		if i == 0 {
			primarySurname(st.name).Surname = part
			continue
		}
		if !hasSurname(st.name, part) {
			st.name.Surnames = append(st.name.Surnames, model.Surname{Surname: part})
		}
	}
	return p.skip(line.Level)
}

func nameSurnamePrefix(p *parser, line *gedcom.Line, st *state) error {
	primarySurname(st.name).Prefix = line.Text()
	return p.skip(line.Level)
}

// primarySurname returns the primary surname, adding an empty one when
// the name has none.
func primarySurname(n *model.Name) *model.Surname {
	if s := n.PrimarySurname(); s != nil {
		return s
	}
	n.Surnames = append(n.Surnames, model.Surname{Primary: true})
	return &n.Surnames[len(n.Surnames)-1]
}

func hasSurname(n *model.Name, surname string) bool {
	for _, s := range n.Surnames {
		if strings.EqualFold(s.Surname, surname) {
			return true
		}
	}
	return false
}

func nameTitle(p *parser, line *gedcom.Line, st *state) error {
	st.name.Title = line.Text()
	return p.skip(line.Level)
}

func nameSuffix(p *parser, line *gedcom.Line, st *state) error {
	st.name.Suffix = line.Text()
	return p.skip(line.Level)
}

func nameNick(p *parser, line *gedcom.Line, st *state) error {
	st.name.Nick = line.Text()
	return p.skip(line.Level)
}

var nameTypes = map[string]model.NameType{
	"birth":   model.NameBirth,
	"aka":     model.NameAKA,
	"married": model.NameMarried,
}

func nameType(p *parser, line *gedcom.Line, st *state) error {
	if t, ok := nameTypes[strings.ToLower(line.Text())]; ok {
		st.name.Type = t
	} else if line.Text() != "" {
		st.name.Type = model.NameType(line.Text())
	}
	return p.skip(line.Level)
}

func nameDate(p *parser, line *gedcom.Line, st *state) error {
	st.name.Date = *line.Date
	return p.skip(line.Level)
}
