package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

// repair runs after the last record. It synthesises every record that
// was referenced but never defined, then makes the links between people
// and families agree in both directions.
func (p *parser) repair() error {
	if err := p.synthesise(); err != nil {
		return err
	}
	if err := p.repairFamilies(); err != nil {
		return err
	}
	return p.repairPeople()
}

// synthesise creates a placeholder for every id that was referenced but
// has no record in the file. All placeholders share one note explaining
// where they came from.
func (p *parser) synthesise() error {
	var explanation *model.Note
	locals := p.localIDs()
	for _, kind := range model.Kinds {
		for _, e := range p.ids[kind].Entries() {
			if p.defined[kind][e.Local] {
				continue
			}
			if explanation == nil {
				text := fmt.Sprintf("Objects referenced by this note were missing in a file imported on %s", p.now.Format("2006-01-02"))
				note, err := p.newNote(text, model.NoteImport)
				if err != nil {
					return err
				}
				explanation = note
			}

			h := p.handles[kind][e.Local]
			obj, err := p.loadHandle(kind, h, e.Local)
			if err != nil {
				return err
			}
			placeholder(obj)
			if holder, ok := obj.(interface{ AddNote(model.Handle) bool }); ok {
				holder.AddNote(explanation.Handle)
			}
			if err := p.put(obj); err != nil {
				return err
			}
			p.defined[kind][e.Local] = true

			text := fmt.Sprintf("%s '%s' (input as @%s@) not in input GEDCOM. Record synthesised", kind.Tag(), e.Local, e.External)
			refs, err := p.referencedBy(h, locals)
			if err != nil {
				return err
			}
			p.report.Messages = append(p.report.Messages, Message{
				Record: fmt.Sprintf("%s (%s) %s", kind.Tag(), kind, e.Local),
				Text:   text,
			})
			p.report.Placeholders = append(p.report.Placeholders, e.Local)
			p.report.MissingReferences++
			p.log.Warn(text, "referenced_by", strings.Join(refs, ", "))
		}
	}
	return nil
}

// placeholder fills the fields a synthesised record needs to be usable.
func placeholder(obj model.Object) {
	switch o := obj.(type) {
	case *model.Person:
		if o.PrimaryName.IsEmpty() {
			o.PrimaryName = model.Name{Type: model.NameBirth, FirstName: "Unknown"}
		}
	case *model.Family:
		if o.Relationship == "" {
			o.Relationship = model.FamilyUnknown
		}
	case *model.Source:
		if o.Title == "" {
			o.Title = "Unknown"
		}
	case *model.Repository:
		if o.Name == "" {
			o.Name = "Unknown"
		}
	case *model.Note:
		if o.Text == "" {
			o.Text = "Unknown"
		}
	}
}

// referencedBy returns the local ids of the objects pointing at h.
func (p *parser) referencedBy(h model.Handle, locals map[model.Handle]string) ([]string, error) {
	handles, err := p.tx.Backlinks(h)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(handles))
	for _, b := range handles {
		if id := locals[b]; id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *parser) localIDs() map[model.Handle]string {
	out := make(map[model.Handle]string)
	for _, kind := range model.Kinds {
		for local, h := range p.handles[kind] {
			out[h] = local
		}
	}
	return out
}

// repairFamilies makes every parent and child of a family list it.
func (p *parser) repairFamilies() error {
	for _, local := range p.sortedLocal(model.KindFamily) {
		fam, err := p.getFamily(p.handles[model.KindFamily][local])
		if err != nil {
			return err
		}
		if fam == nil {
			continue
		}

		for _, parent := range []model.Handle{fam.Father, fam.Mother} {
			person, err := p.getPerson(parent)
			if err != nil {
				return err
			}
			if person == nil || person.HasFamily(fam.Handle) {
				continue
			}
			person.AddFamily(fam.Handle)
			if err := p.put(person); err != nil {
				return err
			}
			p.repaired("Family %s added to the spouse families of %s", p.label(fam), p.label(person))
		}

		for _, c := range fam.Children {
			person, err := p.getPerson(c.Ref)
			if err != nil {
				return err
			}
			if person == nil || person.HasParentFamily(fam.Handle) {
				continue
			}
			person.AddParentFamily(fam.Handle)
			if err := p.put(person); err != nil {
				return err
			}
			p.repaired("Family %s added to the parent families of %s", p.label(fam), p.label(person))
		}
	}
	return nil
}

// repairPeople makes every family a person lists point back at them. A
// spouse family with both parent slots taken by others is dropped from
// the person.
func (p *parser) repairPeople() error {
	for _, local := range p.sortedLocal(model.KindPerson) {
		person, err := p.getPerson(p.handles[model.KindPerson][local])
		if err != nil {
			return err
		}
		if person == nil {
			continue
		}

		for _, fh := range person.ParentFamilies {
			fam, err := p.getFamily(fh)
			if err != nil {
				return err
			}
			if fam == nil || fam.HasChild(person.Handle) {
				continue
			}
			fam.AddChild(model.NewChildRef(person.Handle))
			if err := p.put(fam); err != nil {
				return err
			}
			p.repaired("%s added as a child of family %s", p.label(person), p.label(fam))
		}

		for _, fh := range append([]model.Handle(nil), person.Families...) {
			fam, err := p.getFamily(fh)
			if err != nil {
				return err
			}
			if fam == nil || fam.HasParent(person.Handle) {
				continue
			}
			if !fillParentSlot(fam, person) {
				person.RemoveFamily(fh)
				if err := p.put(person); err != nil {
					return err
				}
				p.repaired("Family %s removed from the spouse families of %s, both parents are set", p.label(fam), p.label(person))
				continue
			}
			if err := p.put(fam); err != nil {
				return err
			}
			p.repaired("%s added as a parent of family %s", p.label(person), p.label(fam))
		}
	}
	return nil
}

// fillParentSlot puts the person into the empty parent slot that matches
// their gender. A person of unknown gender takes the first empty slot.
func fillParentSlot(fam *model.Family, person *model.Person) bool {
	switch {
	case person.Gender != model.GenderFemale && fam.Father.IsZero():
		fam.Father = person.Handle
	case person.Gender != model.GenderMale && fam.Mother.IsZero():
		fam.Mother = person.Handle
	default:
		return false
	}
	return true
}

// label names an object by local id and, when it differs, the id it had
// in the file.
func (p *parser) label(obj model.Object) string {
	ext, ok := p.ids[obj.Kind()].External(obj.GetID())
	if !ok || ext == obj.GetID() {
		return obj.GetID()
	}
	return fmt.Sprintf("%s (@%s@)", obj.GetID(), ext)
}

func (p *parser) repaired(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.report.RepairedLinks++
	p.report.Repairs = append(p.report.Repairs, msg)
	p.log.Info("Link repaired", "repair", msg)
}

func (p *parser) getPerson(h model.Handle) (*model.Person, error) {
	obj, err := p.getObject(model.KindPerson, h)
	if obj == nil {
		return nil, err
	}
	return obj.(*model.Person), nil
}

func (p *parser) getFamily(h model.Handle) (*model.Family, error) {
	obj, err := p.getObject(model.KindFamily, h)
	if obj == nil {
		return nil, err
	}
	return obj.(*model.Family), nil
}

// getObject loads an object, returning nil without an error when it does
// not exist.
func (p *parser) getObject(kind model.Kind, h model.Handle) (model.Object, error) {
	if h.IsZero() {
		return nil, nil
	}
	obj, err := p.tx.Get(kind, h)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}
