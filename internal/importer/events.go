package importer

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// parseEvent creates an event from an event line and the lines below it.
// It returns the reference to attach and the FAMC found below the event.
func (p *parser) parseEvent(line *gedcom.Line, st *state, role model.EventRole) (*model.Event, model.EventRef, adoptionResult, error) {
	obj, err := p.fresh(model.KindEvent)
	if err != nil {
		return nil, model.EventRef{}, adoptionResult{}, err
	}
	ev := obj.(*model.Event)
	switch line.Token {
	case gedcom.TokGEvent:
		ev.Type = line.Event.Type
		ev.Description = line.Event.Description
	case gedcom.TokTITL:
		ev.Type = model.EventNobilityTitle
		ev.Description = line.Text()
	default:
		ev.Type = model.EventUnknown
		ev.Description = line.Text()
	}

	ref := model.EventRef{Ref: ev.Handle, Role: role}
	var (
		placeBy  string
		adoption adoptionResult
	)
	sub := st.child().targets(&ev.Base)
	sub.event = ev
	sub.eventRef = &ref
	sub.attrs = &ev.Attributes
	sub.placeBy = &placeBy
	sub.adoption = &adoption
	if err := p.parseLevel(sub, ctxEvent); err != nil {
		return nil, model.EventRef{}, adoptionResult{}, err
	}
	if err := p.put(ev); err != nil {
		return nil, model.EventRef{}, adoptionResult{}, err
	}
	return ev, ref, adoption, nil
}

// eventType handles TYPE. It names the event of an EVEN and describes any
// other event.
func eventType(p *parser, line *gedcom.Line, st *state) error {
	text := line.Text()
	switch {
	case text == "":
	case st.event.Type == model.EventUnknown:
		if t, ok := gedcom.EventType(strings.ToUpper(text)); ok {
			st.event.Type = t
		} else {
			st.event.Type = model.EventType(text)
		}
	case st.event.Description == "":
		st.event.Description = text
	default:
		st.event.Description += ", " + text
	}
	return p.skip(line.Level)
}

// eventDate keeps the date. Text that is not a date is kept verbatim and
// diagnosed unless it was written as a phrase in parentheses.
func eventDate(p *parser, line *gedcom.Line, st *state) error {
	d := *line.Date
	text := line.Text()
	if d.IsTextOnly() && !(strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")")) {
		p.warn(st, line, "Date not understood, kept as text")
	}
	st.event.Date = d
	return p.skip(line.Level)
}

// eventPlace and eventAddress share the event place. The first of them
// sets it; the second only fills location fields that are still empty.
func eventPlace(p *parser, line *gedcom.Line, st *state) error {
	pd, err := p.readPlace(line, st)
	if err != nil {
		return err
	}
	return p.setEventPlace(line, st, pd, "PLAC")
}

func eventAddress(p *parser, line *gedcom.Line, st *state) error {
	loc, err := p.readAddress(line, st, nil)
	if err != nil {
		return err
	}
	return p.setEventPlace(line, st, placeData{title: addressTitle(loc), location: loc}, "ADDR")
}

func (p *parser) setEventPlace(line *gedcom.Line, st *state, pd placeData, by string) error {
	if *st.placeBy == "" {
		h, err := p.resolvePlace(pd)
		if err != nil {
			return err
		}
		if !h.IsZero() {
			st.event.Place = h
			*st.placeBy = by
		}
		return nil
	}
	p.warn(st, line, by+" would overwrite the place set by "+*st.placeBy+"; only empty fields filled")
	return p.mergePlace(st.event.Place, pd)
}

var eventAttributeTypes = map[gedcom.Token]model.AttributeType{
	gedcom.TokCAUS: model.AttrCause,
	gedcom.TokAGNC: model.AttrAgency,
	gedcom.TokPHON: model.AttrPhone,
}

func eventAttribute(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.event.Attributes = append(st.event.Attributes, model.Attribute{
			Type:  eventAttributeTypes[line.Token],
			Value: line.Text(),
		})
	}
	return p.skip(line.Level)
}

// eventAge records the age of the person at the event on the reference.
func eventAge(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.eventRef.Attributes = append(st.eventRef.Attributes, model.Attribute{Type: model.AttrAge, Value: line.Text()})
	}
	return p.skip(line.Level)
}

// eventSpouseAge handles the HUSB and WIFE blocks of a family event.
func eventSpouseAge(p *parser, line *gedcom.Line, st *state) error {
	if st.family == nil {
		return unsupported(p, line, st)
	}
	sub := st.sub()
	sub.ageType = model.AttrFatherAge
	if line.Token == gedcom.TokWIFE {
		sub.ageType = model.AttrMotherAge
	}
	return p.parseLevel(sub, ctxSpouseAge)
}

func spouseAge(p *parser, line *gedcom.Line, st *state) error {
	if line.Text() != "" {
		st.eventRef.Attributes = append(st.eventRef.Attributes, model.Attribute{Type: st.ageType, Value: line.Text()})
	}
	return p.skip(line.Level)
}

// eventFamily handles the FAMC of an individual event: the family a
// person was born into or adopted by.
func eventFamily(p *parser, line *gedcom.Line, st *state) error {
	xref, ok := line.Pointer()
	if st.person == nil || !ok {
		return unsupported(p, line, st)
	}
	h, local, err := p.handle(model.KindFamily, xref)
	if err != nil {
		return err
	}
	adoption := st.adoption
	adoption.family, adoption.local = h, local
	sub := st.sub()
	sub.adoption = adoption
	return p.parseLevel(sub, ctxEventFamc)
}

// eventFamilyAdopter handles ADOP below the FAMC of an adoption.
func eventFamilyAdopter(p *parser, line *gedcom.Line, st *state) error {
	if line.Event.Type != model.EventAdopted || st.event.Type != model.EventAdopted {
		return unsupported(p, line, st)
	}
	st.adoption.by = strings.ToUpper(line.Text())
	return p.skip(line.Level)
}
