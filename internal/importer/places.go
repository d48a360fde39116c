package importer

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/place"
	"github.com/mvp-joe/kinship/internal/storage"
)

// placeRegistry finds places by title so that events at the same place
// share one Place. Two places are the same when their titles match and
// their locations are equal field by field.
type placeRegistry struct {
	byTitle map[string][]placeEntry
}

type placeEntry struct {
	handle   model.Handle
	location model.Location
}

func newPlaceRegistry() *placeRegistry {
	return &placeRegistry{byTitle: make(map[string][]placeEntry)}
}

func placeKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// load registers the places already in the store.
func (r *placeRegistry) load(tx storage.Tx) error {
	handles, err := tx.Handles(model.KindPlace)
	if err != nil {
		return err
	}
	for _, h := range handles {
		obj, err := tx.Get(model.KindPlace, h)
		if err != nil {
			return err
		}
		pl := obj.(*model.Place)
		r.add(pl.Title, pl.Location, pl.Handle)
	}
	return nil
}

func (r *placeRegistry) find(title string, loc model.Location) (model.Handle, bool) {
	for _, e := range r.byTitle[placeKey(title)] {
		if e.location == loc {
			return e.handle, true
		}
	}
	return "", false
}

func (r *placeRegistry) add(title string, loc model.Location, h model.Handle) {
	key := placeKey(title)
	r.byTitle[key] = append(r.byTitle[key], placeEntry{handle: h, location: loc})
}

// update records a new location for a registered place.
func (r *placeRegistry) update(title string, loc model.Location, h model.Handle) {
	key := placeKey(title)
	for i, e := range r.byTitle[key] {
		if e.handle == h {
			r.byTitle[key][i].location = loc
			return
		}
	}
	r.add(title, loc, h)
}

// placeData is a place as described by a PLAC or ADDR structure.
type placeData struct {
	title     string
	location  model.Location
	latitude  string
	longitude string
	notes     []model.Handle
	citations []model.Citation
	media     []model.MediaRef
}

// readPlace reads a PLAC line and its subordinate lines. The value is split
// with the PLAC.FORM in effect; a value whose parts do not match the form
// keeps its title but gets no structured location.
func (p *parser) readPlace(line *gedcom.Line, st *state) (placeData, error) {
	res := &placeResult{}
	sub := st.child()
	sub.place = res
	sub.notes = &res.notes
	sub.citations = &res.citations
	sub.mediaRefs = &res.media
	if err := p.parseLevel(sub, ctxPlace); err != nil {
		return placeData{}, err
	}

	pd := placeData{
		title:     line.Text(),
		latitude:  res.latitude,
		longitude: res.longitude,
		notes:     res.notes,
		citations: res.citations,
		media:     res.media,
	}
	form := p.placeForm
	if res.form != "" {
		form = place.NewParser(res.form)
	}
	if form.Len() > 0 && pd.title != "" && !form.Load(&pd.location, pd.title) {
		p.log.Debug("Place does not match the place form", "place", pd.title, "form", form.Form())
	}
	return pd, nil
}

// readAddress reads an ADDR structure into a location. Address notes
// and citations attach where st says.
func (p *parser) readAddress(line *gedcom.Line, st *state, addr *model.Address) (model.Location, error) {
	var loc model.Location
	sub := st.sub()
	sub.location = &loc
	sub.address = addr
	if addr != nil {
		sub.notes = &addr.Notes
		sub.citations = &addr.Citations
		sub.mediaRefs = nil
	}
	if err := p.parseLevel(sub, ctxAddress); err != nil {
		return model.Location{}, err
	}
	completeStreet(&loc, line.Data)
	return loc, nil
}

// completeStreet uses the free-form ADDR text for the street when no
// ADR1 line gave one.
func completeStreet(loc *model.Location, text string) {
	if loc.Street != "" {
		return
	}
	var parts []string
	for _, s := range strings.Split(text, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return
	}
	phone := loc.Phone
	loc.Phone = ""
	structured := !loc.IsEmpty()
	loc.Phone = phone
	if structured {
		loc.Street = parts[0]
		return
	}
	loc.Street = strings.Join(parts, ", ")
}

// addressTitle builds a place title for a location read from ADDR.
func addressTitle(loc model.Location) string {
	var parts []string
	for _, s := range []string{loc.Street, loc.Locality, loc.City, loc.County, loc.State, loc.PostalCode, loc.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// resolvePlace returns the place for pd, creating it when no registered
// place has the same title and location.
func (p *parser) resolvePlace(pd placeData) (model.Handle, error) {
	if pd.title == "" && pd.location.IsEmpty() {
		return "", nil
	}

	var pl *model.Place
	created := false
	if h, ok := p.places.find(pd.title, pd.location); ok {
		obj, err := p.tx.Get(model.KindPlace, h)
		if err != nil {
			return "", err
		}
		pl = obj.(*model.Place)
	} else {
		obj, err := p.fresh(model.KindPlace)
		if err != nil {
			return "", err
		}
		pl = obj.(*model.Place)
		pl.Title = pd.title
		pl.Name = strings.TrimSpace(strings.Split(pd.title, ",")[0])
		pl.Location = pd.location
		p.places.add(pd.title, pd.location, pl.Handle)
		created = true
	}

	if mergePlaceData(pl, pd) || created {
		if err := p.put(pl); err != nil {
			return "", err
		}
	}
	return pl.Handle, nil
}

// mergePlace fills the empty fields of an existing place from pd.
func (p *parser) mergePlace(h model.Handle, pd placeData) error {
	obj, err := p.tx.Get(model.KindPlace, h)
	if err != nil {
		return err
	}
	pl := obj.(*model.Place)
	changed := mergePlaceData(pl, pd)
	if pl.Location.Merge(pd.location) {
		p.places.update(pl.Title, pl.Location, pl.Handle)
		changed = true
	}
	if pl.Title == "" && pd.title != "" {
		pl.Title = pd.title
		changed = true
	}
	if !changed {
		return nil
	}
	return p.put(pl)
}

func mergePlaceData(pl *model.Place, pd placeData) bool {
	changed := false
	if pl.Latitude == "" && pd.latitude != "" {
		pl.Latitude = pd.latitude
		changed = true
	}
	if pl.Longitude == "" && pd.longitude != "" {
		pl.Longitude = pd.longitude
		changed = true
	}
	for _, n := range pd.notes {
		if pl.AddNote(n) {
			changed = true
		}
	}
	if len(pd.citations) > 0 {
		pl.Citations = append(pl.Citations, pd.citations...)
		changed = true
	}
	if len(pd.media) > 0 {
		pl.Media = append(pl.Media, pd.media...)
		changed = true
	}
	return changed
}

func placeForm(p *parser, line *gedcom.Line, st *state) error {
	st.place.form = line.Text()
	return p.skip(line.Level)
}

func placeMap(p *parser, line *gedcom.Line, st *state) error {
	sub := st.sub()
	sub.place = st.place
	return p.parseLevel(sub, ctxMap)
}

func placeCoordinate(p *parser, line *gedcom.Line, st *state) error {
	if line.Token == gedcom.TokLATI {
		st.place.latitude = line.Text()
	} else {
		st.place.longitude = line.Text()
	}
	return p.skip(line.Level)
}

func addressLine(p *parser, line *gedcom.Line, st *state) error {
	loc, text := st.location, line.Text()
	switch line.Token {
	case gedcom.TokADR1:
		loc.Street = text
	case gedcom.TokADR2:
		loc.Locality = text
	case gedcom.TokADR3:
		if loc.Locality != "" && text != "" {
			loc.Locality += ", " + text
		} else if text != "" {
			loc.Locality = text
		}
	case gedcom.TokCITY:
		loc.City = text
	case gedcom.TokSTAE:
		loc.State = text
	case gedcom.TokPOST:
		loc.PostalCode = text
	case gedcom.TokCTRY:
		loc.Country = text
	case gedcom.TokPHON:
		loc.Phone = text
	}
	return p.skip(line.Level)
}

func addressDate(p *parser, line *gedcom.Line, st *state) error {
	if st.address == nil {
		return unsupported(p, line, st)
	}
	st.address.Date = *line.Date
	return p.skip(line.Level)
}
