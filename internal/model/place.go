package model

// Place is a location referenced by events (PLAC).
type Place struct {
	Base
	Title     string   `json:"title"`
	Name      string   `json:"name,omitempty"`
	Location  Location `json:"location"`
	Latitude  string   `json:"latitude,omitempty"`
	Longitude string   `json:"longitude,omitempty"`
	URLs      []URL    `json:"urls,omitempty"`
}

func (p *Place) Kind() Kind { return KindPlace }

func (p *Place) References() []Handle { return compact(p.baseRefs()) }
