package model

import "github.com/mvp-joe/kinship/internal/date"

// EventType names an event. Values outside the constants are custom types.
type EventType string

const (
	EventUnknown            EventType = "Unknown"
	EventBirth              EventType = "Birth"
	EventDeath              EventType = "Death"
	EventAdopted            EventType = "Adopted"
	EventAdultChristening   EventType = "Adult Christening"
	EventBaptism            EventType = "Baptism"
	EventBarMitzvah         EventType = "Bar Mitzvah"
	EventBasMitzvah         EventType = "Bas Mitzvah"
	EventBlessing           EventType = "Blessing"
	EventBurial             EventType = "Burial"
	EventCauseOfDeath       EventType = "Cause Of Death"
	EventCensus             EventType = "Census"
	EventChristening        EventType = "Christening"
	EventConfirmation       EventType = "Confirmation"
	EventCremation          EventType = "Cremation"
	EventDegree             EventType = "Degree"
	EventEducation          EventType = "Education"
	EventElected            EventType = "Elected"
	EventEmigration         EventType = "Emigration"
	EventFirstCommunion     EventType = "First Communion"
	EventImmigration        EventType = "Immigration"
	EventGraduation         EventType = "Graduation"
	EventMedicalInformation EventType = "Medical Information"
	EventMilitaryService    EventType = "Military Service"
	EventNaturalization     EventType = "Naturalization"
	EventNobilityTitle      EventType = "Nobility Title"
	EventNumberOfMarriages  EventType = "Number of Marriages"
	EventOccupation         EventType = "Occupation"
	EventOrdination         EventType = "Ordination"
	EventProbate            EventType = "Probate"
	EventProperty           EventType = "Property"
	EventReligion           EventType = "Religion"
	EventResidence          EventType = "Residence"
	EventRetirement         EventType = "Retirement"
	EventWill               EventType = "Will"
	EventMarriage           EventType = "Marriage"
	EventMarriageSettlement EventType = "Marriage Settlement"
	EventMarriageLicense    EventType = "Marriage License"
	EventMarriageContract   EventType = "Marriage Contract"
	EventMarriageBanns      EventType = "Marriage Banns"
	EventEngagement         EventType = "Engagement"
	EventDivorce            EventType = "Divorce"
	EventDivorceFiling      EventType = "Divorce Filing"
	EventAnnulment          EventType = "Annulment"
	EventMarriageAlternate  EventType = "Alternate Marriage"
)

// Event is something that happened at a time and place.
type Event struct {
	Base
	Type        EventType   `json:"type"`
	Date        date.Date   `json:"date,omitempty"`
	Place       Handle      `json:"place,omitempty"`
	Description string      `json:"description,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

func (e *Event) Kind() Kind { return KindEvent }

func (e *Event) References() []Handle {
	refs := e.baseRefs()
	refs = append(refs, e.Place)
	refs = append(refs, attributeRefs(e.Attributes)...)
	return compact(refs)
}
