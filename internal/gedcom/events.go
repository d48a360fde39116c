package gedcom

import "github.com/mvp-joe/kinship/internal/model"

// eventTags maps standard, long-form and vendor event tags to event types.
// Tags in this table reach the parser as TokGEvent.
var eventTags = map[string]model.EventType{
	"ADOP": model.EventAdopted,
	"ANUL": model.EventAnnulment,
	"BAPM": model.EventBaptism,
	"BARM": model.EventBarMitzvah,
	"BASM": model.EventBasMitzvah,
	"BIRT": model.EventBirth,
	"BLES": model.EventBlessing,
	"BURI": model.EventBurial,
	"CENS": model.EventCensus,
	"CHR":  model.EventChristening,
	"CHRA": model.EventAdultChristening,
	"CONF": model.EventConfirmation,
	"CREM": model.EventCremation,
	"DEAT": model.EventDeath,
	"DIV":  model.EventDivorce,
	"DIVF": model.EventDivorceFiling,
	"EDUC": model.EventEducation,
	"EMIG": model.EventEmigration,
	"ENGA": model.EventEngagement,
	"FCOM": model.EventFirstCommunion,
	"GRAD": model.EventGraduation,
	"IMMI": model.EventImmigration,
	"MARB": model.EventMarriageBanns,
	"MARC": model.EventMarriageContract,
	"MARL": model.EventMarriageLicense,
	"MARR": model.EventMarriage,
	"MARS": model.EventMarriageSettlement,
	"NATU": model.EventNaturalization,
	"NMR":  model.EventNumberOfMarriages,
	"OCCU": model.EventOccupation,
	"ORDN": model.EventOrdination,
	"PROB": model.EventProbate,
	"PROP": model.EventProperty,
	"RELI": model.EventReligion,
	"RESI": model.EventResidence,
	"RETI": model.EventRetirement,
	"WILL": model.EventWill,

	"ADOPTION":       model.EventAdopted,
	"ANNULMENT":      model.EventAnnulment,
	"BAPTISM":        model.EventBaptism,
	"BIRTH":          model.EventBirth,
	"BURIAL":         model.EventBurial,
	"CENSUS":         model.EventCensus,
	"CHRISTENING":    model.EventChristening,
	"CONFIRMATION":   model.EventConfirmation,
	"CREMATION":      model.EventCremation,
	"DEATH":          model.EventDeath,
	"DIVORCE":        model.EventDivorce,
	"EDUCATION":      model.EventEducation,
	"EMIGRATION":     model.EventEmigration,
	"ENGAGEMENT":     model.EventEngagement,
	"GRADUATION":     model.EventGraduation,
	"IMMIGRATION":    model.EventImmigration,
	"MARRIAGE":       model.EventMarriage,
	"NATURALIZATION": model.EventNaturalization,
	"OCCUPATION":     model.EventOccupation,
	"ORDINATION":     model.EventOrdination,
	"PROBATE":        model.EventProbate,
	"PROPERTY":       model.EventProperty,
	"RELIGION":       model.EventReligion,
	"RESIDENCE":      model.EventResidence,
	"RETIREMENT":     model.EventRetirement,

	// Vendor extensions (Family Tree Maker, Legacy, RootsMagic, PAF).
	"_MILT":  model.EventMilitaryService,
	"_MILTS": model.EventMilitaryService,
	"_DEG":   model.EventDegree,
	"_ELEC":  model.EventElected,
	"_MDCL":  model.EventMedicalInformation,
	"_MARI":  model.EventMarriageAlternate,
	"_SEPR":  model.EventType("Separation"),
	"_FUN":   model.EventType("Funeral"),
	"_CIRC":  model.EventType("Circumcision"),
	"_EXCM":  model.EventType("Excommunication"),
	"_DNA":   model.EventType("DNA"),
}

// attributeTags maps attribute tags to attribute types. Tags in this table
// reach the parser as TokAttr.
var attributeTags = map[string]model.AttributeType{
	"CAST": model.AttrCaste,
	"DSCR": model.AttrDescription,
	"IDNO": model.AttrIDNumber,
	"NATI": model.AttrNationality,
	"NCHI": model.AttrNumChildren,
	"SSN":  model.AttrSSN,

	"CASTE":           model.AttrCaste,
	"PHY_DESCRIPTION": model.AttrDescription,
	"IDENT_NUMBER":    model.AttrIDNumber,
	"NATIONALITY":     model.AttrNationality,
	"CHILDREN_COUNT":  model.AttrNumChildren,
	"SOC_SEC_NUMBER":  model.AttrSSN,

	"_HEIG": model.AttributeType("Height"),
	"_WEIG": model.AttributeType("Weight"),
	"_EYES": model.AttributeType("Eye Color"),
	"_HAIR": model.AttributeType("Hair Color"),
}

// EventType returns the event type for a tag, if the tag names an event.
func EventType(tag string) (model.EventType, bool) {
	t, ok := eventTags[tag]
	return t, ok
}

// AttributeType returns the attribute type for a tag, if the tag names an
// attribute.
func AttributeType(tag string) (model.AttributeType, bool) {
	t, ok := attributeTags[tag]
	return t, ok
}
