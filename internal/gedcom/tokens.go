package gedcom

import "strings"

// Token identifies a GEDCOM tag after alias resolution.
type Token int

// Pseudo tokens come first: they are produced by coercion, never by the
// tag table.
const (
	TokUnknown Token = iota
	TokGEvent        // standard or vendor event tag; Line.Event is prebuilt
	TokAttr          // attribute tag; Line.Attr is prebuilt
	TokRNote         // NOTE whose value is a pointer
	TokIgnore        // tag matched an ignore pattern
	TokHEAD
	TokTRLR
	TokINDI
	TokFAM
	TokSOUR
	TokREPO
	TokOBJE
	TokNOTE
	TokSUBM
	TokSUBN
	TokABBR
	TokADDR
	TokADR1
	TokADR2
	TokADR3
	TokAFN
	TokAGE
	TokAGNC
	TokALIA
	TokANCI
	TokASSO
	TokAUTH
	TokBAPL
	TokBLOB
	TokCALN
	TokCAUS
	TokCHAN
	TokCHAR
	TokCHIL
	TokCITY
	TokCONC
	TokCONL
	TokCONT
	TokCOPR
	TokCORP
	TokCTRY
	TokDATA
	TokDATE
	TokDESI
	TokDEST
	TokEMAIL
	TokENDL
	TokEVEN
	TokFACT
	TokFAMC
	TokFAMS
	TokFAX
	TokFILE
	TokFONE
	TokFORM
	TokGEDC
	TokGIVN
	TokHUSB
	TokLANG
	TokLATI
	TokLONG
	TokMAP
	TokMEDI
	TokNAME
	TokNICK
	TokNPFX
	TokNSFX
	TokPAGE
	TokPEDI
	TokPHON
	TokPLAC
	TokPOST
	TokPUBL
	TokQUAY
	TokREFN
	TokRELA
	TokRESN
	TokRFN
	TokRIN
	TokROLE
	TokROMN
	TokSEX
	TokSLGC
	TokSLGS
	TokSPFX
	TokSTAE
	TokSTAT
	TokSURN
	TokTEMP
	TokTEXT
	TokTIME
	TokTITL
	TokTYPE
	TokVERS
	TokWIFE
	TokWWW
	TokUID
	TokPrimary
	TokFRel
	TokMRel
	TokMarriedName
	TokAKA
)

var tokenTags = map[Token]string{
	TokUnknown:     "UNKNOWN",
	TokGEvent:      "GEVENT",
	TokAttr:        "ATTR",
	TokRNote:       "RNOTE",
	TokIgnore:      "IGNORE",
	TokHEAD:        "HEAD",
	TokTRLR:        "TRLR",
	TokINDI:        "INDI",
	TokFAM:         "FAM",
	TokSOUR:        "SOUR",
	TokREPO:        "REPO",
	TokOBJE:        "OBJE",
	TokNOTE:        "NOTE",
	TokSUBM:        "SUBM",
	TokSUBN:        "SUBN",
	TokABBR:        "ABBR",
	TokADDR:        "ADDR",
	TokADR1:        "ADR1",
	TokADR2:        "ADR2",
	TokADR3:        "ADR3",
	TokAFN:         "AFN",
	TokAGE:         "AGE",
	TokAGNC:        "AGNC",
	TokALIA:        "ALIA",
	TokANCI:        "ANCI",
	TokASSO:        "ASSO",
	TokAUTH:        "AUTH",
	TokBAPL:        "BAPL",
	TokBLOB:        "BLOB",
	TokCALN:        "CALN",
	TokCAUS:        "CAUS",
	TokCHAN:        "CHAN",
	TokCHAR:        "CHAR",
	TokCHIL:        "CHIL",
	TokCITY:        "CITY",
	TokCONC:        "CONC",
	TokCONL:        "CONL",
	TokCONT:        "CONT",
	TokCOPR:        "COPR",
	TokCORP:        "CORP",
	TokCTRY:        "CTRY",
	TokDATA:        "DATA",
	TokDATE:        "DATE",
	TokDESI:        "DESI",
	TokDEST:        "DEST",
	TokEMAIL:       "EMAIL",
	TokENDL:        "ENDL",
	TokEVEN:        "EVEN",
	TokFACT:        "FACT",
	TokFAMC:        "FAMC",
	TokFAMS:        "FAMS",
	TokFAX:         "FAX",
	TokFILE:        "FILE",
	TokFONE:        "FONE",
	TokFORM:        "FORM",
	TokGEDC:        "GEDC",
	TokGIVN:        "GIVN",
	TokHUSB:        "HUSB",
	TokLANG:        "LANG",
	TokLATI:        "LATI",
	TokLONG:        "LONG",
	TokMAP:         "MAP",
	TokMEDI:        "MEDI",
	TokNAME:        "NAME",
	TokNICK:        "NICK",
	TokNPFX:        "NPFX",
	TokNSFX:        "NSFX",
	TokPAGE:        "PAGE",
	TokPEDI:        "PEDI",
	TokPHON:        "PHON",
	TokPLAC:        "PLAC",
	TokPOST:        "POST",
	TokPUBL:        "PUBL",
	TokQUAY:        "QUAY",
	TokREFN:        "REFN",
	TokRELA:        "RELA",
	TokRESN:        "RESN",
	TokRFN:         "RFN",
	TokRIN:         "RIN",
	TokROLE:        "ROLE",
	TokROMN:        "ROMN",
	TokSEX:         "SEX",
	TokSLGC:        "SLGC",
	TokSLGS:        "SLGS",
	TokSPFX:        "SPFX",
	TokSTAE:        "STAE",
	TokSTAT:        "STAT",
	TokSURN:        "SURN",
	TokTEMP:        "TEMP",
	TokTEXT:        "TEXT",
	TokTIME:        "TIME",
	TokTITL:        "TITL",
	TokTYPE:        "TYPE",
	TokVERS:        "VERS",
	TokWIFE:        "WIFE",
	TokWWW:         "WWW",
	TokUID:         "_UID",
	TokPrimary:     "_PRIMARY",
	TokFRel:        "_FREL",
	TokMRel:        "_MREL",
	TokMarriedName: "_MARNM",
	TokAKA:         "_AKA",
}

// Long-form and vendor spellings of canonical tags.
var tagAliases = map[string]Token{
	"ABBREVIATION":    TokABBR,
	"ADDRESS":         TokADDR,
	"ADDRESS1":        TokADR1,
	"ADDRESS2":        TokADR2,
	"ADDRESS3":        TokADR3,
	"AGENCY":          TokAGNC,
	"ALIAS":           TokALIA,
	"ANCES_INTEREST":  TokANCI,
	"ASSOCIATES":      TokASSO,
	"AUTHOR":          TokAUTH,
	"CALL_NUMBER":     TokCALN,
	"CAUSE":           TokCAUS,
	"CHANGE":          TokCHAN,
	"CHARACTER":       TokCHAR,
	"CHILD":           TokCHIL,
	"CONCATENATION":   TokCONC,
	"CONTINUED":       TokCONT,
	"COPYRIGHT":       TokCOPR,
	"CORPORATE":       TokCORP,
	"COUNTRY":         TokCTRY,
	"DESCENDANT_INT":  TokDESI,
	"DESTINATION":     TokDEST,
	"_EMAIL":          TokEMAIL,
	"EVENT":           TokEVEN,
	"FAMILY":          TokFAM,
	"FAMILY_CHILD":    TokFAMC,
	"FAMILY_SPOUSE":   TokFAMS,
	"GIVEN_NAME":      TokGIVN,
	"HEADER":          TokHEAD,
	"HUSBAND":         TokHUSB,
	"INDIVIDUAL":      TokINDI,
	"LANGUAGE":        TokLANG,
	"LATITUDE":        TokLATI,
	"LONGITUDE":       TokLONG,
	"MEDIA":           TokMEDI,
	"NAME_PREFIX":     TokNPFX,
	"NAME_SUFFIX":     TokNSFX,
	"NICKNAME":        TokNICK,
	"OBJECT":          TokOBJE,
	"PEDIGREE":        TokPEDI,
	"PHONE":           TokPHON,
	"PLACE":           TokPLAC,
	"POSTAL_CODE":     TokPOST,
	"PUBLICATION":     TokPUBL,
	"QUALITY_OF_DATA": TokQUAY,
	"RELATIONSHIP":    TokRELA,
	"REPOSITORY":      TokREPO,
	"RESTRICTION":     TokRESN,
	"REC_ID_NUMBER":   TokRIN,
	"REC_FILE_NUMBER": TokRFN,
	"SOURCE":          TokSOUR,
	"STATE":           TokSTAE,
	"STATUS":          TokSTAT,
	"SUBMITTER":       TokSUBM,
	"SUBMISSION":      TokSUBN,
	"SURN_PREFIX":     TokSPFX,
	"SURNAME":         TokSURN,
	"TEMPLE":          TokTEMP,
	"TITLE":           TokTITL,
	"TRAILER":         TokTRLR,
	"VERSION":         TokVERS,
	"URL":             TokWWW,
	"_URL":            TokWWW,
	"WEB":             TokWWW,
	"_AKAN":           TokAKA,
	"_PRIM":           TokPrimary,
	"FILENAME":        TokFILE,
	"PHONETIC":        TokFONE,
	"ROMANIZED":       TokROMN,
}

var tagTokens = func() map[string]Token {
	m := make(map[string]Token, len(tokenTags)+len(tagAliases))
	for tok, tag := range tokenTags {
		if tok > TokIgnore {
			m[tag] = tok
		}
	}
	for tag, tok := range tagAliases {
		m[tag] = tok
	}
	return m
}()

// LookupToken resolves a tag, case-insensitively. Unknown tags yield
// TokUnknown.
func LookupToken(tag string) Token {
	if tok, ok := tagTokens[strings.ToUpper(tag)]; ok {
		return tok
	}
	return TokUnknown
}

// String returns the canonical tag.
func (t Token) String() string {
	if s, ok := tokenTags[t]; ok {
		return s
	}
	return "UNKNOWN"
}
