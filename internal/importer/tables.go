package importer

import "github.com/mvp-joe/kinship/internal/gedcom"

// parseContext identifies a structural position in a GEDCOM file. Each
// one has a fixed table of line handlers.
type parseContext int

const (
	ctxTop parseContext = iota
	ctxHead
	ctxHeadSource
	ctxHeadDate
	ctxGedc
	ctxHeadPlace
	ctxSubm
	ctxPerson
	ctxName
	ctxFamc
	ctxFams
	ctxAsso
	ctxFamily
	ctxChild
	ctxEvent
	ctxEventFamc
	ctxSpouseAge
	ctxPlace
	ctxMap
	ctxAddress
	ctxCitation
	ctxCitationData
	ctxCitationEvent
	ctxSource
	ctxSourceData
	ctxRepoRef
	ctxCallNumber
	ctxRepo
	ctxMedia
	ctxMediaFile
	ctxMediaRef
	ctxNoteRecord
	ctxNote
	ctxChange
	ctxLds
	ctxAttribute
	ctxEmpty
	numContexts
)

var contextNames = [numContexts]string{
	"top", "head", "head-source", "head-date", "gedc", "head-plac", "subm",
	"indi", "name", "famc", "fams", "asso", "fam", "chil", "event",
	"event-famc", "spouse-age", "plac", "map", "addr", "citation",
	"citation-data", "citation-even", "sour", "sour-data", "repo-ref",
	"caln", "repo", "obje", "obje-file", "obje-ref", "note-record", "note",
	"chan", "lds", "attr", "empty",
}

func (c parseContext) String() string {
	if c < 0 || c >= numContexts {
		return "invalid"
	}
	return contextNames[c]
}

type handlerTable map[gedcom.Token]lineHandler

// registry holds the handler table of every context. It is filled once in
// init and only read afterwards.
var registry [numContexts]handlerTable

func init() {
	// Lines that attach to whatever object the level describes.
	attach := handlerTable{
		gedcom.TokNOTE:  inlineNote,
		gedcom.TokRNote: noteRef,
		gedcom.TokSOUR:  citation,
		gedcom.TokOBJE:  mediaRef,
	}
	with := func(tables ...handlerTable) handlerTable {
		out := handlerTable{}
		for _, t := range tables {
			for tok, fn := range t {
				out[tok] = fn
			}
		}
		return out
	}
	notesOnly := handlerTable{
		gedcom.TokNOTE:  inlineNote,
		gedcom.TokRNote: noteRef,
	}
	recordIDs := handlerTable{
		gedcom.TokREFN: idAttribute,
		gedcom.TokRIN:  idAttribute,
		gedcom.TokUID:  idAttribute,
		gedcom.TokAFN:  idAttribute,
		gedcom.TokRFN:  idAttribute,
		gedcom.TokCHAN: change,
		gedcom.TokRESN: restriction,
	}

	registry[ctxTop] = handlerTable{
		gedcom.TokHEAD: duplicateHeader,
		gedcom.TokINDI: personRecord,
		gedcom.TokFAM:  familyRecord,
		gedcom.TokSOUR: sourceRecord,
		gedcom.TokREPO: repoRecord,
		gedcom.TokOBJE: mediaRecord,
		gedcom.TokNOTE: noteRecord,
		gedcom.TokSUBM: submitterRecord,
		gedcom.TokSUBN: unsupported,
	}

	registry[ctxHead] = handlerTable{
		gedcom.TokSOUR: headSource,
		gedcom.TokDEST: headDestination,
		gedcom.TokDATE: headDate,
		gedcom.TokSUBM: headSubmitter,
		gedcom.TokSUBN: ignore,
		gedcom.TokFILE: headFile,
		gedcom.TokCOPR: headCopyright,
		gedcom.TokGEDC: headGedc,
		gedcom.TokCHAR: headCharset,
		gedcom.TokLANG: headLanguage,
		gedcom.TokPLAC: headPlace,
		gedcom.TokNOTE: headNote,
	}
	registry[ctxHeadSource] = handlerTable{
		gedcom.TokVERS: headSourceVersion,
		gedcom.TokNAME: headSourceName,
		gedcom.TokCORP: headCorp,
		gedcom.TokDATA: ignore,
	}
	registry[ctxHeadDate] = handlerTable{
		gedcom.TokTIME: headTime,
	}
	registry[ctxGedc] = handlerTable{
		gedcom.TokVERS: headGedcVersion,
		gedcom.TokFORM: headGedcForm,
	}
	registry[ctxHeadPlace] = handlerTable{
		gedcom.TokFORM: headPlaceForm,
	}
	registry[ctxSubm] = handlerTable{
		gedcom.TokNAME:  submitterName,
		gedcom.TokADDR:  ignore,
		gedcom.TokPHON:  ignore,
		gedcom.TokEMAIL: ignore,
		gedcom.TokWWW:   ignore,
		gedcom.TokLANG:  ignore,
		gedcom.TokRIN:   ignore,
		gedcom.TokCHAN:  ignore,
		gedcom.TokOBJE:  ignore,
		gedcom.TokNOTE:  ignore,
		gedcom.TokRNote: ignore,
	}

	registry[ctxPerson] = with(attach, recordIDs, handlerTable{
		gedcom.TokNAME:   personName,
		gedcom.TokALIA:   personAlias,
		gedcom.TokAKA:    personAlternateName,
		gedcom.TokSEX:    personSex,
		gedcom.TokGEvent: personEvent,
		gedcom.TokEVEN:   personEvent,
		gedcom.TokTITL:   personEvent,
		gedcom.TokAttr:   attribute,
		gedcom.TokFACT:   attribute,
		gedcom.TokFAMC:   personFamc,
		gedcom.TokFAMS:   personFams,
		gedcom.TokASSO:   personAssociation,
		gedcom.TokADDR:   personAddress,
		gedcom.TokPHON:   personPhone,
		gedcom.TokEMAIL:  url,
		gedcom.TokWWW:    url,
		gedcom.TokBAPL:   ordinance,
		gedcom.TokCONL:   ordinance,
		gedcom.TokENDL:   ordinance,
		gedcom.TokSLGC:   ordinance,
		gedcom.TokANCI:   ignore,
		gedcom.TokDESI:   ignore,
		gedcom.TokSUBM:   ignore,
	})
	registry[ctxName] = with(attach, handlerTable{
		gedcom.TokGIVN:        nameGiven,
		gedcom.TokSURN:        nameSurname,
		gedcom.TokSPFX:        nameSurnamePrefix,
		gedcom.TokNPFX:        nameTitle,
		gedcom.TokNSFX:        nameSuffix,
		gedcom.TokNICK:        nameNick,
		gedcom.TokTYPE:        nameType,
		gedcom.TokDATE:        nameDate,
		gedcom.TokMarriedName: personAlternateName,
		gedcom.TokAKA:         personAlternateName,
	})
	registry[ctxFamc] = handlerTable{
		gedcom.TokPEDI:    famcPedigree,
		gedcom.TokFRel:    famcRelation,
		gedcom.TokMRel:    famcRelation,
		gedcom.TokPrimary: famcPrimary,
		gedcom.TokSOUR:    citation,
		gedcom.TokNOTE:    inlineNote,
		gedcom.TokRNote:   noteRef,
		gedcom.TokSTAT:    ignore,
	}
	registry[ctxFams] = with(notesOnly)
	registry[ctxAsso] = with(attach, handlerTable{
		gedcom.TokRELA: associationRelation,
		gedcom.TokTYPE: associationType,
	})

	registry[ctxFamily] = with(attach, recordIDs, handlerTable{
		gedcom.TokHUSB:   familySpouse,
		gedcom.TokWIFE:   familySpouse,
		gedcom.TokCHIL:   familyChild,
		gedcom.TokGEvent: familyEvent,
		gedcom.TokEVEN:   familyEvent,
		gedcom.TokAttr:   attribute,
		gedcom.TokFACT:   attribute,
		gedcom.TokSLGS:   ordinance,
		gedcom.TokADDR:   familyAddress,
		gedcom.TokTYPE:   familyType,
		gedcom.TokSUBM:   ignore,
	})
	registry[ctxChild] = with(attach, handlerTable{
		gedcom.TokPEDI: childPedigree,
		gedcom.TokFRel: childRelation,
		gedcom.TokMRel: childRelation,
	})

	registry[ctxEvent] = with(attach, handlerTable{
		gedcom.TokTYPE: eventType,
		gedcom.TokDATE: eventDate,
		gedcom.TokPLAC: eventPlace,
		gedcom.TokADDR: eventAddress,
		gedcom.TokCAUS: eventAttribute,
		gedcom.TokAGNC: eventAttribute,
		gedcom.TokAGE:  eventAge,
		gedcom.TokHUSB: eventSpouseAge,
		gedcom.TokWIFE: eventSpouseAge,
		gedcom.TokFAMC: eventFamily,
		gedcom.TokPHON: eventAttribute,
		gedcom.TokRESN: restriction,
	})
	registry[ctxEventFamc] = handlerTable{
		gedcom.TokGEvent: eventFamilyAdopter,
	}
	registry[ctxSpouseAge] = handlerTable{
		gedcom.TokAGE: spouseAge,
	}
	registry[ctxPlace] = handlerTable{
		gedcom.TokFORM:  placeForm,
		gedcom.TokMAP:   placeMap,
		gedcom.TokNOTE:  inlineNote,
		gedcom.TokRNote: noteRef,
		gedcom.TokSOUR:  citation,
		gedcom.TokOBJE:  mediaRef,
	}
	registry[ctxMap] = handlerTable{
		gedcom.TokLATI: placeCoordinate,
		gedcom.TokLONG: placeCoordinate,
	}
	registry[ctxAddress] = with(attach, handlerTable{
		gedcom.TokADR1:  addressLine,
		gedcom.TokADR2:  addressLine,
		gedcom.TokADR3:  addressLine,
		gedcom.TokCITY:  addressLine,
		gedcom.TokSTAE:  addressLine,
		gedcom.TokPOST:  addressLine,
		gedcom.TokCTRY:  addressLine,
		gedcom.TokPHON:  addressLine,
		gedcom.TokDATE:  addressDate,
		gedcom.TokEMAIL: url,
		gedcom.TokWWW:   url,
	})

	registry[ctxCitation] = with(notesOnly, handlerTable{
		gedcom.TokPAGE: citationPage,
		gedcom.TokQUAY: citationQuality,
		gedcom.TokDATA: citationData,
		gedcom.TokDATE: citationDate,
		gedcom.TokTEXT: citationText,
		gedcom.TokEVEN: citationEvent,
		gedcom.TokOBJE: mediaRef,
		gedcom.TokREFN: ignore,
	})
	registry[ctxCitationData] = with(notesOnly, handlerTable{
		gedcom.TokDATE: citationDate,
		gedcom.TokTEXT: citationText,
	})
	registry[ctxCitationEvent] = handlerTable{
		gedcom.TokROLE: citationRole,
	}

	registry[ctxSource] = with(attach, recordIDs, handlerTable{
		gedcom.TokTITL: sourceField,
		gedcom.TokAUTH: sourceField,
		gedcom.TokPUBL: sourceField,
		gedcom.TokABBR: sourceField,
		gedcom.TokTEXT: sourceText,
		gedcom.TokREPO: sourceRepository,
		gedcom.TokDATA: sourceData,
		gedcom.TokMEDI: sourceMedia,
	})
	registry[ctxSourceData] = with(notesOnly, handlerTable{
		gedcom.TokEVEN: sourceDataEvent,
		gedcom.TokAGNC: sourceDataAgency,
	})
	registry[ctxRepoRef] = with(notesOnly, handlerTable{
		gedcom.TokCALN: repoRefCallNumber,
		gedcom.TokMEDI: repoRefMedia,
		gedcom.TokNAME: inlineRepoName,
		gedcom.TokADDR: inlineRepoAddress,
	})
	registry[ctxCallNumber] = handlerTable{
		gedcom.TokMEDI: repoRefMedia,
	}

	registry[ctxRepo] = with(notesOnly, recordIDs, handlerTable{
		gedcom.TokNAME:  repoName,
		gedcom.TokADDR:  repoAddress,
		gedcom.TokPHON:  repoPhone,
		gedcom.TokEMAIL: url,
		gedcom.TokWWW:   url,
	})

	registry[ctxMedia] = with(notesOnly, recordIDs, handlerTable{
		gedcom.TokFILE: mediaFile,
		gedcom.TokFORM: mediaForm,
		gedcom.TokTITL: mediaTitle,
		gedcom.TokDATE: mediaDate,
		gedcom.TokSOUR: citation,
		gedcom.TokBLOB: unsupported,
	})
	registry[ctxMediaFile] = handlerTable{
		gedcom.TokFORM: mediaForm,
		gedcom.TokTITL: mediaTitle,
	}
	registry[ctxMediaRef] = with(notesOnly, handlerTable{
		gedcom.TokSOUR:    citation,
		gedcom.TokPrimary: ignore,
	})

	registry[ctxNoteRecord] = handlerTable{
		gedcom.TokSOUR: citation,
		gedcom.TokREFN: idAttribute,
		gedcom.TokRIN:  idAttribute,
		gedcom.TokCHAN: change,
	}
	registry[ctxNote] = handlerTable{
		gedcom.TokSOUR: citation,
	}

	registry[ctxChange] = with(notesOnly, handlerTable{
		gedcom.TokDATE: changeDate,
		gedcom.TokTIME: changeTime,
	})
	registry[ctxLds] = with(notesOnly, handlerTable{
		gedcom.TokSOUR: citation,
		gedcom.TokDATE: ordinanceDate,
		gedcom.TokTEMP: ordinanceTemple,
		gedcom.TokPLAC: ordinancePlace,
		gedcom.TokSTAT: ordinanceStatus,
		gedcom.TokFAMC: ordinanceFamily,
	})
	registry[ctxAttribute] = with(notesOnly, handlerTable{
		gedcom.TokSOUR: citation,
		gedcom.TokTYPE: attributeType,
		gedcom.TokDATE: ignore,
	})
	registry[ctxEmpty] = handlerTable{}
}

// dispatch runs the handler of ctx for line. Tags matching an ignore
// pattern are skipped silently; tags without a handler are diagnosed and
// their subtree skipped.
func (p *parser) dispatch(ctx parseContext, line *gedcom.Line, st *state) error {
	if line.Token == gedcom.TokIgnore {
		return p.skip(line.Level)
	}
	if fn, ok := registry[ctx][line.Token]; ok {
		return fn(p, line, st)
	}
	return unsupported(p, line, st)
}
