package model

// NoteType classifies a note.
type NoteType string

const (
	NoteGeneral    NoteType = "General"
	NoteSourceText NoteType = "Source text"
	NoteCitation   NoteType = "Citation"
	NoteTranscript NoteType = "Transcript"
	NoteImport     NoteType = "Import"
)

// Note is free text attached to other objects (NOTE).
type Note struct {
	Base
	Text string   `json:"text"`
	Type NoteType `json:"type,omitempty"`
}

func (n *Note) Kind() Kind { return KindNote }

func (n *Note) References() []Handle { return compact(n.baseRefs()) }
