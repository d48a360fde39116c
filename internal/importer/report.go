package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/lineage"
	"github.com/mvp-joe/kinship/internal/model"
)

// Header holds the facts of the HEAD record.
type Header struct {
	SourceSystem  string
	SourceVersion string
	SourceName    string
	SourceCorp    string
	Destination   string
	Date          string
	Submitter     string
	File          string
	Copyright     string
	GedcomVersion string
	GedcomForm    string
	Charset       string
	Language      string
	PlaceForm     string
	Note          string
}

// Message is one recoverable problem found while parsing.
type Message struct {
	Line   int
	Record string // "INDI (person) I0001", empty for the header
	Text   string
}

func (m Message) String() string {
	if m.Line > 0 {
		return fmt.Sprintf("Line %d: %s", m.Line, m.Text)
	}
	return m.Text
}

// Report is the outcome of an import.
type Report struct {
	Source   string
	Charset  charset.Charset
	Header   Header
	Lines    int // logical lines parsed
	Invalid  int // malformed lines skipped
	Duration time.Duration

	Created map[model.Kind]int // level-0 records imported, by kind
	Total   map[model.Kind]int // objects in the store after the import

	Messages []Message

	// MissingReferences counts ids that were referenced but never defined;
	// one placeholder record is synthesised for each.
	MissingReferences int
	Placeholders      []string // local ids of the synthesised records
	RepairedLinks     int
	Repairs           []string

	Lineage *lineage.Result
}

func newReport(source string) *Report {
	return &Report{
		Source:  source,
		Created: make(map[model.Kind]int),
		Total:   make(map[model.Kind]int),
	}
}

// Warnings returns the number of recoverable problems.
func (r *Report) Warnings() int {
	return len(r.Messages)
}

// WriteText writes a human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Import of %s\n", r.Source))
	sb.WriteString(fmt.Sprintf("  Encoding: %s\n", r.Charset))
	if r.Header.SourceSystem != "" {
		sb.WriteString(fmt.Sprintf("  Created by: %s %s\n", r.Header.SourceSystem, r.Header.SourceVersion))
	}
	if r.Header.GedcomVersion != "" {
		sb.WriteString(fmt.Sprintf("  GEDCOM version: %s\n", r.Header.GedcomVersion))
	}
	sb.WriteString(fmt.Sprintf("  Lines: %d (%d malformed)\n", r.Lines, r.Invalid))
	sb.WriteString(fmt.Sprintf("  Time: %s\n\n", r.Duration.Round(time.Millisecond)))

	sb.WriteString("Records:\n")
	for _, kind := range model.Kinds {
		if r.Created[kind] == 0 && r.Total[kind] == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-11s %6d imported, %6d in database\n", kind, r.Created[kind], r.Total[kind]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Warnings: %d\n", r.Warnings()))
	sb.WriteString(fmt.Sprintf("Missing references: %d\n", r.MissingReferences))
	sb.WriteString(fmt.Sprintf("Repaired links: %d\n", r.RepairedLinks))

	if l := r.Lineage; l != nil {
		sb.WriteString(fmt.Sprintf("Pedigree: %d people, %d generations, %d trees\n", l.People, l.Generations, l.Trees))
		for _, c := range l.Cycles {
			sb.WriteString(fmt.Sprintf("  %s\n", c))
		}
	}

	if len(r.Repairs) > 0 {
		sb.WriteString("\nRepairs:\n")
		for _, msg := range r.Repairs {
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
	}

	if len(r.Messages) > 0 {
		sb.WriteString("\nMessages:\n")
		record := "\x00"
		for _, m := range r.Messages {
			if m.Record != record {
				record = m.Record
				if record == "" {
					sb.WriteString("  Header:\n")
				} else {
					sb.WriteString(fmt.Sprintf("  %s:\n", record))
				}
			}
			sb.WriteString(fmt.Sprintf("    %s\n", m))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
