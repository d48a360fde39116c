package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Object is implemented by every primary aggregate.
type Object interface {
	Kind() Kind
	GetHandle() Handle
	GetID() string
	// References returns the handles of every object this one points to.
	References() []Handle
}

// Base carries the fields shared by all primary objects.
type Base struct {
	Handle    Handle     `json:"handle"`
	ID        string     `json:"id"`
	Changed   int64      `json:"changed,omitempty"` // unix seconds
	Private   bool       `json:"private,omitempty"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Media     []MediaRef `json:"media,omitempty"`
}

func (b *Base) GetHandle() Handle { return b.Handle }
func (b *Base) GetID() string     { return b.ID }

// AddNote appends a note handle unless it is already present.
func (b *Base) AddNote(h Handle) bool {
	return addHandle(&b.Notes, h)
}

// HasNote reports whether the note is attached.
func (b *Base) HasNote(h Handle) bool {
	return containsHandle(b.Notes, h)
}

// ChangedAt returns the change time in unix seconds.
func (b *Base) ChangedAt() int64 { return b.Changed }

// Touch sets the change time.
func (b *Base) Touch(t time.Time) {
	b.Changed = t.Unix()
}

func (b *Base) baseRefs() []Handle {
	refs := append([]Handle(nil), b.Notes...)
	refs = append(refs, citationRefs(b.Citations)...)
	refs = append(refs, mediaRefs(b.Media)...)
	return refs
}

// New returns an empty object of the given kind with its handle and id set.
func New(kind Kind, handle Handle, id string) (Object, error) {
	base := Base{Handle: handle, ID: id}
	switch kind {
	case KindPerson:
		p := NewPerson()
		p.Base = base
		return p, nil
	case KindFamily:
		return &Family{Base: base}, nil
	case KindEvent:
		return &Event{Base: base}, nil
	case KindPlace:
		return &Place{Base: base}, nil
	case KindSource:
		return &Source{Base: base}, nil
	case KindRepository:
		return &Repository{Base: base}, nil
	case KindNote:
		return &Note{Base: base, Type: NoteGeneral}, nil
	case KindMedia:
		return &MediaObject{Base: base}, nil
	default:
		return nil, fmt.Errorf("unknown object kind %q", kind)
	}
}

// Decode unmarshals serialized object data of the given kind.
func Decode(kind Kind, data []byte) (Object, error) {
	obj, err := New(kind, "", "")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return obj, nil
}

// Encode serializes an object.
func Encode(obj Object) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s: %w", obj.Kind(), obj.GetHandle(), err)
	}
	return data, nil
}

// Clone returns a deep copy of obj.
func Clone(obj Object) (Object, error) {
	data, err := Encode(obj)
	if err != nil {
		return nil, err
	}
	return Decode(obj.Kind(), data)
}

func compact(refs []Handle) []Handle {
	out := refs[:0]
	seen := make(map[Handle]bool, len(refs))
	for _, h := range refs {
		if h.IsZero() || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
