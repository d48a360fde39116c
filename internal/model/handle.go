package model

import (
	"strings"

	"github.com/google/uuid"
)

// Handle is the opaque, stable identifier of a primary object.
type Handle string

// NewHandle allocates a fresh handle.
func NewHandle() Handle {
	return Handle(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// IsZero reports whether the handle is unset.
func (h Handle) IsZero() bool {
	return h == ""
}

func (h Handle) String() string {
	return string(h)
}

func containsHandle(list []Handle, h Handle) bool {
	for _, x := range list {
		if x == h {
			return true
		}
	}
	return false
}

func addHandle(list *[]Handle, h Handle) bool {
	if h.IsZero() || containsHandle(*list, h) {
		return false
	}
	*list = append(*list, h)
	return true
}

func removeHandle(list *[]Handle, h Handle) bool {
	for i, x := range *list {
		if x == h {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
