package model

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/date"
)

// MediaObject is an external file such as a photo or scan (OBJE).
type MediaObject struct {
	Base
	Path        string      `json:"path"`
	MimeType    string      `json:"mime_type,omitempty"`
	Description string      `json:"description,omitempty"`
	Date        date.Date   `json:"date,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

func (m *MediaObject) Kind() Kind { return KindMedia }

func (m *MediaObject) References() []Handle {
	refs := m.baseRefs()
	refs = append(refs, attributeRefs(m.Attributes)...)
	return compact(refs)
}

var mimeTypes = map[string]string{
	"jpg": "image/jpeg", "jpeg": "image/jpeg", "gif": "image/gif",
	"png": "image/png", "bmp": "image/bmp", "tif": "image/tiff", "tiff": "image/tiff",
	"pdf": "application/pdf", "wav": "audio/x-wav", "mp3": "audio/mpeg",
	"avi": "video/x-msvideo", "mpg": "video/mpeg", "mp4": "video/mp4",
	"htm": "text/html", "html": "text/html", "txt": "text/plain", "ole": "application/ole",
}

// MimeFromForm maps a GEDCOM FORM value such as "jpeg" to a MIME type.
func MimeFromForm(form string) string {
	if m, ok := mimeTypes[strings.ToLower(form)]; ok {
		return m
	}
	if form == "" {
		return ""
	}
	return "unknown"
}
