package rpc

import (
	"mime"

	"github.com/petal-labs/jutge/core"
)

const (
	headerDisposition = "Content-Disposition"
	headerContentType = "Content-Type"
)

// IsFile reports whether the part is a download: its disposition names a file.
func (p Part) IsFile() bool {
	_, ok := p.Filename()
	return ok
}

// Filename returns the filename parameter of the disposition.
func (p Part) Filename() (string, bool) {
	return p.dispositionParam("filename")
}

// FieldName returns the name parameter of the disposition.
func (p Part) FieldName() (string, bool) {
	return p.dispositionParam("name")
}

// ContentType returns the Content-Type header of the part, if any.
func (p Part) ContentType() string {
	return p.Header[headerContentType]
}

// Download converts a file part into a core.Download.
func (p Part) Download() core.Download {
	name, _ := p.Filename()
	field, _ := p.FieldName()
	return core.Download{
		Data:  p.Content,
		Name:  name,
		Type:  p.ContentType(),
		Field: field,
	}
}

func (p Part) dispositionParam(key string) (string, bool) {
	disposition, ok := p.Header[headerDisposition]
	if !ok {
		return "", false
	}
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		v, ok := params[key]
		return v, ok
	}
	return paramValue(disposition, key)
}
