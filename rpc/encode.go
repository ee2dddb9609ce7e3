package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"

	"github.com/petal-labs/jutge/core"
)

// dataField is the form field carrying the JSON envelope.
const dataField = "data"

// envelope is the JSON content of the data field.
type envelope struct {
	Func  string     `json:"func"`
	Input any        `json:"input"`
	Meta  *core.Meta `json:"meta,omitempty"`
}

// FileField returns the form field name of the i-th attachment.
func FileField(i int) string {
	return fmt.Sprintf("file_%d", i)
}

// newBoundary returns a random multipart boundary.
func newBoundary() string {
	return "jutge-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// EncodeRequest builds the multipart body of a call and its content type.
// The session is not consulted: the token, if any, comes from call.Meta.
func EncodeRequest(call *core.Call) ([]byte, string, error) {
	if call.Func == "" {
		return nil, "", core.ErrFuncRequired
	}

	meta := call.Meta
	if meta != nil && meta.Token == "" {
		meta = nil
	}

	data, err := json.Marshal(envelope{Func: call.Func, Input: call.Input, Meta: meta})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal input: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(newBoundary()); err != nil {
		return nil, "", fmt.Errorf("failed to set boundary: %w", err)
	}

	if err := w.WriteField(dataField, string(data)); err != nil {
		return nil, "", fmt.Errorf("failed to write data field: %w", err)
	}

	for i, file := range call.Files {
		name := FileField(i)
		h := make(textproto.MIMEHeader)
		h.Set(headerDisposition, fmt.Sprintf(`form-data; name="%s"; filename="%s"`, name, name))

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := part.Write(file); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
