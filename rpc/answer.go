package rpc

import (
	"bytes"
	"encoding/json"
	"strings"
)

// answer is the JSON envelope carried by the single non-file part of a reply.
type answer struct {
	Output      json.RawMessage `json:"output"`
	Error       json.RawMessage `json:"error"`
	OperationID looseString     `json:"operation_id"`
}

// answerError is the error object of a failed call.
type answerError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// looseString accepts a JSON string or any other scalar, kept as raw text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	*s = looseString(strings.TrimSpace(string(data)))
	return nil
}

// decodeAnswer parses the content of an answer part. It must be a JSON object.
func decodeAnswer(p Part) (*answer, error) {
	content := bytes.TrimSpace(p.Content)
	if len(content) == 0 || content[0] != '{' {
		return nil, malformedf("answer part %d is not a JSON object", p.ID)
	}

	var a answer
	if err := json.Unmarshal(content, &a); err != nil {
		return nil, wrapMalformed("answer part is not valid JSON", err)
	}
	return &a, nil
}

// failure returns the reported error, or nil when the call succeeded.
func (a *answer) failure() *answerError {
	raw := bytes.TrimSpace(a.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		return &answerError{
			Name:    stringField(fields, "name"),
			Message: stringField(fields, "message"),
		}
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return &answerError{Message: msg}
	}
	return &answerError{}
}

// stringField returns fields[key] when it holds a JSON string, else "".
func stringField(fields map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return ""
	}
	return s
}

// output returns the output value, null when absent.
func (a *answer) output() json.RawMessage {
	if len(a.Output) == 0 {
		return json.RawMessage("null")
	}
	return a.Output
}

// mapAnswerError returns the typed error reported by a, or nil on success.
func mapAnswerError(fn string, status int, a *answer) error {
	e := a.failure()
	if e == nil {
		return nil
	}
	return newServerError(fn, status, e, string(a.OperationID))
}
