package core

import (
	"encoding/json"
	"os"
)

// Call is one remote function invocation.
type Call struct {
	// Func is the dotted remote function name, e.g. "misc.getFortune".
	Func string
	// Input is any JSON-serializable value. A nil Input is sent as null.
	Input any
	// Files are uploaded in order as file_0, file_1, ...
	Files [][]byte
	// Meta is set by Client from the session when the call starts.
	Meta *Meta
}

// Result is the decoded reply of a successful call.
type Result struct {
	// Output is the raw JSON "output" value of the answer.
	Output json.RawMessage
	// Downloads are the file parts of the reply, in response order.
	Downloads []Download
}

// Decode unmarshals the output into v.
func (r *Result) Decode(v any) error {
	if len(r.Output) == 0 {
		return json.Unmarshal([]byte("null"), v)
	}
	return json.Unmarshal(r.Output, v)
}

// Download is a binary file returned by a call.
type Download struct {
	Data  []byte `json:"data" msgpack:"data"`
	Name  string `json:"name" msgpack:"name"`   // File name from the disposition header
	Type  string `json:"type" msgpack:"type"`   // Content type of the part
	Field string `json:"field" msgpack:"field"` // Form field name of the part
}

// Write stores the download contents at path.
func (d Download) Write(path string) error {
	return os.WriteFile(path, d.Data, 0644)
}

// Credentials is the output of the auth.login function.
type Credentials struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
	UserUID    string `json:"user_uid"`
	Error      string `json:"error"`
}
