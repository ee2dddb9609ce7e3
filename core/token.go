package core

// Token is an opaque session credential that never prints its value.
// String, GoString and every marshaler return a redacted placeholder, so a
// Token can sit in structs that get logged or serialized.
//
// Use Expose to obtain the raw value when building a request.
type Token struct {
	value string
}

// NewToken wraps a raw token value.
func NewToken(value string) Token {
	return Token{value: value}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.value == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return "core.Token{[REDACTED]}"
}

// MarshalJSON implements json.Marshaler.
func (t Token) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

// MarshalText implements encoding.TextMarshaler (covers YAML too).
func (t Token) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// Expose returns the raw token value.
func (t Token) Expose() string {
	return t.value
}

// IsEmpty reports whether the token holds no value.
func (t Token) IsEmpty() bool {
	return t.value == ""
}
