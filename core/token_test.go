package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestTokenRedaction(t *testing.T) {
	token := NewToken("tok-abc123")

	tests := []struct {
		format string
		want   string
	}{
		{"%v", "[REDACTED]"},
		{"%s", "[REDACTED]"},
		{"%#v", "core.Token{[REDACTED]}"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := fmt.Sprintf(tt.format, token)
			if got != tt.want {
				t.Errorf("fmt.Sprintf(%q, token) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestTokenInStructJSON(t *testing.T) {
	type profile struct {
		Email string `json:"email"`
		Token Token  `json:"token"`
	}

	data, err := json.Marshal(profile{Email: "a@b.c", Token: NewToken("tok-abc123")})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "tok-abc123") {
		t.Errorf("json.Marshal() = %s, exposed token value", data)
	}
}

func TestTokenExposeAndEmpty(t *testing.T) {
	if got := NewToken("tok").Expose(); got != "tok" {
		t.Errorf("Expose() = %q, want %q", got, "tok")
	}
	if !NewToken("").IsEmpty() {
		t.Error("IsEmpty() = false for empty token")
	}
	if NewToken(" ").IsEmpty() {
		t.Error("IsEmpty() = true for whitespace token")
	}
	if got := NewToken("").String(); got != "" {
		t.Errorf("String() = %q for empty token, want empty", got)
	}
}
