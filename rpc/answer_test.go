package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/jutge/core"
)

func TestDecodeAnswerRejectsNonObjects(t *testing.T) {
	for _, content := range []string{"", "   ", "[1,2]", `"text"`, "<html>", `{"output":`} {
		_, err := decodeAnswer(Part{ID: 1, Content: []byte(content)})
		assert.ErrorIs(t, err, core.ErrMalformedResponse, "decodeAnswer(%q)", content)
	}
}

func TestDecodeAnswerSuccess(t *testing.T) {
	a, err := decodeAnswer(Part{ID: 1, Content: []byte(`{"output": {"n": 1}}`)})
	require.NoError(t, err)
	assert.Nil(t, a.failure())
	assert.JSONEq(t, `{"n": 1}`, string(a.output()))
	assert.NoError(t, mapAnswerError("misc.getTime", 200, a))
}

func TestAnswerOutputDefaultsToNull(t *testing.T) {
	a, err := decodeAnswer(Part{ID: 1, Content: []byte(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, "null", string(a.output()))
}

func TestMapAnswerError(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantKind    core.ErrorKind
		wantErr     error
		wantMessage string
		wantOpID    string
	}{
		{
			name:        "not found",
			content:     `{"error": {"name": "NotFoundError", "message": "problem not found"}, "operation_id": "x"}`,
			wantKind:    core.KindNotFound,
			wantErr:     core.ErrNotFound,
			wantMessage: "problem not found",
			wantOpID:    "x",
		},
		{
			name:        "unknown name falls back to processing",
			content:     `{"error": {"name": "WeirdNewError", "message": "m"}}`,
			wantKind:    core.KindProcessing,
			wantErr:     core.ErrProcessing,
			wantMessage: "m",
		},
		{
			name:        "unauthorized",
			content:     `{"error": {"name": "UnauthorizedError", "message": "login required"}, "operation_id": "op-1"}`,
			wantKind:    core.KindUnauthorized,
			wantErr:     core.ErrUnauthorized,
			wantMessage: "login required",
			wantOpID:    "op-1",
		},
		{
			name:        "info",
			content:     `{"error": {"name": "InfoError", "message": "maintenance"}}`,
			wantKind:    core.KindInfo,
			wantErr:     core.ErrInfo,
			wantMessage: "maintenance",
		},
		{
			name:        "input",
			content:     `{"error": {"name": "InputError", "message": "bad id"}}`,
			wantKind:    core.KindInput,
			wantErr:     core.ErrInput,
			wantMessage: "bad id",
		},
		{
			name:        "missing message",
			content:     `{"error": {"name": "InputError"}}`,
			wantKind:    core.KindInput,
			wantErr:     core.ErrInput,
			wantMessage: "Unknown error",
		},
		{
			name:        "non-string message keeps the name",
			content:     `{"error": {"name": "NotFoundError", "message": 42}, "operation_id": "op-9"}`,
			wantKind:    core.KindNotFound,
			wantErr:     core.ErrNotFound,
			wantMessage: "Unknown error",
			wantOpID:    "op-9",
		},
		{
			name:        "non-string name falls back to processing",
			content:     `{"error": {"name": ["InputError"], "message": "m"}}`,
			wantKind:    core.KindProcessing,
			wantErr:     core.ErrProcessing,
			wantMessage: "m",
		},
		{
			name:        "string error",
			content:     `{"error": "boom", "operation_id": 17}`,
			wantKind:    core.KindProcessing,
			wantErr:     core.ErrProcessing,
			wantMessage: "boom",
			wantOpID:    "17",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := decodeAnswer(Part{ID: 1, Content: []byte(tt.content)})
			require.NoError(t, err)

			err = mapAnswerError("problems.getProblem", 200, a)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *core.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantOpID, apiErr.OperationID)
			assert.Equal(t, "problems.getProblem", apiErr.Func)
		})
	}
}
