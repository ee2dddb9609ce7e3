package modules

import (
	"context"

	"github.com/petal-labs/jutge/core"
)

// Language is a natural language problems are written in.
type Language struct {
	LanguageID string `json:"language_id"`
	OwnName    string `json:"own_name"`
	EngName    string `json:"eng_name"`
}

// Compiler is a compiler or interpreter submissions can use.
type Compiler struct {
	CompilerID  string `json:"compiler_id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Type        string `json:"type"`
	Warning     string `json:"warning"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// AllTables is the output of tables.get.
type AllTables struct {
	Languages map[string]Language `json:"languages"`
	Compilers map[string]Compiler `json:"compilers"`
}

// Tables wraps the tables module.
type Tables struct {
	client *core.Client
}

// Get returns all tables at once.
func (t *Tables) Get(ctx context.Context) (*AllTables, error) {
	return call[AllTables](ctx, t.client, "tables.get", nil)
}

// GetLanguages returns the languages indexed by id.
func (t *Tables) GetLanguages(ctx context.Context) (map[string]Language, error) {
	m, err := call[map[string]Language](ctx, t.client, "tables.getLanguages", nil)
	if err != nil {
		return nil, err
	}
	return *m, nil
}

// GetCompilers returns the compilers indexed by id.
func (t *Tables) GetCompilers(ctx context.Context) (map[string]Compiler, error) {
	m, err := call[map[string]Compiler](ctx, t.client, "tables.getCompilers", nil)
	if err != nil {
		return nil, err
	}
	return *m, nil
}
