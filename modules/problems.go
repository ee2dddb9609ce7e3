package modules

import (
	"context"

	"github.com/petal-labs/jutge/core"
)

// AbstractProblem holds the data shared by all translations of a problem.
type AbstractProblem struct {
	ProblemNm   string `json:"problem_nm"`
	Author      string `json:"author"`
	AuthorEmail string `json:"author_email"`
	Type        string `json:"type"`
	Driver      string `json:"driver"`
	Visibility  string `json:"visibility"`
	Created     string `json:"created_at"`
	Updated     string `json:"updated_at"`
}

// Problem is one translation of a problem, such as P68688_en.
type Problem struct {
	ProblemID          string          `json:"problem_id"`
	ProblemNm          string          `json:"problem_nm"`
	LanguageID         string          `json:"language_id"`
	Title              string          `json:"title"`
	OriginalLanguageID string          `json:"original_language_id"`
	Translator         string          `json:"translator"`
	AbstractProblem    AbstractProblem `json:"abstract_problem"`
}

// Problems wraps the problems module.
type Problems struct {
	client *core.Client
}

// GetProblem returns a problem by id, e.g. "P68688_en".
func (p *Problems) GetProblem(ctx context.Context, problemID string) (*Problem, error) {
	return call[Problem](ctx, p.client, "problems.getProblem", problemID)
}
