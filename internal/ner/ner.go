// Package ner wraps a named-entity recognition model. Extraction is
// best-effort: failures are reported in Result.Err rather than as a Go error
// so callers can tell "no entities" from "extraction failed".
package ner

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
)

const DefaultMaxChars = 30000

var ErrDisabled = errors.New("entity extraction disabled")

type Result struct {
	Entities []domain.Entity
	Err      error
}

// OK reports whether extraction ran successfully, possibly finding nothing.
func (r Result) OK() bool {
	return r.Err == nil
}

type Extractor interface {
	Extract(ctx context.Context, text string) Result
}

type DisabledExtractor struct{}

func (DisabledExtractor) Extract(context.Context, string) Result {
	return Result{Entities: []domain.Entity{}, Err: ErrDisabled}
}
