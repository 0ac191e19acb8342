package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid expression", inner)

	if err.Error() != "invalid expression: parse failed" {
		t.Errorf("expected 'invalid expression: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty parentheses")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("storage error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty parentheses" {
		t.Errorf("expected 'empty parentheses', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestTypedErrors_SurviveWrapping(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		match func(error) bool
	}{
		{"fetch", apperr.NewFetch("https://x", "timeout"), func(err error) bool {
			var e *apperr.FetchError
			return errors.As(err, &e) && e.Detail == "timeout"
		}},
		{"summarization", apperr.NewSummarization(2, fmt.Errorf("model down")), func(err error) bool {
			var e *apperr.SummarizationError
			return errors.As(err, &e) && e.Window == 2
		}},
		{"not found", apperr.NewNotFound("document", "42"), func(err error) bool {
			var e *apperr.NotFoundError
			return errors.As(err, &e) && e.ID == "42"
		}},
		{"conflict", apperr.NewConflict("42", 3), func(err error) bool {
			var e *apperr.ConflictError
			return errors.As(err, &e) && e.Version == 3
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("pipeline: %w", tc.err)
			if !tc.match(wrapped) {
				t.Fatalf("errors.As did not find %T in %v", tc.err, wrapped)
			}
		})
	}
}

func TestSummarizationError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := apperr.NewSummarization(0, inner)

	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}
