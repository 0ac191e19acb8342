package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperr.NewValidation("Provide either URL or text"), http.StatusBadRequest, "Provide either URL or text"},
		{"fetch", fmt.Errorf("wrap: %w", apperr.NewFetch("u", "status 503")), http.StatusBadRequest, "scrape_failed"},
		{"not found", apperr.NewNotFound("document", "x"), http.StatusNotFound, "not found"},
		{"conflict", apperr.NewConflict("x", 1), http.StatusConflict, "modified concurrently"},
		{"summarization", apperr.NewSummarization(0, errors.New("boom")), http.StatusInternalServerError, "summarization_failed"},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handler := apperr.GlobalErrorHandler()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
		})
	}
}
