package summarize

import (
	"context"
	"strings"
)

// LeadSummarizer is an extractive stand-in for a model: it keeps whole leading
// sentences of the window up to maxLength words. Used for local runs without
// a model server.
type LeadSummarizer struct{}

func NewLeadSummarizer() *LeadSummarizer {
	return &LeadSummarizer{}
}

func (l *LeadSummarizer) SummarizeWindow(_ context.Context, text string, maxLength, _ int) (string, error) {
	words := strings.Fields(text)
	if len(words) <= maxLength {
		return strings.Join(words, " "), nil
	}

	words = words[:maxLength]
	// cut back to the last sentence boundary when there is one
	for i := len(words) - 1; i > 0; i-- {
		if strings.HasSuffix(words[i], ".") {
			words = words[:i+1]
			break
		}
	}

	return strings.Join(words, " "), nil
}
