package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
)

const maxRecursionDepth = 3

var ErrInvalidWindowing = errors.New("invalid summary windowing")

// Capability is an abstractive summarization model invoked on a single window.
// Implementations must be deterministic for fixed parameters.
type Capability interface {
	SummarizeWindow(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

type Engine struct {
	capability Capability
	cfg        Config
}

func NewEngine(capability Capability, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{capability: capability, cfg: cfg}, nil
}

// Summarize reduces text by summarizing overlapping windows in sequence and
// joining the results. Any window failure fails the whole call.
func (e *Engine) Summarize(ctx context.Context, text string) (string, error) {
	return e.summarize(ctx, text, 0)
}

func (e *Engine) summarize(ctx context.Context, text string, depth int) (string, error) {
	if text == "" {
		return "", nil
	}

	windows := Windows(text, e.cfg.WindowSize, e.cfg.Overlap)
	slog.Debug("Summarizing text", "chars", len(text), "windows", len(windows), "depth", depth)

	summaries := make([]string, 0, len(windows))
	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			return "", apperr.NewSummarization(i, err)
		}

		s, err := e.capability.SummarizeWindow(ctx, w, e.cfg.MaxOutputTokens, e.cfg.MinOutputTokens)
		if err != nil {
			return "", apperr.NewSummarization(i, err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", apperr.NewSummarization(i, errors.New("model returned an empty summary"))
		}
		summaries = append(summaries, s)
	}

	combined := strings.TrimSpace(strings.Join(summaries, " "))

	if e.cfg.Recursive && depth < maxRecursionDepth &&
		len([]rune(combined)) > e.cfg.TargetLength && len(combined) < len(text) {
		return e.summarize(ctx, combined, depth+1)
	}

	return combined, nil
}

// Windows splits text into slices of size characters, each starting step =
// size-overlap characters after the previous one. The last window ends at
// the end of text and may be shorter than size.
func Windows(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 || size <= 0 || overlap < 0 || overlap >= size {
		return nil
	}

	step := size - overlap
	windows := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := min(start+size, len(runes))
		windows = append(windows, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return windows
}

func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidWindowing, c.WindowSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.WindowSize {
		return fmt.Errorf("%w: overlap %d must be in [0, %d)", ErrInvalidWindowing, c.Overlap, c.WindowSize)
	}
	if c.MaxOutputTokens <= 0 || c.MinOutputTokens < 0 || c.MinOutputTokens > c.MaxOutputTokens {
		return fmt.Errorf("invalid output length bounds: min %d, max %d", c.MinOutputTokens, c.MaxOutputTokens)
	}
	return nil
}
