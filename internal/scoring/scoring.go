// Package scoring derives topic tags, a severity score and a probability
// score from summarized regulatory text. All functions are pure.
package scoring

import (
	"slices"
	"strings"
)

const (
	TagCopyright    = "Copyright"
	TagBroadcasting = "Broadcasting"
	TagMusic        = "Music Licensing"
	TagArts         = "Arts & Culture"
	TagLiveSafety   = "Live Performance Safety"
	TagGeneral      = "General"
)

const (
	MinSeverity        = 1.0
	MaxSeverity        = 10.0
	DefaultProbability = 0.40
)

type keywordGroup struct {
	tag      string
	keywords []string
}

// groups are checked in this order; the order of the emitted tags follows it.
var groups = []keywordGroup{
	{TagCopyright, []string{"copyright", "royalty", "moral rights"}},
	{TagBroadcasting, []string{"broadcast", "radio", "streaming"}},
	{TagMusic, []string{"music", "socan", "licence", "license"}},
	{TagArts, []string{"arts", "artist", "heritage"}},
	{TagLiveSafety, []string{"safety", "performance"}},
}

type signal struct {
	keyword string
	weight  float64
}

var textSignals = []signal{
	{"prohibited", 2.0},
	{"liable", 2.0},
	{"penalty", 2.0},
}

var tagSignals = []signal{
	{TagBroadcasting, 1.0},
	{TagCopyright, 1.0},
}

// probabilities is a priority list: the first tag present decides.
var probabilities = []struct {
	tag   string
	value float64
}{
	{TagBroadcasting, 0.75},
	{TagMusic, 0.70},
	{TagCopyright, 0.65},
}

// GenerateTags returns the topic tags matched by text, in group order.
// It never returns an empty slice.
func GenerateTags(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	for _, g := range groups {
		if containsAny(lower, g.keywords) && !slices.Contains(tags, g.tag) {
			tags = append(tags, g.tag)
		}
	}

	if len(tags) == 0 {
		return []string{TagGeneral}
	}
	return tags
}

// ComputeSeverity adds up independent risk signals on top of a base of 1.0
// and caps the result at 10.0.
func ComputeSeverity(text string, tags []string) float64 {
	lower := strings.ToLower(text)
	score := MinSeverity

	for _, s := range textSignals {
		if strings.Contains(lower, s.keyword) {
			score += s.weight
		}
	}
	for _, s := range tagSignals {
		if slices.Contains(tags, s.keyword) {
			score += s.weight
		}
	}

	return min(score, MaxSeverity)
}

func ComputeProbability(tags []string) float64 {
	for _, p := range probabilities {
		if slices.Contains(tags, p.tag) {
			return p.value
		}
	}
	return DefaultProbability
}

// Score is the full metadata set derived from one summary.
type Score struct {
	Tags        []string `json:"tags"`
	Severity    float64  `json:"severity"`
	Probability float64  `json:"probability"`
}

func Evaluate(text string) Score {
	tags := GenerateTags(text)
	return Score{
		Tags:        tags,
		Severity:    ComputeSeverity(text, tags),
		Probability: ComputeProbability(tags),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
