// Package aggregate turns a snapshot of documents into the cross-document
// structures used for visualization.
package aggregate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// TopWords bounds the word frequency table.
	TopWords = 200
	// BlobSnippetChars is how much of a blob-backed text contributes to word counts.
	BlobSnippetChars = 20000
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{3,}`)

// Input is the view of one document the aggregation needs.
type Input struct {
	Source      string
	URL         string
	Tags        []string
	Severity    float64
	Probability float64
	Text        string
}

func (in Input) label() string {
	if in.Source != "" {
		return in.Source
	}
	return in.URL
}

type SeverityPoint struct {
	Severity    float64 `json:"severity"`
	Probability float64 `json:"probability"`
	Source      string  `json:"source"`
}

type TimelinePoint struct {
	Index    int     `json:"index"`
	Severity float64 `json:"severity"`
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type Edge struct {
	Reg string `json:"reg"`
	Tag string `json:"tag"`
}

// WordCount is encoded as a [word, count] pair.
type WordCount struct {
	Word  string
	Count int
}

func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.Count})
}

func (w *WordCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("word count must be a pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &w.Word); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &w.Count)
}

type Visualization struct {
	SourceCounts   map[string]int            `json:"source_counts"`
	TagsBySource   map[string]map[string]int `json:"tags_by_source"`
	SeverityPoints []SeverityPoint           `json:"severity_points"`
	WordFreq       []WordCount               `json:"word_freq"`
	Timeline       []TimelinePoint           `json:"timeline"`
	NetworkEdges   []Edge                    `json:"network_edges"`
	NetworkNodes   []Node                    `json:"network_nodes"`
}

// Aggregate builds the visualization payload for docs in snapshot order.
func Aggregate(docs []Input) *Visualization {
	v := &Visualization{
		SourceCounts:   make(map[string]int),
		TagsBySource:   make(map[string]map[string]int),
		SeverityPoints: make([]SeverityPoint, 0, len(docs)),
		Timeline:       make([]TimelinePoint, 0, len(docs)),
		NetworkEdges:   []Edge{},
		NetworkNodes:   make([]Node, 0, len(docs)),
	}
	words := newWordCounter()

	for i, d := range docs {
		src := d.label()
		reg := fmt.Sprintf("Reg_%d", i)

		v.SourceCounts[src]++
		if _, ok := v.TagsBySource[src]; !ok {
			v.TagsBySource[src] = make(map[string]int)
		}
		for _, tag := range d.Tags {
			v.TagsBySource[src][tag]++
			v.NetworkEdges = append(v.NetworkEdges, Edge{Reg: reg, Tag: tag})
		}

		v.SeverityPoints = append(v.SeverityPoints, SeverityPoint{
			Severity:    d.Severity,
			Probability: d.Probability,
			Source:      src,
		})
		v.Timeline = append(v.Timeline, TimelinePoint{Index: i, Severity: d.Severity})
		v.NetworkNodes = append(v.NetworkNodes, Node{ID: reg, Label: src, Type: "regulation"})

		words.add(d.Text)
	}

	v.WordFreq = words.top(TopWords)
	return v
}

type wordCounter struct {
	counts map[string]int
	order  []string
}

func newWordCounter() *wordCounter {
	return &wordCounter{counts: make(map[string]int)}
}

func (c *wordCounter) add(text string) {
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, seen := c.counts[w]; !seen {
			c.order = append(c.order, w)
		}
		c.counts[w]++
	}
}

// top returns the n most frequent words, ties kept in first-seen order.
func (c *wordCounter) top(n int) []WordCount {
	out := make([]WordCount, 0, len(c.order))
	for _, w := range c.order {
		out = append(out, WordCount{Word: w, Count: c.counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
