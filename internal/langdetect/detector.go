// Package langdetect identifies the language of submitted documents.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// sampleChars bounds how much text is fed to the detector.
const sampleChars = 2000

var defaultLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.Spanish,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
}

type Detector interface {
	// Detect returns the ISO 639-1 code of text, or "" when undetermined.
	Detect(text string) string
}

type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector(languages ...lingua.Language) *LinguaDetector {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			WithMinimumRelativeDistance(0.1).
			Build(),
	}
}

func (d *LinguaDetector) Detect(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}
	if r := []rune(sample); len(r) > sampleChars {
		sample = string(r[:sampleChars])
	}

	language, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

type NopDetector struct{}

func (NopDetector) Detect(string) string {
	return ""
}
