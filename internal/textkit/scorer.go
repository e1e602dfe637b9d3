package textkit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// Scorer names accepted by NewScorer.
const (
	ScorerKeyword   = "keyword"
	ScorerFrequency = "frequency"
)

// Scorer ranks sentences; higher scores are more summary-worthy.
type Scorer interface {
	Score(sentences []string) []float64
}

// NewScorer returns the scorer registered under name.
// An empty name selects the keyword scorer.
func NewScorer(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", ScorerKeyword:
		return KeywordScorer{}, nil
	case ScorerFrequency:
		return FrequencyScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown sentence scorer: %s", name)
	}
}

var cueWords = regexp.MustCompile(`(?i)\b(therefore|because|thus|important|means|called|includes|consists|definition|example)\b`)

// KeywordScorer weights explanatory cue words and longer sentences:
// three points per cue word plus one point per 120 characters, capped at two.
type KeywordScorer struct{}

// Score implements Scorer.
func (KeywordScorer) Score(sentences []string) []float64 {
	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		hits := len(cueWords.FindAllStringIndex(s, -1))
		scores[i] = float64(hits*3 + min(2, utf8.RuneCountInString(s)/120))
	}
	return scores
}

// FrequencyScorer sums the normalised document frequency of each
// sentence's stemmed content words.
type FrequencyScorer struct{}

// Score implements Scorer.
func (FrequencyScorer) Score(sentences []string) []float64 {
	stemmed := make([][]string, len(sentences))
	freq := make(map[string]int)
	top := 0

	for i, s := range sentences {
		for _, w := range contentWords(s) {
			stem := stemWord(w)
			stemmed[i] = append(stemmed[i], stem)
			freq[stem]++
			top = max(top, freq[stem])
		}
	}

	scores := make([]float64, len(sentences))
	if top == 0 {
		return scores
	}
	for i, stems := range stemmed {
		for _, stem := range stems {
			scores[i] += float64(freq[stem]) / float64(top)
		}
	}
	return scores
}

func contentWords(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, "'")
		if len(w) > 1 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}
