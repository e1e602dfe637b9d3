package textkit

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

const (
	// MinMaterialChars is the shortest input the tools will work on.
	MinMaterialChars = 16

	maxSummaryInput = 800
)

// Summarizer picks the highest scoring sentences of a text.
type Summarizer struct {
	splitter Splitter
	scorer   Scorer
}

// NewSummarizer creates a summarizer. Nil arguments select the
// regex splitter and keyword scorer.
func NewSummarizer(splitter Splitter, scorer Scorer) *Summarizer {
	if splitter == nil {
		splitter = RegexSplitter{}
	}
	if scorer == nil {
		scorer = KeywordScorer{}
	}
	return &Summarizer{splitter: splitter, scorer: scorer}
}

// Summarize returns at most n sentences of text in their original order.
// Empty or too short input yields an insufficient Summary.
func (s *Summarizer) Summarize(text string, n int) domain.Summary {
	if !enoughMaterial(text) {
		return domain.Summary{Insufficient: true}
	}
	if n < 1 {
		n = domain.DefaultSummarySentences
	}

	sents := s.splitter.Split(text)
	if len(sents) > maxSummaryInput {
		sents = sents[:maxSummaryInput]
	}
	if len(sents) == 0 {
		return domain.Summary{Insufficient: true}
	}

	scores := s.scorer.Score(sents)
	order := make([]int, len(sents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}
	sort.Ints(order)

	out := make([]string, 0, len(order))
	for _, i := range order {
		out = append(out, sents[i])
	}
	return domain.Summary{Sentences: out}
}

func enoughMaterial(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinMaterialChars
}
