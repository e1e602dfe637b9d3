package textkit

import (
	"math/rand/v2"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

const (
	// Blank replaces the answer in a question stem.
	Blank = "_____"

	// DefaultQuestionCount is used when the caller asks for count < 1.
	DefaultQuestionCount = 8

	minStemWords   = 6
	minAnswerRunes = 4
	maxCandidates  = 400
)

// QuizGenerator builds fill-in-the-blank multiple-choice questions.
// It is safe for concurrent use.
type QuizGenerator struct {
	splitter Splitter

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizGenerator creates a generator. A nil splitter selects the regex
// splitter; a nil rng is seeded randomly.
func NewQuizGenerator(splitter Splitter, rng *rand.Rand) *QuizGenerator {
	if splitter == nil {
		splitter = RegexSplitter{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuizGenerator{splitter: splitter, rng: rng}
}

// Generate returns up to count questions. Each has exactly four distinct
// options, one of which is the answer. Input that yields no question
// returns an insufficient Quiz.
func (g *QuizGenerator) Generate(text string, count int) domain.Quiz {
	if !enoughMaterial(text) {
		return domain.Quiz{Insufficient: true}
	}
	if count < 1 {
		count = DefaultQuestionCount
	}

	var candidates [][]string
	for _, s := range g.splitter.Split(text) {
		words := strings.Fields(s)
		if len(words) >= minStemWords {
			candidates = append(candidates, words)
			if len(candidates) == maxCandidates {
				break
			}
		}
	}
	pool := answerPool(candidates)

	g.mu.Lock()
	defer g.mu.Unlock()

	var questions []domain.Question
	for _, words := range candidates {
		if len(questions) == count {
			break
		}
		if q, ok := g.question(words, pool); ok {
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		return domain.Quiz{Insufficient: true}
	}
	return domain.Quiz{Questions: questions}
}

func (g *QuizGenerator) question(words []string, pool []string) (domain.Question, bool) {
	idx, answer := -1, ""
	for i, w := range words {
		core := trimPunct(w)
		if eligible(core) && utf8.RuneCountInString(core) > utf8.RuneCountInString(answer) {
			idx, answer = i, core
		}
	}
	if idx < 0 {
		return domain.Question{}, false
	}

	stem := make([]string, len(words))
	copy(stem, words)
	stem[idx] = strings.Replace(words[idx], answer, Blank, 1)

	options := append([]string{answer}, g.distractors(answer, pool)...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.Question{
		Stem:    strings.Join(stem, " "),
		Options: options,
		Answer:  answer,
	}, true
}

// distractors returns OptionCount-1 options distinct from answer and each
// other, ignoring case. Other words of the text are preferred; mutations
// of the answer fill any gap.
func (g *QuizGenerator) distractors(answer string, pool []string) []string {
	need := domain.OptionCount - 1
	used := map[string]bool{strings.ToLower(answer): true}
	out := make([]string, 0, need)

	add := func(w string) {
		if len(out) < need && w != "" && !used[strings.ToLower(w)] {
			used[strings.ToLower(w)] = true
			out = append(out, w)
		}
	}

	for tries := 0; len(pool) > 0 && len(out) < need && tries < 4*need; tries++ {
		add(pool[g.rng.IntN(len(pool))])
	}

	runes := []rune(answer)
	add(reverse(runes))
	add(answer + "s")
	add(string(runes[:len(runes)-1]))
	for tries := 0; len(out) < need && tries < 8; tries++ {
		add(g.shuffled(runes))
	}
	add("un" + answer)
	add(answer + "ing")
	add(answer + "ed")
	for i := 2; len(out) < need; i++ {
		add(answer + strings.Repeat("s", i))
	}
	return out
}

func (g *QuizGenerator) shuffled(runes []rune) string {
	r := append([]rune{}, runes...)
	g.rng.Shuffle(len(r), func(i, j int) { r[i], r[j] = r[j], r[i] })
	return string(r)
}

// answerPool collects the distinct eligible words of all candidates.
func answerPool(candidates [][]string) []string {
	seen := make(map[string]bool)
	var pool []string
	for _, words := range candidates {
		for _, w := range words {
			core := trimPunct(w)
			if eligible(core) && !seen[strings.ToLower(core)] {
				seen[strings.ToLower(core)] = true
				pool = append(pool, core)
			}
		}
	}
	return pool
}

func eligible(word string) bool {
	if utf8.RuneCountInString(word) < minAnswerRunes {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func trimPunct(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func reverse(runes []rune) string {
	r := make([]rune, len(runes))
	for i, c := range runes {
		r[len(runes)-1-i] = c
	}
	return string(r)
}
