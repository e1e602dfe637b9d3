package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SubjectVocabulary is matched in order against the words of a file name.
var SubjectVocabulary = []string{
	"english", "hindi", "marathi", "sanskrit", "math", "maths", "mathematics", "science",
	"physics", "chemistry", "biology", "social", "sst", "history", "geography", "civics",
	"economics", "computer", "it", "ai", "cs",
}

var subjectLabels = map[string]string{
	"maths":  "Mathematics",
	"sst":    "Social Science",
	"social": "Social Science",
}

var (
	chapterMarker = regexp.MustCompile(`(?:chapter|ch|lesson|पाठ|abharas|adhyaya)[\s\-:_]*([0-9]{1,2})`)
	chapterNumber = regexp.MustCompile(`\b([0-9]{1,2})[\s\-._]`)
)

// DetectSubject tags a file name with a subject from SubjectVocabulary.
// Matches are whole words; the first vocabulary entry present wins.
func DetectSubject(name string) string {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}

	for _, sub := range SubjectVocabulary {
		if !words[sub] {
			continue
		}
		if label, ok := subjectLabels[sub]; ok {
			return label
		}
		return strings.ToUpper(sub[:1]) + sub[1:]
	}
	return DefaultSubject
}

// DetectChapter tags a file name with "Chapter N" when it carries a
// chapter marker or a short leading number.
func DetectChapter(name string) string {
	s := strings.ToLower(name)
	if m := chapterMarker.FindStringSubmatch(s); m != nil {
		return chapterLabel(m[1])
	}
	if m := chapterNumber.FindStringSubmatch(s); m != nil {
		return chapterLabel(m[1])
	}
	return DefaultChapter
}

func chapterLabel(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultChapter
	}
	return "Chapter " + strconv.Itoa(n)
}
