package textkit

// stopWords are skipped by the frequency scorer. The list follows the
// common RAKE keyword-extraction set.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "by": true, "for": true, "from": true, "has": true,
	"he": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "must": true, "shall": true, "this": true,
	"these": true, "they": true, "them": true, "their": true, "there": true,
	"then": true, "than": true, "or": true, "but": true, "not": true, "no": true,
	"nor": true, "so": true, "yet": true, "however": true, "therefore": true,
	"thus": true, "hence": true, "because": true, "since": true, "although": true,
	"though": true, "unless": true, "until": true, "while": true, "where": true,
	"when": true, "who": true, "whom": true, "whose": true, "which": true,
	"what": true, "why": true, "how": true, "if": true, "do": true, "does": true,
	"did": true, "have": true, "had": true, "having": true, "also": true,
	"we": true, "you": true, "i": true, "she": true, "his": true, "her": true,
	"our": true, "your": true, "all": true, "any": true, "each": true,
	"some": true, "such": true, "into": true, "about": true, "very": true,
	"too": true, "were": true, "being": true, "am": true,
}
