package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/dagrapport/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// minTextLength is the trimmed length below which text is not checked
const minTextLength = 4

// Validate checks text against every category and returns the ones that matched.
// When exempt is true the interpretation rule ignores the pre-approved signal words,
// so quick-pick choices offered by the form are never flagged.
func Validate(text string, exempt bool) []model.ValidationResult {
	results := []model.ValidationResult{}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLength {
		return results
	}

	in := normalize(text)

	for _, r := range rules {
		var found []string
		for _, loc := range r.matcher.FindAllIndex(in.nfc) {
			found = append(found, in.literal(loc[0], loc[1]))
		}
		words := uniqueMatches(found)
		if exempt && r.Category == model.CategoryInterpretation {
			words = withoutSignalWords(words)
		}
		if len(words) > 0 {
			results = append(results, model.ValidationResult{
				Category:     r.Category,
				FlaggedWords: words,
			})
		}
	}

	return results
}

// normalizedText is input in NFC form with the input offset of every NFC segment start.
// Matching runs on the NFC text; reported words are cut from the input.
type normalizedText struct {
	input   string
	nfc     string
	offsets map[int]int // nil when input is already NFC
}

func normalize(text string) normalizedText {
	if norm.NFC.IsNormalString(text) {
		return normalizedText{input: text, nfc: text}
	}

	n := normalizedText{input: text, offsets: make(map[int]int)}
	var b strings.Builder
	var it norm.Iter
	it.InitString(norm.NFC, text)
	for !it.Done() {
		n.offsets[b.Len()] = it.Pos()
		b.Write(it.Next())
	}
	n.offsets[b.Len()] = len(text)
	n.nfc = b.String()
	return n
}

// literal returns the input text behind the NFC byte range [start, end), with
// whitespace runs inside a multi-word match reported as single spaces
func (n normalizedText) literal(start, end int) string {
	word := n.nfc[start:end]
	if n.offsets == nil {
		word = n.input[start:end]
	} else if s, ok := n.offsets[start]; ok {
		if e, ok := n.offsets[end]; ok {
			word = n.input[s:e]
		}
	}
	return strings.Join(strings.Fields(word), " ")
}

// uniqueMatches drops repeated matches by exact string, keeping first-seen order.
// "Druk" and "druk" stay separate entries.
func uniqueMatches(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	var unique []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// withoutSignalWords removes words that case-insensitively equal a signal suggestion
func withoutSignalWords(words []string) []string {
	// A Caser keeps state, so each call gets its own
	fold := cases.Fold()
	var kept []string
	for _, w := range words {
		if !isSignalWord(fold, w) {
			kept = append(kept, w)
		}
	}
	return kept
}

func isSignalWord(fold cases.Caser, word string) bool {
	folded := fold.String(word)
	for _, s := range signalSuggestions {
		if fold.String(s) == folded {
			return true
		}
	}
	return false
}

// ApplySuggestion appends a suggested sentence to text as a new paragraph
func ApplySuggestion(text, suggestion string) string {
	current := strings.TrimSpace(text)
	if current == "" {
		return suggestion
	}
	return current + "\n\n" + suggestion
}
