package util

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordMatcher finds case-insensitive keyword occurrences that stand as whole words.
//
// RE2's \b only knows ASCII word characters, which would let "druk" match inside
// "drukë". Boundaries are therefore checked against Unicode letters, digits and
// combining marks after the regexp has found a candidate.
type WordMatcher struct {
	re *regexp.Regexp
}

// NewWordMatcher compiles a matcher for the given keywords.
// Spaces inside a keyword match any run of whitespace.
func NewWordMatcher(words ...string) *WordMatcher {
	sorted := append([]string(nil), words...)
	// Longest first so a keyword never shadows a longer one sharing its prefix
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	alts := make([]string, 0, len(sorted))
	for _, w := range sorted {
		parts := strings.Fields(w)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}

	return &WordMatcher{
		re: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`),
	}
}

// FindAllIndex returns the byte ranges of every non-overlapping whole-word match
func (m *WordMatcher) FindAllIndex(text string) [][]int {
	var out [][]int
	pos := 0
	for pos < len(text) {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if onWordBoundary(text, start, end) {
			out = append(out, []int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return out
}

// FindAll returns the matched substrings in input order
func (m *WordMatcher) FindAll(text string) []string {
	locs := m.FindAllIndex(text)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]string, len(locs))
	for i, loc := range locs {
		matches[i] = text[loc[0]:loc[1]]
	}
	return matches
}

// FindFirstIndex returns the byte range of the first whole-word match, or nil
func (m *WordMatcher) FindFirstIndex(text string) []int {
	pos := 0
	for pos < len(text) {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			return nil
		}
		start, end := pos+loc[0], pos+loc[1]
		if onWordBoundary(text, start, end) {
			return []int{start, end}
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			return nil
		}
		pos = start + size
	}
	return nil
}

// TrimLeading removes one keyword from the very start of text, if present
func (m *WordMatcher) TrimLeading(text string) string {
	loc := m.FindFirstIndex(text)
	if loc == nil || loc[0] != 0 {
		return text
	}
	return text[loc[1]:]
}

func onWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
