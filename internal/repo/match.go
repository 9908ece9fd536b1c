package repo

import (
	"sort"
	"strings"
	"unicode"
)

// SortByFrequency sorts in place, highest frequency first, keeping the
// original order between equal frequencies.
func SortByFrequency(faqs []FAQ) {
	sort.SliceStable(faqs, func(i, j int) bool {
		return faqs[i].Frequency > faqs[j].Frequency
	})
}

// MatchFAQ returns the first FAQ whose question shares a keyword (a word
// longer than three characters) with text. Matching is plain substring
// containment on lower-cased input.
func MatchFAQ(faqs []FAQ, text string) (*FAQ, bool) {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return nil, false
	}

	for i := range faqs {
		for _, kw := range keywords(faqs[i].Question) {
			if strings.Contains(normalized, kw) {
				f := faqs[i]
				return &f, true
			}
		}
	}
	return nil, false
}

func keywords(question string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}
