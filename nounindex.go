package mcqgenerator

import "sort"

// commonPoolSize caps the ranked distractor pool at the most frequent
// noun surface forms in the document.
const commonPoolSize = 30

// buildNounPool counts noun occurrences per distinct surface form
// across the document's tokens and returns up to commonPoolSize forms
// ranked by count descending. Ties keep first-encountered order, so
// the ranking is deterministic for a given token sequence. Documents
// with fewer distinct nouns than the cap contribute all of them.
func buildNounPool(tokens []Token) []string {
	counts := make(map[string]int)
	var order []string // distinct forms in first-encountered order

	for _, tok := range tokens {
		if !tok.Noun {
			continue
		}
		if _, seen := counts[tok.Text]; !seen {
			order = append(order, tok.Text)
		}
		counts[tok.Text]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > commonPoolSize {
		order = order[:commonPoolSize]
	}
	return order
}
