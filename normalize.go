package mcqgenerator

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds text to NFKC, then collapses all whitespace runs
// (including newlines left over from document extraction) into single
// spaces and trims the ends. The fold happens first because NFKC
// compatibility decompositions can emit space characters themselves;
// collapsing afterwards keeps the function idempotent. Empty input
// yields empty output.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), " ")
}
