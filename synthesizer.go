package mcqgenerator

import (
	"context"
	"strings"
)

// genericDistractors backfills the option list when the document's
// common noun pool cannot supply three distractors.
var genericDistractors = []string{"person", "thing", "place", "time", "way", "idea"}

// synthesize turns one candidate sentence into a Question, or returns
// nil when the sentence contains no nouns and contributes nothing.
func (g *Generator) synthesize(ctx context.Context, sentence string, pool []string) (*Question, error) {
	tokens, err := g.annotator.Tokens(ctx, sentence)
	if err != nil {
		return nil, err
	}

	var sentenceNouns []string
	for _, tok := range tokens {
		if tok.Noun {
			sentenceNouns = append(sentenceNouns, tok.Text)
		}
	}
	if len(sentenceNouns) == 0 {
		VerboseLog("skipping sentence with no nouns: %.40q", sentence)
		return nil, nil
	}

	answer := sentenceNouns[g.rng.Intn(len(sentenceNouns))]
	distractors := g.pickDistractors(answer, sentenceNouns, pool)

	options := append(distractors, answer)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		// First substring occurrence on purpose, even when the answer
		// is embedded in a longer word.
		Prompt:  strings.Replace(sentence, answer, BlankMarker, 1),
		Options: options,
		Answer:  answer,
	}, nil
}

// pickDistractors selects three wrong options for answer. It walks the
// ranked pool first, taking forms that are neither the answer nor
// present in the sentence, then backfills from genericDistractors at
// random. The backfill only rejects repeats and the answer itself, so
// with six generic words and at most three unusable it always reaches
// three distinct distractors.
func (g *Generator) pickDistractors(answer string, sentenceNouns, pool []string) []string {
	distractors := make([]string, 0, 3)
	for _, noun := range pool {
		if noun != answer && !contains(sentenceNouns, noun) {
			distractors = append(distractors, noun)
		}
		if len(distractors) >= 3 {
			break
		}
	}

	if len(distractors) < 3 {
		generic := make([]string, len(genericDistractors))
		copy(generic, genericDistractors)
		g.rng.Shuffle(len(generic), func(i, j int) {
			generic[i], generic[j] = generic[j], generic[i]
		})
		for _, word := range generic {
			if word != answer && !contains(distractors, word) {
				distractors = append(distractors, word)
			}
			if len(distractors) >= 3 {
				break
			}
		}
	}

	return distractors
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
