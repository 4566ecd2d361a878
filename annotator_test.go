package mcqgenerator

import (
	"context"
	"strings"
)

// fakeAnnotator is a deterministic Annotator for tests: sentences come
// back verbatim when preset (or from punctuation splitting otherwise),
// and a word is a noun iff it is in the nouns set. Punctuation is
// trimmed from tokens the way a real tokenizer would separate it.
type fakeAnnotator struct {
	sentences []string
	nouns     map[string]struct{}
	err       error
}

func (f *fakeAnnotator) Sentences(_ context.Context, text string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sentences != nil {
		return f.sentences, nil
	}
	return splitOnPunctuation(text), nil
}

func (f *fakeAnnotator) Tokens(_ context.Context, text string) ([]Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Token
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:")
		if word == "" {
			continue
		}
		_, noun := f.nouns[word]
		out = append(out, Token{Text: word, Noun: noun})
	}
	return out, nil
}

func nounSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
