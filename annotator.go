package mcqgenerator

import (
	"context"
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Token is one annotated token: its surface form and whether the
// tagger considered it a noun.
type Token struct {
	Text string `json:"text"`
	Noun bool   `json:"noun"`
}

// Annotator segments text into sentences and tags tokens with a coarse
// noun/non-noun label. Callers pass either a whole document or a
// single sentence depending on the scope they need.
type Annotator interface {
	Sentences(ctx context.Context, text string) ([]string, error)
	Tokens(ctx context.Context, text string) ([]Token, error)
}

// ProseAnnotator is the default Annotator, backed by the prose NLP
// pipeline. It runs entirely in-process.
type ProseAnnotator struct{}

// NewProseAnnotator creates the default in-process annotator.
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Sentences segments text into sentence spans.
func (a *ProseAnnotator) Sentences(_ context.Context, text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		out = append(out, sent.Text)
	}
	return out, nil
}

// Tokens tags every token in text with a noun/non-noun label.
func (a *ProseAnnotator) Tokens(_ context.Context, text string) ([]Token, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, tok := range toks {
		out = append(out, Token{Text: tok.Text, Noun: isNounTag(tok.Tag)})
	}
	return out, nil
}

// isNounTag reports whether a Penn Treebank tag denotes a noun
// (NN, NNS, NNP, NNPS).
func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}
