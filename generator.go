package mcqgenerator

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// Generator runs the full MCQ pipeline: normalize, annotate, select
// candidate sentences, rank the document's nouns, and synthesize
// questions. It is the single owner of the random source, so seeding
// it makes a whole generation run reproducible.
type Generator struct {
	annotator Annotator
	rng       *rand.Rand
}

// NewGenerator creates a generator with a time-seeded random source.
func NewGenerator(annotator Annotator) *Generator {
	return NewSeededGenerator(annotator, time.Now().UnixNano())
}

// NewSeededGenerator creates a generator whose sentence sampling,
// answer choice, and option shuffling are reproducible for a given
// seed.
func NewSeededGenerator(annotator Annotator, seed int64) *Generator {
	return &Generator{
		annotator: annotator,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Generate produces a QuestionSet from raw text. Short or empty input
// degrades to a smaller or empty set rather than an error; the only
// errors returned are annotator failures, which the in-process
// annotator never produces.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (*QuestionSet, error) {
	set := &QuestionSet{
		ID:        g.generateSetID(),
		Requested: req.NumQuestions,
		CreatedAt: time.Now(),
	}

	text := NormalizeText(req.Text)
	if text == "" || req.NumQuestions < 1 {
		log.Printf("Generation request %s: nothing to generate, returning empty set", set.ID)
		return set, nil
	}

	sentences, err := g.selectSentences(ctx, text, req.NumQuestions)
	if err != nil {
		return nil, err
	}
	VerboseLog("Selected %d candidate sentences for set %s", len(sentences), set.ID)

	tokens, err := g.annotator.Tokens(ctx, text)
	if err != nil {
		return nil, err
	}
	pool := buildNounPool(tokens)
	VerboseLog("Common noun pool holds %d entries", len(pool))

	count := req.NumQuestions
	if count > len(sentences) {
		count = len(sentences)
	}

	// Sample without replacement before synthesis; sentences that turn
	// out to have no nouns are dropped, not replaced.
	for _, idx := range g.rng.Perm(len(sentences))[:count] {
		q, err := g.synthesize(ctx, sentences[idx], pool)
		if err != nil {
			return nil, err
		}
		if q == nil {
			continue
		}
		set.Questions = append(set.Questions, *q)
	}

	log.Printf("Generated %d/%d questions for set %s", len(set.Questions), req.NumQuestions, set.ID)
	return set, nil
}

// generateSetID draws from the generator's own random source so a
// seeded run reproduces IDs along with everything else.
func (g *Generator) generateSetID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = charset[g.rng.Intn(len(charset))]
	}
	return string(b)
}
