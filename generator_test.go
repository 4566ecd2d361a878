package mcqgenerator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animalText = "The cat sat on the mat in the house. " +
	"The dog ran through the garden near the river. " +
	"The bird flew over the mountain toward the forest."

func animalAnnotator() *fakeAnnotator {
	return &fakeAnnotator{
		nouns: nounSet("cat", "mat", "house", "dog", "garden", "river",
			"bird", "mountain", "forest"),
	}
}

func TestGenerateOptionInvariant(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewSeededGenerator(animalAnnotator(), seed)
		set, err := g.Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
		require.NoError(t, err)

		for _, q := range set.Questions {
			require.Len(t, q.Options, 4)

			seen := make(map[string]int)
			for _, opt := range q.Options {
				seen[opt]++
			}
			for opt, n := range seen {
				assert.Equal(t, 1, n, "duplicate option %q (seed %d)", opt, seed)
			}
			assert.Equal(t, 1, seen[q.Answer], "answer missing from options (seed %d)", seed)
		}
	}
}

func TestGenerateBlankInvariant(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewSeededGenerator(animalAnnotator(), seed)
		set, err := g.Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
		require.NoError(t, err)

		for _, q := range set.Questions {
			assert.Equal(t, 1, strings.Count(q.Prompt, BlankMarker),
				"prompt %q should contain exactly one blank (seed %d)", q.Prompt, seed)
		}
	}
}

func TestGenerateCountBound(t *testing.T) {
	g := NewSeededGenerator(animalAnnotator(), 42)

	// Three noun-bearing sentences satisfy a request for three.
	set, err := g.Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	// A request for more than the document holds comes back short.
	set, err = g.Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestGenerateSkipsNounlessSentences(t *testing.T) {
	// The middle sentence has no tagged nouns and must vanish silently.
	ann := &fakeAnnotator{nouns: nounSet("cat", "mat", "bird", "mountain")}
	text := "The cat sat on the mat quietly. " +
		"Everything kept going along smoothly there. " +
		"The bird flew over the mountain yesterday."

	g := NewSeededGenerator(ann, 7)
	set, err := g.Generate(context.Background(), GenerationRequest{Text: text, NumQuestions: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestGenerateEmptyInput(t *testing.T) {
	g := NewSeededGenerator(animalAnnotator(), 1)
	set, err := g.Generate(context.Background(), GenerationRequest{Text: "", NumQuestions: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, set.ID)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 5, set.Requested)
}

func TestGenerateDistractorBackfill(t *testing.T) {
	// Both document nouns sit in the one sentence, so the common pool
	// offers zero distractors and all three come from the generic list.
	ann := &fakeAnnotator{nouns: nounSet("cat", "mat")}
	text := "The cat sat down on the mat."

	for seed := int64(1); seed <= 20; seed++ {
		g := NewSeededGenerator(ann, seed)
		set, err := g.Generate(context.Background(), GenerationRequest{Text: text, NumQuestions: 1})
		require.NoError(t, err)
		require.Equal(t, 1, set.Len())

		q := set.Questions[0]
		require.Len(t, q.Options, 4)
		generic := 0
		for _, opt := range q.Options {
			if opt == q.Answer {
				continue
			}
			assert.Contains(t, genericDistractors, opt)
			generic++
		}
		assert.Equal(t, 3, generic)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	first, err := NewSeededGenerator(animalAnnotator(), 99).
		Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
	require.NoError(t, err)

	second, err := NewSeededGenerator(animalAnnotator(), 99).
		Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
	require.NoError(t, err)

	assert.Equal(t, first.Questions, second.Questions)
	assert.Equal(t, first.ID, second.ID)
}

func TestGenerateAnnotatorErrorPropagates(t *testing.T) {
	ann := &fakeAnnotator{err: errors.New("annotator down")}
	g := NewSeededGenerator(ann, 1)

	_, err := g.Generate(context.Background(), GenerationRequest{Text: animalText, NumQuestions: 3})
	assert.Error(t, err)
}

func TestGenerateNormalizesBeforeSelection(t *testing.T) {
	messy := "The cat sat\n\non the   mat in the house.\tThe dog ran through the garden near the river. " +
		"The bird flew over the mountain toward the forest."

	g := NewSeededGenerator(animalAnnotator(), 5)
	set, err := g.Generate(context.Background(), GenerationRequest{Text: messy, NumQuestions: 3})
	require.NoError(t, err)

	for _, q := range set.Questions {
		assert.NotContains(t, q.Prompt, "\n")
		assert.NotContains(t, q.Prompt, "\t")
		assert.NotContains(t, q.Prompt, "  ")
	}
}
