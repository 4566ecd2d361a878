package mcqgenerator

import (
	"context"
	"strings"
)

const (
	// minSentenceChars filters out fragments too short to blank a noun
	// from. Applies to annotator output and the punctuation fallback.
	minSentenceChars = 10

	// minChunkChars filters chunk-derived sentences, which carry no
	// punctuation signal and need a slightly higher bar.
	minChunkChars = 20

	// minChunkWords is the floor on chunk size in words.
	minChunkWords = 10
)

// selectSentences produces the candidate sentence pool for a
// generation request over already-normalized text. Three tiers are
// tried in order, each only if the previous one yields fewer than
// numQuestions sentences: annotator segmentation, then splitting on
// sentence-ending punctuation, then fixed-size word chunking. A tier's
// output replaces the previous tier's entirely; tiers never merge.
// The result may still hold fewer than numQuestions entries for very
// short documents, which callers handle by generating fewer questions.
func (g *Generator) selectSentences(ctx context.Context, text string, numQuestions int) ([]string, error) {
	annotated, err := g.annotator.Sentences(ctx, text)
	if err != nil {
		return nil, err
	}

	sentences := filterSentences(annotated, minSentenceChars)

	if len(sentences) < numQuestions {
		VerboseLog("annotator yielded %d sentences, need %d; splitting on punctuation", len(sentences), numQuestions)
		sentences = filterSentences(splitOnPunctuation(text), minSentenceChars)
	}

	if len(sentences) < numQuestions {
		VerboseLog("punctuation split yielded %d sentences, need %d; chunking words", len(sentences), numQuestions)
		sentences = chunkWords(text, numQuestions)
	}

	return sentences, nil
}

// filterSentences trims each span and keeps those longer than minChars.
func filterSentences(spans []string, minChars int) []string {
	var out []string
	for _, span := range spans {
		trimmed := strings.TrimSpace(span)
		if len(trimmed) > minChars {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitOnPunctuation splits text on sentence-ending punctuation,
// ignoring any structure the annotator saw.
func splitOnPunctuation(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// chunkWords is the last-resort splitter: it slices the text into
// consecutive word chunks of max(minChunkWords, words/numQuestions)
// words each, keeps chunks longer than minChunkChars, and caps the
// result at numQuestions.
func chunkWords(text string, numQuestions int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunkSize := len(words) / numQuestions
	if chunkSize < minChunkWords {
		chunkSize = minChunkWords
	}

	var chunks []string
	for i := 0; i < len(words); i += chunkSize {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if len(chunk) > minChunkChars {
			chunks = append(chunks, chunk)
		}
		if len(chunks) == numQuestions {
			break
		}
	}
	return chunks
}
