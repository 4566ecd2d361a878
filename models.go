package mcqgenerator

import "time"

// BlankMarker is the placeholder substituted for the answer noun in a
// question prompt.
const BlankMarker = "______"

// Question is a single fill-in-the-blank multiple choice question.
type Question struct {
	Prompt  string   `json:"prompt"`  // sentence text with the answer blanked out
	Options []string `json:"options"` // exactly 4 options in presentation order
	Answer  string   `json:"answer"`  // the blanked noun, always one of Options
}

// QuestionSet is the ordered output of one generation request. It is
// immutable once created; regenerating replaces it wholesale.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	Requested int        `json:"requested"` // question count the caller asked for
	CreatedAt time.Time  `json:"created_at"`
}

// Len returns the number of questions actually generated, which may be
// fewer than Requested when the source text is short or noun-poor.
func (qs *QuestionSet) Len() int {
	return len(qs.Questions)
}

// GenerationRequest represents a request to generate questions from a
// block of source text.
type GenerationRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"num_questions"`
}

// ScoreResponses counts how many responses match their question's
// answer. Responses is indexed by question position; unanswered
// entries are empty strings and never match.
func ScoreResponses(set *QuestionSet, responses []string) int {
	score := 0
	for i, q := range set.Questions {
		if i < len(responses) && responses[i] == q.Answer {
			score++
		}
	}
	return score
}
