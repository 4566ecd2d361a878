package mcqgenerator

import (
	"context"
	"fmt"
)

// SessionState tracks where a Session is in the answer/submit
// lifecycle.
type SessionState string

const (
	// StateIdle means no QuestionSet has been generated yet.
	StateIdle SessionState = "idle"
	// StateActive means a QuestionSet exists and has not been graded.
	StateActive SessionState = "active"
	// StateGraded means answers were submitted and a score computed.
	StateGraded SessionState = "graded"
)

// Session owns the interactive state around one QuestionSet: the set
// itself, the user's current selections, and the score once graded.
// It is single-user and not safe for concurrent use.
type Session struct {
	generator *Generator
	state     SessionState
	set       *QuestionSet
	responses []string
	score     int
}

// NewSession creates an idle session around a generator.
func NewSession(generator *Generator) *Session {
	return &Session{
		generator: generator,
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Set returns the current QuestionSet, or nil while idle.
func (s *Session) Set() *QuestionSet {
	return s.set
}

// Responses returns the user's current selections, indexed by
// question position; unanswered entries are empty strings.
func (s *Session) Responses() []string {
	return s.responses
}

// Score returns the grade computed by the last Submit. Only
// meaningful in the graded state.
func (s *Session) Score() int {
	return s.score
}

// Generate runs the full pipeline over text, replaces any existing
// QuestionSet, clears all responses, and moves the session to the
// active state. Empty input or a document yielding zero usable
// sentences still activates the session, just with zero questions.
func (s *Session) Generate(ctx context.Context, text string, numQuestions int) (*QuestionSet, error) {
	set, err := s.generator.Generate(ctx, GenerationRequest{Text: text, NumQuestions: numQuestions})
	if err != nil {
		return nil, err
	}

	s.set = set
	s.responses = make([]string, len(set.Questions))
	s.score = 0
	s.state = StateActive
	return set, nil
}

// RecordAnswer overwrites the selection for one question. Valid in
// the active and graded states; it never changes state on its own.
func (s *Session) RecordAnswer(index int, option string) error {
	if s.state == StateIdle {
		return fmt.Errorf("no question set: session is idle")
	}
	if index < 0 || index >= len(s.responses) {
		return fmt.Errorf("question index %d out of range [0,%d)", index, len(s.responses))
	}
	s.responses[index] = option
	return nil
}

// Submit grades the recorded answers against the QuestionSet and
// moves the session to the graded state. Valid only while active.
func (s *Session) Submit() (int, error) {
	if s.state != StateActive {
		return 0, fmt.Errorf("cannot submit from %s state", s.state)
	}
	s.score = ScoreResponses(s.set, s.responses)
	s.state = StateGraded
	return s.score, nil
}
