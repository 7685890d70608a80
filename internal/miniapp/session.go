package miniapp

import "tg-quiz-webapp/internal/domain"

// Phase is the position of a session in the quiz state machine.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePresenting
	PhaseSubmitting
	PhaseAnswered
	PhaseFinished
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Session is one pass through the question list. Transitions return a new
// value; the question list is shared and never mutated.
type Session struct {
	Questions []domain.Question
	Index     int
	Correct   int
	Records   []domain.AnswerRecord
	Phase     Phase
}

func newSession(questions []domain.Question) Session {
	return Session{Questions: questions, Phase: PhasePresenting}
}

func (s Session) Total() int {
	return len(s.Questions)
}

// Current returns the question at Index, false once every question is done.
func (s Session) Current() (domain.Question, bool) {
	if s.Index >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.Index], true
}

func (s Session) withPhase(p Phase) Session {
	s.Phase = p
	return s
}

func (s Session) withVerdict(rec domain.AnswerRecord) Session {
	s.Records = append(s.Records[:len(s.Records):len(s.Records)], rec)
	if rec.IsCorrect {
		s.Correct++
	}
	s.Phase = PhaseAnswered
	return s
}

func (s Session) advance() Session {
	s.Index++
	s.Phase = PhasePresenting
	return s
}

func (s Session) reset() Session {
	return newSession(s.Questions)
}
