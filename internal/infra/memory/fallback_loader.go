package memory

import (
	"context"
	"errors"

	"tg-quiz-webapp/internal/domain"
)

// FallbackQuestionLoader serves from secondary when primary has no such set,
// e.g. a freshly migrated but unseeded database.
type FallbackQuestionLoader struct {
	primary   QuestionLoader
	secondary QuestionLoader
}

func NewFallbackQuestionLoader(primary, secondary QuestionLoader) *FallbackQuestionLoader {
	return &FallbackQuestionLoader{primary: primary, secondary: secondary}
}

func (l *FallbackQuestionLoader) LoadQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	set, err := l.primary.LoadQuestionSet(ctx, setID)
	if errors.Is(err, domain.ErrQuestionSetNotFound) {
		return l.secondary.LoadQuestionSet(ctx, setID)
	}
	return set, err
}
