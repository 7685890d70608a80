package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"tg-quiz-webapp/internal/domain"
)

// QuestionLoader reads question sets from a YAML document of the form
//
//	sets:
//	  - id: default
//	    questions:
//	      - {id: 1, question: "2 + 2?", options: ["3", "4"], answer: "4"}
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

type document struct {
	Sets []domain.QuestionSet `yaml:"sets"`
}

func (l *QuestionLoader) LoadQuestionSet(_ context.Context, setID string) (domain.QuestionSet, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("read questions file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("parse questions file: %w", err)
	}
	for _, set := range doc.Sets {
		if set.ID != setID {
			continue
		}
		if err := validate(set); err != nil {
			return domain.QuestionSet{}, err
		}
		return set, nil
	}
	return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
}

// validate rejects questions whose answer is not one of the options.
func validate(set domain.QuestionSet) error {
	seen := make(map[int]struct{}, len(set.Questions))
	for _, q := range set.Questions {
		if q.ID == 0 {
			return fmt.Errorf("set %s: question %q has no id", set.ID, q.Question)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("set %s: duplicate question id %d", set.ID, q.ID)
		}
		seen[q.ID] = struct{}{}

		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("set %s: answer of question %d is not among its options", set.ID, q.ID)
		}
	}
	return nil
}
