package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tg-quiz-webapp/internal/config"
	"tg-quiz-webapp/internal/domain"
	"tg-quiz-webapp/internal/infra/file"
	"tg-quiz-webapp/internal/infra/memory"
)

func TestQuestionLoaderFallsBackToBuiltIn(t *testing.T) {
	var cfg config.Config
	cfg.Quiz.QuestionsFile = filepath.Join(t.TempDir(), "missing.yaml")
	cfg.Quiz.SetID = "weekly"

	loader := questionLoader(cfg, nil)
	if _, ok := loader.(*memory.StaticQuestionLoader); !ok {
		t.Fatalf("expected static loader, got %T", loader)
	}
	set, err := loader.LoadQuestionSet(context.Background(), "weekly")
	if err != nil {
		t.Fatalf("load built-in set: %v", err)
	}
	if len(set.Questions) != 5 {
		t.Fatalf("expected built-in questions, got %d", len(set.Questions))
	}
}

func TestQuestionLoaderUsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	doc := "sets:\n  - id: default\n    questions:\n      - {id: 1, question: \"q\", options: [\"a\", \"b\"], answer: \"a\"}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	var cfg config.Config
	cfg.Quiz.QuestionsFile = path

	if _, ok := questionLoader(cfg, nil).(*file.QuestionLoader); !ok {
		t.Fatalf("expected file loader")
	}
	set, err := fileOrDefaultQuestionSet(context.Background(), cfg)
	if err != nil {
		t.Fatalf("seed set: %v", err)
	}
	if set.ID != "default" || len(set.Questions) != 1 {
		t.Fatalf("unexpected seed set %+v", set)
	}
}

func TestEmptyDatabaseFallsBackToLocalQuestions(t *testing.T) {
	var cfg config.Config
	cfg.Quiz.QuestionsFile = filepath.Join(t.TempDir(), "missing.yaml")
	cfg.Quiz.SetID = "weekly"

	// An unseeded questions table reports the set as missing.
	loader := memory.NewFallbackQuestionLoader(emptyLoader{}, localQuestionLoader(cfg))
	set, err := loader.LoadQuestionSet(context.Background(), "weekly")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set.Questions) != 5 {
		t.Fatalf("expected built-in questions, got %d", len(set.Questions))
	}
}

type emptyLoader struct{}

func (emptyLoader) LoadQuestionSet(context.Context, string) (domain.QuestionSet, error) {
	return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
}

func TestBundledQuestionsFileMatchesBuiltIn(t *testing.T) {
	var cfg config.Config
	cfg.Quiz.QuestionsFile = filepath.Join("..", "..", "config", "questions.yaml")

	set, err := fileOrDefaultQuestionSet(context.Background(), cfg)
	if err != nil {
		t.Fatalf("load bundled file: %v", err)
	}
	if !reflect.DeepEqual(set, domain.DefaultQuestionSet()) {
		t.Fatalf("bundled questions drifted from built-in set:\n%+v\n%+v", set, domain.DefaultQuestionSet())
	}
}
