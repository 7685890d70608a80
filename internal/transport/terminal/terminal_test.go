package terminal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tg-quiz-webapp/internal/app"
	"tg-quiz-webapp/internal/client"
	"tg-quiz-webapp/internal/domain"
	"tg-quiz-webapp/internal/infra/memory"
	"tg-quiz-webapp/internal/miniapp"
	transport "tg-quiz-webapp/internal/transport/http"
)

func TestRunPlaysWholeQuiz(t *testing.T) {
	set := domain.QuestionSet{
		ID: "set-1",
		Questions: []domain.Question{
			{ID: 1, Question: "2+2?", Options: []string{"3", "4", "5"}, Answer: "4"},
			{ID: 2, Question: "Bits in a byte?", Options: []string{"4", "8"}, Answer: "8"},
		},
	}
	server := newBackend(t, set)

	var out bytes.Buffer
	msgs := miniapp.MessagesFor("en")
	term := New(&out, msgs, 555)
	ctrl := miniapp.NewController(client.NewAPIClient(server.URL, 5*time.Second), term, term, msgs)

	// B -> "4" (correct), next, 1 -> "4" (wrong), next, close from the summary
	input := strings.NewReader("B\n\n1\n\n\n")
	if err := Run(context.Background(), ctrl, term, input); err != nil {
		t.Fatalf("run: %v", err)
	}

	s := ctrl.Session()
	if s.Phase != miniapp.PhaseFinished || s.Correct != 1 || len(s.Records) != 2 {
		t.Fatalf("unexpected final session %+v", s)
	}
	if !term.closed {
		t.Fatalf("expected app closed")
	}
	text := out.String()
	for _, want := range []string{"2+2?", "✅ Correct!", "Correct answer: 8", "1/2  50%", "Not bad!", "Quiz finished! Result: 1/2 (50%)", "Questions answered: 2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunRejectsInvalidChoice(t *testing.T) {
	server := newBackend(t, domain.DefaultQuestionSet())

	var out bytes.Buffer
	msgs := miniapp.MessagesFor("en")
	term := New(&out, msgs, 0)
	ctrl := miniapp.NewController(client.NewAPIClient(server.URL, 5*time.Second), term, term, msgs)

	if err := Run(context.Background(), ctrl, term, strings.NewReader("Z\n:close\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "pick A-D") {
		t.Fatalf("expected hint, got:\n%s", out.String())
	}
	if ctrl.Session().Index != 0 || !term.closed {
		t.Fatalf("expected to stay on first question and close, got %+v", ctrl.Session())
	}
	if ctrl.UserID() != miniapp.DefaultUserID {
		t.Fatalf("expected default user, got %d", ctrl.UserID())
	}
}

func TestRunReportsLoadFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	var out bytes.Buffer
	msgs := miniapp.MessagesFor("en")
	term := New(&out, msgs, 1)
	ctrl := miniapp.NewController(client.NewAPIClient(server.URL, time.Second), term, term, msgs)

	if err := Run(context.Background(), ctrl, term, strings.NewReader("")); err == nil {
		t.Fatalf("expected load error")
	}
	if !strings.Contains(out.String(), "Failed to load questions") {
		t.Fatalf("expected inline error, got:\n%s", out.String())
	}
}

func newBackend(t *testing.T, set domain.QuestionSet) *httptest.Server {
	t.Helper()
	repo := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(set), time.Minute)
	service := app.NewQuizService(repo, memory.NewProgressStore(), set.ID)
	mux := http.NewServeMux()
	transport.NewAPIHandler(service).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunUsesLocalizedPrompts(t *testing.T) {
	set := domain.QuestionSet{
		ID: "set-1",
		Questions: []domain.Question{
			{ID: 1, Question: "2+2?", Options: []string{"3", "4", "5"}, Answer: "4"},
		},
	}
	server := newBackend(t, set)

	var out bytes.Buffer
	msgs := miniapp.MessagesFor("ru")
	term := New(&out, msgs, 7)
	ctrl := miniapp.NewController(client.NewAPIClient(server.URL, 5*time.Second), term, term, msgs)

	if err := Run(context.Background(), ctrl, term, strings.NewReader("Z\nB\n\n\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"выберите A-C", "(enter: следующий вопрос)", "(r: пройти заново, enter: закрыть)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	for _, unwanted := range []string{"pick A-", "(enter: next)", "restart"} {
		if strings.Contains(text, unwanted) {
			t.Fatalf("output has untranslated %q:\n%s", unwanted, text)
		}
	}
}
