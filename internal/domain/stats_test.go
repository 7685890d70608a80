package domain

import "testing"

func TestNewUserStatsAccuracy(t *testing.T) {
	cases := []struct {
		total, correct int
		want           float64
	}{
		{0, 0, 0},
		{3, 1, 33.3},
		{3, 2, 66.7},
		{5, 5, 100},
	}
	for _, c := range cases {
		got := NewUserStats(c.total, c.correct)
		if got.Accuracy != c.want {
			t.Fatalf("accuracy(%d/%d) = %v, want %v", c.correct, c.total, got.Accuracy, c.want)
		}
	}
}

func TestDefaultQuestionSetIsSelfConsistent(t *testing.T) {
	set := DefaultQuestionSet()
	if len(set.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(set.Questions))
	}
	for i, q := range set.Questions {
		if q.ID != i+1 {
			t.Fatalf("question %d has id %d", i, q.ID)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
			}
		}
		if !found {
			t.Fatalf("answer %q of question %d is not an option", q.Answer, q.ID)
		}
	}
	if set.Questions[2].Question != "Столица России?" || set.Questions[2].Answer != "москва" {
		t.Fatalf("unexpected question 3: %+v", set.Questions[2])
	}
}
