package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tg-quiz-webapp/internal/miniapp"
)

// Terminal renders the mini-app as text and plays the host role for a local run.
type Terminal struct {
	out    io.Writer
	msgs   miniapp.Messages
	userID int64

	options []string
	button  miniapp.MainButton
	closed  bool
}

// New returns a terminal adapter. A zero userID lets the controller fall back to its default.
func New(out io.Writer, msgs miniapp.Messages, userID int64) *Terminal {
	return &Terminal{out: out, msgs: msgs, userID: userID}
}

func (t *Terminal) RenderQuestion(q miniapp.QuestionView) {
	t.options = q.Options
	const width = 20
	filled := int(q.Progress / 100 * width)
	fmt.Fprintf(t.out, "\n[%s%s] %d/%d\n", strings.Repeat("#", filled), strings.Repeat(".", width-filled), q.Number, q.Total)
	fmt.Fprintf(t.out, "%s\n\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(t.out, "  %c. %s\n", 'A'+i, opt)
	}
	fmt.Fprintln(t.out)
}

func (t *Terminal) SetOptionsEnabled(bool) {}

func (t *Terminal) MarkOption(option string, correct bool) {
	mark := "✗"
	if correct {
		mark = "✓"
	}
	fmt.Fprintf(t.out, "  %s %s\n", mark, option)
}

func (t *Terminal) RenderResult(r miniapp.ResultView) {
	fmt.Fprintln(t.out, r.Message)
	if !r.Correct {
		fmt.Fprintf(t.out, "%s %s\n", t.msgs.CorrectIs, r.CorrectAnswer)
	}
	fmt.Fprintln(t.out, t.msgs.NextHint)
}

func (t *Terminal) RenderSummary(s miniapp.Scorecard) {
	fmt.Fprintf(t.out, "\n%d/%d  %d%%\n%s %s\n", s.Correct, s.Total, s.Percentage, s.Tier.Emoji, s.Tier.Message)
	if s.Overall != nil {
		fmt.Fprintf(t.out, "\n%s\n%s %d\n%s %d\n%s %v%%\n",
			t.msgs.OverallTitle,
			t.msgs.Answered, s.Overall.TotalQuestions,
			t.msgs.RightAnswers, s.Overall.CorrectAnswers,
			t.msgs.Accuracy, s.Overall.Accuracy)
	}
	fmt.Fprintln(t.out, t.msgs.SummaryHint)
}

func (t *Terminal) RenderLoadError(message string) {
	fmt.Fprintln(t.out, message)
}

func (t *Terminal) Expand() {}

func (t *Terminal) Ready() {}

func (t *Terminal) Alert(text string) {
	fmt.Fprintf(t.out, "\n*** %s ***\n", text)
}

func (t *Terminal) Close() {
	t.closed = true
}

func (t *Terminal) SetMainButton(b miniapp.MainButton) {
	t.button = b
}

func (t *Terminal) UserID() (int64, bool) {
	return t.userID, t.userID != 0
}

// Run loads the quiz and feeds input lines to the controller until the app is closed or input ends.
func Run(ctx context.Context, ctrl *miniapp.Controller, t *Terminal, in io.Reader) error {
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for !t.closed && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ":close" && t.button.OnClick != nil {
			t.button.OnClick()
			continue
		}

		switch ctrl.Session().Phase {
		case miniapp.PhasePresenting:
			option, ok := t.choice(line)
			if !ok {
				fmt.Fprintf(t.out, t.msgs.PickFmt+"\n", 'A'+len(t.options)-1)
				continue
			}
			// submit failures are alerted by the controller; the user may pick again
			_ = ctrl.Select(ctx, option)
		case miniapp.PhaseAnswered:
			if err := ctrl.Next(ctx); err != nil {
				return err
			}
		case miniapp.PhaseFinished:
			if strings.EqualFold(line, "r") {
				if err := ctrl.Restart(ctx); err != nil {
					return err
				}
				continue
			}
			ctrl.Close()
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// choice accepts a letter (A, b, ...) or a 1-based number.
func (t *Terminal) choice(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	idx := -1
	if n, err := strconv.Atoi(line); err == nil {
		idx = n - 1
	} else if len(line) == 1 {
		idx = int(strings.ToUpper(line)[0] - 'A')
	}
	if idx < 0 || idx >= len(t.options) {
		return "", false
	}
	return t.options[idx], true
}
