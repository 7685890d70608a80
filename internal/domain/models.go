package domain

import "time"

// Question is a single-choice quiz question. Answer holds the text of the
// correct option.
type Question struct {
	ID       int      `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// QuestionSet is an ordered list of questions served together.
type QuestionSet struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Submission is the answer a user sends for one question.
type Submission struct {
	UserID     int64  `json:"user_id"`
	QuestionID int    `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// Verdict is the backend judgment for a submission. CorrectAnswer is only set
// when the answer was wrong.
type Verdict struct {
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer *string `json:"correct_answer"`
}

// AnswerRecord is kept by the client for every answered question.
type AnswerRecord struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}

// ProgressEntry is one row of the server-side answer log.
type ProgressEntry struct {
	UserID     int64
	QuestionID int
	UserAnswer string
	IsCorrect  bool
	AnsweredAt time.Time
}

// UserStats aggregates every answer a user has given.
type UserStats struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}
