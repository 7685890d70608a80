package domain

import "errors"

var (
	// ErrQuestionSetNotFound indicates the question set could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidSubmission is returned when user_id or question_id is missing.
	ErrInvalidSubmission = errors.New("missing user_id or question_id")
)
