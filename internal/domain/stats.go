package domain

import "math"

// NewUserStats derives accuracy (percent, one decimal) from raw counters.
func NewUserStats(total, correct int) UserStats {
	stats := UserStats{TotalQuestions: total, CorrectAnswers: correct}
	if total > 0 {
		stats.Accuracy = math.Round(float64(correct)/float64(total)*1000) / 10
	}
	return stats
}

// DefaultQuestionSet is served when no other question source is configured.
func DefaultQuestionSet() QuestionSet {
	return QuestionSet{
		ID: "default",
		Questions: []Question{
			{ID: 1, Question: "Что такое Python?", Answer: "язык программирования", Options: []string{"язык программирования", "змея", "фрукт", "игра"}},
			{ID: 2, Question: "Сколько будет 2 + 2?", Answer: "4", Options: []string{"3", "4", "5", "6"}},
			{ID: 3, Question: "Столица России?", Answer: "москва", Options: []string{"москва", "питер", "казань", "сочи"}},
			{ID: 4, Question: "Что означает HTML?", Answer: "hypertext markup language", Options: []string{"hypertext markup language", "home tool markup language", "hyperlinks and text markup language", "hyperlinking text markup language"}},
			{ID: 5, Question: "Какой год сейчас?", Answer: "2025", Options: []string{"2023", "2024", "2025", "2026"}},
		},
	}
}
