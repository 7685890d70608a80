package miniapp

import "fmt"

// Messages holds the user-facing strings of one locale.
type Messages struct {
	LoadError    string
	SubmitError  string
	Correct      string
	Incorrect    string
	CorrectIs    string
	CloseButton  string
	FinishedFmt  string // correct, total, percentage
	OverallTitle string
	Answered     string
	RightAnswers string
	Accuracy     string
	NextHint     string
	SummaryHint  string
	PickFmt      string  // last option letter
	Tiers        [4]Tier // top, second, third, lowest
}

// Tier is the emoji/message pair shown for a score band.
type Tier struct {
	Emoji   string
	Message string
}

var locales = map[string]Messages{
	"ru": {
		LoadError:    "Ошибка загрузки вопросов",
		SubmitError:  "Ошибка отправки ответа. Попробуйте еще раз.",
		Correct:      "✅ Правильно!",
		Incorrect:    "❌ Неправильно!",
		CorrectIs:    "Правильный ответ:",
		CloseButton:  "Закрыть",
		FinishedFmt:  "Квиз завершен! Результат: %d/%d (%d%%)",
		OverallTitle: "📊 Общая статистика:",
		Answered:     "Всего вопросов отвечено:",
		RightAnswers: "Правильных ответов:",
		Accuracy:     "Общая точность:",
		NextHint:     "(enter: следующий вопрос)",
		SummaryHint:  "(r: пройти заново, enter: закрыть)",
		PickFmt:      "выберите A-%c",
		Tiers: [4]Tier{
			{"🎉", "Отлично!"},
			{"👍", "Хорошо!"},
			{"🤔", "Неплохо!"},
			{"😔", "Попробуй еще раз!"},
		},
	},
	"en": {
		LoadError:    "Failed to load questions",
		SubmitError:  "Failed to send the answer. Please try again.",
		Correct:      "✅ Correct!",
		Incorrect:    "❌ Wrong!",
		CorrectIs:    "Correct answer:",
		CloseButton:  "Close",
		FinishedFmt:  "Quiz finished! Result: %d/%d (%d%%)",
		OverallTitle: "📊 Overall stats:",
		Answered:     "Questions answered:",
		RightAnswers: "Correct answers:",
		Accuracy:     "Accuracy:",
		NextHint:     "(enter: next)",
		SummaryHint:  "(r: restart, enter: close)",
		PickFmt:      "pick A-%c",
		Tiers: [4]Tier{
			{"🎉", "Excellent!"},
			{"👍", "Good!"},
			{"🤔", "Not bad!"},
			{"😔", "Try again!"},
		},
	},
}

// DefaultLocale is used for unknown or empty locales.
const DefaultLocale = "ru"

// MessagesFor returns the catalog for a locale, falling back to DefaultLocale.
func MessagesFor(locale string) Messages {
	if m, ok := locales[locale]; ok {
		return m
	}
	return locales[DefaultLocale]
}

func (m Messages) finished(correct, total, percentage int) string {
	return fmt.Sprintf(m.FinishedFmt, correct, total, percentage)
}
