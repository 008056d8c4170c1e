package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// buildRevealKeyboard builds keyboard for the front of a card.
func buildRevealKeyboard(itemID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👀 Show answer", buildRevealCallback(itemID)),
		),
	)
}

// buildGradeKeyboard builds keyboard with the four review grades.
func buildGradeKeyboard(itemID string) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Grades))
	for _, g := range entities.Grades {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(gradeLabels[g], buildGradeCallback(itemID, g)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildReminderKeyboard builds keyboard attached to reminders.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start review", buildReviewCallback()),
		),
	)
}

// buildSessionResultKeyboard builds keyboard for the review summary screen.
func buildSessionResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", buildStatsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🎓 Level", buildLevelCallback()),
		),
	)
}

// buildStatsKeyboard builds keyboard for the statistics screen.
func buildStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildStatsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🎓 Level", buildLevelCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Review", buildReviewCallback()),
		),
	)
}

// buildLevelKeyboard builds keyboard for the level screen.
func buildLevelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildLevelCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", buildStatsCallback()),
		),
	)
}
