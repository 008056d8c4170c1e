package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// renderStats renders the statistics screen of a profile.
func (h *Handler) renderStats(ctx context.Context, profileID string) (string, tgbotapi.InlineKeyboardMarkup, error) {
	st, err := h.progressService.CompleteStats(ctx, profileID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return formatStats(st), buildStatsKeyboard(), nil
}

// renderLevel renders progress towards the next level.
func (h *Handler) renderLevel(ctx context.Context, profileID string) (string, tgbotapi.InlineKeyboardMarkup, error) {
	profile, summary, ok, err := h.progressService.ProgressToNextLevel(ctx, profileID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	if !ok {
		return md(msgMaxLevel), buildStatsKeyboard(), nil
	}

	return formatLevelProgress(profile.Level(), summary), buildLevelKeyboard(), nil
}

// renderNextCard renders the front of the first due card. The boolean is
// false when nothing is due.
func (h *Handler) renderNextCard(ctx context.Context, profileID string) (string, tgbotapi.InlineKeyboardMarkup, bool, error) {
	items, due, err := h.vocabService.DueQueue(ctx, profileID, 1)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, false, err
	}

	if len(items) == 0 {
		return "", tgbotapi.InlineKeyboardMarkup{}, false, nil
	}

	return formatCardFront(items[0], due), buildRevealKeyboard(items[0].ID), true, nil
}
