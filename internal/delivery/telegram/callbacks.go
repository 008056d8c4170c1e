package telegram

import (
	"context"
	"errors"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	profile, err := h.profileService.GetByChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			h.answerCallback(cb.ID, msgNoProfile)
			return
		}
		h.logger.Error("failed to get profile for callback",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, msgInternalError)
		return
	}

	var toast string
	switch data.Action {
	case actionReveal:
		toast, err = h.handleRevealCallback(ctx, cb, profile, data)
	case actionGrade:
		toast, err = h.handleGradeCallback(ctx, cb, profile, data)
	case actionReview:
		err = h.startReview(ctx, chatID, profile.ID)
	case actionStats:
		err = h.editRendered(cb, func() (string, tgbotapi.InlineKeyboardMarkup, error) {
			return h.renderStats(ctx, profile.ID)
		})
	case actionLevel:
		err = h.editRendered(cb, func() (string, tgbotapi.InlineKeyboardMarkup, error) {
			return h.renderLevel(ctx, profile.ID)
		})
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// handleRevealCallback turns the card over and shows the grade buttons.
func (h *Handler) handleRevealCallback(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	profile *entities.Profile,
	data callbackData,
) (string, error) {
	if len(data.Params) != 1 {
		return msgCardNotFound, nil
	}
	itemID := data.Params[0]

	items, err := h.vocabService.List(ctx, profile.ID)
	if err != nil {
		return "", err
	}

	i := slices.IndexFunc(items, func(it entities.VocabularyItem) bool { return it.ID == itemID })
	if i < 0 {
		return msgCardNotFound, nil
	}

	kb := buildGradeKeyboard(itemID)
	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatCardBack(items[i]))
	edit.ReplyMarkup = &kb
	h.send(edit)

	return "", nil
}

// handleGradeCallback grades the card, reports the new schedule and moves
// on to the next due card or to the session summary.
func (h *Handler) handleGradeCallback(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	profile *entities.Profile,
	data callbackData,
) (string, error) {
	chatID := cb.Message.Chat.ID

	itemID, grade, err := parseGradeCallback(data)
	if err != nil {
		return msgInvalidGrade, nil
	}

	res, err := h.vocabService.Review(ctx, profile.ID, itemID, grade)
	saveWarning := service.IsSaveWarning(err)
	if err != nil && !saveWarning {
		switch {
		case errors.Is(err, service.ErrWordNotFound):
			return msgCardNotFound, nil
		case errors.Is(err, service.ErrNotDue):
			return msgCardNotDue, nil
		case errors.Is(err, service.ErrInvalidGrade):
			return msgInvalidGrade, nil
		default:
			return "", err
		}
	}

	now := h.now()
	h.sessions.Record(chatID, grade, now)

	h.send(newEdit(chatID, cb.Message.MessageID, formatReviewFeedback(res, now)))

	if saveWarning {
		h.logger.Warn("review not saved",
			zap.Int64("chat_id", chatID),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		h.send(newPlainMessage(chatID, msgSaveWarning))
	}

	if res.LevelUp != nil {
		h.send(newMessage(chatID, formatLevelUp(res.LevelUp)))
	}

	text, kb, ok, err := h.renderNextCard(ctx, profile.ID)
	if err != nil {
		return "", err
	}

	if ok {
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return "", nil
	}

	if session, ok := h.sessions.Finish(chatID); ok {
		msg := newMessage(chatID, formatSessionSummary(session))
		msg.ReplyMarkup = buildSessionResultKeyboard()
		h.send(msg)
	}

	return "", nil
}

// editRendered replaces the callback message with a freshly rendered screen.
func (h *Handler) editRendered(cb *tgbotapi.CallbackQuery, render func() (string, tgbotapi.InlineKeyboardMarkup, error)) error {
	text, kb, err := render()
	if err != nil {
		return err
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = &kb
	h.send(edit)
	return nil
}

func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Warn("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}
