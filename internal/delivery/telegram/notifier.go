package telegram

import (
	"fmt"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// SendReminder delivers a due-cards reminder to chatID. The previous
// reminder of the chat, if still shown, is replaced.
func (h *Handler) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	msg := newMessage(chatID, buildReminderNotification(payload))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	if prev, ok := h.reminders.Take(chatID); ok {
		h.deleteMessage(chatID, prev.MessageID)
	}
	h.reminders.Store(chatID, sent.MessageID, h.now())

	return nil
}
