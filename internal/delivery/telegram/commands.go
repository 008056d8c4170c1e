package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/service"
)

// handleStart binds a profile to the chat and greets the learner.
func (h *Handler) handleStart(name string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		profile, created, err := h.profileService.EnsureForChat(ctx, chatID, name)
		if err != nil {
			return err
		}

		if created {
			h.logger.Info("new learner",
				zap.Int64("chat_id", chatID),
				zap.String("profile_id", profile.ID),
			)
		}

		h.send(newMessage(chatID, buildWelcomeMessage(profile.Name, created)))
		return nil
	}
}

// handleAdd saves a word sent as "word - translation [- context]".
func (h *Handler) handleAdd(args string) ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		in, ok := parseWordInput(args)
		if !ok {
			h.send(newPlainMessage(chatID, msgUseAdd))
			return nil
		}

		item, created, err := h.vocabService.SaveWord(ctx, profile.ID, in)
		if err != nil {
			if errors.Is(err, service.ErrEmptyWord) {
				h.send(newPlainMessage(chatID, msgUseAdd))
				return nil
			}
			return err
		}

		text := fmt.Sprintf("%s %s - %s", md("✅ Saved:"), bold(item.Word), md(item.Translation))
		if !created {
			text = fmt.Sprintf("%s %s - %s", md("✏️ Updated:"), bold(item.Word), md(item.Translation))
		}

		h.send(newMessage(chatID, text))
		return nil
	}
}

// handleReview starts a review session with the first due card.
func (h *Handler) handleReview() ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		return h.startReview(ctx, chatID, profile.ID)
	}
}

func (h *Handler) startReview(ctx context.Context, chatID int64, profileID string) error {
	if msg, ok := h.reminders.Take(chatID); ok {
		h.deleteMessage(chatID, msg.MessageID)
	}

	text, kb, ok, err := h.renderNextCard(ctx, profileID)
	if err != nil {
		return err
	}

	if !ok {
		h.send(newPlainMessage(chatID, msgNothingDue))
		return nil
	}

	h.sessions.Start(chatID, h.now())

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb
	h.send(msg)
	return nil
}

func (h *Handler) handleWords() ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		items, err := h.vocabService.List(ctx, profile.ID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			h.send(newPlainMessage(chatID, msgNoWords))
			return nil
		}

		h.send(newMessage(chatID, formatWordsList(items)))
		return nil
	}
}

func (h *Handler) handleDelete(args string) ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		if args == "" {
			h.send(newPlainMessage(chatID, msgUseDelete))
			return nil
		}

		if err := h.vocabService.DeleteWord(ctx, profile.ID, args); err != nil {
			if errors.Is(err, service.ErrWordNotFound) {
				h.send(newPlainMessage(chatID, msgWordNotFound))
				return nil
			}
			return err
		}

		h.send(newMessage(chatID, md("🗑 Deleted: ")+bold(args)))
		return nil
	}
}

func (h *Handler) handleStats() ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		text, kb, err := h.renderStats(ctx, profile.ID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleLevel() ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		text, kb, err := h.renderLevel(ctx, profile.ID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// handleRead counts an article as read and runs the level-up check.
func (h *Handler) handleRead(args string) ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		if args == "" {
			h.send(newPlainMessage(chatID, msgUseRead))
			return nil
		}

		read, err := h.profileService.IsArticleRead(ctx, profile.ID, args)
		if err != nil {
			return err
		}
		if read {
			h.send(newPlainMessage(chatID, msgAlreadyRead))
			return nil
		}

		added, err := h.profileService.MarkArticleRead(ctx, profile.ID, args)
		if err != nil {
			return err
		}

		// counted by a concurrent /read
		if !added {
			h.send(newPlainMessage(chatID, msgAlreadyRead))
			return nil
		}

		h.send(newMessage(chatID, md("📖 Article counted: ")+bold(args)))

		levelUp, err := h.progressService.CheckLevelUp(ctx, profile.ID)
		if levelUp != nil {
			h.send(newMessage(chatID, formatLevelUp(levelUp)))
		}
		return err
	}
}

func (h *Handler) handleGoal(args string) ProfileHandlerFunc {
	return func(ctx context.Context, chatID int64, profile *entities.Profile) error {
		goal, err := strconv.Atoi(args)
		if err != nil || goal <= 0 {
			h.send(newPlainMessage(chatID, msgUseGoal))
			return nil
		}

		if err := h.profileService.SetDailyGoal(ctx, profile.ID, goal); err != nil {
			return err
		}

		h.send(newMessage(chatID, md(fmt.Sprintf("🎯 Daily goal set to %d words.", goal))))
		return nil
	}
}

// parseWordInput parses "word - translation [- context]".
func parseWordInput(args string) (service.WordInput, bool) {
	parts := strings.SplitN(args, " - ", 3)
	if len(parts) < 2 {
		return service.WordInput{}, false
	}

	in := service.WordInput{
		Word:        strings.TrimSpace(parts[0]),
		Translation: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		in.Context = strings.TrimSpace(parts[2])
	}

	if in.Word == "" || in.Translation == "" {
		return service.WordInput{}, false
	}

	return in, true
}
