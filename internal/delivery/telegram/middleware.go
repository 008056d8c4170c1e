package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// ProfileHandlerFunc handles a command for the profile bound to the chat.
type ProfileHandlerFunc func(ctx context.Context, chatID int64, profile *entities.Profile) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if service.IsSaveWarning(err) {
			h.logger.Warn("changes not saved",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgSaveWarning)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// withProfile resolves the profile bound to the chat and asks the user to
// /start when there is none.
func (h *Handler) withProfile(fn ProfileHandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		profile, err := h.profileService.GetByChat(ctx, chatID)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				h.send(newPlainMessage(chatID, msgNoProfile))
				return nil
			}
			return err
		}
		return fn(ctx, chatID, profile)
	}
}
