package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"wordbook/internal/domain"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	// If not authorized, treat the message as a password attempt
	if !authorized {
		if h.authService.CheckPassword(text) {
			if err := h.authService.AuthorizeUser(userID); err != nil {
				h.logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
		}

		// Wrong password
		return c.Send("That's not it. Try again:")
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateAwaitingDefinition:
		// User sent the definition, save the pair
		word := state.Word
		definition := text

		if err := h.entryService.SaveEntry(userID, word, definition); err != nil {
			h.logger.Error("Failed to save entry",
				zap.Error(err),
				zap.Int64("user_id", userID),
			)
			return c.Send("Could not save the entry. Please try again.")
		}

		h.logger.Info("Entry saved",
			zap.Int64("user_id", userID),
			zap.String("word", word),
		)

		// Reset to waiting for the next word
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingWord})

		return c.Send("✅ Saved!\n\nSend the next word, or go back with /start")

	case domain.StateAwaitingImport:
		// Waiting for a file, not text
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		return c.Send("I'm waiting for a .csv file. Send one, or cancel.", cancelMarkup)

	default:
		// Idle or awaiting a word: the message is the word, ask for its definition
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		h.SetState(userID, &domain.StateData{
			State: domain.StateAwaitingDefinition,
			Word:  text,
		})

		return c.Send("Now send the definition", cancelMarkup)
	}
}
