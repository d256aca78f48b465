package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"wordbook/internal/domain"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	// Log the error to understand why Edit failed
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Handle specific button callbacks by Unique first
	switch callback.Unique {
	case "browse_days", "back_to_days":
		return h.handleBrowseDays(c)
	case "quiz", "another":
		return h.handleQuiz(c)
	case "export":
		return h.handleExport(c)
	case "import":
		return h.handleImportPrompt(c)
	case "confirm_import":
		return h.handleConfirmImport(c)
	case "cancel":
		return h.handleCancel(c)
	case "back", "main_menu":
		return h.handleStart(c)
	}

	// If Unique is empty, try to handle by Data (for buttons with Unique that didn't come through)
	if callback.Unique == "" {
		switch data {
		case "browse_days", "back_to_days":
			return h.handleBrowseDays(c)
		case "quiz", "another":
			return h.handleQuiz(c)
		case "export":
			return h.handleExport(c)
		case "import":
			return h.handleImportPrompt(c)
		case "confirm_import":
			return h.handleConfirmImport(c)
		case "cancel":
			return h.handleCancel(c)
		case "back", "main_menu":
			return h.handleStart(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "page_"):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, "day_"):
		return h.handleDaySelection(c, data)
	case strings.HasPrefix(data, "reveal_"):
		return h.handleReveal(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// daysPage builds the text and keyboard for one page of the days list
func daysPage(days []domain.Day, page, totalPages int) (string, *tele.ReplyMarkup) {
	text := "📅 Your days:\n\n"
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, day := range days {
		btnText := fmt.Sprintf("%s (%d)", day.DisplayString(), day.EntryCount)
		btn := markup.Data(btnText, "day_"+day.DateString())
		rows = append(rows, markup.Row(btn))
	}

	// Add pagination buttons if needed
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	// Add back button
	rows = append(rows, markup.Row(btnBack))

	markup.Inline(rows...)
	return text, markup
}

// handleBrowseDays shows the first page of days with entries
func (h *Handler) handleBrowseDays(c tele.Context) error {
	userID := c.Sender().ID

	days, totalPages, err := h.entryService.GetDaysList(userID, 1)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load your days"})
	}

	if len(days) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no saved words yet",
			ShowAlert: true,
		})
	}

	text, markup := daysPage(days, 1, totalPages)

	// Edit message if callback, send new if command
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	userID := c.Sender().ID

	// Extract page number - trim whitespace first
	data = strings.TrimSpace(data)
	pageStr := strings.TrimPrefix(data, "page_")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad page number"})
	}

	days, totalPages, err := h.entryService.GetDaysList(userID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load your days"})
	}

	if len(days) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing here"})
	}

	text, markup := daysPage(days, page, totalPages)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// dayEntriesText renders all entries of one day as a numbered list
func dayEntriesText(entries []domain.Entry) string {
	text := fmt.Sprintf("📝 Entries for this day (%d):\n\n", len(entries))
	for i, e := range entries {
		text += fmt.Sprintf("%d. %s — %s\n\n", i+1, e.Word, e.Definition)
	}
	return text
}

// handleDaySelection shows entries for selected day
func (h *Handler) handleDaySelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	// Extract date - trim whitespace first, then remove prefix
	data = strings.TrimSpace(data)
	dateStr := strings.TrimPrefix(data, "day_")
	h.logger.Info("Handling day selection", zap.String("date", dateStr), zap.Int64("user_id", userID))

	entries, err := h.entryService.GetEntriesByDate(userID, dateStr)
	if err != nil {
		h.logger.Error("Failed to get entries by date", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load entries"})
	}

	if len(entries) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No entries for that day"})
	}

	text := dayEntriesText(entries)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnBackToDays, btnMainMenu),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// quizText shows only the word so the user can test themselves
func quizText(entry *domain.Entry) string {
	return fmt.Sprintf("🎲 Quiz time!\n\n📝 %s\n\nDo you remember the definition?", entry.Word)
}

// revealText shows the word together with its definition
func revealText(entry *domain.Entry) string {
	return fmt.Sprintf("🎲 Quiz time!\n\n📝 %s\n💡 %s", entry.Word, entry.Definition)
}

// handleQuiz shows a random word with its definition hidden
func (h *Handler) handleQuiz(c tele.Context) error {
	userID := c.Sender().ID

	// Serialize per user so rapid taps don't interleave
	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := h.entryService.GetRandomEntry(userID)
	if err != nil {
		h.logger.Error("Failed to get random entry", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load an entry"})
	}

	if entry == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no saved words yet",
			ShowAlert: true,
		})
	}

	text := quizText(entry)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("👀 Reveal", fmt.Sprintf("reveal_%d", entry.ID))),
		markup.Row(btnAnother),
		markup.Row(btnBack),
	)

	// Edit message if callback, send new if command
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleReveal uncovers the definition of a quizzed entry
func (h *Handler) handleReveal(c tele.Context, data string) error {
	userID := c.Sender().ID

	data = strings.TrimSpace(data)
	idStr := strings.TrimPrefix(data, "reveal_")
	entryID, err := strconv.Atoi(idStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad entry id"})
	}

	entry, err := h.entryService.GetEntryByID(userID, entryID)
	if err != nil {
		h.logger.Error("Failed to get entry", zap.Error(err), zap.Int("entry_id", entryID))
		return c.Respond(&tele.CallbackResponse{Text: "Could not load the entry"})
	}

	// The entry may be gone after an import replaced the wordbook
	if entry == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "That entry is gone",
			ShowAlert: true,
		})
	}

	text := revealText(entry)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnAnother),
		markup.Row(btnBack),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if err := c.Edit(mainMenuText, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(mainMenuText, mainMenuMarkup())
	}
	return c.Respond()
}
