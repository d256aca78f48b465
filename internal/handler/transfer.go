package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"wordbook/internal/csv"
	"wordbook/internal/domain"
	"wordbook/internal/service"
)

// exportFileName is the name of the document sent on export
const exportFileName = "wordbook.csv"

// maxImportSize caps uploaded CSV files at 1 MiB
const maxImportSize = 1 << 20

// handleExport sends the user's whole wordbook as a CSV document
func (h *Handler) handleExport(c tele.Context) error {
	userID := c.Sender().ID

	blob, err := h.transferService.Export(userID)
	if errors.Is(err, service.ErrNothingToExport) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Your wordbook is empty, nothing to export",
			ShowAlert: true,
		})
	}
	if err != nil {
		h.logger.Error("Failed to export wordbook", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Export failed"})
	}

	h.logger.Info("Wordbook exported", zap.Int64("user_id", userID), zap.Int("bytes", len(blob)))

	doc := &tele.Document{
		File:     tele.FromReader(strings.NewReader(blob)),
		FileName: exportFileName,
		MIME:     csv.ContentType,
	}

	if c.Callback() != nil {
		if ackErr := c.Respond(); ackErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
		}
	}
	return c.Send(doc)
}

// handleImportPrompt asks the user for a CSV file
func (h *Handler) handleImportPrompt(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateAwaitingImport})

	text := "📥 Send me a CSV file with one word,definition pair per line.\n\n" +
		"Importing replaces your current wordbook."
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))

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

// handleDocument receives the uploaded CSV during an import
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}
	if !authorized {
		return c.Send(passwordPrompt)
	}

	state := h.GetState(userID)
	if state.State != domain.StateAwaitingImport {
		return c.Send("To import a wordbook, press the import button first.")
	}

	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".csv") {
		return c.Send("That doesn't look like a CSV file. Send a .csv file, or cancel.")
	}
	if int64(doc.FileSize) > maxImportSize {
		return c.Send("That file is too big to import.")
	}

	rc, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download import file", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Could not download the file. Please try again.")
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxImportSize+1))
	if err != nil {
		h.logger.Error("Failed to read import file", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Could not read the file. Please try again.")
	}
	if len(raw) > maxImportSize {
		return c.Send("That file is too big to import.")
	}

	blob := string(raw)

	count, err := h.entryService.CountEntries(userID)
	if err != nil {
		h.logger.Error("Failed to count entries", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Something went wrong. Please try again later.")
	}

	// A non-empty wordbook is only replaced after an explicit confirmation
	if count > 0 {
		h.SetState(userID, &domain.StateData{
			State:         domain.StateAwaitingImport,
			PendingImport: blob,
		})

		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnConfirmImport, btnCancel))

		return c.Send(
			fmt.Sprintf("⚠️ You already have %d entries. Importing deletes all of them. Continue?", count),
			markup,
		)
	}

	return h.importBlob(c, userID, blob)
}

// handleConfirmImport runs the import the user just confirmed
func (h *Handler) handleConfirmImport(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateAwaitingImport || state.PendingImport == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to confirm"})
	}

	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return h.importBlob(c, userID, state.PendingImport)
}

// importBlob decodes the blob and replaces the user's wordbook with it
func (h *Handler) importBlob(c tele.Context, userID int64, blob string) error {
	imported, err := h.transferService.Import(userID, blob)
	if errors.Is(err, service.ErrEmptyImport) {
		h.ResetState(userID)
		return c.Send("The file has no entries. Your wordbook was not changed.")
	}
	if err != nil {
		h.logger.Error("Failed to import wordbook", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Import failed. Your wordbook was not changed.")
	}

	h.logger.Info("Wordbook imported", zap.Int64("user_id", userID), zap.Int("entries", imported))

	h.ResetState(userID)
	return c.Send(fmt.Sprintf("✅ Imported %d entries!\n\n"+mainMenuText, imported), mainMenuMarkup())
}
