package handler

import (
	"sync"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"wordbook/internal/domain"
	"wordbook/internal/service"
)

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	authService     *service.AuthService
	entryService    *service.EntryService
	transferService *service.TransferService
	logger          *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks so rapid taps on the same button don't interleave
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	entryService *service.EntryService,
	transferService *service.TransferService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		authService:     authService,
		entryService:    entryService,
		transferService: transferService,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
		callbackLocks:   make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// File uploads (CSV import)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnBrowseDays, h.handleBrowseDays)
	h.bot.Handle(&btnQuiz, h.handleQuiz)
	h.bot.Handle(&btnExport, h.handleExport)
	h.bot.Handle(&btnImport, h.handleImportPrompt)
	h.bot.Handle(&btnConfirmImport, h.handleConfirmImport)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnAnother, h.handleQuiz)
	h.bot.Handle(&btnBack, h.handleStart)
	h.bot.Handle(&btnBackToDays, h.handleBrowseDays)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// userLock returns the per-user mutex, creating it on first use
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnBrowseDays = tele.Btn{
		Unique: "browse_days",
		Text:   "📅 Browse days",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎲 Quiz me",
	}
	btnExport = tele.Btn{
		Unique: "export",
		Text:   "📤 Export CSV",
	}
	btnImport = tele.Btn{
		Unique: "import",
		Text:   "📥 Import CSV",
	}
	btnConfirmImport = tele.Btn{
		Unique: "confirm_import",
		Text:   "✅ Replace everything",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnAnother = tele.Btn{
		Unique: "another",
		Text:   "🔄 Another",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
	btnBackToDays = tele.Btn{
		Unique: "back_to_days",
		Text:   "◀️ To days",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

const mainMenuText = "🏠 Main menu\n\nWhat would you like to do?"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnBrowseDays),
		menu.Row(btnQuiz),
		menu.Row(btnExport, btnImport),
	)
	return menu
}
