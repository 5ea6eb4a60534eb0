package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nao1215/keywordstat/internal/export"
	"github.com/nao1215/keywordstat/internal/parser"
	"github.com/nao1215/keywordstat/internal/provider"
	"github.com/nao1215/keywordstat/internal/wordstat"
)

// User-facing message texts. The audience of a Wordstat bot is
// Russian-speaking, so the dialog is Russian even though the code is not.
const (
	welcomeText = "👋 Привет! Я бот для получения ключевых слов из Яндекс.Wordstat.\n\n" +
		"📝 Отправьте список ключевых слов:\n" +
		"• каждое слово с новой строки\n" +
		"• или через запятую\n\n" +
		"Пример:\n" +
		"купить iPhone\nкупить Samsung\nсмартфон недорого"
	frequencyPromptText = "Получить частотность из Яндекс.Wordstat?"
	limitPromptText     = "Сколько слов включить в результат?"
	processingText      = "⏳ Обрабатываю запрос...\nЭто может занять около минуты."
	cancelledText       = "❌ Операция отменена.\n\nОтправьте /start для начала работы."
	startHintText       = "Отправьте /start, чтобы начать работу."
	busyText            = "⏳ Предыдущий запрос ещё обрабатывается, подождите."
	chooseButtonText    = "Пожалуйста, выберите вариант кнопкой выше 👆"
	internalErrorText   = "❌ Что-то пошло не так. Попробуйте ещё раз: /start"
)

// resultFileName is the base name of the delivered document, without
// extension.
const resultFileName = "keywords"

// api is the subset of the Telegram client the handler needs. *tgbotapi.BotAPI
// satisfies it; tests substitute a recording fake.
type api interface {
	// Send delivers a message, document, or edit and returns the sent
	// message.
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)

	// Request performs a bare API call, used for callback answers.
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler processes Telegram updates and drives the keyword flow.
type Handler struct {
	// api delivers replies.
	api api

	// provider fetches keyword data.
	provider provider.Provider

	// exporter renders the result document.
	exporter export.Exporter

	// maxKeywords bounds the parsed phrase count.
	maxKeywords int

	// sessionTimeout bounds one fetch-and-export flow.
	sessionTimeout time.Duration

	// sessions holds per-chat flow state.
	sessions *sessionStore

	// logger receives handler events. Never nil after NewHandler.
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(a api, p provider.Provider, e export.Exporter, maxKeywords int, sessionTimeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		api:            a,
		provider:       p,
		exporter:       e,
		maxKeywords:    maxKeywords,
		sessionTimeout: sessionTimeout,
		sessions:       newSessionStore(),
		logger:         logger,
	}
}

// HandleUpdate routes one Telegram update. It holds the chat's dialog
// lock for the whole update, so updates from the same chat are handled in
// sequence and session fields are never touched by two goroutines at once.
// Any panic escaping the handler path is caught here, reported generically
// to the user, and the session is cleared so the user is never stranded
// mid-flow and one bad update cannot take the process down.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID, ok := updateChatID(update)
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("update handling panicked", "chatID", chatID, "panic", r)
			h.sessions.clear(chatID)
			h.sendText(chatID, internalErrorText)
		}
	}()

	lock := h.sessions.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch {
	case update.Message != nil:
		h.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

// updateChatID extracts the chat this update belongs to. Updates without
// a usable chat (channel posts, bare callback queries) are not handled.
func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil &&
		update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, false
	}
}

// handleMessage processes commands and free-form text.
func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.sessions.reset(chatID, StateAwaitingKeywords)
			h.sendText(chatID, welcomeText)
		case "cancel":
			h.sessions.clear(chatID)
			h.sendText(chatID, cancelledText)
		default:
			h.sendText(chatID, startHintText)
		}
		return
	}

	sess := h.sessions.get(chatID)
	switch sess.State {
	case StateAwaitingKeywords:
		h.handleKeywords(chatID, sess, msg.Text)
	case StateFetching:
		h.sendText(chatID, busyText)
	case StateAwaitingFrequencyChoice, StateAwaitingLimitChoice:
		h.sendText(chatID, chooseButtonText)
	default:
		h.sendText(chatID, startHintText)
	}
}

// handleKeywords parses a keyword list and advances to the frequency
// prompt. Parse failures leave the session in StateAwaitingKeywords so the
// user can resend a corrected list.
func (h *Handler) handleKeywords(chatID int64, sess *session, text string) {
	keywords, err := parser.Parse(text, h.maxKeywords)
	if err != nil {
		h.sendText(chatID, parseErrorText(err))
		return
	}

	sess.Keywords = keywords
	sess.State = StateAwaitingFrequencyChoice

	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Найдено ключевых слов: %d\n\n%s", len(keywords), frequencyPromptText))
	reply.ReplyMarkup = frequencyKeyboard()
	h.send(reply)
}

// handleCallback processes inline-keyboard answers.
func (h *Handler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops showing a spinner, whatever
	// happens next.
	if _, err := h.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.logger.Warn("failed to answer callback", "error", err)
	}

	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	sess := h.sessions.get(chatID)

	switch sess.State {
	case StateAwaitingFrequencyChoice:
		if cq.Data != callbackWithFrequency && cq.Data != callbackWithoutFrequency {
			return
		}
		sess.WithFrequency = cq.Data == callbackWithFrequency
		sess.State = StateAwaitingLimitChoice
		h.removeKeyboard(chatID, cq.Message.MessageID)

		reply := tgbotapi.NewMessage(chatID, limitPromptText)
		reply.ReplyMarkup = limitKeyboard()
		h.send(reply)

	case StateAwaitingLimitChoice:
		limit, ok := parseLimitCallback(cq.Data)
		if !ok {
			return
		}
		sess.Limit = limit
		sess.State = StateFetching
		h.removeKeyboard(chatID, cq.Message.MessageID)
		h.runFetch(ctx, chatID, sess)

	default:
		// A stale keyboard from a finished or cancelled flow.
		h.logger.Debug("callback ignored", "state", sess.State.String(), "data", cq.Data)
	}
}

// runFetch executes the fetch-truncate-export-deliver tail of the flow.
// On any failure the session is cleared: retrying requires restarting the
// flow because the remote report is gone.
func (h *Handler) runFetch(ctx context.Context, chatID int64, sess *session) {
	status, statusOK := h.send(tgbotapi.NewMessage(chatID, processingText))

	ctx, cancel := context.WithTimeout(ctx, h.sessionTimeout)
	defer cancel()

	rows, err := h.provider.Fetch(ctx, sess.Keywords, sess.WithFrequency)
	if err != nil {
		h.logger.Error("fetch failed", "provider", h.provider.Name(), "error", err)
		h.finishWithError(chatID, status, statusOK, fetchErrorText(err))
		return
	}

	if len(rows) > sess.Limit {
		rows = rows[:sess.Limit]
	}

	data, err := h.exporter.Export(rows)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		h.finishWithError(chatID, status, statusOK, exportErrorText(err))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  resultFileName + h.exporter.Extension(),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("✅ Готово!\n\n📊 Ключевых слов: %d\n🔧 Источник: %s", len(rows), h.provider.Name())

	if _, err := h.api.Send(doc); err != nil {
		h.logger.Error("failed to send document", "error", err)
		h.finishWithError(chatID, status, statusOK, "❌ Не удалось отправить файл. Попробуйте ещё раз: /start")
		return
	}

	if statusOK {
		if _, err := h.api.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
			h.logger.Debug("failed to delete status message", "error", err)
		}
	}
	h.sessions.clear(chatID)
	h.logger.Info("flow completed", "chatID", chatID, "rows", len(rows), "provider", h.provider.Name())
}

// finishWithError reports a flow failure to the user and clears the
// session. The status message is edited in place when possible.
func (h *Handler) finishWithError(chatID int64, status tgbotapi.Message, statusOK bool, text string) {
	if statusOK {
		h.send(tgbotapi.NewEditMessageText(chatID, status.MessageID, text))
	} else {
		h.sendText(chatID, text)
	}
	h.sessions.clear(chatID)
}

// removeKeyboard strips the inline keyboard from an already-answered
// prompt so stale buttons cannot be clicked again.
func (h *Handler) removeKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.api.Request(edit); err != nil {
		h.logger.Debug("failed to remove keyboard", "error", err)
	}
}

// sendText delivers a plain text reply.
func (h *Handler) sendText(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

// send delivers any chattable and logs delivery failures. The bool result
// reports whether the message went out.
func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := h.api.Send(c)
	if err != nil {
		h.logger.Error("failed to send message", "error", err)
		return tgbotapi.Message{}, false
	}
	return msg, true
}

// parseErrorText words a parser failure for the user.
func parseErrorText(err error) string {
	var limitErr *parser.LimitError
	switch {
	case errors.Is(err, parser.ErrEmptyInput):
		return "❌ Сообщение пустое. Отправьте список ключевых слов."
	case errors.Is(err, parser.ErrNoKeywords):
		return "❌ Не нашёл ни одного ключевого слова. Проверьте формат списка."
	case errors.As(err, &limitErr):
		return fmt.Sprintf("❌ Слишком много ключевых слов: %d. Максимум: %d.", limitErr.Got, limitErr.Limit)
	default:
		return fmt.Sprintf("❌ Ошибка разбора: %v", err)
	}
}

// fetchErrorText words a provider failure for the user.
func fetchErrorText(err error) string {
	if wordstat.IsTimeout(err) {
		return "❌ Сервис не успел подготовить отчёт. Попробуйте позже: /start"
	}
	return fmt.Sprintf("❌ Ошибка получения данных: %v\n\nНачать заново: /start", err)
}

// exportErrorText words an export failure for the user.
func exportErrorText(err error) string {
	if errors.Is(err, export.ErrNoRows) {
		return "❌ По вашему запросу ничего не найдено. Начать заново: /start"
	}
	return fmt.Sprintf("❌ Ошибка при создании файла: %v\n\nНачать заново: /start", err)
}
