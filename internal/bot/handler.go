// Package bot is the Telegram transport: it routes incoming messages to
// the ledger service and renders replies. All ledger semantics live below
// it; this layer only dispatches and formats.
package bot

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kopilka/internal/core"
	"kopilka/internal/log"
	"kopilka/internal/services"
)

const helpText = `Accounting Helper

Usage:
/help — this help
/revert — revert last entry
/report [#tags] — weekly report, grouped by date
<amount> [<comment with hashtags>] — add new entry, e.g. "150 awesome #burger and #cola". Comment is optional. Hashtags group entries for tag-filtered reports.`

const (
	msgDontUnderstand  = "I don't understand you"
	msgNothingToRevert = "Nothing to revert"
	msgDumpUnavailable = "dump is not available yet"
	msgInternalError   = "Something went wrong, please try again later"
)

type Handler struct {
	api     *tgbotapi.BotAPI
	service *services.LedgerService
	logger  *log.Logger
	timeout int // long-poll timeout, seconds
}

func NewHandler(api *tgbotapi.BotAPI, service *services.LedgerService, logger *log.Logger, timeoutSeconds int) *Handler {
	return &Handler{
		api:     api,
		service: service,
		logger:  logger.WithComponent(log.ComponentBot),
		timeout: timeoutSeconds,
	}
}

// Run consumes updates until ctx is cancelled. Each message is handled
// independently; a failing command never takes the loop down.
func (h *Handler) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.timeout

	updates := h.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	externalID := strconv.FormatInt(msg.From.ID, 10)

	reply := h.Dispatch(ctx, externalID, msg.Text)

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.DisableWebPagePreview = true
	if _, err := h.api.Send(out); err != nil {
		h.logger.ErrorContext(ctx, "Failed to send reply",
			log.FieldExternalID, externalID,
			log.FieldError, err)
	}
}

// Dispatch maps raw text to a ledger operation and returns the reply text.
// Unknown slash commands and plain text both go through add, matching the
// original command set: /start, /help, /revert, /report, /dump.
func (h *Handler) Dispatch(ctx context.Context, externalID, text string) string {
	switch command(text) {
	case "start":
		return h.register(ctx, externalID)
	case "help":
		return helpText
	case "revert":
		return h.revert(ctx, externalID)
	case "report":
		return h.report(ctx, externalID, text)
	case "dump":
		return msgDumpUnavailable
	default:
		return h.add(ctx, externalID, text)
	}
}

func (h *Handler) register(ctx context.Context, externalID string) string {
	user, err := h.service.Register(ctx, externalID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Registration failed",
			log.FieldOperation, log.OpRegister,
			log.FieldExternalID, externalID,
			log.FieldError, err)
		return msgInternalError
	}

	h.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID,
		log.FieldExternalID, externalID)

	return helpText
}

func (h *Handler) add(ctx context.Context, externalID, text string) string {
	entry, err := h.service.AddEntry(ctx, externalID, text)
	if errors.Is(err, core.ErrMalformedEntry) {
		return msgDontUnderstand
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Add entry failed",
			log.FieldOperation, log.OpAdd,
			log.FieldExternalID, externalID,
			log.FieldError, err)
		return msgInternalError
	}

	return "Added: " + formatAmount(entry.Value) + entry.Currency.String()
}

func (h *Handler) revert(ctx context.Context, externalID string) string {
	entry, err := h.service.Revert(ctx, externalID)
	if errors.Is(err, core.ErrNoEntries) {
		return msgNothingToRevert
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Revert failed",
			log.FieldOperation, log.OpRevert,
			log.FieldExternalID, externalID,
			log.FieldError, err)
		return msgInternalError
	}

	return "Reverted: " + formatAmount(entry.Value) + entry.Currency.String()
}

func (h *Handler) report(ctx context.Context, externalID, text string) string {
	totals, err := h.service.WeeklyReport(ctx, externalID, text)
	if err != nil {
		h.logger.ErrorContext(ctx, "Report failed",
			log.FieldOperation, log.OpReport,
			log.FieldExternalID, externalID,
			log.FieldError, err)
		return msgInternalError
	}

	return renderReport(totals)
}

// command extracts a leading slash command name, or "" for plain text.
// "/report #food" yields "report".
func command(text string) string {
	if len(text) < 2 || text[0] != '/' {
		return ""
	}
	end := len(text)
	for i := 1; i < len(text); i++ {
		c := text[i]
		if c == ' ' || c == '\n' || c == '@' {
			end = i
			break
		}
	}
	return text[1:end]
}
