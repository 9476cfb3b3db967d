package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kopilka/internal/amqp"
	"kopilka/internal/core"
	"kopilka/internal/report"
	"kopilka/internal/storage"
)

// LedgerService implements the command semantics over the storage backend:
// register, add, revert and report. The ledger write is the source of
// truth; entry events are published best-effort and never fail a command.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	aggregator *report.Aggregator
	amqpClient *amqp.Client
	currency   core.Currency
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		aggregator: report.NewAggregator(storage),
		amqpClient: amqpClient,
		currency:   core.RUB,
	}
}

// Register resolves or creates the user for an external id. Calling it
// again for the same id is a no-op returning the same user.
func (s *LedgerService) Register(ctx context.Context, externalID string) (core.User, error) {
	user, err := s.storage.ResolveUser(ctx, externalID)
	if err != nil {
		return core.User{}, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// AddEntry parses raw text and records a new entry. Text without a leading
// amount fails with core.ErrMalformedEntry and mutates nothing. A first add
// without a prior register creates the user on the spot.
func (s *LedgerService) AddEntry(ctx context.Context, externalID, rawText string) (core.Entry, error) {
	parsed, err := core.ParseEntry(rawText)
	if err != nil {
		return core.Entry{}, err
	}

	user, err := s.storage.ResolveUser(ctx, externalID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("resolve user: %w", err)
	}

	entry, err := s.storage.CreateEntry(ctx, user.ID, parsed.Value, s.currency, parsed.Tags, parsed.Comment)
	if err != nil {
		return core.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	s.publishEvent(ctx, amqp.EventEntryCreated, entry)

	return entry, nil
}

// Revert deletes the user's most recent entry and returns it. An empty
// ledger, or an entry a concurrent revert already removed, yields
// core.ErrNoEntries.
func (s *LedgerService) Revert(ctx context.Context, externalID string) (core.Entry, error) {
	user, err := s.storage.ResolveUser(ctx, externalID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("resolve user: %w", err)
	}

	entry, err := s.storage.MostRecentEntry(ctx, user.ID)
	if err != nil {
		if errors.Is(err, core.ErrNoEntries) {
			return core.Entry{}, core.ErrNoEntries
		}
		return core.Entry{}, fmt.Errorf("most recent entry: %w", err)
	}

	if err := s.storage.DeleteEntry(ctx, entry.ID); err != nil {
		// A racing revert won; from this caller's view there was nothing
		// left to revert.
		if errors.Is(err, core.ErrEntryNotFound) {
			return core.Entry{}, core.ErrNoEntries
		}
		return core.Entry{}, fmt.Errorf("delete entry: %w", err)
	}

	s.publishEvent(ctx, amqp.EventEntryReverted, entry)

	return entry, nil
}

// WeeklyReport returns per-date sums for the user's entries over the last
// week, optionally filtered by the hashtags found in rawText. Rendering is
// the caller's concern.
func (s *LedgerService) WeeklyReport(ctx context.Context, externalID, rawText string) ([]core.DayTotal, error) {
	user, err := s.storage.ResolveUser(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	totals, err := s.aggregator.BuildReport(ctx, user.ID, core.ExtractTags(rawText))
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	return totals, nil
}

func (s *LedgerService) publishEvent(ctx context.Context, kind string, entry core.Entry) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishEntryEvent(ctx, amqp.NewEntryEvent(kind, entry)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry event",
			"kind", kind, "entry_id", entry.ID, "error", err)
		// The ledger write already succeeded; the audit trail catches up
		// from the queue next time.
	}
}

// Close closes storage and the AMQP connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
