// Package worker consumes entry events and maintains an append-only audit
// trail. The ledger database stays the source of truth; the audit file is
// a durable journal of every mutation for offline inspection.
package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kopilka/internal/amqp"
	"kopilka/internal/log"
)

type AuditWorker struct {
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
}

func NewAuditWorker(path string, logger *log.Logger) (*AuditWorker, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	return &AuditWorker{
		file:   file,
		logger: logger.WithComponent(log.ComponentWorker),
	}, nil
}

// HandleEntryEvent appends the event as one JSON line. An error makes the
// consumer nack and requeue, so a line is never silently lost.
func (w *AuditWorker) HandleEntryEvent(event *amqp.EntryEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit line: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync audit log: %w", err)
	}

	w.logger.Info("Audit line recorded",
		log.FieldEventID, event.EventID,
		log.FieldEventKind, event.Kind,
		log.FieldEntryID, event.EntryID)

	return nil
}

func (w *AuditWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
