package worker

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"kopilka/internal/amqp"
	"kopilka/internal/core"
	"kopilka/internal/log"
)

func TestHandleEntryEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "audit.jsonl")

	w, err := NewAuditWorker(path, log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("NewAuditWorker() error = %v", err)
	}
	defer w.Close()

	events := []*amqp.EntryEvent{
		amqp.NewEntryEvent(amqp.EventEntryCreated, core.Entry{ID: 1, UserID: 7, Value: 150, Currency: core.RUB}),
		amqp.NewEntryEvent(amqp.EventEntryReverted, core.Entry{ID: 1, UserID: 7, Value: 150, Currency: core.RUB}),
	}
	for _, event := range events {
		if err := w.HandleEntryEvent(event); err != nil {
			t.Fatalf("HandleEntryEvent() error = %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer file.Close()

	var lines []amqp.EntryEvent
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		var event amqp.EntryEvent
		if err := json.Unmarshal(sc.Bytes(), &event); err != nil {
			t.Fatalf("unmarshal audit line %q: %v", sc.Text(), err)
		}
		lines = append(lines, event)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan audit log: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("audit lines = %d, want 2", len(lines))
	}
	if lines[0].Kind != amqp.EventEntryCreated || lines[1].Kind != amqp.EventEntryReverted {
		t.Errorf("kinds = %q, %q", lines[0].Kind, lines[1].Kind)
	}
	if lines[0].EventID == lines[1].EventID {
		t.Error("audit lines share an event id")
	}
}

func TestHandleEntryEvent_AppendsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger := log.New(log.DefaultConfig())

	for i := 0; i < 2; i++ {
		w, err := NewAuditWorker(path, logger)
		if err != nil {
			t.Fatalf("NewAuditWorker() error = %v", err)
		}
		event := amqp.NewEntryEvent(amqp.EventEntryCreated, core.Entry{ID: int64(i), Currency: core.RUB})
		if err := w.HandleEntryEvent(event); err != nil {
			t.Fatalf("HandleEntryEvent() error = %v", err)
		}
		w.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("audit lines = %d, want 2 (append, not truncate)", lines)
	}
}
