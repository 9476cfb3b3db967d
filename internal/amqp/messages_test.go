package amqp

import (
	"testing"

	"kopilka/internal/core"
)

func TestNewEntryEvent(t *testing.T) {
	entry := core.Entry{
		ID:       42,
		UserID:   7,
		Value:    -150.5,
		Currency: core.RUB,
		Tags:     []string{"#food"},
	}

	event := NewEntryEvent(EventEntryReverted, entry)

	if event.EventID == "" {
		t.Error("EventID should be assigned")
	}
	if event.Kind != EventEntryReverted {
		t.Errorf("Kind = %q, want %q", event.Kind, EventEntryReverted)
	}
	if event.EntryID != 42 || event.UserID != 7 || event.Value != -150.5 {
		t.Errorf("event fields = %+v, want entry fields carried over", event)
	}
	if event.Currency != "RUB" {
		t.Errorf("Currency = %q, want RUB", event.Currency)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be assigned")
	}

	other := NewEntryEvent(EventEntryCreated, entry)
	if other.EventID == event.EventID {
		t.Error("two events should not share an EventID")
	}
}

func TestEntryEventJSONRoundTrip(t *testing.T) {
	event := NewEntryEvent(EventEntryCreated, core.Entry{
		ID:       1,
		UserID:   2,
		Value:    99,
		Currency: core.RUB,
		Tags:     []string{"#a", "#b"},
	})

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := EntryEventFromJSON(body)
	if err != nil {
		t.Fatalf("EntryEventFromJSON() error = %v", err)
	}

	if decoded.EventID != event.EventID || decoded.Kind != event.Kind ||
		decoded.EntryID != event.EntryID || decoded.Value != event.Value {
		t.Errorf("decoded = %+v, want %+v", decoded, event)
	}
	if len(decoded.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 tags", decoded.Tags)
	}
}

func TestEntryEventFromJSON_Invalid(t *testing.T) {
	if _, err := EntryEventFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}
