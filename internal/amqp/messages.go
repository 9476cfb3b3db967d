package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"kopilka/internal/core"
)

// Event kinds published on the ledger exchange.
const (
	EventEntryCreated  = "entry_created"
	EventEntryReverted = "entry_reverted"
)

// EntryEvent is the message published after a ledger mutation. It carries
// enough to rebuild an audit line without another database read.
type EntryEvent struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	EntryID   int64     `json:"entry_id"`
	UserID    int64     `json:"user_id"`
	Value     float64   `json:"value"`
	Currency  string    `json:"currency"`
	Tags      []string  `json:"tags,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntryEvent builds an event for the given mutation kind and entry.
func NewEntryEvent(kind string, entry core.Entry) *EntryEvent {
	return &EntryEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		EntryID:   entry.ID,
		UserID:    entry.UserID,
		Value:     entry.Value,
		Currency:  entry.Currency.String(),
		Tags:      entry.Tags,
		Timestamp: time.Now().UTC(),
	}
}

func (e *EntryEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EntryEventFromJSON(data []byte) (*EntryEvent, error) {
	var event EntryEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
