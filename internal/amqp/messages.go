package amqp

import (
	"encoding/json"
	"time"
)

// Event actions carried by ledger messages.
const (
	EventActionCreated = "created"
	EventActionDeleted = "deleted"
)

// LedgerEventMessage announces a single ledger mutation. Consumers that need
// full transaction data fetch it from their own repository; the message only
// carries identity.
type LedgerEventMessage struct {
	Action        string    `json:"action"` // "created" or "deleted"
	TransactionID string    `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event message stamped with the current time.
func NewLedgerEventMessage(action, transactionID string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:        action,
		TransactionID: transactionID,
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON parses a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
