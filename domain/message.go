// Package domain contains core concepts of the marketplace.
// No runtime, storage, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable direct message between two users.
// Timestamp stays nil until the store commits the write; the channel layer
// sorts nil timestamps after all committed ones.
type Message struct {
	ID         uuid.UUID
	SenderID   string
	ReceiverID string
	Text       string
	Timestamp  *time.Time
}

// Pair returns the unordered participant pair identifying the conversation
// this message belongs to.
func (m Message) Pair() Pair {
	return NewPair(m.SenderID, m.ReceiverID)
}
