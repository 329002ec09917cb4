// Package domain contains core concepts of the swap marketplace.
// This file defines chat Messages tied to a swap conversation.
// Messages are immutable once created, except the read flag which only
// moves false -> true.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID       uuid.UUID
	SwapID   uuid.UUID
	SenderID string
	Text     string
	SentAt   time.Time
	Read     bool
}

// NewMessage creates the optimistic local copy of an outbound message.
// The sender has obviously read their own message.
func NewMessage(swapID uuid.UUID, senderID, text string) Message {
	return Message{
		ID:       uuid.New(),
		SwapID:   swapID,
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now().UTC(),
		Read:     true,
	}
}
