// Package event defines the tagged union of events crossing the realtime
// channel. Each variant carries its own strongly typed payload so the router
// can never dispatch a malformed event to the wrong handler.
package event

import (
	"time"

	"github.com/google/uuid"
	"swapmeet/domain"
)

type Kind string

const (
	KindChatMessageReceived Kind = "chat-message-received"
	KindSwapStatusChanged   Kind = "swap-status-changed"
	KindSwapRequestCreated  Kind = "swap-request-created"
	KindReviewCreated       Kind = "review-created"
)

// ChannelEvent is the routing contract. Delivery order is only guaranteed
// among events sharing a SwapID; consumers must not assume ordering across
// kinds.
type ChannelEvent interface {
	Kind() Kind
	SwapID() uuid.UUID
}

type ChatMessageReceived struct {
	ID       uuid.UUID
	Swap     uuid.UUID
	SenderID string
	Text     string
	SentAt   time.Time
}

func (e ChatMessageReceived) Kind() Kind        { return KindChatMessageReceived }
func (e ChatMessageReceived) SwapID() uuid.UUID { return e.Swap }

type SwapStatusChanged struct {
	Swap    uuid.UUID
	Status  domain.SwapStatus
	Meetup  *domain.Meetup
	Reason  string
	ActorID string
	At      time.Time
}

func (e SwapStatusChanged) Kind() Kind        { return KindSwapStatusChanged }
func (e SwapStatusChanged) SwapID() uuid.UUID { return e.Swap }

type SwapRequestCreated struct {
	Request domain.SwapRequest
}

func (e SwapRequestCreated) Kind() Kind        { return KindSwapRequestCreated }
func (e SwapRequestCreated) SwapID() uuid.UUID { return e.Request.ID }

type ReviewCreated struct {
	Review domain.Review
}

func (e ReviewCreated) Kind() Kind        { return KindReviewCreated }
func (e ReviewCreated) SwapID() uuid.UUID { return e.Review.SwapID }
