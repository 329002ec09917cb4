package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"swapmeet/domain"
)

var ErrUnknownKind = fmt.Errorf("unknown event kind")

// envelope is the wire frame pushed by the collaborator: a type tag plus an
// opaque payload decoded per variant.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wireMessage struct {
	ID       uuid.UUID `json:"id"`
	SwapID   uuid.UUID `json:"swap_id"`
	SenderID string    `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

type wireStatusChange struct {
	SwapID  uuid.UUID      `json:"swap_id"`
	Status  string         `json:"status"`
	Meetup  *domain.Meetup `json:"meetup,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	ActorID string         `json:"actor_id"`
	At      time.Time      `json:"at"`
}

type wireSwapRequest struct {
	ID              uuid.UUID      `json:"id"`
	InitiatorID     string         `json:"initiator_id"`
	RecipientID     string         `json:"recipient_id"`
	InitiatorItemID uuid.UUID      `json:"initiator_item_id"`
	RecipientItemID uuid.UUID      `json:"recipient_item_id"`
	Status          string         `json:"status"`
	Meetup          *domain.Meetup `json:"meetup,omitempty"`
	TerminalReason  string         `json:"terminal_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type wireReview struct {
	ID        uuid.UUID `json:"id"`
	SwapID    uuid.UUID `json:"swap_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Decode turns a raw channel frame into its typed variant. Frames with an
// unknown type tag are rejected rather than guessed at.
func Decode(data []byte) (ChannelEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}

	switch Kind(env.Type) {
	case KindChatMessageReceived:
		var wire wireMessage
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return ChatMessageReceived{
			ID:       wire.ID,
			Swap:     wire.SwapID,
			SenderID: wire.SenderID,
			Text:     wire.Text,
			SentAt:   wire.SentAt,
		}, nil

	case KindSwapStatusChanged:
		var wire wireStatusChange
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return SwapStatusChanged{
			Swap:    wire.SwapID,
			Status:  domain.SwapStatus(wire.Status),
			Meetup:  wire.Meetup,
			Reason:  wire.Reason,
			ActorID: wire.ActorID,
			At:      wire.At,
		}, nil

	case KindSwapRequestCreated:
		var wire wireSwapRequest
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return SwapRequestCreated{Request: domain.SwapRequest{
			ID:              wire.ID,
			InitiatorID:     wire.InitiatorID,
			RecipientID:     wire.RecipientID,
			InitiatorItemID: wire.InitiatorItemID,
			RecipientItemID: wire.RecipientItemID,
			Status:          domain.SwapStatus(wire.Status),
			Meetup:          wire.Meetup,
			TerminalReason:  wire.TerminalReason,
			CreatedAt:       wire.CreatedAt,
			UpdatedAt:       wire.UpdatedAt,
		}}, nil

	case KindReviewCreated:
		var wire wireReview
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return ReviewCreated{Review: domain.Review{
			ID:        wire.ID,
			SwapID:    wire.SwapID,
			AuthorID:  wire.AuthorID,
			Rating:    wire.Rating,
			Comment:   wire.Comment,
			CreatedAt: wire.CreatedAt,
		}}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
}
