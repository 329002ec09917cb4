// Package domain contains core concepts of the swap marketplace.
// This file defines the canonical SwapRequest record and its lifecycle rules.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
	"swapmeet/errors"
)

type SwapStatus string

const (
	StatusPending   SwapStatus = "pending"
	StatusAccepted  SwapStatus = "accepted"
	StatusCompleted SwapStatus = "completed"
	StatusDeclined  SwapStatus = "declined"
	StatusCancelled SwapStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s SwapStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDeclined || s == StatusCancelled
}

// transitions is the only source of truth for the lifecycle.
// A target status absent from the slice is unreachable from the key status.
var transitions = map[SwapStatus][]SwapStatus{
	StatusPending:  {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted: {StatusCompleted},
}

// CanTransition reports whether the lifecycle permits moving from one status
// to another. Terminal states have no outgoing edges.
func CanTransition(from, to SwapStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Direction is role-relative: the same swap is outgoing for its initiator
// and incoming for its recipient.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Meetup is the agreed handover. It exists if and only if the swap reached
// accepted (and survives into completed).
type Meetup struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

func (m Meetup) Complete() bool {
	return m.Date != "" && m.Time != "" && m.Location != ""
}

// SwapRequest is the canonical record shared by both parties. Each party holds
// an independent copy synchronized through channel events; role-relative data
// (direction, counterparty) is derived via View, never stored.
type SwapRequest struct {
	ID              uuid.UUID
	InitiatorID     string
	RecipientID     string
	InitiatorItemID uuid.UUID
	RecipientItemID uuid.UUID
	Status          SwapStatus
	Meetup          *Meetup
	TerminalReason  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSwapRequest creates a pending request from the initiator's perspective.
func NewSwapRequest(initiatorID, recipientID string, initiatorItemID, recipientItemID uuid.UUID) (SwapRequest, error) {
	if initiatorID == "" || recipientID == "" {
		return SwapRequest{}, errors.NewValidationError("party", "both parties are required")
	}
	if initiatorID == recipientID {
		return SwapRequest{}, errors.NewValidationError("recipient", "cannot swap with yourself")
	}
	if initiatorItemID == recipientItemID {
		return SwapRequest{}, errors.NewValidationError("items", "items must be distinct")
	}
	now := time.Now().UTC()
	return SwapRequest{
		ID:              uuid.New(),
		InitiatorID:     initiatorID,
		RecipientID:     recipientID,
		InitiatorItemID: initiatorItemID,
		RecipientItemID: recipientItemID,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Accept moves pending -> accepted. Only the recipient of the request may
// accept, and the meetup must be fully specified.
func (s *SwapRequest) Accept(actorID string, meetup Meetup) error {
	if actorID != s.RecipientID {
		return errors.ErrNotPermitted
	}
	if !CanTransition(s.Status, StatusAccepted) {
		return errors.ErrInvalidTransition
	}
	if !meetup.Complete() {
		return errors.NewValidationError("meetup", "date, time and location are required")
	}
	s.Status = StatusAccepted
	s.Meetup = &meetup
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Decline moves pending -> declined. Only the recipient may decline, and a
// reason is mandatory.
func (s *SwapRequest) Decline(actorID, reason string) error {
	if actorID != s.RecipientID {
		return errors.ErrNotPermitted
	}
	if !CanTransition(s.Status, StatusDeclined) {
		return errors.ErrInvalidTransition
	}
	if reason == "" {
		return errors.NewValidationError("reason", "a reason is required to decline")
	}
	s.Status = StatusDeclined
	s.TerminalReason = reason
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel moves pending -> cancelled. Only the initiator may cancel.
func (s *SwapRequest) Cancel(actorID, reason string) error {
	if actorID != s.InitiatorID {
		return errors.ErrNotPermitted
	}
	if !CanTransition(s.Status, StatusCancelled) {
		return errors.ErrInvalidTransition
	}
	if reason == "" {
		reason = "Cancelled by requester"
	}
	s.Status = StatusCancelled
	s.TerminalReason = reason
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete moves accepted -> completed. Either party may complete. Completing
// unlocks post-swap review eligibility for both parties.
func (s *SwapRequest) Complete(actorID string) error {
	if actorID != s.InitiatorID && actorID != s.RecipientID {
		return errors.ErrNotPermitted
	}
	if !CanTransition(s.Status, StatusCompleted) {
		return errors.ErrInvalidTransition
	}
	s.Status = StatusCompleted
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyRemote applies a confirmed status change received over the channel.
// It refuses to resurrect terminal states or skip table edges.
func (s *SwapRequest) ApplyRemote(status SwapStatus, meetup *Meetup, reason string, at time.Time) error {
	if status == s.Status {
		return nil // duplicate delivery
	}
	if !CanTransition(s.Status, status) {
		return errors.ErrInvalidTransition
	}
	s.Status = status
	if meetup != nil {
		m := *meetup
		s.Meetup = &m
	}
	if reason != "" {
		s.TerminalReason = reason
	}
	s.UpdatedAt = at
	return nil
}

// SwapView is the role-relative projection of a canonical SwapRequest.
type SwapView struct {
	SwapRequest
	Direction      Direction
	CounterpartyID string
	OwnItemID      uuid.UUID
	TheirItemID    uuid.UUID
}

// View projects the canonical record for a given viewer. Each party sees the
// same record with direction and counterparty inverted relative to the other.
func (s SwapRequest) View(viewerID string) SwapView {
	view := SwapView{SwapRequest: s}
	if viewerID == s.InitiatorID {
		view.Direction = DirectionOutgoing
		view.CounterpartyID = s.RecipientID
		view.OwnItemID = s.InitiatorItemID
		view.TheirItemID = s.RecipientItemID
	} else {
		view.Direction = DirectionIncoming
		view.CounterpartyID = s.InitiatorID
		view.OwnItemID = s.RecipientItemID
		view.TheirItemID = s.InitiatorItemID
	}
	return view
}
