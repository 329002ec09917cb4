package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"swapmeet/errors"
)

func pendingSwap(t *testing.T) SwapRequest {
	t.Helper()
	swap, err := NewSwapRequest("alice", "bob", uuid.New(), uuid.New())
	require.NoError(t, err)
	return swap
}

func TestNewSwapRequest_RejectsSelfSwap(t *testing.T) {
	req := require.New(t)

	_, err := NewSwapRequest("alice", "alice", uuid.New(), uuid.New())

	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
}

func TestNewSwapRequest_RejectsIdenticalItems(t *testing.T) {
	req := require.New(t)
	item := uuid.New()

	_, err := NewSwapRequest("alice", "bob", item, item)

	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
}

func TestAccept_RecordsMeetup(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)
	meetup := Meetup{Date: "2024-06-01", Time: "15:00", Location: "Cafe"}

	err := swap.Accept("bob", meetup)

	req.NoError(err)
	req.Equal(StatusAccepted, swap.Status)
	req.NotNil(swap.Meetup)
	req.Equal(meetup, *swap.Meetup)
}

func TestAccept_RejectsIncompleteMeetup(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	err := swap.Accept("bob", Meetup{Date: "2024-06-01"})

	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
	req.Equal(StatusPending, swap.Status)
	req.Nil(swap.Meetup)
}

func TestAccept_OnlyRecipientMayAccept(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	err := swap.Accept("alice", Meetup{Date: "2024-06-01", Time: "15:00", Location: "Cafe"})

	req.ErrorIs(err, errors.ErrNotPermitted)
	req.Equal(StatusPending, swap.Status)
}

func TestDecline_RequiresReason(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	err := swap.Decline("bob", "")

	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
	req.Equal(StatusPending, swap.Status)
}

func TestDecline_RecordsTerminalReason(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	err := swap.Decline("bob", "item no longer available")

	req.NoError(err)
	req.Equal(StatusDeclined, swap.Status)
	req.Equal("item no longer available", swap.TerminalReason)
	req.True(swap.Status.Terminal())
}

func TestCancel_OnlyInitiatorMayCancel(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	req.ErrorIs(swap.Cancel("bob", "changed my mind"), errors.ErrNotPermitted)
	req.NoError(swap.Cancel("alice", "changed my mind"))
	req.Equal(StatusCancelled, swap.Status)
}

func TestComplete_RequiresAccepted(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	req.ErrorIs(swap.Complete("alice"), errors.ErrInvalidTransition)

	req.NoError(swap.Accept("bob", Meetup{Date: "2024-06-01", Time: "15:00", Location: "Cafe"}))
	req.NoError(swap.Complete("alice"))
	req.Equal(StatusCompleted, swap.Status)
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	req := require.New(t)
	targets := []SwapStatus{StatusPending, StatusAccepted, StatusCompleted, StatusDeclined, StatusCancelled}

	for _, terminal := range []SwapStatus{StatusCompleted, StatusDeclined, StatusCancelled} {
		for _, to := range targets {
			req.False(CanTransition(terminal, to), "%s -> %s must be unreachable", terminal, to)
		}
	}
}

func TestApplyRemote_RefusesResurrection(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)
	req.NoError(swap.Decline("bob", "not interested"))

	err := swap.ApplyRemote(StatusAccepted, nil, "", time.Now().UTC())

	req.ErrorIs(err, errors.ErrInvalidTransition)
	req.Equal(StatusDeclined, swap.Status)
}

func TestApplyRemote_DuplicateDeliveryIsNoOp(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)
	meetup := &Meetup{Date: "2024-06-01", Time: "15:00", Location: "Cafe"}
	at := time.Now().UTC()

	req.NoError(swap.ApplyRemote(StatusAccepted, meetup, "", at))
	req.NoError(swap.ApplyRemote(StatusAccepted, meetup, "", at))
	req.Equal(StatusAccepted, swap.Status)
}

func TestView_DirectionIsInvertedBetweenParties(t *testing.T) {
	req := require.New(t)
	swap := pendingSwap(t)

	initiator := swap.View("alice")
	recipient := swap.View("bob")

	req.Equal(DirectionOutgoing, initiator.Direction)
	req.Equal(DirectionIncoming, recipient.Direction)
	req.Equal("bob", initiator.CounterpartyID)
	req.Equal("alice", recipient.CounterpartyID)
	req.Equal(initiator.OwnItemID, recipient.TheirItemID)
	req.Equal(initiator.TheirItemID, recipient.OwnItemID)
}
