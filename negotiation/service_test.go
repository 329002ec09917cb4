package negotiation

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"swapmeet/domain"
	"swapmeet/domain/event"
	"swapmeet/errors"
	"swapmeet/mocks"
)

const (
	alice = "alice"
	bob   = "bob"
)

type fakeJoiner struct {
	joined []uuid.UUID
}

func (j *fakeJoiner) JoinConversation(swapID uuid.UUID) {
	j.joined = append(j.joined, swapID)
}

type serviceFixture struct {
	service *Service
	gateway *mocks.MockISwapGateway
	joiner  *fakeJoiner
	sink    *mocks.MockEventSink
}

// newFixture builds a service acting as bob, the recipient of incoming
// requests in these tests.
func newFixture(t *testing.T, viewer string) serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockISwapGateway(ctrl)
	sink := mocks.NewMockEventSink(ctrl)
	joiner := &fakeJoiner{}
	service := NewService(slog.Default(), gateway, joiner, func() string { return viewer }).AddSink(sink)
	return serviceFixture{service: service, gateway: gateway, joiner: joiner, sink: sink}
}

func pendingSwap(initiator, recipient string) domain.SwapRequest {
	now := time.Now().UTC()
	return domain.SwapRequest{
		ID:              uuid.New(),
		InitiatorID:     initiator,
		RecipientID:     recipient,
		InitiatorItemID: uuid.New(),
		RecipientItemID: uuid.New(),
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func meetup() domain.Meetup {
	return domain.Meetup{Date: "2026-09-05", Time: "14:00", Location: "Central Park fountain"}
}

func TestCreate_StoresJoinsAndFansOut(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	confirmed := pendingSwap(alice, bob)

	f.gateway.EXPECT().
		CreateSwapRequest(gomock.Any(), confirmed.RecipientItemID, confirmed.InitiatorItemID).
		Return(confirmed, nil)
	f.sink.EXPECT().
		Consume(gomock.Any(), event.SwapRequestCreated{Request: confirmed}).
		Return(nil)

	view, err := f.service.Create(context.Background(), confirmed.RecipientItemID, confirmed.InitiatorItemID)
	req.NoError(err)

	req.Equal(domain.DirectionOutgoing, view.Direction)
	req.Equal(bob, view.CounterpartyID)
	req.Equal([]uuid.UUID{confirmed.ID}, f.joiner.joined)

	stored, ok := f.service.Get(confirmed.ID)
	req.True(ok)
	req.Equal(domain.StatusPending, stored.Status)
}

func TestCreate_IdenticalItemsRejectedLocally(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	item := uuid.New()

	f.gateway.EXPECT().CreateSwapRequest(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Create(context.Background(), item, item)
	var verr *errors.ValidationError
	req.ErrorAs(err, &verr)
}

func TestAccept_ConfirmsStoresAndFansOut(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	confirmed := swap
	m := meetup()
	confirmed.Status = domain.StatusAccepted
	confirmed.Meetup = &m
	confirmed.UpdatedAt = swap.UpdatedAt.Add(time.Minute)

	f.gateway.EXPECT().AcceptSwap(gomock.Any(), swap.ID, m).Return(confirmed, nil)
	f.sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil)

	view, err := f.service.Accept(context.Background(), swap.ID, m)
	req.NoError(err)
	req.Equal(domain.StatusAccepted, view.Status)
	req.Equal(domain.DirectionIncoming, view.Direction)

	stored, ok := f.service.Get(swap.ID)
	req.True(ok)
	req.Equal(domain.StatusAccepted, stored.Status)
	req.Equal(&m, stored.Meetup)
}

func TestDecline_WithoutReasonNeverReachesGateway(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	f.gateway.EXPECT().DeclineSwap(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Decline(context.Background(), swap.ID, "")
	var verr *errors.ValidationError
	req.ErrorAs(err, &verr)

	// Local copy untouched
	stored, _ := f.service.Get(swap.ID)
	req.Equal(domain.StatusPending, stored.Status)
}

func TestAccept_IncompleteMeetupNeverReachesGateway(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	f.gateway.EXPECT().AcceptSwap(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Accept(context.Background(), swap.ID, domain.Meetup{Date: "2026-09-05"})
	var verr *errors.ValidationError
	req.ErrorAs(err, &verr)
	req.Contains(verr.Fields, "Time")
	req.Contains(verr.Fields, "Location")
}

func TestAccept_ByInitiatorIsNotPermitted(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	f.gateway.EXPECT().AcceptSwap(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Accept(context.Background(), swap.ID, meetup())
	req.ErrorIs(err, errors.ErrNotPermitted)
}

func TestComplete_FromPendingIsInvalidTransition(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	f.gateway.EXPECT().CompleteSwap(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Complete(context.Background(), swap.ID)
	req.ErrorIs(err, errors.ErrInvalidTransition)
}

func TestTransition_UnknownSwap(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)

	_, err := f.service.Cancel(context.Background(), uuid.New(), "changed my mind")
	req.ErrorIs(err, errors.ErrSwapUnknown)
}

func TestConsume_RemoteStatusChangeConverges(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	swap := pendingSwap(alice, bob)
	f.service.Sync([]domain.SwapRequest{swap})

	m := meetup()
	req.NoError(f.service.Consume(context.Background(), event.SwapStatusChanged{
		Swap:    swap.ID,
		Status:  domain.StatusAccepted,
		Meetup:  &m,
		ActorID: bob,
		At:      time.Now().UTC(),
	}))

	stored, ok := f.service.Get(swap.ID)
	req.True(ok)
	req.Equal(domain.StatusAccepted, stored.Status)
	req.Equal(&m, stored.Meetup)
}

func TestConsume_DuplicateDeliveryIsNoOp(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	swap := pendingSwap(alice, bob)
	swap.Status = domain.StatusDeclined
	swap.TerminalReason = "Already promised to someone else"
	f.service.Sync([]domain.SwapRequest{swap})

	req.NoError(f.service.Consume(context.Background(), event.SwapStatusChanged{
		Swap:   swap.ID,
		Status: domain.StatusDeclined,
		Reason: "Already promised to someone else",
		At:     time.Now().UTC(),
	}))

	stored, _ := f.service.Get(swap.ID)
	req.Equal(domain.StatusDeclined, stored.Status)
}

func TestConsume_RefusesToResurrectTerminalSwap(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)
	swap := pendingSwap(alice, bob)
	swap.Status = domain.StatusCancelled
	f.service.Sync([]domain.SwapRequest{swap})

	req.NoError(f.service.Consume(context.Background(), event.SwapStatusChanged{
		Swap:   swap.ID,
		Status: domain.StatusPending,
		At:     time.Now().UTC(),
	}))

	stored, _ := f.service.Get(swap.ID)
	req.Equal(domain.StatusCancelled, stored.Status)
}

func TestConsume_UnknownSwapIsSkipped(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, alice)

	req.NoError(f.service.Consume(context.Background(), event.SwapStatusChanged{
		Swap:   uuid.New(),
		Status: domain.StatusAccepted,
		At:     time.Now().UTC(),
	}))
	req.Empty(f.service.List())
}

func TestConsume_IncomingRequestJoinsConversation(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	swap := pendingSwap(alice, bob)

	req.NoError(f.service.Consume(context.Background(), event.SwapRequestCreated{Request: swap}))

	req.Equal([]uuid.UUID{swap.ID}, f.joiner.joined)
	incoming := f.service.Incoming()
	req.Len(incoming, 1)
	req.Equal(domain.DirectionIncoming, incoming[0].Direction)
	req.Equal(alice, incoming[0].CounterpartyID)
}

func TestList_MostRecentlyUpdatedFirst(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, bob)
	older := pendingSwap(alice, bob)
	newer := pendingSwap(alice, bob)
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)
	f.service.Sync([]domain.SwapRequest{older, newer})

	list := f.service.List()
	req.Len(list, 2)
	req.Equal(newer.ID, list[0].ID)
	req.Equal(older.ID, list[1].ID)
}
