// Package negotiation drives the swap request lifecycle. Every transition is
// validated locally against the lifecycle table first, then confirmed with the
// collaborator, and only the confirmed record is stored and fanned out. An
// invalid transition is a caller bug and never reaches the wire.
package negotiation

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"swapmeet/api"
	"swapmeet/auth"
	"swapmeet/contract"
	"swapmeet/domain"
	"swapmeet/domain/event"
	"swapmeet/errors"
)

// ConversationJoiner declares interest in a swap's conversation on the
// realtime channel. Satisfied by the channel coordinator.
type ConversationJoiner interface {
	JoinConversation(swapID uuid.UUID)
}

// Service holds this party's copy of every known swap request. The other
// party's copy converges through channel events consumed via Consume.
type Service struct {
	mu      sync.Mutex
	log     *slog.Logger
	gateway api.ISwapGateway
	joiner  ConversationJoiner
	viewer  func() string
	swaps   map[uuid.UUID]domain.SwapRequest
	sinks   []contract.EventSink
}

func NewService(log *slog.Logger, gateway api.ISwapGateway, joiner ConversationJoiner, viewer func() string) *Service {
	return &Service{
		log:     log,
		gateway: gateway,
		joiner:  joiner,
		viewer:  viewer,
		swaps:   make(map[uuid.UUID]domain.SwapRequest),
	}
}

// AddSink registers a consumer for locally confirmed lifecycle events.
func (s *Service) AddSink(sinks ...contract.EventSink) *Service {
	s.sinks = append(s.sinks, sinks...)
	return s
}

// Sync seeds the local copies, typically from a list fetch after login.
// Existing entries are replaced wholesale; the collaborator wins.
func (s *Service) Sync(swaps []domain.SwapRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, swap := range swaps {
		s.swaps[swap.ID] = swap
	}
}

// Create expresses interest in another party's item, offering one of ours.
func (s *Service) Create(ctx context.Context, wantedItemID, offeredItemID uuid.UUID) (domain.SwapView, error) {
	if wantedItemID == offeredItemID {
		return domain.SwapView{}, errors.NewValidationError("items", "items must be distinct")
	}

	swap, err := s.gateway.CreateSwapRequest(ctx, wantedItemID, offeredItemID)
	if err != nil {
		return domain.SwapView{}, err
	}

	s.store(swap)
	s.joiner.JoinConversation(swap.ID)
	s.fanout(ctx, event.SwapRequestCreated{Request: swap})

	s.log.Info("Swap request created", "swap", swap.ID, "recipient", swap.RecipientID)
	return swap.View(s.viewer()), nil
}

// Accept confirms an incoming request with a fully specified meetup.
func (s *Service) Accept(ctx context.Context, id uuid.UUID, meetup domain.Meetup) (domain.SwapView, error) {
	if err := auth.ValidateMeetup(meetup); err != nil {
		return domain.SwapView{}, err
	}
	return s.transition(ctx, id,
		func(swap *domain.SwapRequest) error { return swap.Accept(s.viewer(), meetup) },
		func(ctx context.Context) (domain.SwapRequest, error) { return s.gateway.AcceptSwap(ctx, id, meetup) },
	)
}

// Decline rejects an incoming request. The reason is mandatory and travels to
// the other party.
func (s *Service) Decline(ctx context.Context, id uuid.UUID, reason string) (domain.SwapView, error) {
	return s.transition(ctx, id,
		func(swap *domain.SwapRequest) error { return swap.Decline(s.viewer(), reason) },
		func(ctx context.Context) (domain.SwapRequest, error) { return s.gateway.DeclineSwap(ctx, id, reason) },
	)
}

// Cancel withdraws our own pending request.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (domain.SwapView, error) {
	return s.transition(ctx, id,
		func(swap *domain.SwapRequest) error { return swap.Cancel(s.viewer(), reason) },
		func(ctx context.Context) (domain.SwapRequest, error) { return s.gateway.CancelSwap(ctx, id, reason) },
	)
}

// Complete marks an accepted swap as done, unlocking reviews for both parties.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (domain.SwapView, error) {
	return s.transition(ctx, id,
		func(swap *domain.SwapRequest) error { return swap.Complete(s.viewer()) },
		func(ctx context.Context) (domain.SwapRequest, error) { return s.gateway.CompleteSwap(ctx, id) },
	)
}

// transition runs one lifecycle action: local validation on a scratch copy,
// collaborator confirmation, then store-and-fanout of the confirmed record.
// If local validation rejects, the gateway is never called.
func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	validate func(*domain.SwapRequest) error,
	confirm func(context.Context) (domain.SwapRequest, error),
) (domain.SwapView, error) {
	s.mu.Lock()
	scratch, ok := s.swaps[id]
	s.mu.Unlock()
	if !ok {
		return domain.SwapView{}, errors.ErrSwapUnknown
	}

	if err := validate(&scratch); err != nil {
		return domain.SwapView{}, err
	}

	confirmed, err := confirm(ctx)
	if err != nil {
		return domain.SwapView{}, err
	}

	s.store(confirmed)
	s.fanout(ctx, event.SwapStatusChanged{
		Swap:    confirmed.ID,
		Status:  confirmed.Status,
		Meetup:  confirmed.Meetup,
		Reason:  confirmed.TerminalReason,
		ActorID: s.viewer(),
		At:      confirmed.UpdatedAt,
	})

	s.log.Info("Swap transitioned", "swap", confirmed.ID, "status", confirmed.Status)
	return confirmed.View(s.viewer()), nil
}

// Consume applies lifecycle events originated by the other party. Implements
// the event sink contract; subscribe it for swap-status-changed and
// swap-request-created kinds.
func (s *Service) Consume(ctx context.Context, e event.ChannelEvent) error {
	switch evt := e.(type) {
	case event.SwapRequestCreated:
		s.store(evt.Request)
		s.joiner.JoinConversation(evt.Request.ID)
		s.log.Info("Swap request received", "swap", evt.Request.ID, "initiator", evt.Request.InitiatorID)
		return nil

	case event.SwapStatusChanged:
		s.mu.Lock()
		defer s.mu.Unlock()

		swap, ok := s.swaps[evt.Swap]
		if !ok {
			s.log.Warn("Status change for unknown swap, skipping", "swap", evt.Swap)
			return nil
		}
		if err := swap.ApplyRemote(evt.Status, evt.Meetup, evt.Reason, evt.At); err != nil {
			s.log.Warn("Refusing remote status change", "swap", evt.Swap, "from", swap.Status, "to", evt.Status, "err", err)
			return nil
		}
		s.swaps[evt.Swap] = swap
		return nil

	default:
		return nil
	}
}

// Get resolves the viewer's projection of one swap.
func (s *Service) Get(id uuid.UUID) (domain.SwapView, bool) {
	s.mu.Lock()
	swap, ok := s.swaps[id]
	s.mu.Unlock()
	if !ok {
		return domain.SwapView{}, false
	}
	return swap.View(s.viewer()), true
}

// List returns the viewer's projections, most recently updated first.
func (s *Service) List() []domain.SwapView {
	s.mu.Lock()
	swaps := lo.Values(s.swaps)
	s.mu.Unlock()

	sort.Slice(swaps, func(i, j int) bool {
		return swaps[i].UpdatedAt.After(swaps[j].UpdatedAt)
	})
	viewer := s.viewer()
	return lo.Map(swaps, func(swap domain.SwapRequest, _ int) domain.SwapView {
		return swap.View(viewer)
	})
}

// Incoming filters the list to requests awaiting the viewer's decision.
func (s *Service) Incoming() []domain.SwapView {
	return lo.Filter(s.List(), func(view domain.SwapView, _ int) bool {
		return view.Direction == domain.DirectionIncoming && view.Status == domain.StatusPending
	})
}

func (s *Service) store(swap domain.SwapRequest) {
	s.mu.Lock()
	s.swaps[swap.ID] = swap
	s.mu.Unlock()
}

func (s *Service) fanout(ctx context.Context, evt event.ChannelEvent) {
	for _, sink := range s.sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			s.log.Error("Lifecycle sink failed", "kind", evt.Kind(), "swap", evt.SwapID(), "err", err)
		}
	}
}
