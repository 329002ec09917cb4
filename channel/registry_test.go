package channel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"swapmeet/domain/event"
)

type recordingSink struct {
	events []event.ChannelEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.ChannelEvent) error {
	s.events = append(s.events, e)
	return nil
}

func TestRegistry_RoutesByKindOnly(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	chat := &recordingSink{}
	status := &recordingSink{}

	registry.Subscribe(event.KindChatMessageReceived, chat)
	registry.Subscribe(event.KindSwapStatusChanged, status)

	req.Len(registry.SinksFor(event.KindChatMessageReceived), 1)
	req.Len(registry.SinksFor(event.KindSwapStatusChanged), 1)
	req.Empty(registry.SinksFor(event.KindReviewCreated))
}

func TestRegistry_CancelReleasesDeterministically(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := &recordingSink{}

	sub := registry.Subscribe(event.KindChatMessageReceived, sink)
	req.Len(registry.SinksFor(event.KindChatMessageReceived), 1)

	sub.Cancel()
	req.Empty(registry.SinksFor(event.KindChatMessageReceived))

	// Safe to cancel twice
	sub.Cancel()
}

func TestRegistry_MultipleSinksPerKind(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	first := registry.Subscribe(event.KindSwapStatusChanged, &recordingSink{})
	registry.Subscribe(event.KindSwapStatusChanged, &recordingSink{})

	req.Len(registry.SinksFor(event.KindSwapStatusChanged), 2)

	first.Cancel()
	req.Len(registry.SinksFor(event.KindSwapStatusChanged), 1)
}
