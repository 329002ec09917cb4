// Package projection maintains the read model for conversations: per-swap
// message timelines, unread counters and day grouping. It consumes chat
// events from the channel and never talks to the network itself.
package projection

import (
	"context"
	"iter"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"swapmeet/domain"
	"swapmeet/domain/event"
)

// Conversation is a snapshot of one swap's timeline as the viewer sees it.
type Conversation struct {
	SwapID      uuid.UUID
	Messages    []domain.Message
	UnreadCount int
	LastMessage *domain.Message
}

// DayGroup buckets messages sharing a calendar day, oldest day first.
type DayGroup struct {
	Day      string // 2006-01-02
	Messages []domain.Message
}

// Aggregator groups messages by swap and keeps the unread invariant: the
// unread count always equals the number of inbound messages with Read false.
// Marking read and counting never drift because both derive from the same
// message flags.
type Aggregator struct {
	mu      sync.Mutex
	log     *slog.Logger
	viewer  func() string
	threads map[uuid.UUID][]domain.Message
	seen    map[uuid.UUID]struct{}
	focused map[uuid.UUID]struct{}
}

func NewAggregator(log *slog.Logger, viewer func() string) *Aggregator {
	return &Aggregator{
		log:     log,
		viewer:  viewer,
		threads: make(map[uuid.UUID][]domain.Message),
		seen:    make(map[uuid.UUID]struct{}),
		focused: make(map[uuid.UUID]struct{}),
	}
}

// Consume ingests chat events from the channel. Implements the event sink
// contract; subscribe it for the chat-message-received kind.
func (a *Aggregator) Consume(_ context.Context, e event.ChannelEvent) error {
	msg, ok := e.(event.ChatMessageReceived)
	if !ok {
		return nil
	}
	a.AppendMessage(domain.Message{
		ID:       msg.ID,
		SwapID:   msg.Swap,
		SenderID: msg.SenderID,
		Text:     msg.Text,
		SentAt:   msg.SentAt,
	})
	return nil
}

// AppendMessage adds one message to its conversation. Idempotent by message
// id: redelivered duplicates change nothing, not even the unread count.
func (a *Aggregator) AppendMessage(msg domain.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, dup := a.seen[msg.ID]; dup {
		a.log.Debug("Duplicate message ignored", "message", msg.ID, "swap", msg.SwapID)
		return
	}
	a.seen[msg.ID] = struct{}{}

	// Own messages and messages arriving into the focused conversation are
	// read on arrival; everything else increments unread until the viewer
	// focuses the conversation.
	if msg.SenderID == a.viewer() {
		msg.Read = true
	} else if _, focused := a.focused[msg.SwapID]; focused {
		msg.Read = true
	}

	// Arrival order is the timeline. Per-swap delivery is already ordered,
	// and a sender with a skewed clock must not reshuffle what the viewer
	// has seen.
	a.threads[msg.SwapID] = append(a.threads[msg.SwapID], msg)
}

// Focus marks a conversation as the one on screen: its backlog is read and
// new inbound messages no longer count as unread while focus holds.
func (a *Aggregator) Focus(swapID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.focused[swapID] = struct{}{}
	a.markRead(swapID)
}

// Blur removes focus; subsequent inbound messages count as unread again.
func (a *Aggregator) Blur(swapID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.focused, swapID)
}

// MarkConversationRead flips every inbound message to read without changing
// focus.
func (a *Aggregator) MarkConversationRead(swapID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.markRead(swapID)
}

func (a *Aggregator) markRead(swapID uuid.UUID) {
	thread := a.threads[swapID]
	for i := range thread {
		thread[i].Read = true
	}
}

// Conversation snapshots one thread. The unread count is derived from the
// message flags at call time, never cached.
func (a *Aggregator) Conversation(swapID uuid.UUID) Conversation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot(swapID)
}

// Conversations lists every known thread, most recent activity first.
func (a *Aggregator) Conversations() []Conversation {
	a.mu.Lock()
	defer a.mu.Unlock()

	conversations := lo.Map(lo.Keys(a.threads), func(id uuid.UUID, _ int) Conversation {
		return a.snapshot(id)
	})
	sort.Slice(conversations, func(i, j int) bool {
		left, right := conversations[i].LastMessage, conversations[j].LastMessage
		if left == nil || right == nil {
			return right == nil
		}
		return left.SentAt.After(right.SentAt)
	})
	return conversations
}

// TotalUnread sums unread counters across every conversation.
func (a *Aggregator) TotalUnread() int {
	return lo.SumBy(a.Conversations(), func(c Conversation) int { return c.UnreadCount })
}

func (a *Aggregator) snapshot(swapID uuid.UUID) Conversation {
	thread := a.threads[swapID]
	messages := make([]domain.Message, len(thread))
	copy(messages, thread)

	conv := Conversation{SwapID: swapID, Messages: messages}
	for i := range messages {
		if !messages[i].Read && messages[i].SenderID != a.viewer() {
			conv.UnreadCount++
		}
	}
	if len(messages) > 0 {
		conv.LastMessage = &messages[len(messages)-1]
	}
	return conv
}

// GroupByDay yields the conversation's messages bucketed per calendar day in
// the given location, oldest day first. Buckets are built over a send-time
// sorted copy; the thread itself keeps arrival order. The sequence reads
// current state each time it is ranged over, so a retained iterator never
// yields stale data.
func (a *Aggregator) GroupByDay(swapID uuid.UUID, loc *time.Location) iter.Seq[DayGroup] {
	if loc == nil {
		loc = time.Local
	}
	return func(yield func(DayGroup) bool) {
		messages := a.Conversation(swapID).Messages
		sort.SliceStable(messages, func(i, j int) bool {
			return messages[i].SentAt.Before(messages[j].SentAt)
		})

		var current DayGroup
		for _, msg := range messages {
			day := msg.SentAt.In(loc).Format("2006-01-02")
			if day != current.Day {
				if current.Day != "" && !yield(current) {
					return
				}
				current = DayGroup{Day: day}
			}
			current.Messages = append(current.Messages, msg)
		}
		if current.Day != "" {
			yield(current)
		}
	}
}
