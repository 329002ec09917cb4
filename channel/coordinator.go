// Package channel owns the one live realtime connection per authenticated
// session. It multiplexes inbound events to subscribers, exposes the outbound
// actions, and surfaces connection state as data, never as exceptions: a
// dropped connection makes outbound actions silent no-ops until someone
// explicitly reconnects.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"swapmeet/contract"
	"swapmeet/domain"
	"swapmeet/domain/event"
	"swapmeet/errors"
	"swapmeet/observability"
	"swapmeet/session"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

const writeWait = 10 * time.Second

// outboundFrame is the client-to-server action envelope.
type outboundFrame struct {
	Action string    `json:"action"`
	SwapID uuid.UUID `json:"swap_id"`
	Text   string    `json:"text,omitempty"`
}

const (
	actionJoinConversation = "join-conversation"
	actionSendChatMessage  = "send-chat-message"
	actionTypingSignal     = "typing"
)

type Coordinator struct {
	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	identity string

	// writeMu serializes frame writes; gorilla allows one writer at a time.
	writeMu sync.Mutex

	baseURL  string
	dialer   *websocket.Dialer
	log      *slog.Logger
	registry *Registry
	tracker  *observability.Tracker
	conns    chan *websocket.Conn
}

func NewCoordinator(log *slog.Logger, baseURL string, tracker *observability.Tracker) *Coordinator {
	return &Coordinator{
		state:    StateDisconnected,
		baseURL:  baseURL,
		dialer:   websocket.DefaultDialer,
		log:      log,
		registry: NewRegistry(),
		tracker:  tracker,
		conns:    make(chan *websocket.Conn, 1),
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) IsConnected() bool {
	return c.State() == StateConnected
}

// Subscribe registers a sink for one event kind and returns its scoped handle.
func (c *Coordinator) Subscribe(kind event.Kind, sink contract.EventSink) *Subscription {
	return c.registry.Subscribe(kind, sink)
}

// BindSession ties the connection lifecycle to authentication transitions:
// the channel opens when a session becomes authenticated and closes on
// logout, regardless of its prior state.
func (c *Coordinator) BindSession(ctx context.Context, store *session.Store) {
	store.OnAuthChange(func(authenticated bool, identity domain.Identity) {
		if !authenticated {
			c.Close()
			return
		}
		if err := c.Connect(ctx, identity.ID); err != nil {
			c.log.Warn("Channel connect failed", "identity", identity.ID, "err", err)
		}
	})
}

// Connect opens the connection carrying the identity id as credential. A
// second call while a connection exists is a no-op: at most one live
// connection per session.
func (c *Coordinator) Connect(ctx context.Context, identityID string) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.identity = identityID
	c.mu.Unlock()

	endpoint := c.baseURL + "?identity=" + url.QueryEscape(identityID)
	conn, _, err := c.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		c.mu.Lock()
		if c.state == StateConnecting && c.identity == identityID {
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", errors.ErrUnreachable, err)
	}

	c.mu.Lock()
	// Close may have run while the dial was in flight. A logout must stick:
	// never commit a connection into a session that ended underneath it.
	if c.state != StateConnecting || c.identity != identityID {
		c.mu.Unlock()
		_ = conn.Close()
		c.log.Info("Discarding connection superseded by close", "identity", identityID)
		return nil
	}
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()
	c.log.Info("Channel connected", "identity", identityID)

	c.offer(conn)
	return nil
}

// Reconnect re-opens the channel after a drop. Never called automatically:
// observers of IsConnected decide when to retry.
func (c *Coordinator) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()
	if identity == "" {
		return errors.ErrNotAuthenticated
	}
	return c.Connect(ctx, identity)
}

// Close tears the connection down. Idempotent.
func (c *Coordinator) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.identity = ""
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
		c.log.Info("Channel closed")
	}
}

// Run is the read pump, a supervised worker. It waits for connections handed
// over by Connect and reads each one until it drops. Frames are processed
// one at a time, which preserves the per-swap delivery order the consumers
// rely on.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case conn := <-c.conns:
			c.pump(ctx, conn)
		}
	}
}

func (c *Coordinator) pump(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.dropped(conn, err)
			return
		}

		evt, err := event.Decode(data)
		if err != nil {
			c.tracker.FrameDropped()
			c.log.Warn("Discarding malformed channel frame", "err", err)
			continue
		}
		c.dispatch(ctx, evt)
	}
}

// dispatch offers the event to every sink of its kind. A failing handler is
// logged and skipped; the pump must keep running.
func (c *Coordinator) dispatch(ctx context.Context, evt event.ChannelEvent) {
	for _, sink := range c.registry.SinksFor(evt.Kind()) {
		if err := sink.Consume(ctx, evt); err != nil {
			c.log.Error("Event handler failed", "kind", evt.Kind(), "swap", evt.SwapID(), "err", err)
		}
	}
	c.tracker.EventDispatched()
}

// JoinConversation declares interest in a conversation's events.
func (c *Coordinator) JoinConversation(swapID uuid.UUID) {
	c.send(outboundFrame{Action: actionJoinConversation, SwapID: swapID})
}

// SendChatMessage emits a message. The caller creates the optimistic local
// Message before calling this.
func (c *Coordinator) SendChatMessage(swapID uuid.UUID, text string) {
	if c.send(outboundFrame{Action: actionSendChatMessage, SwapID: swapID, Text: text}) {
		c.tracker.MessageSent()
	}
}

// SendTypingSignal is best effort: no delivery or ordering guarantee.
func (c *Coordinator) SendTypingSignal(swapID uuid.UUID) {
	c.send(outboundFrame{Action: actionTypingSignal, SwapID: swapID})
}

func (c *Coordinator) send(frame outboundFrame) bool {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		c.tracker.OutboundNoop()
		c.log.Debug("Dropping outbound action, channel not connected", "action", frame.Action)
		return false
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		c.dropped(conn, err)
		return false
	}
	return true
}

// dropped marks the connection lost, unless a newer one already replaced it.
func (c *Coordinator) dropped(conn *websocket.Conn, err error) {
	c.mu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
		c.state = StateDisconnected
	}
	c.mu.Unlock()

	_ = conn.Close()
	if current {
		c.log.Warn("Channel dropped", "err", err)
	}
}

// offer hands a fresh connection to the read pump, displacing a stale one
// the pump never picked up.
func (c *Coordinator) offer(conn *websocket.Conn) {
	for {
		select {
		case c.conns <- conn:
			return
		default:
		}
		select {
		case stale := <-c.conns:
			_ = stale.Close()
		default:
		}
	}
}
