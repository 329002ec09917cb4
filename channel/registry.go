package channel

import (
	"sync"

	"swapmeet/contract"
	"swapmeet/domain/event"
)

// Registry multiplexes inbound channel events to subscribers by kind. Each
// event kind has its own sink set; an event is offered to every sink
// registered for its kind and to no one else.
type Registry struct {
	mu   sync.RWMutex
	subs map[event.Kind]map[*Subscription]struct{}
}

// Subscription is a scoped handle. A disposed component must Cancel it so no
// event reaches a handler whose owning context is gone.
type Subscription struct {
	kind     event.Kind
	sink     contract.EventSink
	registry *Registry
	once     sync.Once
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[event.Kind]map[*Subscription]struct{})}
}

func (r *Registry) Subscribe(kind event.Kind, sink contract.EventSink) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := &Subscription{kind: kind, sink: sink, registry: r}
	if r.subs[kind] == nil {
		r.subs[kind] = make(map[*Subscription]struct{})
	}
	r.subs[kind][sub] = struct{}{}
	return sub
}

// Cancel releases the subscription deterministically. Safe to call twice.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		r := s.registry
		r.mu.Lock()
		defer r.mu.Unlock()

		set := r.subs[s.kind]
		delete(set, s)
		// Leave no empty sets behind
		if len(set) == 0 {
			delete(r.subs, s.kind)
		}
	})
}

// SinksFor resolves the active sinks for one event kind.
func (r *Registry) SinksFor(kind event.Kind) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.subs[kind]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(set))
	for sub := range set {
		sinks = append(sinks, sub.sink)
	}
	return sinks
}
