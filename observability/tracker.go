// Package observability collects lightweight runtime counters and periodic
// self-process stats. Side channel only; nothing here influences behavior.
package observability

import "sync/atomic"

type Stats struct {
	EventsDispatched uint64
	MessagesSent     uint64
	DroppedFrames    uint64
	OutboundNoops    uint64
}

// Tracker is safe for concurrent use.
type Tracker struct {
	eventsDispatched atomic.Uint64
	messagesSent     atomic.Uint64
	droppedFrames    atomic.Uint64
	outboundNoops    atomic.Uint64
}

func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) EventDispatched() { t.eventsDispatched.Add(1) }
func (t *Tracker) MessageSent()     { t.messagesSent.Add(1) }
func (t *Tracker) FrameDropped()    { t.droppedFrames.Add(1) }
func (t *Tracker) OutboundNoop()    { t.outboundNoops.Add(1) }

func (t *Tracker) Snapshot() Stats {
	return Stats{
		EventsDispatched: t.eventsDispatched.Load(),
		MessagesSent:     t.messagesSent.Load(),
		DroppedFrames:    t.droppedFrames.Load(),
		OutboundNoops:    t.outboundNoops.Load(),
	}
}
