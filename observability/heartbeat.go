package observability

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HeartbeatWorker periodically logs self-process stats and channel counters.
// Runs under the supervisor like any other worker.
type HeartbeatWorker struct {
	log      *slog.Logger
	tracker  *Tracker
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, tracker *Tracker, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, tracker: tracker, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := w.tracker.Snapshot()
			rss, cpu := selfStats(p)
			w.log.Info("Heartbeat",
				"rss_bytes", rss,
				"cpu_percent", cpu,
				"events_dispatched", stats.EventsDispatched,
				"messages_sent", stats.MessagesSent,
				"dropped_frames", stats.DroppedFrames,
				"outbound_noops", stats.OutboundNoops,
			)
		}
	}
}

func selfStats(p *process.Process) (uint64, float64) {
	var rss uint64
	if memInfo, err := p.MemoryInfo(); err == nil {
		rss = memInfo.RSS
	}
	cpu, _ := p.CPUPercent()
	return rss, cpu
}
