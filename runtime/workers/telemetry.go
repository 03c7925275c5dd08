package workers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a point-in-time snapshot of the daemon's own footprint,
// exposed through the inspect server.
type ProcessStats struct {
	RSSBytes   uint64
	CPUPercent float64
	Status     string
	At         time.Time
}

// TelemetryWorker samples the daemon process every interval.
type TelemetryWorker struct {
	log      *slog.Logger
	interval time.Duration

	mu     sync.RWMutex
	latest ProcessStats
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, interval: interval}
}

func (w *TelemetryWorker) Latest() ProcessStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats, err := sampleSelf(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.mu.Lock()
			w.latest = stats
			w.mu.Unlock()
		}
	}
}

func sampleSelf(p *process.Process) (ProcessStats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{
		RSSBytes:   memInfo.RSS,
		CPUPercent: cpuPercent,
		Status:     status,
		At:         time.Now().UTC(),
	}, nil
}
