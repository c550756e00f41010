package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ActivitySource reports whether a chat session is currently being served.
type ActivitySource interface {
	Active() bool
}

// TelemetryWorker periodically logs the resource usage of the process.
type TelemetryWorker struct {
	log      *slog.Logger
	interval time.Duration
	source   ActivitySource
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration, source ActivitySource) *TelemetryWorker {
	return &TelemetryWorker{log: log, interval: interval, source: source}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
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
			stats, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}
			w.log.Info("Process stats",
				"pid", p.Pid,
				"status", stats.status,
				"rss_bytes", stats.rss,
				"cpu_percent", stats.cpu,
				"chat_active", w.source != nil && w.source.Active())
		}
	}
}

type processStats struct {
	rss    uint64
	cpu    float64
	status string
}

func selfStats(p *process.Process) (processStats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return processStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return processStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return processStats{}, err
	}
	return processStats{rss: memInfo.RSS, cpu: cpuPercent, status: status}, nil
}
