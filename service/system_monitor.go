package service

import (
	"context"
	"time"

	"gesturecontrol/models"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemMonitor reports host load so remote clients can tell a sluggish host from a dead link
type SystemMonitor struct {
	started    time.Time
	dispatcher *ActionDispatcher
}

func NewSystemMonitor(dispatcher *ActionDispatcher) *SystemMonitor {
	return &SystemMonitor{
		started:    time.Now(),
		dispatcher: dispatcher,
	}
}

func (m *SystemMonitor) Snapshot(ctx context.Context) (*models.SystemStats, error) {
	cpuUsages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}
	var cpuUsage float64
	if len(cpuUsages) > 0 {
		cpuUsage = cpuUsages[0]
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.SystemStats{
		CPUPercent:    cpuUsage,
		MemoryPercent: vmStat.UsedPercent,
		MemoryUsed:    humanize.Bytes(vmStat.Used),
		MemoryTotal:   humanize.Bytes(vmStat.Total),
		Processes:     len(pids),
		ServingSince:  humanize.Time(m.started),
	}

	// boot time is unavailable in some containers; leave it blank there
	if boot, err := host.BootTimeWithContext(ctx); err == nil && boot > 0 {
		stats.BootedSince = humanize.Time(time.Unix(int64(boot), 0))
	}
	if m.dispatcher != nil {
		stats.Paused = m.dispatcher.Paused()
	}
	return stats, nil
}
