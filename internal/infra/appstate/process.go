package appstate

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats is a snapshot of the current process resource usage.
type ProcessStats struct {
	PID        int32   `json:"pid"`
	RSSBytes   uint64  `json:"rssBytes"`
	Threads    int32   `json:"threads"`
	CPUPercent float64 `json:"cpuPercent"`
}

// ProcessStatter reads ProcessStats for the running process.
type ProcessStatter struct {
	proc *process.Process
}

// NewProcessStatter creates a statter for the current process.
func NewProcessStatter() (*ProcessStatter, error) {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32 on supported platforms
	if err != nil {
		return nil, fmt.Errorf("open current process: %w", err)
	}

	return &ProcessStatter{proc: proc}, nil
}

// Stats returns current memory, thread and cpu usage.
func (p *ProcessStatter) Stats(ctx context.Context) (ProcessStats, error) {
	mem, err := p.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("read memory info: %w", err)
	}

	threads, err := p.proc.NumThreadsWithContext(ctx)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("read thread count: %w", err)
	}

	cpu, err := p.proc.CPUPercentWithContext(ctx)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("read cpu usage: %w", err)
	}

	return ProcessStats{
		PID:        p.proc.Pid,
		RSSBytes:   mem.RSS,
		Threads:    threads,
		CPUPercent: cpu,
	}, nil
}
