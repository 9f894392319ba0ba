package health

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is the liveness payload served on /health.
type Status struct {
	Status        string  `json:"status"`
	Mode          string  `json:"mode"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

type Checker struct {
	mode    string
	started time.Time
}

func NewChecker(remoteEnabled bool) *Checker {
	mode := "local"
	if remoteEnabled {
		mode = "remote"
	}
	return &Checker{mode: mode, started: time.Now()}
}

// Check gathers process and host stats. Stat failures leave zeros; the
// endpoint itself never fails.
func (c *Checker) Check() Status {
	s := Status{
		Status:        "ok",
		Mode:          c.mode,
		UptimeSeconds: time.Since(c.started).Seconds(),
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemoryPercent = vm.UsedPercent
	}
	return s
}
