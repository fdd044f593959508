package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats aggregates service counters and process metrics for the
// inspector page.
type Stats struct {
	RoomsCreated   uint64  `json:"rooms_created"`
	MessagesPosted uint64  `json:"messages_posted"`
	FetchCalls     uint64  `json:"fetch_calls"`
	AuthFailures   uint64  `json:"auth_failures"`
	CensorHits     uint64  `json:"censor_hits"`
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
	Goroutines     int     `json:"goroutines"`
	RssMb          uint64  `json:"rss_mb"`
	CPUPercent     float64 `json:"cpu_percent"`
	Uptime         string  `json:"uptime"`
}

// Monitor collects real-time telemetry with atomic counters.
type Monitor struct {
	log     *slog.Logger
	started time.Time
	proc    *process.Process

	roomsCreated   uint64
	messagesPosted uint64
	fetchCalls     uint64
	authFailures   uint64
	censorHits     uint64
}

func NewMonitor(log *slog.Logger) *Monitor {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process metrics unavailable", "err", err)
		p = nil
	}
	return &Monitor{log: log, started: time.Now(), proc: p}
}

func (m *Monitor) IncrRoomsCreated() {
	atomic.AddUint64(&m.roomsCreated, 1)
}

func (m *Monitor) IncrMessagesPosted() {
	atomic.AddUint64(&m.messagesPosted, 1)
}

func (m *Monitor) IncrFetchCalls() {
	atomic.AddUint64(&m.fetchCalls, 1)
}

func (m *Monitor) IncrAuthFailures() {
	atomic.AddUint64(&m.authFailures, 1)
}

func (m *Monitor) IncrCensorHits() {
	atomic.AddUint64(&m.censorHits, 1)
}

// Snapshot merges the counters with Go runtime numbers and, when
// available, the process RSS and CPU from the OS.
func (m *Monitor) Snapshot() Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := Stats{
		RoomsCreated:   atomic.LoadUint64(&m.roomsCreated),
		MessagesPosted: atomic.LoadUint64(&m.messagesPosted),
		FetchCalls:     atomic.LoadUint64(&m.fetchCalls),
		AuthFailures:   atomic.LoadUint64(&m.authFailures),
		CensorHits:     atomic.LoadUint64(&m.censorHits),
		AllocMemMb:     ms.Alloc / 1024 / 1024,
		NumGC:          ms.NumGC,
		Goroutines:     runtime.NumGoroutine(),
		Uptime:         time.Since(m.started).Round(time.Second).String(),
	}

	if m.proc != nil {
		if mem, err := m.proc.MemoryInfo(); err == nil {
			stats.RssMb = mem.RSS / 1024 / 1024
		}
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
	}
	return stats
}
