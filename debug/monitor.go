// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/drake/wristwatch/session"
)

// Enabled returns true if debug mode is forced from the environment (WATCH_DEBUG=1).
func Enabled() bool {
	return os.Getenv("WATCH_DEBUG") == "1"
}

// StatsSource is satisfied by *session.Session.
type StatsSource interface {
	Stats() session.Stats
}

// Monitor periodically logs session statistics.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	ctx      context.Context
	logger   *log.Logger
}

// NewMonitor creates a monitor for the given session. A nil logger logs to
// the standard logger, which is redirected to the log file while the UI runs.
func NewMonitor(ctx context.Context, src StatsSource, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		source:   src,
		interval: 5 * time.Second,
		ctx:      ctx,
		logger:   logger,
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Println("[DEBUG] Monitor started")

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Println("[DEBUG] Monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()

	m.logger.Printf("[DEBUG] events=%d frames=%d goroutines=%d | screen: widgets=%d height=%d selected=%d fullscreen=%v renders=%d presses=%d destroyed=%d | lua: cb=%d | timers=%d",
		s.EventsProcessed,
		s.Frames,
		runtime.NumGoroutine(),
		s.Screen.Widgets,
		s.Screen.Height,
		s.Screen.Selected,
		s.Screen.Fullscreen,
		s.Screen.Renders,
		s.Screen.Presses,
		s.Screen.Destroyed,
		s.Callbacks,
		s.Timers,
	)
}
