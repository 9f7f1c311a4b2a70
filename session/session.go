// Package session runs the single interaction loop that owns the screen,
// the scripting engine and the timers.
package session

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/drake/wristwatch/display"
	"github.com/drake/wristwatch/event"
	"github.com/drake/wristwatch/internal/buffer"
	"github.com/drake/wristwatch/lua"
	"github.com/drake/wristwatch/screen"
	"github.com/drake/wristwatch/timer"
	"github.com/drake/wristwatch/widget"
)

// Ensure Session implements lua.Host at compile time
var _ lua.Host = (*Session)(nil)

// UI is the frontend the session draws to and reads input from.
type UI interface {
	Input() <-chan event.Event
	ShowFrame(f event.Frame)
	Run() error
	Quit()
}

// Config holds session configuration.
type Config struct {
	Width       int
	Height      int
	Refresh     time.Duration
	InitFile    string       // Optional user script run after the core scripts
	UserScripts []string     // CLI script arguments
	Clock       widget.Clock // Defaults to the system clock
	Logger      *log.Logger  // Defaults to log.Default()
}

// Stats is a snapshot of session activity, safe to read from any goroutine.
type Stats struct {
	Screen          screen.Stats
	EventsProcessed int
	Frames          int
	Timers          int
	Callbacks       int
}

// Session wires the screen, engine and timers together. Everything except
// Stats runs on the session goroutine.
type Session struct {
	ui     UI
	screen *screen.Screen
	canvas *display.Canvas
	engine *lua.Engine
	timer  *timer.Service
	log    *log.Logger

	events      chan<- event.Event
	queued      <-chan event.Event
	timerEvents chan timer.Event
	refreshID   int

	config Config
	demo   int

	statsMu sync.Mutex
	stats   Stats

	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

// New creates a Session. It is passive: no goroutines start here.
func New(ui UI, cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = timer.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second
	}

	timerEvents := make(chan timer.Event, 256)
	done := make(chan struct{})
	// Scripts post from the loop itself, so the queue must never block
	in, out := buffer.Unbounded[event.Event](done, 64, 10000)

	s := &Session{
		ui:          ui,
		screen:      screen.New(),
		canvas:      display.NewCanvas(cfg.Width, cfg.Height),
		timer:       timer.NewService(timerEvents),
		log:         cfg.Logger,
		events:      in,
		queued:      out,
		timerEvents: timerEvents,
		config:      cfg,
		done:        done,
		loopDone:    make(chan struct{}),
	}
	s.engine = lua.NewEngine(s, s)

	// The clock lives for the whole session
	s.screen.Add(widget.NewTimeWidget(cfg.Clock))

	return s
}

// Screen returns the widget list. Only use it from the session goroutine.
func (s *Session) Screen() *screen.Screen {
	return s.screen
}

// Run boots the scripts, starts the event loop and blocks on the UI.
func (s *Session) Run() error {
	if err := s.boot(); err != nil {
		s.log.Printf("[Session] boot: %v", err)
	}
	s.present()

	go s.processEvents()

	err := s.ui.Run()
	s.shutdown()

	// The VM belongs to the loop; close it only once the loop is gone
	<-s.loopDone
	s.engine.Close()
	return err
}

// Post queues an event for the session loop.
func (s *Session) Post(ev event.Event) {
	select {
	case <-s.done:
	case s.events <- ev:
	}
}

func (s *Session) processEvents() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.queued:
			s.handleEvent(ev)
		case ev := <-s.ui.Input():
			s.handleEvent(ev)
		case ev := <-s.timerEvents:
			s.handleTimer(ev)
		}
		s.present()
	}
}

// handleEvent executes a single event on the session loop.
func (s *Session) handleEvent(ev event.Event) {
	s.countEvent()

	switch ev.Type {
	case event.Press:
		s.Press()
	case event.Next:
		s.screen.Next()
	case event.Prev:
		s.screen.Prev()
	case event.Fullscreen:
		s.screen.Fullscreen(s.screen.Selected())
	case event.Back:
		s.screen.Back()
	case event.Demo:
		s.Notify(demoMessages[s.demo%len(demoMessages)])
		s.demo++
	case event.Reload:
		s.Reload()
	case event.Quit:
		s.shutdown()
	case event.Deferred:
		if ev.Callback != nil {
			ev.Callback()
		}
	}
}

func (s *Session) handleTimer(ev timer.Event) {
	s.countEvent()
	if ev.Owner == timer.System {
		return // present() picks up the clock change
	}
	s.engine.OnTimer(ev.ID, ev.Repeating)
}

// present renders and publishes a frame if anything changed.
func (s *Session) present() {
	if !s.screen.Dirty() {
		return
	}
	s.screen.Render(s.canvas)

	st := s.screen.Stats()
	s.ui.ShowFrame(event.Frame{
		Pixels:     display.Braille(s.canvas.Image()),
		Status:     status(st),
		Widgets:    st.Widgets,
		Fullscreen: st.Fullscreen,
	})

	s.statsMu.Lock()
	s.stats.Screen = st
	s.stats.Frames++
	s.stats.Timers = s.timer.Pending(timer.Script)
	if s.engine.L != nil {
		s.stats.Callbacks = s.engine.Callbacks()
	}
	s.statsMu.Unlock()
}

func (s *Session) countEvent() {
	s.statsMu.Lock()
	s.stats.EventsProcessed++
	s.statsMu.Unlock()
}

// Stats returns the latest activity snapshot.
func (s *Session) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

func status(st screen.Stats) string {
	if st.Fullscreen {
		return fmt.Sprintf("fullscreen %d/%d", st.Selected+1, st.Widgets)
	}
	return fmt.Sprintf("%d widgets, %d/%d selected, %dpx", st.Widgets, st.Selected+1, st.Widgets, st.Height)
}

// boot (re)creates the VM and runs the core, init and CLI scripts.
func (s *Session) boot() error {
	if err := s.engine.Init(); err != nil {
		return err
	}
	// Script timers die with the old VM; the refresh tick outlives reloads
	if s.refreshID == 0 {
		s.refreshID = s.timer.Repeat(timer.System, s.config.Refresh)
	}

	entries, err := fs.ReadDir(lua.CoreScripts, "core")
	if err != nil {
		return fmt.Errorf("reading core scripts: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := lua.CoreScripts.ReadFile("core/" + file)
		if err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
		if err := s.engine.DoString(file, string(content)); err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
	}

	if path := s.config.InitFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := s.engine.DoFile(path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	for _, path := range s.config.UserScripts {
		if err := s.engine.DoFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	s.engine.CallHook("ready")
	return nil
}

// Reload re-runs every script on a fresh VM. Widgets stay on screen.
func (s *Session) Reload() {
	if err := s.boot(); err != nil {
		s.log.Printf("[Session] reload failed: %v", err)
		s.Notify("Reload failed")
	}
}

// shutdown stops timers, releases widgets and asks the UI to exit.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.timer.Shutdown()
		s.ui.Quit()
	})
}

// Close releases every widget. Call after Run returns.
func (s *Session) Close() error {
	s.shutdown()
	s.engine.Close()
	return s.screen.Close()
}

var demoMessages = []string{
	"Battery low",
	"Incoming call from Alex",
	"Meeting in 5 minutes, room 4",
	"Step goal reached: 10000 steps today!",
}
