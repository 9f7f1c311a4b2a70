package session

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/wristwatch/event"
	"github.com/drake/wristwatch/timer"
	"github.com/drake/wristwatch/widget"
)

// fakeUI captures frames and lets tests inject input.
type fakeUI struct {
	input  chan event.Event
	frames []event.Frame
	run    chan struct{}
	quits  int
}

func newFakeUI() *fakeUI {
	return &fakeUI{
		input: make(chan event.Event, 16),
		run:   make(chan struct{}),
	}
}

func (f *fakeUI) Input() <-chan event.Event { return f.input }
func (f *fakeUI) ShowFrame(fr event.Frame)  { f.frames = append(f.frames, fr) }
func (f *fakeUI) Run() error                { <-f.run; return nil }
func (f *fakeUI) Quit()                     { f.quits++ }

func (f *fakeUI) last() event.Frame { return f.frames[len(f.frames)-1] }

func newTestSession(t *testing.T, cfg Config) (*Session, *fakeUI, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	ui := newFakeUI()
	cfg.Width, cfg.Height = 128, 128
	cfg.Refresh = time.Hour
	if cfg.Clock == nil {
		cfg.Clock = timer.NewFakeClock(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	}
	cfg.Logger = log.New(&logs, "", 0)

	s := New(ui, cfg)
	require.NoError(t, s.boot())
	t.Cleanup(func() { s.Close() })
	return s, ui, &logs
}

func TestStartsWithClock(t *testing.T) {
	s, ui, _ := newTestSession(t, Config{})
	s.present()

	require.Len(t, ui.frames, 1)
	assert.Equal(t, 1, ui.last().Widgets)
	assert.NotEmpty(t, ui.last().Pixels)

	w, ok := s.Screen().Widget(s.Screen().IDs()[0])
	require.True(t, ok)
	assert.IsType(t, &widget.TimeWidget{}, w)
}

func TestPresentOnlyWhenDirty(t *testing.T) {
	clock := timer.NewFakeClock(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	s, ui, _ := newTestSession(t, Config{Clock: clock})

	s.present()
	s.present()
	assert.Len(t, ui.frames, 1)

	clock.Advance(time.Second)
	s.present()
	assert.Len(t, ui.frames, 2)
	assert.Equal(t, 2, s.Stats().Frames)
}

func TestDemoNotificationAndPress(t *testing.T) {
	s, ui, _ := newTestSession(t, Config{})

	s.handleEvent(event.Event{Type: event.Demo})
	s.handleEvent(event.Event{Type: event.Next})
	s.present()
	assert.Equal(t, 2, ui.last().Widgets)

	s.handleEvent(event.Event{Type: event.Press})
	s.present()
	assert.Equal(t, 1, ui.last().Widgets)
	assert.Equal(t, 1, s.Stats().Screen.Destroyed)
}

func TestNoteOpensFullscreen(t *testing.T) {
	s, ui, _ := newTestSession(t, Config{})

	id, err := s.Note("\x1b[1mhello world\x1b[0m")
	require.NoError(t, err)

	w, ok := s.Screen().Widget(id)
	require.True(t, ok)
	assert.Equal(t, "hello world", w.(*widget.NoteWidget).Text())

	s.Select(1)
	assert.Equal(t, "fullscreen", s.Press())
	s.present()
	assert.True(t, ui.last().Fullscreen)

	s.handleEvent(event.Event{Type: event.Back})
	s.present()
	assert.False(t, ui.last().Fullscreen)
}

func TestFullscreenEvent(t *testing.T) {
	s, ui, _ := newTestSession(t, Config{})
	s.handleEvent(event.Event{Type: event.Fullscreen})
	s.present()
	assert.True(t, ui.last().Fullscreen)
	assert.Equal(t, "fullscreen 1/1", ui.last().Status)
}

func TestInitScript(t *testing.T) {
	dir := t.TempDir()
	initFile := filepath.Join(dir, "init.lua")
	require.NoError(t, os.WriteFile(initFile, []byte(`
		watch.hooks.on("ready", function()
			watch.notify("Booted")
			watch.note("Remember the milk")
		end)
		watch.hooks.on("press", function(action) watch.print("press " .. action) end)
	`), 0o644))

	s, _, logs := newTestSession(t, Config{InitFile: initFile})
	assert.Equal(t, 3, s.Count())

	s.Select(1)
	assert.Equal(t, "destroy", s.Press())
	assert.Contains(t, logs.String(), "[Lua] press destroy")
	assert.Equal(t, 2, s.Count())
}

func TestMissingInitFileIgnored(t *testing.T) {
	s, _, _ := newTestSession(t, Config{InitFile: filepath.Join(t.TempDir(), "none.lua")})
	assert.Equal(t, 1, s.Count())
}

func TestBadUserScript(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.lua")
	require.NoError(t, os.WriteFile(bad, []byte("this is not lua"), 0o644))

	ui := newFakeUI()
	s := New(ui, Config{Width: 64, Height: 64, UserScripts: []string{bad}, Logger: log.New(&bytes.Buffer{}, "", 0)})
	defer s.Close()

	assert.ErrorContains(t, s.boot(), "bad.lua")
}

func TestReloadKeepsWidgets(t *testing.T) {
	s, _, _ := newTestSession(t, Config{})
	s.Notify("kept")

	s.handleEvent(event.Event{Type: event.Reload})
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 1, s.timer.Pending(timer.System), "refresh tick survives a reload")
}

func TestScriptTimerDispatch(t *testing.T) {
	s, _, logs := newTestSession(t, Config{})
	require.NoError(t, s.engine.DoString("t", `watch.timer.after(60, function() watch.print("fired") end)`))

	// Script timers are scheduled after the refresh tick
	s.handleTimer(timer.Event{ID: s.refreshID + 1, Owner: timer.Script})
	assert.Contains(t, logs.String(), "[Lua] fired")

	// The refresh tick never reaches the engine
	s.handleTimer(timer.Event{ID: s.refreshID, Owner: timer.System, Repeating: true})
	assert.Equal(t, 1, strings.Count(logs.String(), "[Lua] fired"))
}

func TestAsyncAndQuit(t *testing.T) {
	s, ui, _ := newTestSession(t, Config{})

	called := false
	s.handleEvent(event.Event{Type: event.Deferred, Callback: func() { called = true }})
	assert.True(t, called)

	s.handleEvent(event.Event{Type: event.Quit})
	s.handleEvent(event.Event{Type: event.Quit})
	assert.Equal(t, 1, ui.quits)
}

func TestRunLoop(t *testing.T) {
	ui := newFakeUI()
	s := New(ui, Config{
		Width:  128,
		Height: 64,
		Clock:  timer.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Logger: log.New(&bytes.Buffer{}, "", 0),
	})

	done := make(chan error)
	go func() { done <- s.Run() }()

	s.Post(event.Event{Type: event.Demo})
	result := make(chan int)
	s.Post(event.Event{Type: event.Deferred, Callback: func() { result <- s.Count() }})
	assert.Equal(t, 2, <-result)

	close(ui.run)
	require.NoError(t, <-done)
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Count())
}

func TestScriptCancelAllKeepsRefresh(t *testing.T) {
	s, _, _ := newTestSession(t, Config{})
	require.NoError(t, s.engine.DoString("user", `
		watch.timer.every(1, function() end)
		watch.timer.cancel_all()
		watch.timer.cancel(1)
	`))

	assert.Equal(t, 1, s.timer.Pending(timer.System), "refresh tick still scheduled")
	assert.Equal(t, 0, s.timer.Pending(timer.Script))

	// Even a direct cancel of the refresh ID is refused
	s.TimerCancel(s.refreshID)
	assert.Equal(t, 1, s.timer.Pending(timer.System))
}

func drain(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case ev := <-s.queued:
			s.handleEvent(ev)
		case <-time.After(time.Second):
			t.Fatalf("deferred event %d never arrived", i)
		}
	}
}

func TestScriptDeferRunsAfterCurrentEvent(t *testing.T) {
	s, _, logs := newTestSession(t, Config{})
	require.NoError(t, s.engine.DoString("user", `
		watch.defer(function() watch.notify("Deferred") end)
		watch.print("count " .. watch.count())
	`))

	assert.Contains(t, logs.String(), "[Lua] count 1")
	assert.Equal(t, 1, s.Count())

	drain(t, s, 1)
	assert.Equal(t, 2, s.Count())
}

func TestScriptDeferFloodDoesNotBlockLoop(t *testing.T) {
	s, _, logs := newTestSession(t, Config{})

	// Runs on the loop's own goroutine with nobody draining the queue
	require.NoError(t, s.engine.DoString("user", `
		n = 0
		for i = 1, 1000 do
			watch.defer(function() n = n + 1 end)
		end
	`))

	drain(t, s, 1000)
	require.NoError(t, s.engine.DoString("check", `watch.print("n=" .. n)`))
	assert.Contains(t, logs.String(), "[Lua] n=1000")
}

func TestNotifyFlattensNewlines(t *testing.T) {
	s, _, _ := newTestSession(t, Config{})
	id := s.Notify("Call\nfrom\r\nAlex")

	w, ok := s.Screen().Widget(id)
	require.True(t, ok)
	assert.Equal(t, "Call from  Alex", w.(*widget.NotificationWidget).Text())
}
