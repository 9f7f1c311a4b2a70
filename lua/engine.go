// Package lua embeds a Lua VM that lets scripts post notifications and
// notes to the watch screen.
package lua

import (
	"os"
	"path/filepath"
	"strings"

	glua "github.com/yuin/gopher-lua"
)

// Engine wraps gopher-lua and manages the VM lifecycle.
// It knows how to run Lua code and expose the watch API; it does not know
// about core scripts, config dirs, or boot order.
type Engine struct {
	L *glua.LState

	// Cached table reference
	watchTable *glua.LTable

	screen ScreenHost
	timer  TimerHost

	// Timer callbacks by timer ID
	callbacks map[int]*glua.LFunction

	// Bumped by Init so work queued for an old VM is dropped
	gen int
}

// NewEngine creates an Engine bound to the given hosts.
func NewEngine(screen ScreenHost, timer TimerHost) *Engine {
	return &Engine{
		screen:    screen,
		timer:     timer,
		callbacks: make(map[int]*glua.LFunction),
	}
}

// --- Lifecycle ---

// Init (re)creates the VM and registers the API. It loads no scripts.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}
	e.L = glua.NewState()
	e.gen++

	// Timers from a previous VM must not call into the new one
	e.timer.TimerCancelAll()
	e.callbacks = make(map[int]*glua.LFunction)

	e.registerAPIs()
	return nil
}

// Close cancels timers and releases the VM.
func (e *Engine) Close() {
	if e.L == nil {
		return
	}
	e.timer.TimerCancelAll()
	e.callbacks = nil
	e.L.Close()
	e.L = nil
}

// Callbacks returns the number of live timer callbacks.
func (e *Engine) Callbacks() int {
	return len(e.callbacks)
}

// OnTimer runs the callback bound to a fired timer.
func (e *Engine) OnTimer(id int, repeating bool) {
	if e.L == nil {
		return
	}

	fn, ok := e.callbacks[id]
	if !ok {
		return // Cancelled, or from a previous VM
	}

	e.L.Push(fn)
	if err := e.L.PCall(0, 0, nil); err != nil {
		e.CallHook("error", "timer: "+err.Error())
	}

	if !repeating {
		delete(e.callbacks, id)
	}
}

// --- Execution ---

// DoString executes a chunk of Lua code. name appears in stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file, letting it require siblings.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.L.DoFile(absPath)

	e.L.SetField(pkg, "path", glua.LString(oldPath))
	return err
}

// CallHook calls watch.hooks.call(event, args...). Missing hooks and
// handler errors are ignored.
func (e *Engine) CallHook(event string, args ...string) {
	if e.L == nil {
		return
	}
	fn := e.hooksCall()
	if fn == glua.LNil {
		return
	}

	luaArgs := make([]glua.LValue, len(args)+1)
	luaArgs[0] = glua.LString(event)
	for i, arg := range args {
		luaArgs[i+1] = glua.LString(arg)
	}

	e.L.CallByParam(glua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, luaArgs...)
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.watchTable = e.L.NewTable()
	e.L.SetGlobal("watch", e.watchTable)

	e.registerWatchFuncs()
	e.registerTimerFuncs()
}

// hooksCall returns watch.hooks.call, or LNil if the core scripts have not
// defined it.
func (e *Engine) hooksCall() glua.LValue {
	hooks, ok := e.L.GetField(e.watchTable, "hooks").(*glua.LTable)
	if !ok {
		return glua.LNil
	}
	fn := e.L.GetField(hooks, "call")
	if fn.Type() != glua.LTFunction {
		return glua.LNil
	}
	return fn
}

// expandTilde expands ~ to the home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
