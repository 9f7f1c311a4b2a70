package lua

import (
	"fmt"
	"time"

	glua "github.com/yuin/gopher-lua"
)

// minInterval keeps a repeating script timer from flooding the session loop.
const minInterval = 50 * time.Millisecond

// registerTimerFuncs registers the watch._timer primitives wrapped by
// core/10_timer.lua, and watch.defer.
func (e *Engine) registerTimerFuncs() {
	t := e.L.NewTable()
	e.L.SetFuncs(t, map[string]glua.LGFunction{
		"after":      e.schedule(false),
		"every":      e.schedule(true),
		"cancel":     e.cancelTimer,
		"cancel_all": e.cancelAllTimers,
		"count":      e.countTimers,
	})
	e.L.SetField(e.watchTable, "_timer", t)

	e.L.SetField(e.watchTable, "defer", e.L.NewFunction(e.deferCall))
}

// schedule implements watch._timer.after(seconds, fn) and
// watch._timer.every(seconds, fn). Both return the timer ID.
func (e *Engine) schedule(repeat bool) glua.LGFunction {
	return func(L *glua.LState) int {
		d := time.Duration(float64(L.CheckNumber(1)) * float64(time.Second))
		fn := L.CheckFunction(2)

		switch {
		case d < 0:
			L.ArgError(1, "delay must not be negative")
		case repeat && d < minInterval:
			L.ArgError(1, fmt.Sprintf("interval must be at least %v", minInterval))
		}

		var id int
		if repeat {
			id = e.timer.TimerEvery(d)
		} else {
			id = e.timer.TimerAfter(d)
		}
		e.callbacks[id] = fn

		L.Push(glua.LNumber(id))
		return 1
	}
}

// cancelTimer implements watch._timer.cancel(id) -> bool. Only IDs handed
// out to scripts are accepted.
func (e *Engine) cancelTimer(L *glua.LState) int {
	id := L.CheckInt(1)
	_, ok := e.callbacks[id]
	if ok {
		delete(e.callbacks, id)
		e.timer.TimerCancel(id)
	}
	L.Push(glua.LBool(ok))
	return 1
}

// cancelAllTimers implements watch._timer.cancel_all() -> count.
func (e *Engine) cancelAllTimers(L *glua.LState) int {
	n := len(e.callbacks)
	e.callbacks = make(map[int]*glua.LFunction)
	e.timer.TimerCancelAll()
	L.Push(glua.LNumber(n))
	return 1
}

// countTimers implements watch._timer.count().
func (e *Engine) countTimers(L *glua.LState) int {
	L.Push(glua.LNumber(len(e.callbacks)))
	return 1
}

// deferCall implements watch.defer(fn): fn runs on the session loop once
// the current event is done. Calls deferred before a reload are dropped.
func (e *Engine) deferCall(L *glua.LState) int {
	fn := L.CheckFunction(1)
	gen := e.gen

	e.timer.Defer(func() {
		if e.L == nil || e.gen != gen {
			return
		}
		e.L.Push(fn)
		if err := e.L.PCall(0, 0, nil); err != nil {
			e.CallHook("error", "defer: "+err.Error())
		}
	})
	return 0
}
