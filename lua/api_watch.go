package lua

import glua "github.com/yuin/gopher-lua"

// registerWatchFuncs registers the screen primitives on the watch table.
func (e *Engine) registerWatchFuncs() {
	// watch.print(text): write to the session log
	e.L.SetField(e.watchTable, "print", e.L.NewFunction(func(L *glua.LState) int {
		e.screen.Print(L.CheckString(1))
		return 0
	}))

	// watch.notify(msg): post a notification, returns its ID
	e.L.SetField(e.watchTable, "notify", e.L.NewFunction(func(L *glua.LState) int {
		id := e.screen.Notify(L.CheckString(1))
		L.Push(glua.LString(id))
		return 1
	}))

	// watch.note(text): add a note, returns its ID or nil, err
	e.L.SetField(e.watchTable, "note", e.L.NewFunction(func(L *glua.LState) int {
		id, err := e.screen.Note(L.CheckString(1))
		if err != nil {
			L.Push(glua.LNil)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		L.Push(glua.LString(id))
		return 1
	}))

	// watch.remove(id): remove a widget, returns true if it existed
	e.L.SetField(e.watchTable, "remove", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(glua.LBool(e.screen.Remove(L.CheckString(1))))
		return 1
	}))

	// watch.press(): press the selected widget, returns the action name
	e.L.SetField(e.watchTable, "press", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(glua.LString(e.screen.Press()))
		return 1
	}))

	// watch.select(n): select the nth widget (1-based)
	e.L.SetField(e.watchTable, "select", e.L.NewFunction(func(L *glua.LState) int {
		n := L.CheckInt(1)
		L.Push(glua.LBool(e.screen.Select(n - 1)))
		return 1
	}))

	// watch.count(): number of widgets on screen
	e.L.SetField(e.watchTable, "count", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(glua.LNumber(e.screen.Count()))
		return 1
	}))
}
