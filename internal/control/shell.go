package control

import "github.com/vovakirdan/couch-arcade/internal/core"

// ShellAction maps a host key name to the discrete shell action it
// triggers, alongside any player binding on the same key. quit reports
// the keys that close the front-end.
func ShellAction(key string) (action core.Action, quit bool) {
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "1":
		return core.ActionOption1, false
	case "2":
		return core.ActionOption2, false
	case "3":
		return core.ActionOption3, false
	case "left":
		return core.ActionPrev, false
	case "right":
		return core.ActionNext, false
	}
	return core.ActionNone, false
}
