package controller

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcell reports printable keys as KeyRune events. Mapping the runes onto
// the otherwise unused ASCII range of the Key space lets them share the
// event table with real special keys.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Shifted keys.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

var keyNamesOnce sync.Once

// initKeys registers display names for the rune-based keys so headers can
// use tcell.KeyNames for every entry in an event table. tcell.KeyNames is
// a shared map, hence the Once.
func initKeys() {
	keyNamesOnce.Do(func() {
		for key := KeyA; key <= KeyZ; key++ {
			tcell.KeyNames[key] = string(rune(key))
		}

		for key := KeyShiftA; key <= KeyShiftZ; key++ {
			tcell.KeyNames[key] = "Shift-" + string(rune(key))
		}
	})
}

// AsKey converts a rune event to its keyboard key; non-rune events pass
// through unchanged.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}
