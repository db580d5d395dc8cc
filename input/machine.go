package input

import "github.com/gdamore/tcell/v2"

// Machine turns raw tcell events into intents
// Terminals report button state, not transitions; Machine derives press and release edges
type Machine struct {
	keys    *KeyTable
	buttons tcell.ButtonMask
	lastX   int
	lastY   int
}

// NewMachine creates a machine with kt, nil uses DefaultKeyTable
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keys: kt, lastX: -1, lastY: -1}
}

// Process returns the intent for ev, nil when the event means nothing
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t := m.keys.Lookup(ev); t != IntentNone {
			return &Intent{Type: t}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, X: w, Y: h}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	was := m.buttons&tcell.Button1 != 0
	is := ev.Buttons()&tcell.Button1 != 0
	moved := x != m.lastX || y != m.lastY

	m.buttons = ev.Buttons()
	m.lastX, m.lastY = x, y

	switch {
	case is && !was:
		return &Intent{Type: IntentPointerDown, X: x, Y: y}
	case !is && was:
		return &Intent{Type: IntentPointerUp, X: x, Y: y}
	case !moved:
		return nil
	case is:
		return &Intent{Type: IntentPointerMove, X: x, Y: y}
	default:
		return &Intent{Type: IntentPointerOver, X: x, Y: y}
	}
}
