package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, Esc, Ctrl+C
	IntentClearPulses // c
	IntentClearField  // C, pulses and spots
	IntentTogglePause // Space
	IntentToggleMute  // m
	IntentResize      // Terminal resize event

	// Pointer
	IntentPointerDown // left button pressed
	IntentPointerMove // motion with left button held
	IntentPointerUp   // left button released
	IntentPointerOver // motion with no button held
)

var intentNames = [...]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentClearPulses: "clear",
	IntentClearField:  "clear-field",
	IntentTogglePause: "pause",
	IntentToggleMute:  "mute",
	IntentResize:      "resize",
	IntentPointerDown: "pointer-down",
	IntentPointerMove: "pointer-move",
	IntentPointerUp:   "pointer-up",
	IntentPointerOver: "pointer-over",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one translated terminal event
// X, Y are the cell for pointer intents and the new size for IntentResize
type Intent struct {
	Type IntentType
	X, Y int
}

// IsPointer reports whether the intent carries a pointer position
func (i Intent) IsPointer() bool {
	return i.Type >= IntentPointerDown && i.Type <= IntentPointerOver
}
