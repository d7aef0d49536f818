package tilewalk

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventKind is the discriminant of an Event.
type EventKind uint8

const (
	EventPress          EventKind = iota // controller or key press
	EventRelease                         // controller or key release
	EventPointerPress                    // pointer button pressed
	EventPointerRelease                  // pointer button released
	EventPointerMove                     // pointer moved
	EventActivate                        // activate key delivered to nodes in an area
	EventFrame                           // once per frame, never dispatched to nodes
)

var eventNames = [...]string{"contpress", "contrelease", "pointpress", "pointrelease", "pointmove", "activate", "frame"}

// String returns the binding name of the kind, e.g. "contpress".
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// ParseEventKind maps a binding name back to its kind.
func ParseEventKind(name string) (EventKind, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventKind(i), true
		}
	}
	return 0, false
}

// Buttons is a bitmask of held pointer buttons.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

// Has reports whether b includes every button of other.
func (b Buttons) Has(other Buttons) bool { return b&other == other }

func buttonBit(mb ebiten.MouseButton) Buttons {
	switch mb {
	case ebiten.MouseButtonLeft:
		return ButtonLeft
	case ebiten.MouseButtonRight:
		return ButtonRight
	case ebiten.MouseButtonMiddle:
		return ButtonMiddle
	}
	return 0
}

// Event is the single input variant routed through the dispatcher. Which
// payload fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind

	// Key is set for EventPress, EventRelease and EventActivate.
	Key ebiten.Key

	// Pointer payload: absolute display position, motion since the previous
	// pointer event and the buttons held after this event.
	X, Y       int
	RelX, RelY int
	Button     ebiten.MouseButton
	Buttons    Buttons
}

// KeyEvent builds a press or release event.
func KeyEvent(kind EventKind, key ebiten.Key) Event {
	return Event{Kind: kind, Key: key}
}

// PointerEvent builds a pointer event.
func PointerEvent(kind EventKind, x, y, relX, relY int, button ebiten.MouseButton, held Buttons) Event {
	return Event{Kind: kind, X: x, Y: y, RelX: relX, RelY: relY, Button: button, Buttons: held}
}

// Var is the textual payload exposed to bound scripts: the key name for key
// events, "x y button" for pointer events.
func (e *Event) Var() string {
	switch e.Kind {
	case EventPress, EventRelease, EventActivate:
		return e.Key.String()
	case EventPointerPress, EventPointerRelease, EventPointerMove:
		return strconv.Itoa(e.X) + " " + strconv.Itoa(e.Y) + " " + strconv.Itoa(int(e.Button))
	}
	return ""
}

// Result tells the dispatcher whether to keep delivering an event.
type Result bool

const (
	Pass     Result = false
	Consumed Result = true
)
