package tilewalk

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// joystickThreshold is the stick deflection at which a fake arrow key is
// pressed.
const joystickThreshold = 0.5

var pointerButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// InputPoller converts Ebitengine's polled input state into Events once per
// tick. Pointer positions are converted from window to display coordinates
// through the surface.
//
// The left stick of the selected gamepad is reported as arrow key presses and
// releases, and its bottom face button as the activate key.
type InputPoller struct {
	// Gamepad is the index, in connection order, of the gamepad to read.
	Gamepad int

	surface *Surface

	keys     []ebiten.Key
	gamepads []ebiten.GamepadID
	events   []Event

	held         Buttons
	lastX, lastY int
	havePointer  bool

	stick [2]int // -1, 0 or 1 per axis
}

// NewInputPoller creates a poller feeding events for s.
func NewInputPoller(s *Surface, gamepad int) *InputPoller {
	return &InputPoller{Gamepad: gamepad, surface: s}
}

// Poll returns the events that happened since the previous call. The returned
// slice is reused by the next call.
func (p *InputPoller) Poll() []Event {
	p.events = p.events[:0]
	p.pollKeys()
	p.pollPointer()
	p.pollGamepad()
	return p.events
}

func (p *InputPoller) pollKeys() {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, KeyEvent(EventPress, k))
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, KeyEvent(EventRelease, k))
	}
}

func (p *InputPoller) pollPointer() {
	cx, cy := ebiten.CursorPosition()
	x, y := p.surface.ScreenToDisplay(cx, cy)
	if !p.havePointer {
		p.lastX, p.lastY = x, y
		p.havePointer = true
	}
	if x != p.lastX || y != p.lastY {
		p.events = append(p.events, PointerEvent(EventPointerMove, x, y, x-p.lastX, y-p.lastY, 0, p.held))
		p.lastX, p.lastY = x, y
	}
	for _, b := range pointerButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			p.held |= buttonBit(b)
			p.events = append(p.events, PointerEvent(EventPointerPress, x, y, 0, 0, b, p.held))
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			p.held &^= buttonBit(b)
			p.events = append(p.events, PointerEvent(EventPointerRelease, x, y, 0, 0, b, p.held))
		}
	}
}

func (p *InputPoller) pollGamepad() {
	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	if p.Gamepad < 0 || p.Gamepad >= len(p.gamepads) {
		return
	}
	id := p.gamepads[p.Gamepad]

	var h, v float64
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		h = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			p.events = append(p.events, KeyEvent(EventPress, p.surface.activateKey))
		}
		if inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom) {
			p.events = append(p.events, KeyEvent(EventRelease, p.surface.activateKey))
		}
	} else {
		h = ebiten.GamepadAxisValue(id, 0)
		v = ebiten.GamepadAxisValue(id, 1)
	}
	p.events = p.stickEvents(p.events, 0, h, ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	p.events = p.stickEvents(p.events, 1, v, ebiten.KeyArrowUp, ebiten.KeyArrowDown)
}

// stickEvents appends the fake key transitions for one stick axis: the key of
// the previous deflection is released before the key of the new one is
// pressed.
func (p *InputPoller) stickEvents(dst []Event, axis int, value float64, neg, pos ebiten.Key) []Event {
	state := 0
	switch {
	case value < -joystickThreshold:
		state = -1
	case value > joystickThreshold:
		state = 1
	}
	prev := p.stick[axis]
	if state == prev {
		return dst
	}
	keyFor := func(s int) ebiten.Key {
		if s < 0 {
			return neg
		}
		return pos
	}
	if prev != 0 {
		dst = append(dst, KeyEvent(EventRelease, keyFor(prev)))
	}
	if state != 0 {
		dst = append(dst, KeyEvent(EventPress, keyFor(state)))
	}
	p.stick[axis] = state
	return dst
}
