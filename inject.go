package tilewalk

import "github.com/hajimehoshi/ebiten/v2"

// InputQueue holds synthetic events, for tests and scripted demos. The game
// loop drains it before polled input each tick. Pointer coordinates are
// display coordinates; relative motion and held buttons are tracked by the
// queue itself so injected drags look like real ones.
type InputQueue struct {
	events       []Event
	held         Buttons
	lastX, lastY int
}

// Len returns the number of queued events.
func (q *InputQueue) Len() int { return len(q.events) }

// Push queues an arbitrary event.
func (q *InputQueue) Push(ev Event) { q.events = append(q.events, ev) }

// InjectKey queues a press followed by a release of k.
func (q *InputQueue) InjectKey(k ebiten.Key) {
	q.InjectKeyPress(k)
	q.InjectKeyRelease(k)
}

// InjectKeyPress queues a key press.
func (q *InputQueue) InjectKeyPress(k ebiten.Key) { q.Push(KeyEvent(EventPress, k)) }

// InjectKeyRelease queues a key release.
func (q *InputQueue) InjectKeyRelease(k ebiten.Key) { q.Push(KeyEvent(EventRelease, k)) }

// InjectPress queues a button press at (x, y), preceded by a move when the
// pointer is elsewhere.
func (q *InputQueue) InjectPress(x, y int, b ebiten.MouseButton) {
	q.InjectMove(x, y)
	q.held |= buttonBit(b)
	q.Push(PointerEvent(EventPointerPress, x, y, 0, 0, b, q.held))
}

// InjectMove queues a pointer move to (x, y) with the currently held buttons.
func (q *InputQueue) InjectMove(x, y int) {
	if x == q.lastX && y == q.lastY {
		return
	}
	q.Push(PointerEvent(EventPointerMove, x, y, x-q.lastX, y-q.lastY, 0, q.held))
	q.lastX, q.lastY = x, y
}

// InjectRelease queues a button release at (x, y).
func (q *InputQueue) InjectRelease(x, y int, b ebiten.MouseButton) {
	q.InjectMove(x, y)
	q.held &^= buttonBit(b)
	q.Push(PointerEvent(EventPointerRelease, x, y, 0, 0, b, q.held))
}

// InjectDrag queues a press at (fromX, fromY), steps interpolated moves and a
// release at (toX, toY).
func (q *InputQueue) InjectDrag(fromX, fromY, toX, toY, steps int, b ebiten.MouseButton) {
	q.InjectPress(fromX, fromY, b)
	for i := 1; i <= steps; i++ {
		q.InjectMove(fromX+(toX-fromX)*i/(steps+1), fromY+(toY-fromY)*i/(steps+1))
	}
	q.InjectRelease(toX, toY, b)
}

// Drain appends every queued event to dst and empties the queue.
func (q *InputQueue) Drain(dst []Event) []Event {
	dst = append(dst, q.events...)
	clear(q.events)
	q.events = q.events[:0]
	return dst
}
