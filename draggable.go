package tilewalk

// Dragged reports whether a draggable node is currently held.
func (n *Node) Dragged() bool { return n.dragged }

// handleDrag moves a RoleDraggable node with the left button. A press strictly
// inside the node starts the drag, dims it and consumes the event.
func (n *Node) handleDrag(ev *Event) Result {
	switch ev.Kind {
	case EventPointerPress:
		dx, dy := n.DisplayX(), n.DisplayY()
		if ev.Buttons.Has(ButtonLeft) &&
			ev.X > dx && ev.X < dx+n.Width() &&
			ev.Y > dy && ev.Y < dy+n.Height() {
			n.dragged = true
			n.FadeTo(128, 5)
			return Consumed
		}
	case EventPointerRelease:
		if !ev.Buttons.Has(ButtonLeft) {
			n.dragged = false
			n.FadeTo(255, 5)
		}
	case EventPointerMove:
		if n.dragged {
			n.SetX(n.x + ev.RelX)
			n.SetY(n.y + ev.RelY)
		}
	}
	return Pass
}

// handleCursor keeps a RoleCursor node on the pointer.
func (n *Node) handleCursor(ev *Event) {
	switch ev.Kind {
	case EventPointerMove, EventPointerPress, EventPointerRelease:
		n.SetX(ev.X - n.offsetX)
		n.SetY(ev.Y - n.offsetY)
	}
}
