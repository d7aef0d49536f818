package tilewalk

// EventToArea delivers ev to every follower of the layer whose display
// rectangle touches the area (x, y, w, h). Delivery goes through the surface's
// dispatcher so inactive followers are skipped and the hook runs first.
//
// Followers are visited in attachment order and the walk stops at the first
// follower that is not a handler.
func (n *Node) EventToArea(ev *Event, x, y, w, h int) error {
	var d *Dispatcher
	if n.surface != nil {
		d = n.surface.dispatcher
	}
	area := Rect{X: x, Y: y, Width: w, Height: h}
	for _, f := range n.followers {
		if !f.IsHandler() {
			return nil
		}
		r := Rect{X: f.DisplayX(), Y: f.DisplayY(), Width: f.Width(), Height: f.Height()}
		if !r.Intersects(area) {
			continue
		}
		if _, err := d.Deliver(f, ev); err != nil {
			return err
		}
	}
	return nil
}
