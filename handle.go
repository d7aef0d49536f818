package tilewalk

// Active reports whether the node receives events. Nodes are inactive by
// default; maps, players, draggables and cursors activate themselves.
func (n *Node) Active() bool { return n.active }

// SetActive toggles event delivery to the node.
func (n *Node) SetActive(on bool) { n.active = on }

// IsHandler reports whether the node takes part in event delivery at all.
// Layers only group other nodes and never handle events.
func (n *Node) IsHandler() bool { return n.Role != RoleLayer }

// Handle runs the role-specific reaction to ev. Roles ignore the kinds they do
// not care about and pass them on.
func (n *Node) Handle(ev *Event) (Result, error) {
	switch n.Role {
	case RoleMap:
		return n.handleMap(ev)
	case RolePlayer:
		return n.handlePlayer(ev), nil
	case RoleDraggable:
		return n.handleDrag(ev), nil
	case RoleCursor:
		n.handleCursor(ev)
	}
	return Pass, nil
}
