package tilewalk

import "github.com/hajimehoshi/ebiten/v2"

// playerState tracks directional key precedence for a RolePlayer node.
type playerState struct {
	lastDir Direction
	keys    int
}

// arrowDir maps arrow keys to facings.
func arrowDir(k ebiten.Key) (Direction, bool) {
	switch k {
	case ebiten.KeyArrowUp:
		return DirN, true
	case ebiten.KeyArrowDown:
		return DirS, true
	case ebiten.KeyArrowLeft:
		return DirW, true
	case ebiten.KeyArrowRight:
		return DirE, true
	}
	return DirNone, false
}

func verticalDir(d Direction) bool   { return d == DirN || d == DirS }
func horizontalDir(d Direction) bool { return d == DirW || d == DirE }

// PressedKeys returns the number of arrow keys the player believes are held.
func (n *Node) PressedKeys() int {
	if n.player == nil {
		return 0
	}
	return n.player.keys
}

// handlePlayer turns arrow presses into facing and animation. The most recent
// press wins; releasing it while another key is still held falls back to the
// previous facing when that lies on the other axis. Events always pass so maps
// can react to the same keys.
func (n *Node) handlePlayer(ev *Event) Result {
	p := n.player
	if p == nil {
		return Pass
	}
	dir, ok := arrowDir(ev.Key)
	switch ev.Kind {
	case EventPress:
		if !ok {
			return Pass
		}
		p.keys++
		p.lastDir = n.dir
		n.SetDirection(dir)
		n.animate = true
	case EventRelease:
		if ok {
			p.keys--
		}
		if p.keys > 0 {
			if ok && verticalDir(dir) && !verticalDir(p.lastDir) {
				n.SetDirection(p.lastDir)
			}
			if ok && horizontalDir(dir) && !horizontalDir(p.lastDir) {
				n.SetDirection(p.lastDir)
			}
		} else {
			n.animate = false
		}
	}
	return Pass
}
