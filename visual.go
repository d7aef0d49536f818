package tilewalk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PushFrame appends img (loaded from file) to the frame list of dir, makes dir
// the current direction and rewinds the animation. Bounds are reset so the
// node may travel until it is fully off the display on any side.
func (n *Node) PushFrame(dir Direction, file string, img *ebiten.Image) {
	n.frames[dir] = append(n.frames[dir], img)
	n.files[dir] = append(n.files[dir], file)
	n.frame = 0
	n.dir = dir
	n.resetBounds()
	if n.Role == RolePlayer {
		n.Center()
	}
}

// resetBounds recomputes the clamping range from the current frame and the
// display size, compensating for the leader offset.
func (n *Node) resetBounds() {
	img := n.currentFrame()
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	dw, dh := n.displaySize()
	n.xMin = -w - n.offsetX
	n.xMax = dw - n.offsetX
	n.yMin = -h - n.offsetY
	n.yMax = dh - n.offsetY
}

func (n *Node) displaySize() (int, int) {
	if n.surface == nil {
		return 0, 0
	}
	return n.surface.width, n.surface.height
}

func (n *Node) hasFrames() bool {
	return len(n.frames[n.dir]) > 0
}

func (n *Node) currentFrame() *ebiten.Image {
	list := n.frames[n.dir]
	if len(list) == 0 {
		return nil
	}
	return list[n.frame]
}

// Frames returns the frame images of dir. The returned slice must not be mutated.
func (n *Node) Frames(dir Direction) []*ebiten.Image { return n.frames[dir] }

// Files returns the file names the frames of dir were loaded from.
func (n *Node) Files(dir Direction) []string { return n.files[dir] }

// FrameIndex returns the animation cursor within the current direction.
func (n *Node) FrameIndex() int { return n.frame }

// Width returns the width of the current frame, or 0 without frames.
func (n *Node) Width() int {
	if img := n.currentFrame(); img != nil {
		return img.Bounds().Dx()
	}
	return 0
}

// Height returns the height of the current frame, or 0 without frames.
func (n *Node) Height() int {
	if img := n.currentFrame(); img != nil {
		return img.Bounds().Dy()
	}
	return 0
}

// BottomEdge is the display y of the node's lower edge, the secondary
// render-order key.
func (n *Node) BottomEdge() int {
	return n.DisplayY() + n.Height()
}

// Direction returns the current facing.
func (n *Node) Direction() Direction { return n.dir }

// SetDirection changes the facing and rewinds the animation.
func (n *Node) SetDirection(d Direction) {
	n.dir = d
	n.animCounter = 0
	n.frame = 0
}

// Animating reports whether the frame cursor is advancing.
func (n *Node) Animating() bool { return n.animate }

// SetAnimate starts or stops frame cycling.
func (n *Node) SetAnimate(on bool) { n.animate = on }

// AnimWait returns the number of steps between frame advances.
func (n *Node) AnimWait() int { return n.animWait }

// SetAnimWait sets the number of steps between frame advances. Values below 1
// are treated as 1.
func (n *Node) SetAnimWait(steps int) {
	if steps < 1 {
		steps = 1
	}
	n.animWait = steps
}

// Center places the node in the middle of the display.
func (n *Node) Center() {
	dw, dh := n.displaySize()
	n.SetX(dw/2 - n.Width()/2)
	n.SetY(dh/2 - n.Height()/2)
}

// stepCadence advances the frame cursor every animWait steps while animating.
// When not animating the cursor rests on the first frame.
func (n *Node) stepCadence() {
	list := n.frames[n.dir]
	if !n.animate {
		n.frame = 0
		return
	}
	if n.animCounter%n.animWait == 0 {
		if len(list) > 0 {
			n.frame = (n.frame + 1) % len(list)
		}
		n.animCounter = 0
	}
	n.animCounter++
}

// --- Obstruction ---

// Obstruct enables or disables obstruction with the given edge margins.
func (n *Node) Obstruct(on bool, top, right, bottom, left int) {
	n.obstruct = on
	n.obsTop, n.obsRight, n.obsBottom, n.obsLeft = top, right, bottom, left
}

// Obstructing reports whether obstruction is enabled.
func (n *Node) Obstructing() bool { return n.obstruct }

// ObstructionMargins returns the top, right, bottom and left margins.
func (n *Node) ObstructionMargins() (top, right, bottom, left int) {
	return n.obsTop, n.obsRight, n.obsBottom, n.obsLeft
}

// Obstructed returns the directions in which this node, or any of its
// followers, covers the center lines of the display.
//
// The horizontal edges are tested against the display's vertical center line
// and the vertical edges against its horizontal center line, with the top edge
// raised by half the subject's height. Axes are tested independently. Nodes
// whose display position lies outside twice the display extent never obstruct.
func (n *Node) Obstructed(subject *Node) Direction {
	d := n.followersObstructed(subject)
	if !n.obstruct || n.Role == RoleLayer {
		return d
	}
	dw, dh := n.displaySize()
	dx, dy := n.DisplayX(), n.DisplayY()
	if dx <= -dw || dx >= dw || dy <= -dh || dy >= dh {
		return d
	}

	subjectHeight := 0
	if subject != nil {
		subjectHeight = subject.Height()
	}

	xLeft := dx + n.obsLeft
	xMid := dw / 2
	xRight := dx + n.Width() + n.obsRight
	yTop := dy - subjectHeight/2 + n.obsTop
	yMid := dh / 2
	yBottom := dy + n.Height() + n.obsBottom

	if xLeft < xMid && xRight > xMid {
		if yTop < yMid && yBottom+1 > yMid {
			d |= DirN
		}
		if yTop-1 < yMid && yBottom > yMid {
			d |= DirS
		}
	}
	if yTop < yMid && yBottom > yMid {
		if xLeft < xMid && xRight+1 > xMid {
			d |= DirW
		}
		if xLeft-1 < xMid && xRight > xMid {
			d |= DirE
		}
	}
	return d
}
