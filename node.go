package tilewalk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Node is the single scene element type. Geometry, animation, text and input
// state live in one flat struct; behaviour that differs between a layer, a map,
// a player and a plain visual is selected by Role rather than by interface
// dispatch.
//
// Nodes are owned by the Surface that created them. Followers are a positioning
// relationship only: a leader pushes its display position into its followers'
// offsets every step.
type Node struct {
	ID   uint32
	Name string
	Role Role

	surface *Surface

	// Geometry
	x, y             int
	targetX, targetY int
	speedX, speedY   int
	xMin, xMax       int
	yMin, yMax       int
	checkBounds      bool
	offsetX, offsetY int
	layerID          int
	coordsUpdated    bool

	leader    *Node
	followers []*Node

	// Frames and cadence
	dir         Direction
	frames      map[Direction][]*ebiten.Image
	files       map[Direction][]string
	frame       int
	animate     bool
	animCounter int
	animWait    int

	// Alpha state machine
	alpha           int
	targetAlpha     int
	alphaSpeed      int
	alphaCycle      bool
	alphaMin        int
	alphaMax        int
	alphaCycleSpeed int

	// Rotation state machine
	angle         int
	targetAngle   int
	rotSpeed      int
	rotCycle      bool
	rotCycleSpeed int

	// Obstruction
	obstruct                             bool
	obsTop, obsRight, obsBottom, obsLeft int

	text *textOverlay

	// Input
	active  bool
	player  *playerState
	scroll  *mapState
	dragged bool
}

func newNode(s *Surface, name string, role Role) *Node {
	n := &Node{
		Name:        name,
		Role:        role,
		surface:     s,
		checkBounds: true,
		animWait:    DefaultAnimWait,
		alpha:       255,
		targetAlpha: 255,
		frames:      make(map[Direction][]*ebiten.Image),
		files:       make(map[Direction][]string),
	}
	if s != nil {
		n.ID = s.nextNodeID()
	}
	return n
}

// --- Position ---

// X returns the node's own x coordinate. For a follower this is relative to
// its leader.
func (n *Node) X() int { return n.x }

// Y returns the node's own y coordinate.
func (n *Node) Y() int { return n.y }

// SetX sets x, saturating at the bounds when bounds checking is enabled.
func (n *Node) SetX(x int) {
	n.coordsUpdated = true
	n.x = clampAxis(x, n.xMin, n.xMax, n.checkBounds)
}

// SetY sets y, saturating at the bounds when bounds checking is enabled.
func (n *Node) SetY(y int) {
	n.coordsUpdated = true
	n.y = clampAxis(y, n.yMin, n.yMax, n.checkBounds)
}

// SetPosition sets both coordinates.
func (n *Node) SetPosition(x, y int) {
	n.SetX(x)
	n.SetY(y)
}

func clampAxis(v, lo, hi int, check bool) int {
	if !check {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Offset returns the offset imposed by the node's leader.
func (n *Node) Offset() (int, int) { return n.offsetX, n.offsetY }

// SetOffset sets the leader-imposed offset. Visual nodes recompute their
// bounds so that the display edges stay where they were.
func (n *Node) SetOffset(ox, oy int) {
	if ox == n.offsetX && oy == n.offsetY {
		return
	}
	n.offsetX, n.offsetY = ox, oy
	n.coordsUpdated = true
	if n.hasFrames() {
		n.resetBounds()
	}
}

// DisplayX returns x plus the leader offset.
func (n *Node) DisplayX() int { return n.x + n.offsetX }

// DisplayY returns y plus the leader offset.
func (n *Node) DisplayY() int { return n.y + n.offsetY }

// Target returns the current movement destination.
func (n *Node) Target() (int, int) { return n.targetX, n.targetY }

// Speed returns the signed per-step speed on each axis.
func (n *Node) Speed() (int, int) { return n.speedX, n.speedY }

// SetBounds sets the clamping range used when bounds checking is enabled.
func (n *Node) SetBounds(xMin, xMax, yMin, yMax int) {
	n.xMin, n.xMax, n.yMin, n.yMax = xMin, xMax, yMin, yMax
}

// Bounds returns the clamping range.
func (n *Node) Bounds() (xMin, xMax, yMin, yMax int) {
	return n.xMin, n.xMax, n.yMin, n.yMax
}

// SetCheckBounds enables or disables clamping.
func (n *Node) SetCheckBounds(on bool) { n.checkBounds = on }

// CheckBounds reports whether clamping is enabled.
func (n *Node) CheckBounds() bool { return n.checkBounds }

// LayerID returns the z bucket of the node.
func (n *Node) LayerID() int { return n.layerID }

// SetLayerID moves the node to another z bucket.
func (n *Node) SetLayerID(id int) {
	n.coordsUpdated = true
	n.layerID = id
}

// CoordsUpdated reports whether position, offset or layer changed since the
// last call, and clears the flag.
func (n *Node) CoordsUpdated() bool {
	u := n.coordsUpdated
	n.coordsUpdated = false
	return u
}

// --- Movement ---

// MoveTo starts moving toward (x, y) at speed pixels per step. The sign of each
// axis speed is chosen by comparing the target with the current position.
func (n *Node) MoveTo(x, y, speed int) {
	if speed < 0 {
		speed = -speed
	}
	n.targetX, n.targetY = x, y
	n.speedX = signedSpeed(n.x, x, speed)
	n.speedY = signedSpeed(n.y, y, speed)
}

// MoveRelative moves by (dx, dy) relative to the current position.
func (n *Node) MoveRelative(dx, dy, speed int) {
	n.MoveTo(n.x+dx, n.y+dy, speed)
}

func signedSpeed(pos, target, speed int) int {
	switch {
	case target > pos:
		return speed
	case target < pos:
		return -speed
	}
	return 0
}

// StopMovementX halts horizontal movement at the current position.
func (n *Node) StopMovementX() {
	n.speedX = 0
	n.targetX = n.x
}

// StopMovementY halts vertical movement at the current position.
func (n *Node) StopMovementY() {
	n.speedY = 0
	n.targetY = n.y
}

// StopMovement halts movement on both axes.
func (n *Node) StopMovement() {
	n.StopMovementX()
	n.StopMovementY()
}

// stepAxis advances one coordinate toward target.
//
// A position within 2*(target % speed) of the target snaps onto it. The
// remainder keeps the sign of target, so the tolerance is empty whenever
// target is negative and not a multiple of speed. A step that would cross the
// target lands on it.
func stepAxis(pos, target, speed int) int {
	if pos == target || speed == 0 {
		return pos
	}
	tolerance := 2 * (target % speed)
	if tolerance >= 0 && absInt(target-pos) <= tolerance {
		return target
	}
	mag := absInt(speed)
	if target > pos {
		if pos+mag > target {
			return target
		}
		return pos + mag
	}
	if pos-mag < target {
		return target
	}
	return pos - mag
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// stepGeometry runs one movement step on both axes, then pushes offsets to the
// followers.
func (n *Node) stepGeometry() {
	if n.x != n.targetX && n.speedX != 0 {
		n.SetX(stepAxis(n.x, n.targetX, n.speedX))
	}
	if n.y != n.targetY && n.speedY != 0 {
		n.SetY(stepAxis(n.y, n.targetY, n.speedY))
	}
	n.SetOffsets()
}

// --- Followers ---

// AttachFollower makes f follow n. The follower's bounds checking is disabled,
// its current position becomes its offset and its own position is reset to
// (0, 0). A follower that already has a leader is detached from it first.
// Returns ErrFollowCycle when f is n or one of n's leaders.
func (n *Node) AttachFollower(f *Node) error {
	if f == nil {
		return nil
	}
	if isLeaderOf(f, n) {
		return ErrFollowCycle
	}
	if f.leader != nil {
		f.leader.DetachFollower(f)
	}
	f.checkBounds = false
	f.SetOffset(f.x, f.y)
	f.SetX(0)
	f.SetY(0)
	f.leader = n
	n.followers = append(n.followers, f)
	if globalDebug {
		debugCheckFollowDepth(f)
	}
	return nil
}

// DetachFollower removes the first occurrence of f. The follower keeps its
// current coordinates and offset.
func (n *Node) DetachFollower(f *Node) {
	for i, c := range n.followers {
		if c == f {
			copy(n.followers[i:], n.followers[i+1:])
			n.followers[len(n.followers)-1] = nil
			n.followers = n.followers[:len(n.followers)-1]
			if f.leader == n {
				f.leader = nil
			}
			return
		}
	}
}

// Followers returns the follower list. The returned slice must not be mutated.
func (n *Node) Followers() []*Node { return n.followers }

// Leader returns the node this node follows, or nil.
func (n *Node) Leader() *Node { return n.leader }

// SetOffsets pushes this node's display position into every follower's
// offset, recursively.
func (n *Node) SetOffsets() {
	for _, f := range n.followers {
		f.SetOffset(n.x+n.offsetX, n.y+n.offsetY)
		f.SetOffsets()
	}
}

// isLeaderOf reports whether candidate is node or one of node's leaders.
func isLeaderOf(candidate, node *Node) bool {
	for p := node; p != nil; p = p.leader {
		if p == candidate {
			return true
		}
	}
	return false
}

// followersObstructed ORs the obstruction of every follower against subject.
func (n *Node) followersObstructed(subject *Node) Direction {
	var d Direction
	for _, f := range n.followers {
		d |= f.Obstructed(subject)
	}
	return d
}

// --- Step ---

// Step advances the node by one frame: movement, offsets, animation cadence,
// alpha and rotation. Maps additionally apply obstruction gating.
func (n *Node) Step() {
	if n.Role == RoleLayer {
		n.stepGeometry()
		return
	}
	n.stepGeometry()
	n.stepCadence()
	n.stepAlpha()
	n.stepRotation()
	if n.Role == RoleMap {
		n.stepScroll()
	}
}
