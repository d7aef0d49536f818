package tilewalk

import (
	"image/color"
	"maps"
	"slices"
)

// NodeState is the persisted subset of a node: flags, animation, alpha and
// rotation state, caption settings and position. Frames are not part of it;
// only the file names they were loaded from are recorded.
type NodeState struct {
	ID       uint32
	Obstruct bool
	Files    map[Direction][]string

	Dir         Direction
	Animate     bool
	AnimCounter int
	AnimWait    int

	AlphaSpeed      int
	AlphaCycleSpeed int
	RotSpeed        int
	RotCycleSpeed   int

	Alpha       int
	TargetAlpha int
	AlphaCycle  bool
	AlphaMin    int
	AlphaMax    int

	Angle       int
	TargetAngle int
	RotCycle    bool

	TextColor                color.NRGBA
	TextOffsetX, TextOffsetY int
	TextStale                bool

	ObsTop, ObsRight, ObsBottom, ObsLeft int

	X, Y             int
	OffsetX, OffsetY int
}

// State captures the persisted fields of n.
func (n *Node) State() NodeState {
	st := NodeState{
		ID:              n.ID,
		Obstruct:        n.obstruct,
		Files:           make(map[Direction][]string, len(n.files)),
		Dir:             n.dir,
		Animate:         n.animate,
		AnimCounter:     n.animCounter,
		AnimWait:        n.animWait,
		AlphaSpeed:      n.alphaSpeed,
		AlphaCycleSpeed: n.alphaCycleSpeed,
		RotSpeed:        n.rotSpeed,
		RotCycleSpeed:   n.rotCycleSpeed,
		Alpha:           n.alpha,
		TargetAlpha:     n.targetAlpha,
		AlphaCycle:      n.alphaCycle,
		AlphaMin:        n.alphaMin,
		AlphaMax:        n.alphaMax,
		Angle:           n.angle,
		TargetAngle:     n.targetAngle,
		RotCycle:        n.rotCycle,
		ObsTop:          n.obsTop,
		ObsRight:        n.obsRight,
		ObsBottom:       n.obsBottom,
		ObsLeft:         n.obsLeft,
		X:               n.x,
		Y:               n.y,
		OffsetX:         n.offsetX,
		OffsetY:         n.offsetY,
	}
	for _, dir := range slices.Sorted(maps.Keys(n.files)) {
		st.Files[dir] = slices.Clone(n.files[dir])
	}
	st.TextColor = color.NRGBAModel.Convert(ColorBlack).(color.NRGBA)
	if n.text != nil {
		st.TextColor = color.NRGBAModel.Convert(n.text.color).(color.NRGBA)
		st.TextOffsetX, st.TextOffsetY = n.text.offX, n.text.offY
		st.TextStale = n.text.stale
	}
	return st
}

// Restore applies a saved state. Files are ignored: frames belong to the
// scene that recreated the node. The node is re-sorted on the next Update.
func (n *Node) Restore(st NodeState) {
	n.obstruct = st.Obstruct
	n.obsTop, n.obsRight, n.obsBottom, n.obsLeft = st.ObsTop, st.ObsRight, st.ObsBottom, st.ObsLeft

	if len(n.frames[st.Dir]) > 0 || st.Dir == DirNone {
		n.dir = st.Dir
	}
	if list := n.frames[n.dir]; n.frame >= len(list) {
		n.frame = 0
	}
	n.animate = st.Animate
	n.animCounter = st.AnimCounter
	n.SetAnimWait(st.AnimWait)

	n.alpha, n.targetAlpha = clampByte(st.Alpha), clampByte(st.TargetAlpha)
	n.alphaSpeed = st.AlphaSpeed
	n.alphaCycle = st.AlphaCycle
	n.alphaCycleSpeed = st.AlphaCycleSpeed
	n.alphaMin, n.alphaMax = st.AlphaMin, st.AlphaMax

	n.angle, n.targetAngle = normAngle(st.Angle), normAngle(st.TargetAngle)
	n.rotSpeed = st.RotSpeed
	n.rotCycle = st.RotCycle
	n.rotCycleSpeed = st.RotCycleSpeed

	if n.text != nil || st.TextOffsetX != 0 || st.TextOffsetY != 0 {
		t := n.overlay()
		t.color = st.TextColor
		t.offX, t.offY = st.TextOffsetX, st.TextOffsetY
		t.stale = true
	}

	n.offsetX, n.offsetY = st.OffsetX, st.OffsetY
	if n.hasFrames() {
		n.resetBounds()
	}
	n.x, n.y = st.X, st.Y
	n.targetX, n.targetY = st.X, st.Y
	n.speedX, n.speedY = 0, 0
	n.coordsUpdated = true
	if n.Role == RoleMap && n.scroll != nil {
		n.scroll.restX, n.scroll.restY = n.x, n.y
	}
}
