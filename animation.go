package tilewalk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Alpha ---

// Alpha returns the current opacity in [0, 255].
func (n *Node) Alpha() int { return n.alpha }

// TargetAlpha returns the opacity a running fade is heading for.
func (n *Node) TargetAlpha() int { return n.targetAlpha }

// AlphaSpeed returns the signed per-step fade speed.
func (n *Node) AlphaSpeed() int { return n.alphaSpeed }

// AlphaCycling reports whether the ping-pong cycle is active.
func (n *Node) AlphaCycling() bool { return n.alphaCycle }

// SetAlpha sets the opacity immediately and ends any fade.
func (n *Node) SetAlpha(a int) {
	n.alpha = clampByte(a)
	n.StopAlpha()
}

// FadeTo starts a linear fade toward target at speed units per step. It cancels
// an active alpha cycle. A fade started while another is running replaces it.
func (n *Node) FadeTo(target, speed int) {
	n.StopAlphaCycle()
	if speed < 0 {
		speed = -speed
	}
	n.targetAlpha = clampByte(target)
	n.alphaSpeed = signedSpeed(n.alpha, n.targetAlpha, speed)
}

// FadeRelative fades by delta relative to the current opacity.
func (n *Node) FadeRelative(delta, speed int) {
	n.FadeTo(n.alpha+delta, speed)
}

// StopAlpha ends a fade at the current opacity.
func (n *Node) StopAlpha() {
	n.alphaSpeed = 0
	n.targetAlpha = n.alpha
}

// AlphaCycle ping-pongs the opacity between a and b at speed units per step.
// It cancels a running fade.
func (n *Node) AlphaCycle(a, b, speed int) {
	n.StopAlpha()
	a, b = clampByte(a), clampByte(b)
	n.alphaMin, n.alphaMax = min(a, b), max(a, b)
	n.alphaCycleSpeed = speed
	n.alphaCycle = true
}

// StopAlphaCycle ends the ping-pong cycle at the current opacity.
func (n *Node) StopAlphaCycle() {
	n.alphaCycle = false
}

func (n *Node) stepAlpha() {
	if n.alphaCycle {
		next := n.alpha + n.alphaCycleSpeed
		if next <= n.alphaMin || next >= n.alphaMax {
			n.alphaCycleSpeed = -n.alphaCycleSpeed
		}
		n.alpha = min(max(n.alpha+n.alphaCycleSpeed, n.alphaMin), n.alphaMax)
		return
	}
	if n.alpha == n.targetAlpha {
		return
	}
	next := n.alpha + n.alphaSpeed
	if n.alphaSpeed == 0 || overshoots(n.alpha, next, n.targetAlpha) || next < 0 || next > 255 {
		n.alpha = n.targetAlpha
		n.alphaSpeed = 0
		return
	}
	n.alpha = next
}

// overshoots reports whether moving from cur to next passes or reaches target.
func overshoots(cur, next, target int) bool {
	if cur < target {
		return next >= target
	}
	return next <= target
}

func clampByte(v int) int {
	return min(max(v, 0), 255)
}

// --- Rotation ---

// Angle returns the current rotation in degrees, in [0, 360).
func (n *Node) Angle() int { return n.angle }

// TargetAngle returns the angle a running rotation is heading for.
func (n *Node) TargetAngle() int { return n.targetAngle }

// RotationSpeed returns the signed per-step rotation speed.
func (n *Node) RotationSpeed() int { return n.rotSpeed }

// RotationCycling reports whether continuous rotation is active.
func (n *Node) RotationCycling() bool { return n.rotCycle }

// SetAngle sets the rotation immediately, normalized modulo 360, and ends any
// directed rotation.
func (n *Node) SetAngle(a int) {
	n.angle = normAngle(a)
	n.StopRotation()
}

// Rotate turns toward target at speed degrees per step. The sign of speed sets
// the turning direction. It cancels a rotation cycle.
func (n *Node) Rotate(target, speed int) {
	n.StopRotationCycle()
	n.targetAngle = normAngle(target)
	n.rotSpeed = speed
}

// RotateRelative rotates by delta relative to the current angle.
func (n *Node) RotateRelative(delta, speed int) {
	n.Rotate(n.angle+delta, speed)
}

// StopRotation ends a directed rotation at the current angle.
func (n *Node) StopRotation() {
	n.rotSpeed = 0
	n.targetAngle = n.angle
}

// RotationCycle spins continuously at speed degrees per step. It cancels a
// directed rotation.
func (n *Node) RotationCycle(speed int) {
	n.StopRotation()
	n.rotSpeed = speed
	n.rotCycleSpeed = speed
	n.rotCycle = true
}

// StopRotationCycle ends continuous rotation.
func (n *Node) StopRotationCycle() {
	n.rotCycleSpeed = 0
	n.rotCycle = false
}

// StopAll ends movement, fades, cycles and rotations.
func (n *Node) StopAll() {
	n.StopMovement()
	n.StopAlpha()
	n.StopAlphaCycle()
	n.StopRotation()
	n.StopRotationCycle()
}

func (n *Node) stepRotation() {
	if n.rotCycle {
		n.angle = normAngle(n.angle + n.rotCycleSpeed)
		n.targetAngle = n.angle
		return
	}
	if n.angle == n.targetAngle || n.rotSpeed == 0 {
		return
	}
	// remaining distance in the turning direction
	var dist int
	if n.rotSpeed > 0 {
		dist = normAngle(n.targetAngle - n.angle)
	} else {
		dist = normAngle(n.angle - n.targetAngle)
	}
	if dist <= absInt(n.rotSpeed) {
		n.angle = n.targetAngle
		n.rotSpeed = 0
		return
	}
	n.angle = normAngle(n.angle + n.rotSpeed)
}

func normAngle(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// --- Tweens ---

// TweenGroup eases up to three integer properties of a Node over a number of
// steps using gween. Values are written through the node's setters, so
// position tweens keep the render order correct.
//
// The Surface advances every registered group once per step; groups can also
// be driven manually with Update.
type TweenGroup struct {
	tweens [3]*gween.Tween
	apply  [3]func(int)
	count  int
	target *Node
	Done   bool
}

// Update advances all tweens by one step.
func (g *TweenGroup) Update() {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(1)
		g.apply[i](int(val + 0.5*sign32(val)))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Target returns the tweened node.
func (g *TweenGroup) Target() *Node { return g.target }

func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// TweenPosition eases the node to (toX, toY) over steps frames.
func TweenPosition(n *Node, toX, toY, steps int, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: n}
	d := float32(max(steps, 1))
	g.tweens[0] = gween.New(float32(n.x), float32(toX), d, fn)
	g.tweens[1] = gween.New(float32(n.y), float32(toY), d, fn)
	g.apply[0] = n.SetX
	g.apply[1] = n.SetY
	return g
}

// TweenAlpha eases the opacity to the target over steps frames. Any linear fade
// or cycle is stopped first.
func TweenAlpha(n *Node, to, steps int, fn ease.TweenFunc) *TweenGroup {
	n.StopAlphaCycle()
	n.StopAlpha()
	g := &TweenGroup{count: 1, target: n}
	g.tweens[0] = gween.New(float32(n.alpha), float32(clampByte(to)), float32(max(steps, 1)), fn)
	g.apply[0] = func(v int) {
		n.alpha = clampByte(v)
		n.targetAlpha = n.alpha
	}
	return g
}

// TweenAngle eases the rotation to the target over steps frames.
func TweenAngle(n *Node, to, steps int, fn ease.TweenFunc) *TweenGroup {
	n.StopRotationCycle()
	n.StopRotation()
	g := &TweenGroup{count: 1, target: n}
	g.tweens[0] = gween.New(float32(n.angle), float32(to), float32(max(steps, 1)), fn)
	g.apply[0] = func(v int) {
		n.angle = normAngle(v)
		n.targetAngle = n.angle
	}
	return g
}

// EaseByName maps a name such as "linear" or "outQuad" to an easing function.
// Unknown names fall back to linear.
func EaseByName(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[name]; ok {
		return fn
	}
	return ease.Linear
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
	"outBack":    ease.OutBack,
	"inOutExpo":  ease.InOutExpo,
	"outCirc":    ease.OutCirc,
}
