package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phanxgames/tilewalk"
)

type command struct {
	argc  []int
	usage string
	run   func(b *Bridge, args []string) (string, error)
}

// commands is filled in init since binding commands reach back into Exec.
var commands map[string]command

func init() {
	commands = map[string]command{
		"tint":         {[]int{3, 4}, "tint r g b [a]", cmdTint},
		"sprite":       {[]int{1, 2, 4, 5}, "sprite path [parent] | sprite n s w e [parent]", cmdSprite},
		"dragsprite":   {[]int{1, 2, 4, 5}, "dragsprite path [parent] | dragsprite n s w e [parent]", cmdDragSprite},
		"layer":        {[]int{0, 1}, "layer [map]", cmdLayer},
		"map":          {[]int{3}, "map path tilesW tilesH", cmdMap},
		"player":       {[]int{5}, "player n s w e layer", cmdPlayer},
		"follow":       {[]int{2}, "follow follower leader", cmdFollow},
		"obstruct":     {[]int{1, 5}, "obstruct h [top right bottom left]", cmdObstruct},
		"animate":      {[]int{1, 2}, "animate h [0|1]", cmdAnimate},
		"x":            {[]int{2}, "x h value", cmdX},
		"y":            {[]int{2}, "y h value", cmdY},
		"alpha":        {[]int{2}, "alpha h 0..255", cmdAlpha},
		"move":         {[]int{4}, "move h x y speed", cmdMove},
		"fade":         {[]int{3}, "fade h target speed", cmdFade},
		"angle":        {[]int{2}, "angle h degrees", cmdAngle},
		"rotate":       {[]int{3}, "rotate h degrees speed", cmdRotate},
		"rotate_cycle": {[]int{2}, "rotate_cycle h speed", cmdRotateCycle},
		"glide":        {[]int{4, 5}, "glide h x y frames [ease]", cmdGlide},
		"text":         {[]int{2, 4}, "text h text [offx offy]", cmdText},
		"sound":        {[]int{1}, "sound path", cmdSound},
		"music":        {[]int{1}, "music path", cmdMusic},
		"on":           {[]int{2, 3}, "on event code | on h activate code", cmdOn},
		"unbind":       {[]int{1}, "unbind event", cmdUnbind},
		"set":          {[]int{2}, "set name value", cmdSet},
		"screenshot":   {[]int{1}, "screenshot label", cmdScreenshot},
	}
}

func handle(n int) string { return strconv.Itoa(n) }

func cmdTint(b *Bridge, args []string) (string, error) {
	v, err := b.ints(args)
	if err != nil {
		return "", err
	}
	if len(v) == 3 {
		v = append(v, 128)
	}
	for i, name := range [...]string{"r", "g", "b", "a"} {
		if err := inRange(name, v[i], 0, 255); err != nil {
			return "", err
		}
	}
	b.surface.Tint(uint8(v[0]), uint8(v[1]), uint8(v[2]), uint8(v[3]))
	return "", nil
}

// dirFiles maps four comma separated lists to N, S, W and E. Empty lists are
// left out.
func dirFiles(lists []string) map[tilewalk.Direction][]string {
	files := make(map[tilewalk.Direction][]string, 4)
	for i, dir := range [...]tilewalk.Direction{tilewalk.DirN, tilewalk.DirS, tilewalk.DirW, tilewalk.DirE} {
		if lists[i] == "" {
			continue
		}
		files[dir] = strings.Split(lists[i], ",")
	}
	return files
}

func cmdSprite(b *Bridge, args []string) (string, error)     { return b.newSprite(args, false) }
func cmdDragSprite(b *Bridge, args []string) (string, error) { return b.newSprite(args, true) }

func (b *Bridge) newSprite(args []string, drag bool) (string, error) {
	var parent *tilewalk.Node
	if len(args) == 2 || len(args) == 5 {
		p, err := b.node(args[len(args)-1], true)
		if err != nil {
			return "", err
		}
		parent = p
		args = args[:len(args)-1]
	}

	s := b.surface
	var (
		n   *tilewalk.Node
		err error
	)
	switch {
	case len(args) == 1 && drag:
		n, err = s.NewDraggable(args[0])
	case len(args) == 1:
		n, err = s.NewSprite(args[0])
	case drag:
		n, err = s.NewDraggableDirs(dirFiles(args))
	default:
		n, err = s.NewSpriteDirs(dirFiles(args))
	}
	if err != nil {
		return "", err
	}
	if parent != nil {
		if err := parent.AttachFollower(n); err != nil {
			return "", err
		}
		if parent.Role == tilewalk.RoleLayer {
			n.SetLayerID(parent.LayerID())
		}
	}
	return handle(b.registry.Add(n)), nil
}

// cmdLayer creates a layer whose layer id equals its handle. With a map
// argument the layer follows the map.
func cmdLayer(b *Bridge, args []string) (string, error) {
	var m *tilewalk.Node
	if len(args) == 1 {
		n, err := b.visual(args[0])
		if err != nil {
			return "", err
		}
		if n.Role != tilewalk.RoleMap {
			return "", fmt.Errorf("%w: %s is not a map", ErrHandle, args[0])
		}
		m = n
	}
	l := b.surface.NewLayer(b.registry.Next())
	if m != nil {
		if err := m.AttachFollower(l); err != nil {
			return "", err
		}
	}
	return handle(b.registry.Add(l)), nil
}

func cmdMap(b *Bridge, args []string) (string, error) {
	v, err := b.ints(args[1:])
	if err != nil {
		return "", err
	}
	m, err := b.surface.NewMap(args[0], v[0], v[1])
	if err != nil {
		return "", err
	}
	return handle(b.registry.Add(m)), nil
}

func cmdPlayer(b *Bridge, args []string) (string, error) {
	l, err := b.node(args[4], true)
	if err != nil {
		return "", err
	}
	if l.Role != tilewalk.RoleLayer {
		l = nil
	}
	p, err := b.surface.NewPlayer(dirFiles(args[:4]), l)
	if err != nil {
		return "", err
	}
	return handle(b.registry.Add(p)), nil
}

func cmdFollow(b *Bridge, args []string) (string, error) {
	f, err := b.node(args[0], true)
	if err != nil {
		return "", err
	}
	leader, err := b.visual(args[1])
	if err != nil {
		return "", err
	}
	return "", leader.AttachFollower(f)
}

func cmdObstruct(b *Bridge, args []string) (string, error) {
	n, err := b.visual(args[0])
	if err != nil {
		return "", err
	}
	m := []int{0, 0, 0, 0}
	if len(args) == 5 {
		if m, err = b.ints(args[1:]); err != nil {
			return "", err
		}
	}
	n.Obstruct(true, m[0], m[1], m[2], m[3])
	return "", nil
}

func cmdAnimate(b *Bridge, args []string) (string, error) {
	n, err := b.visual(args[0])
	if err != nil {
		return "", err
	}
	on := true
	if len(args) == 2 {
		v, err := atoi(args[1])
		if err != nil {
			return "", err
		}
		if err := inRange("flag", v, 0, 1); err != nil {
			return "", err
		}
		on = v == 1
	}
	n.SetAnimate(on)
	return "", nil
}

func cmdX(b *Bridge, args []string) (string, error) {
	n, err := b.node(args[0], true)
	if err != nil {
		return "", err
	}
	v, err := atoi(args[1])
	if err != nil {
		return "", err
	}
	n.SetX(v)
	return "", nil
}

func cmdY(b *Bridge, args []string) (string, error) {
	n, err := b.node(args[0], true)
	if err != nil {
		return "", err
	}
	v, err := atoi(args[1])
	if err != nil {
		return "", err
	}
	n.SetY(v)
	return "", nil
}

// visualInts resolves a visual handle followed by integer arguments.
func (b *Bridge) visualInts(args []string) (*tilewalk.Node, []int, error) {
	n, err := b.visual(args[0])
	if err != nil {
		return nil, nil, err
	}
	v, err := b.ints(args[1:])
	if err != nil {
		return nil, nil, err
	}
	return n, v, nil
}

func cmdAlpha(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	if err := inRange("alpha", v[0], 0, 255); err != nil {
		return "", err
	}
	n.SetAlpha(v[0])
	return "", nil
}

func cmdMove(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	if v[2] < 0 {
		return "", fmt.Errorf("%w: speed %d is negative", ErrRange, v[2])
	}
	n.MoveTo(v[0], v[1], v[2])
	return "", nil
}

func cmdFade(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	if err := inRange("target", v[0], 0, 255); err != nil {
		return "", err
	}
	if v[1] < 0 {
		return "", fmt.Errorf("%w: speed %d is negative", ErrRange, v[1])
	}
	n.FadeTo(v[0], v[1])
	return "", nil
}

func cmdAngle(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	n.SetAngle(v[0])
	return "", nil
}

func cmdRotate(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	n.Rotate(v[0], v[1])
	return "", nil
}

func cmdRotateCycle(b *Bridge, args []string) (string, error) {
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	n.RotationCycle(v[0])
	return "", nil
}

func cmdGlide(b *Bridge, args []string) (string, error) {
	var easeName string
	if len(args) == 5 {
		easeName = args[4]
		args = args[:4]
	}
	n, v, err := b.visualInts(args)
	if err != nil {
		return "", err
	}
	if v[2] < 1 {
		return "", fmt.Errorf("%w: frames %d must be positive", ErrRange, v[2])
	}
	b.surface.AddTween(tilewalk.TweenPosition(n, v[0], v[1], v[2], tilewalk.EaseByName(easeName)))
	return "", nil
}

// cmdText wraps to the node's width, less the horizontal offset on both sides.
func cmdText(b *Bridge, args []string) (string, error) {
	n, err := b.visual(args[0])
	if err != nil {
		return "", err
	}
	width := n.Width()
	if len(args) == 4 {
		off, err := b.ints(args[2:])
		if err != nil {
			return "", err
		}
		n.SetTextOffset(off[0], off[1])
		width -= 2 * off[0]
	}
	n.WrapText(args[1], width)
	return "", nil
}

func cmdSound(b *Bridge, args []string) (string, error) {
	if b.sound != nil {
		b.sound.Play(args[0])
	}
	return "", nil
}

func cmdMusic(b *Bridge, args []string) (string, error) {
	if b.sound != nil {
		b.sound.Loop(args[0])
	}
	return "", nil
}

func cmdSet(b *Bridge, args []string) (string, error) {
	if args[0] == "" || strings.IndexFunc(args[0], func(r rune) bool { return r > 0x7f || !isNameByte(byte(r)) }) >= 0 {
		return "", usagef("bad variable name %q", args[0])
	}
	b.vars[args[0]] = args[1]
	return args[1], nil
}

func cmdScreenshot(b *Bridge, args []string) (string, error) {
	b.surface.Screenshot(args[0])
	return "", nil
}
