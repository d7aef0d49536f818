package tilewalk

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine-wide tuning constants.
const (
	// HardFPSLimit is the pacing ceiling and the measured fps reported before the
	// first full one-second window.
	HardFPSLimit = 80

	// FPSInitFactor scales the first per-frame budget below 1000/limit ms.
	FPSInitFactor = 0.8

	// FPSToleranceFactor is the fraction of the limit at which frames are
	// rendered even while the surface is catching up.
	FPSToleranceFactor = 0.8

	// MaxFrameskip bounds the number of consecutive skipped renders.
	MaxFrameskip = 480

	// DefaultAnimWait is the number of steps between animation frame advances.
	DefaultAnimWait = 10

	// CursorLayer is the layer id of the pointer cursor node.
	CursorLayer = 500
)

// FPS overlay placement, in display pixels.
const (
	fpsMarginTop   = 3
	fpsMarginRight = 3
)

// Direction is a bitmask of facing/obstruction directions. Values at or above
// DirUser are free for game-defined frame sets.
type Direction uint16

const (
	DirNone Direction = 0
	DirN    Direction = 1
	DirS    Direction = 2
	DirW    Direction = 4
	DirE    Direction = 8
	DirUser Direction = 0x400
)

// String returns a compact form such as "N|E".
func (d Direction) String() string {
	if d == DirNone {
		return "none"
	}
	s := ""
	for _, p := range [...]struct {
		bit  Direction
		name string
	}{{DirN, "N"}, {DirS, "S"}, {DirW, "W"}, {DirE, "E"}} {
		if d&p.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += p.name
		}
	}
	if d >= DirUser {
		if s != "" {
			s += "|"
		}
		s += "user"
	}
	return s
}

// Role is the capability tag of a Node, fixed at construction.
type Role uint8

const (
	RolePlain     Role = iota // visual node without input behaviour
	RoleLayer                 // grouping node, forwards area events to followers
	RoleMap                   // scrolling tiled background
	RolePlayer                // screen-locked player controller
	RoleDraggable             // visual node movable with the left button
	RoleCursor                // pointer-tracking visual node
)

var roleNames = [...]string{"plain", "layer", "map", "player", "draggable", "cursor"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Rect is an integer axis-aligned rectangle in display pixels.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside the rectangle. Edges count as inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Touching edges count.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ParseKey maps a key name such as "Space", "Escape" or "ArrowUp" to its
// Ebitengine key. Names are case-insensitive.
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("key %q: %w", name, ErrUnknownKey)
	}
	return k, nil
}

// ColorBlack is the default text and FPS overlay colour.
var ColorBlack = color.RGBA{0, 0, 0, 255}

// WhitePixel is a 1x1 white image used for solid fills such as the tint overlay.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}
