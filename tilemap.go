package tilewalk

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// mapState is the scrolling state of a RoleMap node.
type mapState struct {
	tileW, tileH int
	mapW, mapH   int

	background *ebiten.Image

	restX, restY int
	freeScroll   bool
	player       *Node
}

// newMapNode builds a map node from a single tile image repeated tilesW by
// tilesH times. The tile image is not retained.
func newMapNode(s *Surface, name string, tile *ebiten.Image, tilesW, tilesH int) (*Node, error) {
	tw, th := tile.Bounds().Dx(), tile.Bounds().Dy()
	dw, dh := s.width, s.height
	if tilesW*tw < dw || tilesH*th < dh {
		return nil, fmt.Errorf("map %s %dx%d tiles of %dx%d: %w", name, tilesW, tilesH, tw, th, ErrMapTooSmall)
	}
	if tilesW*tw > math.MaxInt16 || tilesH*th > math.MaxInt16 {
		return nil, fmt.Errorf("map %s %dx%d tiles of %dx%d: %w", name, tilesW, tilesH, tw, th, ErrMapTooLarge)
	}

	n := newNode(s, name, RoleMap)
	n.active = true
	n.scroll = &mapState{
		tileW:      tw,
		tileH:      th,
		mapW:       tilesW * tw,
		mapH:       tilesH * th,
		background: tileBackground(tile, dw+tw, dh+th),
	}
	n.xMin, n.xMax = -n.scroll.mapW, 0
	n.yMin, n.yMax = -n.scroll.mapH, 0
	return n, nil
}

// tileBackground repeats tile over a w x h image by doubling the filled
// segment, first along x and then along y. Ebitengine cannot draw an image onto
// itself, so each doubling copies into a fresh image.
func tileBackground(tile *ebiten.Image, w, h int) *ebiten.Image {
	tw, th := tile.Bounds().Dx(), tile.Bounds().Dy()
	cur := ebiten.NewImage(w, h)
	cur.DrawImage(tile, nil)

	double := func(dx, dy int) {
		next := ebiten.NewImage(w, h)
		next.DrawImage(cur, nil)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(dx), float64(dy))
		next.DrawImage(cur, op)
		cur.Deallocate()
		cur = next
	}
	for seg := tw; seg < w; seg *= 2 {
		double(seg, 0)
	}
	for seg := th; seg < h; seg *= 2 {
		double(0, seg)
	}
	return cur
}

// TileSize returns the tile width and height of a map.
func (n *Node) TileSize() (int, int) {
	if n.scroll == nil {
		return 0, 0
	}
	return n.scroll.tileW, n.scroll.tileH
}

// MapSize returns the map width and height in pixels.
func (n *Node) MapSize() (int, int) {
	if n.scroll == nil {
		return 0, 0
	}
	return n.scroll.mapW, n.scroll.mapH
}

// Background returns the replicated background image of a map.
func (n *Node) Background() *ebiten.Image {
	if n.scroll == nil {
		return nil
	}
	return n.scroll.background
}

// FreeScroll reports whether the map is being dragged with the right button.
func (n *Node) FreeScroll() bool { return n.scroll != nil && n.scroll.freeScroll }

// RestPosition returns the last unblocked position of a map.
func (n *Node) RestPosition() (int, int) {
	if n.scroll == nil {
		return 0, 0
	}
	return n.scroll.restX, n.scroll.restY
}

// SetPlayer sets the node whose height biases obstruction tests and whose
// animation follows scrolling.
func (n *Node) SetPlayer(p *Node) {
	if n.scroll != nil {
		n.scroll.player = p
	}
}

// Player returns the map's current player, or nil.
func (n *Node) Player() *Node {
	if n.scroll == nil {
		return nil
	}
	return n.scroll.player
}

// MapObstructed returns the OR of the followers' obstruction against the
// current player.
func (n *Node) MapObstructed() Direction {
	if n.scroll == nil {
		return DirNone
	}
	return n.followersObstructed(n.scroll.player)
}

func (m *mapState) animatePlayer(on bool) {
	if m.player != nil {
		m.player.animate = on
	}
}

// stepScroll gates the movement made by this step. A blocked axis returns to
// its rest position and halts the player's walk animation; an unblocked axis
// that moved becomes the new rest position and resumes it.
func (n *Node) stepScroll() {
	m := n.scroll
	if m == nil {
		return
	}
	if m.freeScroll {
		m.restX, m.restY = n.x, n.y
		return
	}

	obs := n.MapObstructed()
	if obs&(DirN|DirS) != 0 {
		n.SetY(m.restY)
		m.animatePlayer(false)
	}
	if obs&(DirW|DirE) != 0 {
		n.SetX(m.restX)
		m.animatePlayer(false)
	}
	n.SetOffsets()

	obs = n.MapObstructed()
	if obs&(DirN|DirS) == 0 && m.restY != n.y {
		m.restY = n.y
		m.animatePlayer(true)
	}
	if obs&(DirW|DirE) == 0 && m.restX != n.x {
		m.restX = n.x
		m.animatePlayer(true)
	}
}

// handleMap scrolls on arrow keys, toggles free scrolling with the right
// button and forwards the activate key to the layers under the player. The
// event always passes so the player sees the same keys.
func (n *Node) handleMap(ev *Event) (Result, error) {
	m := n.scroll
	if m == nil {
		return Pass, nil
	}
	switch ev.Kind {
	case EventPress:
		switch ev.Key {
		case ebiten.KeyArrowUp:
			if n.y+1 < n.yMax && n.MapObstructed()&DirN == 0 {
				n.speedY = 1
				n.targetY += m.mapH
			}
		case ebiten.KeyArrowDown:
			if n.y-1 > n.yMin && n.MapObstructed()&DirS == 0 {
				n.speedY = -1
				n.targetY -= m.mapH
			}
		case ebiten.KeyArrowLeft:
			if n.x+1 < n.xMax && n.MapObstructed()&DirW == 0 {
				n.speedX = 1
				n.targetX += m.mapW
			}
		case ebiten.KeyArrowRight:
			if n.x-1 > n.xMin && n.MapObstructed()&DirE == 0 {
				n.speedX = -1
				n.targetX -= m.mapW
			}
		default:
			if n.surface != nil && ev.Key == n.surface.activateKey {
				return Pass, n.activateArea(ev)
			}
		}
	case EventRelease:
		switch ev.Key {
		case ebiten.KeyArrowUp, ebiten.KeyArrowDown:
			n.StopMovementY()
		case ebiten.KeyArrowLeft, ebiten.KeyArrowRight:
			n.StopMovementX()
		}
	case EventPointerPress, EventPointerRelease:
		m.freeScroll = ev.Buttons.Has(ButtonRight)
	case EventPointerMove:
		if m.freeScroll {
			n.SetX(n.x + ev.RelX)
			n.SetY(n.y + ev.RelY)
		}
	}
	return Pass, nil
}

// activateArea sends an activate event to every layer follower, targeting a
// player-sized area in the middle of the display.
func (n *Node) activateArea(src *Event) error {
	p := n.scroll.player
	if p == nil {
		return fmt.Errorf("map %s: %w", n.Name, ErrNoPlayer)
	}
	dw, dh := n.displaySize()
	pw, ph := p.Width(), p.Height()
	ax, ay := dw/2-pw/2, dh/2-ph/2
	ev := &Event{Kind: EventActivate, Key: src.Key}
	for _, f := range n.followers {
		if f.Role != RoleLayer {
			continue
		}
		if err := f.EventToArea(ev, ax, ay, pw, ph); err != nil {
			return err
		}
	}
	return nil
}

// drawMap blits the background shifted by the display position modulo the
// tile size. The background is one tile larger than the display in each
// direction, so the shift never uncovers an edge.
func (n *Node) drawMap(dst *ebiten.Image) {
	m := n.scroll
	if m == nil || m.background == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(n.DisplayX()%m.tileW), float64(n.DisplayY()%m.tileH))
	if n.alpha < 255 {
		op.ColorScale.ScaleAlpha(float32(n.alpha) / 255)
	}
	dst.DrawImage(m.background, op)
}
