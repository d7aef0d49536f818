package tilewalk

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// sortKey is the render-order key of a node, captured when the node is
// inserted so the container stays searchable while nodes move during a step.
type sortKey struct {
	framed     bool
	layerID    int
	bottomEdge int
}

func keyOf(n *Node) sortKey {
	return sortKey{framed: n.hasFrames(), layerID: n.layerID, bottomEdge: n.BottomEdge()}
}

// less orders nodes without frames first, then by layer id, then by the
// display y of the lower edge.
func (k sortKey) less(o sortKey) bool {
	if k.framed != o.framed {
		return !k.framed
	}
	if k.layerID != o.layerID {
		return k.layerID < o.layerID
	}
	return k.bottomEdge < o.bottomEdge
}

type orderedEntry struct {
	node *Node
	key  sortKey
}

// orderedNodes is a multiset of nodes sorted by sortKey. Nodes with equal keys
// keep their insertion order because insertion happens at the upper bound.
type orderedNodes struct {
	items []orderedEntry
}

func (o *orderedNodes) insert(n *Node) {
	k := keyOf(n)
	i := sort.Search(len(o.items), func(i int) bool { return k.less(o.items[i].key) })
	o.items = append(o.items, orderedEntry{})
	copy(o.items[i+1:], o.items[i:])
	o.items[i] = orderedEntry{node: n, key: k}
}

// remove deletes n by identity. The stored key may be stale, so the search is
// linear.
func (o *orderedNodes) remove(n *Node) bool {
	for i := range o.items {
		if o.items[i].node == n {
			copy(o.items[i:], o.items[i+1:])
			o.items[len(o.items)-1] = orderedEntry{}
			o.items = o.items[:len(o.items)-1]
			return true
		}
	}
	return false
}

// resort removes every node in moved and re-inserts it under its current key.
func (o *orderedNodes) resort(moved []*Node) {
	for _, n := range moved {
		o.remove(n)
	}
	for _, n := range moved {
		o.insert(n)
	}
}

func (o *orderedNodes) len() int { return len(o.items) }

func (o *orderedNodes) at(i int) *Node { return o.items[i].node }

// sorted reports whether the stored keys are non-decreasing.
func (o *orderedNodes) sorted() bool {
	for i := 1; i < len(o.items); i++ {
		if o.items[i].key.less(o.items[i-1].key) {
			return false
		}
	}
	return true
}

// --- Node drawing ---

// drawNode renders a node onto the composite image at its display position.
func drawNode(dst *ebiten.Image, n *Node) {
	if n.Role == RoleMap {
		n.drawMap(dst)
		return
	}
	dx, dy := n.DisplayX(), n.DisplayY()
	if img := n.currentFrame(); img != nil && n.alpha > 0 {
		op := &ebiten.DrawImageOptions{}
		if n.angle != 0 {
			w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
			op.GeoM.Translate(-w/2, -h/2)
			op.GeoM.Rotate(float64(n.angle) * math.Pi / 180)
			op.GeoM.Translate(w/2, h/2)
		}
		op.GeoM.Translate(float64(dx), float64(dy))
		if n.alpha < 255 {
			op.ColorScale.ScaleAlpha(float32(n.alpha) / 255)
		}
		dst.DrawImage(img, op)
	}
	if n.text != nil {
		n.text.draw(dst, dx, dy)
	}
}
