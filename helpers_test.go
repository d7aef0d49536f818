package tilewalk

import (
	"fmt"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// manualClock is a Clock that only moves when told to. Sleep advances it.
type manualClock struct {
	now    time.Time
	slept  time.Duration
	sleeps int
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps++
}

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// sizedLoader serves blank images whose size is encoded in the path, e.g.
// "32x48.png" or "dir/32x48-north.png". Other paths are not found.
var sizedLoader = ImageLoaderFunc(func(path string) (*ebiten.Image, error) {
	var w, h int
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}
	if _, err := fmt.Sscanf(base, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image %s: %w", path, ErrNotFound)
	}
	return ebiten.NewImage(w, h), nil
})

func newTestSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(SurfaceOptions{
		Width:  w,
		Height: h,
		Clock:  newManualClock(),
		Loader: sizedLoader,
	})
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

func mustSprite(t *testing.T, s *Surface, path string) *Node {
	t.Helper()
	n, err := s.NewSprite(path)
	if err != nil {
		t.Fatalf("NewSprite(%q): %v", path, err)
	}
	return n
}

// freeNode is a surface-less node without bounds checking.
func freeNode(name string) *Node {
	n := newNode(nil, name, RolePlain)
	n.SetCheckBounds(false)
	return n
}
