package tilewalk

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewSurfaceDefaults(t *testing.T) {
	s, err := NewSurface(SurfaceOptions{Clock: newManualClock(), Loader: sizedLoader})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Errorf("Size = %dx%d, want 320x240", w, h)
	}
	if s.Zoom() != 1 {
		t.Errorf("Zoom = %d, want 1", s.Zoom())
	}
	if s.Limiter().Limit() != HardFPSLimit {
		t.Errorf("Limit = %d, want %d", s.Limiter().Limit(), HardFPSLimit)
	}
	if s.activateKey != ebiten.KeySpace {
		t.Errorf("activate key = %v, want Space", s.activateKey)
	}
	if s.Font() == nil {
		t.Error("a default font should be loaded")
	}
}

func TestNewSurfaceErrors(t *testing.T) {
	if _, err := NewSurface(SurfaceOptions{ActivateKey: "Nope"}); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("bad key: err = %v, want ErrUnknownKey", err)
	}
	if _, err := NewSurface(SurfaceOptions{FPSLimit: -5}); !errors.Is(err, ErrInvalidFPSLimit) {
		t.Errorf("bad limit: err = %v, want ErrInvalidFPSLimit", err)
	}
}

func TestLoadImageCaches(t *testing.T) {
	calls := 0
	s, err := NewSurface(SurfaceOptions{
		Clock: newManualClock(),
		Loader: ImageLoaderFunc(func(path string) (*ebiten.Image, error) {
			calls++
			return sizedLoader(path)
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.LoadImage("4x4.png")
	b, _ := s.LoadImage("4x4.png")
	if a != b || calls != 1 {
		t.Errorf("calls = %d, same image = %t; want a single load", calls, a == b)
	}
	if _, err := s.LoadImage("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNewSpriteMissingImage(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	if _, err := s.NewSprite("nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(s.Nodes()) != 0 {
		t.Error("a failed sprite must not be added")
	}
}

func TestNewSpriteBounds(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n := mustSprite(t, s, "32x16.png")
	xMin, xMax, yMin, yMax := n.Bounds()
	if xMin != -32 || xMax != 320 || yMin != -16 || yMax != 240 {
		t.Errorf("Bounds = %d %d %d %d, want -32 320 -16 240", xMin, xMax, yMin, yMax)
	}
	if n.Active() {
		t.Error("plain sprites are inactive")
	}
	if s.Dispatcher().Len() != 0 {
		t.Error("plain sprites are not registered")
	}
}

func TestNewSpriteDirsLastDirectionCurrent(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n, err := s.NewSpriteDirs(map[Direction][]string{
		DirE: {"8x8.png"},
		DirN: {"8x16.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Direction() != DirE {
		t.Errorf("Direction = %v, want E", n.Direction())
	}
	if n.Height() != 8 {
		t.Errorf("Height = %d, want 8", n.Height())
	}
}

func TestNewLayerIDs(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	a := s.NewLayer(0)
	b := s.NewLayer(10)
	c := s.NewLayer(0)
	if a.LayerID() != 1 || b.LayerID() != 10 || c.LayerID() != 11 {
		t.Errorf("layer ids = %d %d %d, want 1 10 11", a.LayerID(), b.LayerID(), c.LayerID())
	}
	if a.CheckBounds() {
		t.Error("layers are not bounds checked")
	}
	if len(s.Layers()) != 3 || len(s.Nodes()) != 0 {
		t.Error("layers are kept apart from the render list")
	}
	if got, ok := s.FindNode(b.ID); !ok || got != b {
		t.Error("FindNode should find layers")
	}
}

func TestFindNode(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n := mustSprite(t, s, "8x8.png")
	if got, ok := s.FindNode(n.ID); !ok || got != n {
		t.Error("FindNode did not find the sprite")
	}
	if _, ok := s.FindNode(9999); ok {
		t.Error("FindNode found an unknown id")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	seen := map[uint32]bool{}
	for range 10 {
		n := mustSprite(t, s, "8x8.png")
		if seen[n.ID] || n.ID == 0 {
			t.Fatalf("duplicate or zero id %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestTint(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	s.Tint(10, 20, 30, 40)
	if c := s.TintColor(); c.R != 10 || c.G != 20 || c.B != 30 || c.A != 40 {
		t.Errorf("TintColor = %+v", c)
	}
}

func TestNewDraggableDirs(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n, err := s.NewDraggableDirs(map[Direction][]string{
		DirN: {"8x8.png"},
		DirS: {"8x12.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Role != RoleDraggable || !n.Active() {
		t.Errorf("Role = %v, Active = %t; want an active draggable", n.Role, n.Active())
	}
	if n.Direction() != DirS {
		t.Errorf("Direction = %v, want S", n.Direction())
	}
	if s.Dispatcher().Len() != 1 {
		t.Errorf("registered handlers = %d, want 1", s.Dispatcher().Len())
	}
	if _, err := s.NewDraggableDirs(map[Direction][]string{DirN: {"gone.png"}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
