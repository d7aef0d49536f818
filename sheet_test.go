package tilewalk

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const hashSheet = `{
  "frames": {
    "hero-n1": {"frame": {"x": 0, "y": 0, "w": 16, "h": 24}},
    "hero-n2": {"frame": {"x": 16, "y": 0, "w": 16, "h": 24}},
    "chest":   {"frame": {"x": 0, "y": 24, "w": 32, "h": 20}}
  }
}`

const arraySheet = `{
  "textures": [
    {"image": "a.png", "frames": {"a": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}},
    {"image": "b.png", "frames": {"b": {"frame": {"x": 8, "y": 8, "w": 8, "h": 4}}}}
  ]
}`

func TestLoadSheetHash(t *testing.T) {
	sh, err := LoadSheet([]byte(hashSheet), []*ebiten.Image{ebiten.NewImage(64, 64)})
	if err != nil {
		t.Fatal(err)
	}
	if sh.Len() != 3 {
		t.Errorf("Len = %d, want 3", sh.Len())
	}
	img, err := sh.LoadImage("chest")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 20 {
		t.Errorf("chest = %dx%d, want 32x20", b.Dx(), b.Dy())
	}
	if _, err := sh.LoadImage("dragon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadSheetArray(t *testing.T) {
	pages := []*ebiten.Image{ebiten.NewImage(16, 16), ebiten.NewImage(16, 16)}
	sh, err := LoadSheet([]byte(arraySheet), pages)
	if err != nil {
		t.Fatal(err)
	}
	img, err := sh.LoadImage("b")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("b = %dx%d, want 8x4", b.Dx(), b.Dy())
	}
}

func TestLoadSheetErrors(t *testing.T) {
	page := []*ebiten.Image{ebiten.NewImage(16, 16)}
	tests := []struct {
		name  string
		json  string
		pages []*ebiten.Image
	}{
		{"invalid json", "{", page},
		{"no frames", `{"meta": {}}`, page},
		{"missing page", arraySheet, page},
		{"outside page", `{"frames": {"x": {"frame": {"x": 10, "y": 0, "w": 10, "h": 10}}}}`, page},
		{"rotated", `{"frames": {"x": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "rotated": true}}}`, page},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSheet([]byte(tt.json), tt.pages); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSpriteFromSheet(t *testing.T) {
	sh, err := LoadSheet([]byte(hashSheet), []*ebiten.Image{ebiten.NewImage(64, 64)})
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSurface(SurfaceOptions{Clock: newManualClock(), Loader: Loaders(sh, sizedLoader)})
	if err != nil {
		t.Fatal(err)
	}
	chest, err := s.NewSprite("chest")
	if err != nil {
		t.Fatal(err)
	}
	if chest.Width() != 32 {
		t.Errorf("Width = %d, want 32", chest.Width())
	}
	// falls through to the next loader
	if _, err := s.NewSprite("8x8.png"); err != nil {
		t.Errorf("fallback loader: %v", err)
	}
	if _, err := s.NewSprite("dragon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadersStopOnHardError(t *testing.T) {
	boom := errors.New("disk on fire")
	called := false
	l := Loaders(
		ImageLoaderFunc(func(string) (*ebiten.Image, error) { return nil, boom }),
		ImageLoaderFunc(func(string) (*ebiten.Image, error) { called = true; return nil, nil }),
	)
	if _, err := l.LoadImage("x"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if called {
		t.Error("later loaders should not run after a hard error")
	}
}
