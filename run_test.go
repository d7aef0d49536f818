package tilewalk

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestGame(t *testing.T, cfg RunConfig) *Game {
	t.Helper()
	g, err := NewGame(newTestSurface(t, 320, 180), cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t, RunConfig{})
	if w, h := g.Layout(0, 0); w != 320 || h != 180 {
		t.Errorf("Layout = %dx%d, want 320x180", w, h)
	}
	if g.quitKey != ebiten.KeyEscape {
		t.Errorf("quit key = %v, want Escape", g.quitKey)
	}
}

func TestNewGameBadQuitKey(t *testing.T) {
	_, err := NewGame(newTestSurface(t, 320, 180), RunConfig{QuitKey: "Nope"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("err = %v, want ErrUnknownKey", err)
	}
}

func TestStepQuitKey(t *testing.T) {
	quit := 0
	g := newTestGame(t, RunConfig{OnQuit: func() error { quit++; return nil }})

	err := g.Step([]Event{KeyEvent(EventPress, ebiten.KeyEscape)})
	if err != nil || quit != 0 {
		t.Fatalf("press: err=%v quit=%d, want nothing", err, quit)
	}
	err = g.Step([]Event{KeyEvent(EventRelease, ebiten.KeyEscape)})
	if !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
	if quit != 1 {
		t.Errorf("OnQuit ran %d times, want 1", quit)
	}
}

func TestStepOnQuitError(t *testing.T) {
	boom := errors.New("save failed")
	g := newTestGame(t, RunConfig{OnQuit: func() error { return boom }})
	if err := g.Step([]Event{KeyEvent(EventRelease, ebiten.KeyEscape)}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the OnQuit error", err)
	}
}

func TestStepFilterConsumes(t *testing.T) {
	var filtered []EventKind
	g := newTestGame(t, RunConfig{
		Filter: func(ev *Event) (bool, error) {
			filtered = append(filtered, ev.Kind)
			return ev.Key == ebiten.KeyArrowRight, nil
		},
	})
	p, err := g.Surface().NewPlayer(playerFiles("16x24"), nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Step([]Event{KeyEvent(EventPress, ebiten.KeyArrowRight), KeyEvent(EventPress, ebiten.KeyArrowUp)}); err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("filter saw %d events, want 2", len(filtered))
	}
	if p.PressedKeys() != 1 || p.Direction() != DirN {
		t.Errorf("player keys=%d dir=%v, want only the unfiltered press", p.PressedKeys(), p.Direction())
	}
}

func TestStepOrder(t *testing.T) {
	var order []string
	g := newTestGame(t, RunConfig{
		Filter: func(ev *Event) (bool, error) {
			order = append(order, "filter")
			return false, nil
		},
		OnFrame: func() error {
			order = append(order, "frame")
			return nil
		},
	})
	n := mustSprite(t, g.Surface(), "8x8.png")
	n.MoveTo(10, 0, 1)

	if err := g.Step([]Event{KeyEvent(EventPress, ebiten.KeyA)}); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "filter" || order[1] != "frame" {
		t.Errorf("order = %v, want [filter frame]", order)
	}
	if n.X() != 1 {
		t.Errorf("X = %d, want 1 after one step", n.X())
	}
}

func TestStepPropagatesErrors(t *testing.T) {
	boom := errors.New("script failed")
	g := newTestGame(t, RunConfig{OnFrame: func() error { return boom }})
	if err := g.Step(nil); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the frame error", err)
	}

	g = newTestGame(t, RunConfig{})
	if _, err := g.Surface().NewMap("32x32.png", 10, 6); err != nil {
		t.Fatal(err)
	}
	if err := g.Step([]Event{KeyEvent(EventPress, ebiten.KeySpace)}); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer", err)
	}
}

func TestUpdatePausesWithoutFocus(t *testing.T) {
	g := newTestGame(t, RunConfig{})
	n := mustSprite(t, g.Surface(), "8x8.png")
	n.MoveTo(10, 0, 1)
	g.focused = func() bool { return false }
	g.Surface().frameskip = 7

	for range 3 {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !g.Paused() {
		t.Error("game should pause without focus")
	}
	if n.X() != 0 {
		t.Errorf("X = %d, the scene must not step while paused", n.X())
	}
	if g.Surface().Frameskip() != 7 {
		t.Error("frameskip should only reset on regaining focus")
	}
}

func TestQueueDrainedBeforeStep(t *testing.T) {
	g := newTestGame(t, RunConfig{})
	g.Queue().InjectKey(ebiten.KeyEscape)
	evs := g.Queue().Drain(nil)
	if err := g.Step(evs); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
}
