package tilewalk

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventFilter sees every input event before the dispatcher. Returning true
// consumes the event. Script bindings for global events are installed here.
type EventFilter func(ev *Event) (bool, error)

// RunConfig configures the window and the game loop built around a Surface.
type RunConfig struct {
	Title         string
	Width, Height int // window size; defaults to the display size times zoom
	Fullscreen    bool
	// Undecorated removes the window frame.
	Undecorated bool
	// HideCursor hides the system cursor, e.g. when a cursor node is used.
	HideCursor bool

	// Gamepad selects which connected gamepad feeds fake arrow keys.
	Gamepad int

	// Filter intercepts events before dispatch.
	Filter EventFilter
	// OnFrame runs once per tick after input and before the simulation step.
	OnFrame func() error
	// OnQuit runs when QuitKey is released, before the loop ends.
	OnQuit func() error
	// QuitKey names the key that ends the loop when released. Defaults to
	// "Escape".
	QuitKey string

	// Replay, when set, injects scripted input ahead of polled input.
	Replay *Replay
}

// Game adapts a Surface to ebiten.Game: it polls input, routes events, steps
// the scene and pauses while the window is unfocused.
type Game struct {
	surface *Surface
	cfg     RunConfig
	quitKey ebiten.Key

	input  *InputPoller
	queue  InputQueue
	events []Event

	focused func() bool
	paused  bool
}

// NewGame creates the loop for s.
func NewGame(s *Surface, cfg RunConfig) (*Game, error) {
	if cfg.QuitKey == "" {
		cfg.QuitKey = "Escape"
	}
	quit, err := ParseKey(cfg.QuitKey)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = s.width*s.zoom, s.height*s.zoom
	}
	s.SetScreenSize(cfg.Width, cfg.Height)
	return &Game{
		surface: s,
		cfg:     cfg,
		quitKey: quit,
		input:   NewInputPoller(s, cfg.Gamepad),
		focused: ebiten.IsFocused,
	}, nil
}

// Surface returns the scene surface.
func (g *Game) Surface() *Surface { return g.surface }

// Queue returns the synthetic input queue drained before polled input.
func (g *Game) Queue() *InputQueue { return &g.queue }

// Paused reports whether the loop is suspended for lost focus.
func (g *Game) Paused() bool { return g.paused }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.focused() {
		g.paused = true
		return nil
	}
	if g.paused {
		g.paused = false
		g.surface.ResetFrameskip()
	}
	return g.tick(g.input.Poll())
}

// tick advances the replay, then steps with the queued events followed by
// the polled ones.
func (g *Game) tick(polled []Event) error {
	if g.cfg.Replay != nil {
		g.cfg.Replay.step(g)
	}
	g.events = g.queue.Drain(g.events[:0])
	g.events = append(g.events, polled...)
	return g.Step(g.events)
}

// Step routes events, runs the frame hook and advances the scene one step.
// It returns ebiten.Termination after the quit key was handled.
func (g *Game) Step(events []Event) error {
	for i := range events {
		ev := &events[i]
		if ev.Kind == EventRelease && ev.Key == g.quitKey {
			if g.cfg.OnQuit != nil {
				if err := g.cfg.OnQuit(); err != nil {
					return err
				}
			}
			return ebiten.Termination
		}
		if err := g.HandleEvent(ev); err != nil {
			return err
		}
	}
	if g.cfg.OnFrame != nil {
		if err := g.cfg.OnFrame(); err != nil {
			return err
		}
	}
	g.surface.Update()
	return nil
}

// HandleEvent offers ev to the filter and, unless it consumed the event,
// delivers it through the surface's dispatcher.
func (g *Game) HandleEvent(ev *Event) error {
	if g.cfg.Filter != nil {
		consumed, err := g.cfg.Filter(ev)
		if err != nil || consumed {
			return err
		}
	}
	_, err := g.surface.dispatcher.Dispatch(ev)
	return err
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
}

// Layout implements ebiten.Game. The window keeps the configured size; the
// surface letterboxes its display into it.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and runs the loop until the quit key, a window close
// or an error. The frame limiter paces the loop, so vsync is disabled and one
// tick runs per frame.
func Run(s *Surface, cfg RunConfig) error {
	g, err := NewGame(s, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetFullscreen(g.cfg.Fullscreen)
	ebiten.SetWindowDecorated(!g.cfg.Undecorated)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(false)
	ebiten.SetScreenClearedEveryFrame(false)
	if g.cfg.HideCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
