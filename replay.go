package tilewalk

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// replayStep is a single action of a replay script.
type replayStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Button string `yaml:"button,omitempty"`
	Label  string `yaml:"label,omitempty"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	ToX    int    `yaml:"toX,omitempty"`
	ToY    int    `yaml:"toY,omitempty"`
	Frames int    `yaml:"frames,omitempty"`

	key    ebiten.Key
	button ebiten.MouseButton
}

type replayScript struct {
	Steps []replayStep `yaml:"steps"`
}

// Replay sequences injected input and screenshots across frames, for demos
// and visual checks. Attach it with RunConfig.Replay; the game loop advances
// it once per tick before draining the input queue.
//
//	steps:
//	  - action: key      # press and release
//	    key: ArrowRight
//	  - action: wait
//	    frames: 30
//	  - action: drag
//	    x: 10
//	    y: 10
//	    toX: 60
//	    toY: 40
//	  - action: screenshot
//	    label: after-drag
//	  - action: quit
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
}

var errReplay = errors.New("tilewalk: replay")

// LoadReplay parses a YAML replay script. Unknown fields, unknown actions and
// unknown key or button names are errors.
func LoadReplay(data []byte) (*Replay, error) {
	var script replayScript
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", errReplay, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", errReplay)
	}
	for i := range script.Steps {
		if err := script.Steps[i].compile(); err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", errReplay, i+1, err)
		}
	}
	return &Replay{steps: script.Steps}, nil
}

func (st *replayStep) compile() error {
	switch st.Action {
	case "key", "press", "release":
		k, err := ParseKey(st.Key)
		if err != nil {
			return err
		}
		st.key = k
	case "click", "drag":
		b, err := parseButton(st.Button)
		if err != nil {
			return err
		}
		st.button = b
	case "move", "wait", "screenshot", "quit":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseButton(name string) (ebiten.MouseButton, error) {
	switch name {
	case "", "left":
		return ebiten.MouseButtonLeft, nil
	case "right":
		return ebiten.MouseButtonRight, nil
	case "middle":
		return ebiten.MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Done reports whether every step has run.
func (r *Replay) Done() bool { return r.done }

// step runs at most one action per tick. It waits for earlier injections to
// be consumed before moving on.
func (r *Replay) step(g *Game) {
	if r.done || g.queue.Len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	q := &g.queue
	switch st.Action {
	case "key":
		q.InjectKey(st.key)
	case "press":
		q.InjectKeyPress(st.key)
	case "release":
		q.InjectKeyRelease(st.key)
	case "move":
		q.InjectMove(st.X, st.Y)
	case "click":
		q.InjectPress(st.X, st.Y, st.button)
		q.InjectRelease(st.X, st.Y, st.button)
	case "drag":
		q.InjectDrag(st.X, st.Y, st.ToX, st.ToY, max(st.Frames, 1), st.button)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "screenshot":
		g.surface.Screenshot(st.Label)
	case "quit":
		q.InjectKeyRelease(g.quitKey)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
