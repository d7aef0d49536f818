package script

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/phanxgames/tilewalk"
)

// Sounder plays audio for the sound and music commands.
type Sounder interface {
	Play(path string)
	Loop(path string)
}

// Bridge executes commands against a surface. It is not safe for concurrent
// use; call it from the game goroutine.
type Bridge struct {
	surface  *tilewalk.Surface
	registry Registry
	sound    Sounder
	log      *slog.Logger

	vars map[string]string

	// global event code by event name; a present key with empty code still
	// consumes the event
	events map[string]string
	// activate code by node id
	activate map[uint32]string
}

// NewBridge creates a bridge for s and installs its dispatcher hook. sound may
// be nil, in which case sound and music are accepted and ignored.
func NewBridge(s *tilewalk.Surface, sound Sounder, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	b := &Bridge{
		surface:  s,
		sound:    sound,
		log:      log,
		vars:     make(map[string]string),
		events:   make(map[string]string),
		activate: make(map[uint32]string),
	}
	s.Dispatcher().SetHook(b.hook)
	return b
}

// Registry returns the handle registry.
func (b *Bridge) Registry() *Registry { return &b.registry }

// Node returns the node behind handle h.
func (b *Bridge) Node(h int) (*tilewalk.Node, bool) { return b.registry.Lookup(h) }

// Var returns a script variable.
func (b *Bridge) Var(name string) (string, bool) {
	v, ok := b.vars[name]
	return v, ok
}

// SetVar sets a script variable.
func (b *Bridge) SetVar(name, value string) { b.vars[name] = value }

// Exec runs one command with already expanded arguments and returns its
// result, which is empty for commands that create nothing.
func (b *Bridge) Exec(cmd string, args ...string) (string, error) {
	c, ok := commands[cmd]
	if !ok {
		return "", &CommandError{Cmd: cmd, Err: usagef("unknown command")}
	}
	if !slices.Contains(c.argc, len(args)) {
		return "", &CommandError{Cmd: cmd, Err: usagef("%s", c.usage)}
	}
	res, err := c.run(b, args)
	if err != nil {
		return "", &CommandError{Cmd: cmd, Err: err}
	}
	b.log.Debug("script command", "cmd", cmd, "args", args, "result", res)
	return res, nil
}

// Eval runs code: commands separated by newlines or ';'. Bare words have
// $name references expanded. It returns the result of the last command.
func (b *Bridge) Eval(code string) (string, error) {
	cmds, err := splitCommands(code)
	if err != nil {
		return "", err
	}
	var res string
	for _, words := range cmds {
		args := make([]string, 0, len(words)-1)
		for _, w := range words[1:] {
			if w.quoted {
				args = append(args, w.text)
				continue
			}
			v, err := expand(w.text, b.Var)
			if err != nil {
				return "", &CommandError{Cmd: words[0].text, Err: err}
			}
			args = append(args, v)
		}
		if res, err = b.Exec(words[0].text, args...); err != nil {
			return "", err
		}
	}
	return res, nil
}

// --- argument helpers ---

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%q is not an integer", s)
	}
	return v, nil
}

func inRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d not in %d..%d", ErrRange, name, v, lo, hi)
	}
	return nil
}

// node resolves a handle argument. Layers are rejected unless anyRole is set.
func (b *Bridge) node(arg string, anyRole bool) (*tilewalk.Node, error) {
	h, err := atoi(arg)
	if err != nil {
		return nil, err
	}
	n, ok := b.registry.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrHandle, h)
	}
	if !anyRole && n.Role == tilewalk.RoleLayer {
		return nil, fmt.Errorf("%w: %d is a layer", ErrHandle, h)
	}
	return n, nil
}

func (b *Bridge) visual(arg string) (*tilewalk.Node, error) { return b.node(arg, false) }

func (b *Bridge) ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
