package script

import (
	"fmt"

	"github.com/phanxgames/tilewalk"
)

// globalEvents are the events "on" accepts without a handle.
var globalEvents = map[string]bool{
	"contpress":    true,
	"contrelease":  true,
	"pointpress":   true,
	"pointrelease": true,
	"pointmove":    true,
	"frame":        true,
}

// pairs lists events that are bound and unbound together.
var pairs = map[string]string{
	"contpress":    "contrelease",
	"contrelease":  "contpress",
	"pointpress":   "pointrelease",
	"pointrelease": "pointpress",
}

func cmdOn(b *Bridge, args []string) (string, error) {
	if len(args) == 3 {
		return "", b.bindActivate(args)
	}
	event, code := args[0], args[1]
	if !globalEvents[event] {
		return "", usagef("cannot bind %q", event)
	}
	// binding one half of a pair claims the other, so a press bound without
	// its release does not leak releases to the nodes
	if other, ok := pairs[event]; ok {
		if _, bound := b.events[other]; !bound {
			b.events[other] = ""
		}
	}
	b.events[event] = code
	return "", nil
}

func (b *Bridge) bindActivate(args []string) error {
	n, err := b.visual(args[0])
	if err != nil {
		return err
	}
	if args[1] != tilewalk.EventActivate.String() {
		return usagef("nodes can only bind activate, not %q", args[1])
	}
	b.activate[n.ID] = args[2]
	// activation reaches the node through its layer, not the dispatcher chain
	n.SetActive(true)
	return nil
}

func cmdUnbind(b *Bridge, args []string) (string, error) {
	event := args[0]
	if _, ok := b.events[event]; !ok {
		return "", usagef("nothing bound to %q", event)
	}
	delete(b.events, event)
	if other, ok := pairs[event]; ok {
		delete(b.events, other)
	}
	return "", nil
}

// Bound reports whether event has global code, possibly empty.
func (b *Bridge) Bound(event string) bool {
	_, ok := b.events[event]
	return ok
}

// run evaluates bound code. Failures are fatal and wrapped in ErrScript.
func (b *Bridge) run(what, code string) error {
	if code == "" {
		return nil
	}
	if _, err := b.Eval(code); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, what, err)
	}
	return nil
}

// Filter is a tilewalk.EventFilter. An event with global code is consumed
// by the script and never reaches the nodes. The payload is exposed as
// $<event>.
func (b *Bridge) Filter(ev *tilewalk.Event) (bool, error) {
	name := ev.Kind.String()
	code, ok := b.events[name]
	if !ok || name == "frame" {
		return false, nil
	}
	b.vars[name] = ev.Var()
	return true, b.run(name+" binding", code)
}

// OnFrame runs the frame binding. Install it as RunConfig.OnFrame.
func (b *Bridge) OnFrame() error {
	code, ok := b.events["frame"]
	if !ok {
		return nil
	}
	return b.run("frame binding", code)
}

// hook runs activate code before the node's own handling.
func (b *Bridge) hook(h tilewalk.Handler, ev *tilewalk.Event) error {
	if ev.Kind != tilewalk.EventActivate {
		return nil
	}
	n, ok := h.(*tilewalk.Node)
	if !ok {
		return nil
	}
	code, ok := b.activate[n.ID]
	if !ok {
		return nil
	}
	b.vars["activate"] = ev.Var()
	return b.run(fmt.Sprintf("activate binding of node %d", n.ID), code)
}

// Install wires the bridge's filter and frame hook into cfg.
func (b *Bridge) Install(cfg *tilewalk.RunConfig) {
	cfg.Filter = b.Filter
	cfg.OnFrame = b.OnFrame
}
