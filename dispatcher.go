package tilewalk

// Handler receives events from a Dispatcher. Inactive handlers are skipped.
type Handler interface {
	Active() bool
	Handle(ev *Event) (Result, error)
}

// Hook runs for every active handler before the handler's own logic. It lets
// a scripting layer observe or react to events independently of node
// behaviour. An error aborts delivery.
type Hook func(h Handler, ev *Event) error

// EventSink is the interface for optional ECS integration. When set on a
// Dispatcher, every dispatched event is forwarded to it.
type EventSink interface {
	EmitEvent(ev Event, consumedBy uint32)
}

type registeredHandler struct {
	id uint32
	h  Handler
}

// Dispatcher delivers events to handlers in reverse registration order, so the
// most recently registered handler sees an event first. Delivery stops at the
// first handler that returns Consumed.
type Dispatcher struct {
	handlers []registeredHandler
	nextID   uint32
	hook     Hook
	sink     EventSink
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// HandlerHandle allows removing a registered handler.
type HandlerHandle struct {
	id uint32
	d  *Dispatcher
}

// Remove unregisters the handler so it no longer receives events.
func (hh HandlerHandle) Remove() {
	if hh.d == nil {
		return
	}
	s := hh.d.handlers
	for i := range s {
		if s[i].id == hh.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = registeredHandler{}
			hh.d.handlers = s[:len(s)-1]
			return
		}
	}
}

// Register appends h to the chain.
func (d *Dispatcher) Register(h Handler) HandlerHandle {
	d.nextID++
	d.handlers = append(d.handlers, registeredHandler{id: d.nextID, h: h})
	return HandlerHandle{id: d.nextID, d: d}
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int { return len(d.handlers) }

// SetHook installs the per-handler hook. Pass nil to remove it.
func (d *Dispatcher) SetHook(h Hook) { d.hook = h }

// SetEventSink installs an ECS sink. Pass nil to remove it.
func (d *Dispatcher) SetEventSink(s EventSink) { d.sink = s }

// Dispatch delivers ev down the chain until a handler consumes it.
func (d *Dispatcher) Dispatch(ev *Event) (Result, error) {
	var consumer uint32
	result := Pass
	for i := len(d.handlers) - 1; i >= 0; i-- {
		h := d.handlers[i].h
		r, err := d.Deliver(h, ev)
		if err != nil {
			return Pass, err
		}
		if r == Consumed {
			result = Consumed
			if n, ok := h.(*Node); ok {
				consumer = n.ID
			}
			break
		}
	}
	if d.sink != nil {
		d.sink.EmitEvent(*ev, consumer)
	}
	return result, nil
}

// Deliver hands ev to a single handler: inactive handlers pass, active ones
// run the hook and then their own logic.
func (d *Dispatcher) Deliver(h Handler, ev *Event) (Result, error) {
	if !h.Active() {
		return Pass, nil
	}
	if d != nil && d.hook != nil {
		if err := d.hook(h, ev); err != nil {
			return Pass, err
		}
	}
	return h.Handle(ev)
}
