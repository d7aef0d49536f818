package ecs

import (
	"github.com/phanxgames/tilewalk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// DispatchedEvent is an event that went through a surface's dispatcher.
// ConsumedBy is the id of the node that consumed it, or 0.
type DispatchedEvent struct {
	Event      tilewalk.Event
	ConsumedBy uint32
}

// EventType is the Donburi event type for dispatched events.
var EventType = events.NewEventType[DispatchedEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to EventType. Events are
// queued until EventType.ProcessEvents runs.
func NewDonburiSink(world donburi.World) tilewalk.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev tilewalk.Event, consumedBy uint32) {
	EventType.Publish(s.world, DispatchedEvent{Event: ev, ConsumedBy: consumedBy})
}

// NodeData is the per-node component maintained by a Mirror.
type NodeData struct {
	ID       uint32
	Name     string
	Role     tilewalk.Role
	X, Y     int // display position
	LayerID  int
	Alpha    int
	Active   bool
	Obstruct bool
}

// NodeComponent holds NodeData.
var NodeComponent = donburi.NewComponentType[NodeData]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// Mirror reflects the nodes and layers of a surface as entities.
type Mirror struct {
	world    donburi.World
	surface  *tilewalk.Surface
	entities map[uint32]donburi.Entity
}

// NewMirror creates a mirror. Entities appear on the first Sync.
func NewMirror(world donburi.World, s *tilewalk.Surface) *Mirror {
	return &Mirror{
		world:    world,
		surface:  s,
		entities: make(map[uint32]donburi.Entity),
	}
}

// Sync creates entities for new nodes and refreshes the data of known ones.
// An entity removed from the world behind the mirror's back is recreated.
func (m *Mirror) Sync() {
	for _, n := range m.surface.Layers() {
		m.sync(n)
	}
	for _, n := range m.surface.Nodes() {
		m.sync(n)
	}
}

func (m *Mirror) sync(n *tilewalk.Node) {
	e, ok := m.entities[n.ID]
	if !ok || !m.world.Valid(e) {
		e = m.world.Create(NodeComponent)
		m.entities[n.ID] = e
	}
	NodeComponent.SetValue(m.world.Entry(e), NodeData{
		ID:       n.ID,
		Name:     n.Name,
		Role:     n.Role,
		X:        n.DisplayX(),
		Y:        n.DisplayY(),
		LayerID:  n.LayerID(),
		Alpha:    n.Alpha(),
		Active:   n.Active(),
		Obstruct: n.Obstructing(),
	})
}

// Entity returns the entity mirroring the node with the given id.
func (m *Mirror) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Len returns the number of mirrored nodes.
func (m *Mirror) Len() int { return nodeQuery.Count(m.world) }

// Each calls fn with the data of every mirrored node.
func (m *Mirror) Each(fn func(NodeData)) {
	nodeQuery.Each(m.world, func(entry *donburi.Entry) {
		fn(*NodeComponent.Get(entry))
	})
}
