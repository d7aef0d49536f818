// Package tilewalk is the runtime core of a small 2D adventure engine built on
// [Ebitengine].
//
// It provides a flat scene of positioned, animated nodes, a z-ordered
// renderer, a scrolling tiled map that stops at obstacles, a screen-locked
// player, an adaptive frame limiter and an event dispatch chain that routes
// input to nodes.
//
// # Quick start
//
//	s, err := tilewalk.NewSurface(tilewalk.SurfaceOptions{Width: 320, Height: 180, Zoom: 2})
//	if err != nil { ... }
//	m, err := s.NewMap("grass.png", 10, 6)
//	layer := s.NewLayer(0)
//	_ = m.AttachFollower(layer)
//	_, err = s.NewPlayer(map[tilewalk.Direction][]string{
//		tilewalk.DirN: {"n1.png", "n2.png"},
//		tilewalk.DirS: {"s1.png", "s2.png"},
//		tilewalk.DirW: {"w1.png", "w2.png"},
//		tilewalk.DirE: {"e1.png", "e2.png"},
//	}, layer)
//	err = tilewalk.Run(s, tilewalk.RunConfig{Title: "walk"})
//
// # Nodes
//
// Every scene element is a [Node]. What a node does with input is fixed by its
// [Role] at creation: layers group other nodes, maps scroll, the player turns
// arrow keys into facing and animation, draggables follow the left button and
// the cursor follows the pointer.
//
// Nodes move toward a target at a per-step speed ([Node.MoveTo]), fade
// ([Node.FadeTo], [Node.AlphaCycle]), rotate ([Node.Rotate],
// [Node.RotationCycle]) and can be eased with [TweenGroup]s. A node can follow
// another: the leader pushes its display position into the follower's offset
// every step.
//
// # Render order
//
// The [Surface] keeps its nodes sorted by layer id and then by the display y
// of their lower edge, so nodes further down the screen draw on top. Nodes
// whose position changed during a step are re-inserted before drawing.
//
// # Obstruction
//
// A node with obstruction enabled reports in which directions it covers the
// center lines of the display ([Node.Obstructed]). Maps use the OR of their
// followers' results to stop scrolling into obstacles.
//
// # Events
//
// Input arrives as [Event] values. A [Dispatcher] offers each event to its
// handlers, most recently registered first, until one returns [Consumed].
// A [Hook] runs before every active handler.
//
// # Pacing
//
// A [FrameLimiter] tunes a per-frame delay to keep the measured frame rate
// near its target. With frameskip enabled the surface skips rendering, but
// never simulation, while the frame rate is low.
//
// [Ebitengine]: https://ebitengine.org
package tilewalk
