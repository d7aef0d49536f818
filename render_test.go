package tilewalk

import (
	"math/rand/v2"
	"testing"
)

// --- Sort key ---

func TestSortKeyLess(t *testing.T) {
	tests := []struct {
		name string
		a, b sortKey
		want bool
	}{
		{"unframed first", sortKey{false, 9, 900}, sortKey{true, 0, 0}, true},
		{"framed after unframed", sortKey{true, 0, 0}, sortKey{false, 9, 900}, false},
		{"lower layer first", sortKey{true, 1, 500}, sortKey{true, 2, 0}, true},
		{"higher bottom edge later", sortKey{true, 1, 10}, sortKey{true, 1, 20}, true},
		{"equal keys", sortKey{true, 1, 10}, sortKey{true, 1, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.less(tt.b); got != tt.want {
				t.Errorf("less = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestOrderedNodesInsertAfterEqualKeys(t *testing.T) {
	var o orderedNodes
	a := freeNode("a")
	b := freeNode("b")
	c := freeNode("c")
	o.insert(a)
	o.insert(b)
	o.insert(c)
	for i, want := range []*Node{a, b, c} {
		if o.at(i) != want {
			t.Errorf("at(%d) = %s, want %s", i, o.at(i).Name, want.Name)
		}
	}
	if !o.remove(b) || o.len() != 2 {
		t.Fatalf("remove b: len = %d", o.len())
	}
	if o.remove(b) {
		t.Error("second remove should report false")
	}
}

// --- Surface ordering ---

func TestSurfaceOrdersByBottomEdge(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	tall := mustSprite(t, s, "16x64.png")
	short := mustSprite(t, s, "16x16.png")
	tall.SetPosition(0, 0)   // bottom 64
	short.SetPosition(0, 10) // bottom 26
	s.Update()

	nodes := s.Nodes()
	if nodes[0] != short || nodes[1] != tall {
		t.Errorf("order = [%s %s], want short before tall", nodes[0].Name, nodes[1].Name)
	}

	short.SetY(100) // bottom 116
	s.Update()
	nodes = s.Nodes()
	if nodes[0] != tall || nodes[1] != short {
		t.Errorf("order after move = [%s %s], want tall before short", nodes[0].Name, nodes[1].Name)
	}
}

func TestSurfaceOrdersByLayer(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	front := s.NewLayer(2)
	back := s.NewLayer(1)
	a := mustSprite(t, s, "8x8.png")
	b := mustSprite(t, s, "8x8.png")
	a.SetLayerID(front.LayerID())
	b.SetLayerID(back.LayerID())
	a.SetY(0)
	b.SetY(200)
	s.Update()
	nodes := s.Nodes()
	if nodes[0] != b || nodes[1] != a {
		t.Errorf("lower layer should draw first regardless of y")
	}
}

func TestSurfaceOrderInvariantUnderRandomMoves(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	rng := rand.New(rand.NewPCG(1, 2))
	var nodes []*Node
	for i := range 40 {
		path := "8x8.png"
		if i%3 == 0 {
			path = "8x24.png"
		}
		n := mustSprite(t, s, path)
		n.SetLayerID(rng.IntN(3))
		nodes = append(nodes, n)
	}
	for frame := range 60 {
		for _, n := range nodes {
			if rng.IntN(4) == 0 {
				n.MoveTo(rng.IntN(320), rng.IntN(240), 1+rng.IntN(8))
			}
			if rng.IntN(20) == 0 {
				n.SetLayerID(rng.IntN(3))
			}
		}
		s.Update()
		if !s.Ordered() {
			t.Fatalf("frame %d: render order violated", frame)
		}
		for i := 0; i < s.nodes.len(); i++ {
			if s.nodes.items[i].key != keyOf(s.nodes.at(i)) {
				t.Fatalf("frame %d: stale key for %s", frame, s.nodes.at(i).Name)
			}
		}
	}
	if got := len(s.Nodes()); got != 40 {
		t.Errorf("nodes = %d, want 40", got)
	}
}

func TestMapSortsBeforeSprites(t *testing.T) {
	s := newTestSurface(t, 64, 64)
	sprite := mustSprite(t, s, "8x8.png")
	sprite.SetY(-100)
	sprite.SetLayerID(-5)
	m, err := s.NewMap("32x32.png", 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	s.Update()
	if s.Nodes()[0] != m {
		t.Errorf("map should be first in render order")
	}
}

// --- Frameskip ---

func TestUpdateRendersWithoutFrameskip(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	s.limiter.fps = 1
	s.Update()
	if !s.Rendering() {
		t.Error("without frameskip every frame renders")
	}
}

func TestFrameskipCounter(t *testing.T) {
	s, err := NewSurface(SurfaceOptions{Frameskip: true, FPSLimit: 60, Clock: newManualClock(), Loader: sizedLoader})
	if err != nil {
		t.Fatal(err)
	}

	s.limiter.fps = 20
	for range 3 {
		s.Update()
		if s.Rendering() {
			t.Fatal("slow frames should be skipped")
		}
	}
	if s.Frameskip() != 3 {
		t.Fatalf("Frameskip = %d, want 3", s.Frameskip())
	}

	s.limiter.fps = 59
	s.Update()
	if !s.Rendering() || s.Frameskip() != 2 {
		t.Errorf("fast frame: rendering=%t skip=%d, want true 2", s.Rendering(), s.Frameskip())
	}
	for range 5 {
		s.Update()
	}
	if s.Frameskip() != 0 {
		t.Errorf("Frameskip = %d, want clamp at 0", s.Frameskip())
	}

	s.limiter.fps = 20
	s.frameskip = MaxFrameskip
	s.Update()
	if !s.Rendering() {
		t.Error("a full skip budget forces a render")
	}
	s.ResetFrameskip()
	if s.Frameskip() != 0 {
		t.Error("ResetFrameskip did not clear the counter")
	}
}

func TestFrameskipLimitAboveHardLimit(t *testing.T) {
	s, err := NewSurface(SurfaceOptions{Frameskip: true, FPSLimit: 120, Clock: newManualClock(), Loader: sizedLoader})
	if err != nil {
		t.Fatal(err)
	}
	if s.Limiter().Limit() != HardFPSLimit {
		t.Errorf("Limit = %d, want %d", s.Limiter().Limit(), HardFPSLimit)
	}
	for i := range 3 {
		s.Update()
		if !s.Rendering() {
			t.Fatalf("update %d skipped at full speed", i+1)
		}
	}
	if s.Frameskip() != 0 {
		t.Errorf("Frameskip = %d, want 0", s.Frameskip())
	}
}

func TestUpdateRefreshesFPSLabel(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	s.Update()
	if got := s.FPSLabel(); got != "80 FPS" {
		t.Errorf("FPSLabel = %q, want %q", got, "80 FPS")
	}
}
