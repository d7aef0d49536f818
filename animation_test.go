package tilewalk

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// --- Cadence ---

func TestCadenceAdvancesEveryAnimWait(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n, err := s.NewSpriteDirs(map[Direction][]string{DirS: {"8x8-a.png", "8x8-b.png", "8x8-c.png"}})
	if err != nil {
		t.Fatal(err)
	}
	n.SetAnimWait(3)
	n.SetAnimate(true)

	var got []int
	for range 9 {
		n.Step()
		got = append(got, n.FrameIndex())
	}
	want := []int{1, 1, 1, 2, 2, 2, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
}

func TestCadenceRestsOnFirstFrame(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n, _ := s.NewSpriteDirs(map[Direction][]string{DirS: {"8x8-a.png", "8x8-b.png"}})
	n.SetAnimWait(1)
	n.SetAnimate(true)
	n.Step()
	if n.FrameIndex() != 1 {
		t.Fatalf("FrameIndex = %d, want 1", n.FrameIndex())
	}
	n.SetAnimate(false)
	n.Step()
	if n.FrameIndex() != 0 {
		t.Errorf("FrameIndex = %d, want 0 when not animating", n.FrameIndex())
	}
}

func TestSetAnimWaitFloor(t *testing.T) {
	n := freeNode("n")
	n.SetAnimWait(0)
	if n.AnimWait() != 1 {
		t.Errorf("AnimWait = %d, want 1", n.AnimWait())
	}
}

// --- Alpha ---

func TestFadeToReachesTarget(t *testing.T) {
	tests := []struct {
		from, to, speed int
	}{
		{255, 128, 5},
		{128, 255, 5},
		{0, 255, 7},
		{255, 0, 300},
		{10, 13, 2},
	}
	for _, tt := range tests {
		n := freeNode("n")
		n.SetAlpha(tt.from)
		n.FadeTo(tt.to, tt.speed)
		for i := 0; i < 300 && n.Alpha() != tt.to; i++ {
			n.stepAlpha()
			if a := n.Alpha(); a < 0 || a > 255 {
				t.Fatalf("alpha out of range: %d", a)
			}
		}
		if n.Alpha() != tt.to {
			t.Errorf("fade %d->%d at %d: alpha = %d", tt.from, tt.to, tt.speed, n.Alpha())
		}
		if n.AlphaSpeed() != 0 {
			t.Errorf("fade %d->%d: speed = %d after arrival, want 0", tt.from, tt.to, n.AlphaSpeed())
		}
	}
}

func TestFadeReversalMidway(t *testing.T) {
	n := freeNode("n")
	n.FadeTo(128, 5)
	for range 4 {
		n.stepAlpha()
	}
	if n.Alpha() != 235 {
		t.Fatalf("alpha = %d, want 235", n.Alpha())
	}
	n.FadeTo(255, 5)
	if n.AlphaSpeed() != 5 {
		t.Errorf("speed = %d, want +5 after reversing", n.AlphaSpeed())
	}
	for range 4 {
		n.stepAlpha()
	}
	if n.Alpha() != 255 {
		t.Errorf("alpha = %d, want 255", n.Alpha())
	}
}

func TestAlphaCycleStaysInRange(t *testing.T) {
	n := freeNode("n")
	n.SetAlpha(100)
	n.AlphaCycle(200, 50, 30)
	// turns before the step that would reach an end
	want := []int{130, 160, 190, 160, 130, 100, 70, 100}
	for i, w := range want {
		n.stepAlpha()
		if a := n.Alpha(); a != w {
			t.Fatalf("step %d: alpha = %d, want %d", i+1, a, w)
		}
	}
	for range 50 {
		n.stepAlpha()
		if a := n.Alpha(); a < 50 || a > 200 {
			t.Fatalf("alpha %d outside [50, 200]", a)
		}
	}
}

func TestFadeCancelsCycle(t *testing.T) {
	n := freeNode("n")
	n.AlphaCycle(0, 255, 10)
	n.FadeTo(0, 10)
	if n.AlphaCycling() {
		t.Error("FadeTo should cancel the alpha cycle")
	}
}

// --- Rotation ---

func TestRotateDirectional(t *testing.T) {
	tests := []struct {
		name        string
		from, to    int
		speed, want int
	}{
		{"clockwise", 0, 90, 10, 9},
		{"counter clockwise takes the long way", 0, 90, -10, 27},
		{"wraps past 360", 350, 20, 10, 3},
		{"snap within speed", 85, 90, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := freeNode("n")
			n.SetAngle(tt.from)
			n.Rotate(tt.to, tt.speed)
			steps := 0
			for n.Angle() != tt.to && steps < 100 {
				n.stepRotation()
				steps++
			}
			if steps != tt.want {
				t.Errorf("steps = %d, want %d", steps, tt.want)
			}
			if n.RotationSpeed() != 0 {
				t.Errorf("speed = %d after arrival, want 0", n.RotationSpeed())
			}
		})
	}
}

func TestRotationCycleWraps(t *testing.T) {
	n := freeNode("n")
	n.SetAngle(350)
	n.RotationCycle(15)
	n.stepRotation()
	if n.Angle() != 5 {
		t.Errorf("Angle = %d, want 5", n.Angle())
	}
	n.Rotate(90, 5)
	if n.RotationCycling() {
		t.Error("Rotate should cancel the cycle")
	}
}

func TestSetAngleNormalizes(t *testing.T) {
	n := freeNode("n")
	n.SetAngle(-30)
	if n.Angle() != 330 {
		t.Errorf("Angle = %d, want 330", n.Angle())
	}
}

func TestStopAll(t *testing.T) {
	n := freeNode("n")
	n.MoveTo(10, 10, 1)
	n.FadeTo(0, 1)
	n.RotationCycle(3)
	n.StopAll()
	n.Step()
	if n.X() != 0 || n.Alpha() != 255 || n.Angle() != 0 {
		t.Errorf("after StopAll: x=%d alpha=%d angle=%d", n.X(), n.Alpha(), n.Angle())
	}
}

// --- Tweens ---

func TestTweenPosition(t *testing.T) {
	n := freeNode("n")
	g := TweenPosition(n, 100, -50, 10, ease.Linear)
	for range 10 {
		g.Update()
	}
	if !g.Done {
		t.Fatal("tween not done after its duration")
	}
	if n.X() != 100 || n.Y() != -50 {
		t.Errorf("position = (%d, %d), want (100, -50)", n.X(), n.Y())
	}
}

func TestSurfaceDropsFinishedTweens(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n := mustSprite(t, s, "16x16.png")
	s.AddTween(TweenAlpha(n, 0, 2, EaseByName("outQuad")))
	s.Update()
	s.Update()
	if n.Alpha() != 0 {
		t.Errorf("alpha = %d, want 0", n.Alpha())
	}
	if len(s.tweens) != 0 {
		t.Errorf("tweens = %d, want 0", len(s.tweens))
	}
}

func TestEaseByNameFallback(t *testing.T) {
	if EaseByName("nope") == nil {
		t.Error("unknown ease should fall back to linear")
	}
}
