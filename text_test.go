package tilewalk

import (
	"errors"
	"image/color"
	"reflect"
	"strings"
	"testing"
)

// runeWidth measures every rune as 10 pixels.
func runeWidth(s string) float64 { return float64(len([]rune(s)) * 10) }

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "one two", 100, []string{"one two"}},
		{"breaks greedily", "one two three", 70, []string{"one two", "three"}},
		{"exact width fits", "ab cd", 50, []string{"ab cd"}},
		{"long word alone", "a enormously b", 30, []string{"a", "enormously", "b"}},
		{"forced newline", "one\ntwo", 500, []string{"one", "two"}},
		{"collapses spaces", "  a   b  ", 100, []string{"a b"}},
		{"empty", "", 100, []string{""}},
		{"blank line kept", "a\n\nb", 100, []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLines(tt.text, tt.width, runeWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapLines(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestSetTextSplitsLines(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n := mustSprite(t, s, "32x32.png")
	n.SetText("hello\nworld")
	if got := n.TextLines(); !reflect.DeepEqual(got, []string{"hello", "world"}) {
		t.Errorf("TextLines = %q", got)
	}
	if !n.TextStale() {
		t.Error("new text should be stale until drawn")
	}
}

func TestWrapTextUsesFont(t *testing.T) {
	s := newTestSurface(t, 320, 240)
	n := mustSprite(t, s, "32x32.png")
	n.WrapText("the quick brown fox jumps over the lazy dog", 60)
	lines := n.TextLines()
	if len(lines) < 2 {
		t.Fatalf("lines = %q, want wrapping at 60px", lines)
	}
	for _, l := range lines {
		if w, _ := s.Font().MeasureString(l); w > 60 && strings.Contains(l, " ") {
			t.Errorf("line %q is %vpx wide", l, w)
		}
	}
}

func TestTextDefaults(t *testing.T) {
	n := freeNode("n")
	if n.TextColor() != ColorBlack {
		t.Error("default text colour should be black")
	}
	if x, y := n.TextOffset(); x != 0 || y != 0 {
		t.Error("default text offset should be zero")
	}
	if n.TextLines() != nil {
		t.Error("a node without text has no lines")
	}

	n.SetTextColor(color.White)
	n.SetTextOffset(4, 2)
	if n.TextColor() != color.White {
		t.Error("text colour not set")
	}
	if x, y := n.TextOffset(); x != 4 || y != 2 {
		t.Errorf("TextOffset = (%d, %d), want (4, 2)", x, y)
	}
}

func TestLoadTTFFontInvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a font"), 12); err == nil {
		t.Error("expected an error for invalid font data")
	}
}

func TestLoadTTFFileMissing(t *testing.T) {
	if _, err := LoadTTFFile("no/such/font.ttf", 12); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDefaultFontMetrics(t *testing.T) {
	f, err := LoadTTFFile("", 12)
	if err != nil {
		t.Fatal(err)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v", f.LineHeight())
	}
	short, _ := f.MeasureString("ab")
	long, _ := f.MeasureString("abab")
	if long <= short {
		t.Errorf("width of abab (%v) should exceed ab (%v)", long, short)
	}
}
