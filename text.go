package tilewalk

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and rendering.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	Face() text.Face
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("tilewalk: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// LoadTTFFile loads a TrueType font file. An empty path selects the built-in
// Go Regular face. A missing file yields ErrNotFound.
func LoadTTFFile(path string, size float64) (*TTFFont, error) {
	if path == "" {
		return LoadTTFFont(goregular.TTF, size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, ErrNotFound)
	}
	return LoadTTFFont(data, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face for direct text/v2 rendering.
func (f *TTFFont) Face() text.Face {
	return f.face
}

// --- Node text overlay ---

// textOverlay is the multi-line caption drawn on top of a node's frame. Line
// images are rebuilt lazily on draw when stale.
type textOverlay struct {
	lines      []textLine
	font       Font
	color      color.Color
	offX, offY int
	lineSkip   int
	stale      bool
}

type textLine struct {
	s   string
	img *ebiten.Image
}

func (n *Node) overlay() *textOverlay {
	if n.text == nil {
		n.text = &textOverlay{color: ColorBlack, stale: true}
		if n.surface != nil {
			n.text.font = n.surface.font
			n.text.lineSkip = n.surface.lineSkip
		}
	}
	return n.text
}

// SetText replaces the caption, splitting it on newlines.
func (n *Node) SetText(s string) {
	t := n.overlay()
	t.setLines(strings.Split(s, "\n"))
}

// WrapText replaces the caption, greedily word-wrapping it to maxWidth pixels
// as measured with the node's font. Newlines in s force a break.
func (n *Node) WrapText(s string, maxWidth int) {
	t := n.overlay()
	if t.font == nil {
		t.setLines(strings.Split(s, "\n"))
		return
	}
	t.setLines(wrapLines(s, float64(maxWidth), func(line string) float64 {
		w, _ := t.font.MeasureString(line)
		return w
	}))
}

// TextLines returns the current caption lines.
func (n *Node) TextLines() []string {
	if n.text == nil {
		return nil
	}
	out := make([]string, len(n.text.lines))
	for i, l := range n.text.lines {
		out[i] = l.s
	}
	return out
}

// SetFont sets the caption font.
func (n *Node) SetFont(f Font) {
	t := n.overlay()
	t.font = f
	t.stale = true
}

// SetTextColor sets the caption colour.
func (n *Node) SetTextColor(c color.Color) {
	t := n.overlay()
	t.color = c
	t.stale = true
}

// TextColor returns the caption colour.
func (n *Node) TextColor() color.Color {
	if n.text == nil {
		return ColorBlack
	}
	return n.text.color
}

// SetTextOffset moves the caption relative to the node's display position.
func (n *Node) SetTextOffset(x, y int) {
	t := n.overlay()
	t.offX, t.offY = x, y
	t.stale = true
}

// TextOffset returns the caption offset.
func (n *Node) TextOffset() (int, int) {
	if n.text == nil {
		return 0, 0
	}
	return n.text.offX, n.text.offY
}

// TextStale reports whether line images will be rebuilt on the next draw.
func (n *Node) TextStale() bool {
	return n.text != nil && n.text.stale
}

func (t *textOverlay) setLines(lines []string) {
	for _, l := range t.lines {
		if l.img != nil {
			l.img.Deallocate()
		}
	}
	t.lines = t.lines[:0]
	for _, s := range lines {
		t.lines = append(t.lines, textLine{s: s})
	}
	t.stale = true
}

// rebuild renders every line whose image is missing, or all of them when stale.
func (t *textOverlay) rebuild() {
	if t.font == nil {
		return
	}
	for i := range t.lines {
		l := &t.lines[i]
		if l.img != nil && !t.stale {
			continue
		}
		if l.img != nil {
			l.img.Deallocate()
			l.img = nil
		}
		w, h := t.font.MeasureString(l.s)
		if w < 1 || h < 1 {
			continue
		}
		l.img = ebiten.NewImage(int(w)+1, int(h)+1)
		op := &text.DrawOptions{}
		op.ColorScale.ScaleWithColor(t.color)
		op.LineSpacing = t.font.LineHeight()
		text.Draw(l.img, l.s, t.font.Face(), op)
	}
	t.stale = false
}

// draw renders the caption with its top-left at (x, y).
func (t *textOverlay) draw(dst *ebiten.Image, x, y int) {
	if len(t.lines) == 0 {
		return
	}
	t.rebuild()
	skip := t.lineSkip
	if skip == 0 && t.font != nil {
		skip = int(t.font.LineHeight())
	}
	for i, l := range t.lines {
		if l.img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x+t.offX), float64(y+t.offY+i*skip))
		dst.DrawImage(l.img, op)
	}
}

// wrapLines splits s into lines no wider than maxWidth where possible. Words
// are appended greedily and the line is closed as soon as the next word would
// make it too wide. A word wider than maxWidth gets a line of its own.
func wrapLines(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
