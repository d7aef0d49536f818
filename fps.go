package tilewalk

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fpsOverlay renders the last frame-rate measurement in the top-right corner
// of the display. The label image is rebuilt only when a new measurement
// arrives.
type fpsOverlay struct {
	font  Font
	label string
	img   *ebiten.Image
}

func (o *fpsOverlay) set(fps int) {
	label := fmt.Sprintf("%d FPS", fps)
	if label == o.label && o.img != nil {
		return
	}
	o.label = label
	if o.img != nil {
		o.img.Deallocate()
		o.img = nil
	}
	if o.font == nil {
		// debug font glyphs are 6x16
		o.img = ebiten.NewImage(6*len(label), 16)
		ebitenutil.DebugPrint(o.img, label)
		return
	}
	w, h := o.font.MeasureString(label)
	o.img = ebiten.NewImage(int(w)+1, int(h)+1)
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(ColorBlack)
	text.Draw(o.img, label, o.font.Face(), op)
}

// FPSLabel returns the text of the FPS overlay.
func (s *Surface) FPSLabel() string {
	if s.fps == nil {
		return ""
	}
	return s.fps.label
}

func (o *fpsOverlay) draw(dst *ebiten.Image, displayWidth int) {
	if o.img == nil {
		o.set(HardFPSLimit)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(displayWidth-o.img.Bounds().Dx()-fpsMarginRight), fpsMarginTop)
	dst.DrawImage(o.img, op)
}
