package tilewalk

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sheet serves frames packed into one or more page images, as described by a
// TexturePacker JSON export. It implements ImageLoader with frame names as
// paths, so packed frames can be used wherever files are.
type Sheet struct {
	pages  []*ebiten.Image
	frames map[string]sheetFrame
}

type sheetFrame struct {
	page int
	rect image.Rectangle
}

// LoadSheet parses TexturePacker JSON and associates the page images. Both the
// hash format (one "frames" object) and the array format ("textures" with one
// frame list per page) are accepted. Rotated frames are rejected since nodes
// draw frames upright.
func LoadSheet(jsonData []byte, pages []*ebiten.Image) (*Sheet, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("tilewalk: parse sheet JSON: %w", err)
	}

	sh := &Sheet{pages: pages, frames: make(map[string]sheetFrame)}
	switch {
	case probe.Textures != nil:
		var textures []struct {
			Frames map[string]sheetJSONFrame `json:"frames"`
		}
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("tilewalk: parse sheet textures: %w", err)
		}
		for i, tex := range textures {
			if err := sh.add(tex.Frames, i); err != nil {
				return nil, err
			}
		}
	case probe.Frames != nil:
		var frames map[string]sheetJSONFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("tilewalk: parse sheet frames: %w", err)
		}
		if err := sh.add(frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(`tilewalk: sheet JSON has neither "frames" nor "textures"`)
	}
	return sh, nil
}

type sheetJSONFrame struct {
	Frame struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"frame"`
	Rotated bool `json:"rotated"`
}

func (sh *Sheet) add(frames map[string]sheetJSONFrame, page int) error {
	if page >= len(sh.pages) {
		return fmt.Errorf("tilewalk: sheet page %d has no image", page)
	}
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("tilewalk: sheet frame %q is rotated", name)
		}
		r := image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
		if !r.In(sh.pages[page].Bounds()) || r.Empty() {
			return fmt.Errorf("tilewalk: sheet frame %q %v outside page %d", name, r, page)
		}
		sh.frames[name] = sheetFrame{page: page, rect: r}
	}
	return nil
}

// Len returns the number of frames in the sheet.
func (sh *Sheet) Len() int { return len(sh.frames) }

// LoadImage returns the named frame as a sub-image of its page.
func (sh *Sheet) LoadImage(name string) (*ebiten.Image, error) {
	f, ok := sh.frames[name]
	if !ok {
		return nil, fmt.Errorf("sheet frame %s: %w", name, ErrNotFound)
	}
	return sh.pages[f.page].SubImage(f.rect).(*ebiten.Image), nil
}

// Loaders combines loaders: each path is tried against every loader in turn
// until one finds it. Errors other than ErrNotFound stop the search.
func Loaders(ls ...ImageLoader) ImageLoader {
	return ImageLoaderFunc(func(path string) (*ebiten.Image, error) {
		err := fmt.Errorf("image %s: %w", path, ErrNotFound)
		for _, l := range ls {
			img, lerr := l.LoadImage(path)
			if lerr == nil {
				return img, nil
			}
			if !errors.Is(lerr, ErrNotFound) {
				return nil, lerr
			}
			err = lerr
		}
		return nil, err
	})
}
