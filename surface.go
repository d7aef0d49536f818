package tilewalk

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"maps"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ImageLoader loads frame images by path.
type ImageLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(path string) (*ebiten.Image, error)

// LoadImage calls f(path).
func (f ImageLoaderFunc) LoadImage(path string) (*ebiten.Image, error) { return f(path) }

// FileLoader loads images from the file system with ebitenutil. Any failure
// is reported as ErrNotFound.
var FileLoader ImageLoader = ImageLoaderFunc(func(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("image %s: %w: %w", path, ErrNotFound, err)
	}
	return img, nil
})

// SurfaceOptions configures a new Surface. Zero values select defaults.
type SurfaceOptions struct {
	// Display size in pixels before zoom. Defaults to 320x240.
	Width, Height int
	// Zoom is the integer scale applied when compositing to the window.
	Zoom int
	// Frameskip enables skipping renders while the frame rate is low.
	Frameskip bool
	// FPSLimit is the pacing target. Defaults to HardFPSLimit.
	FPSLimit int
	// Clock drives the frame limiter. Defaults to SystemClock.
	Clock Clock
	// Font is used for node text and the FPS overlay. Defaults to Go Regular
	// at FontSize.
	Font     Font
	FontSize float64
	// LineSkip overrides the font's line height for node text when non-zero.
	LineSkip int
	// ActivateKey names the key that triggers activate events on maps.
	// Defaults to "Space".
	ActivateKey string
	// HideFPS disables the FPS overlay.
	HideFPS bool
	// Loader loads frame images. Defaults to FileLoader.
	Loader ImageLoader
}

// Surface owns every node of a scene, keeps them in render order and paces
// frames. All methods must be called from the game goroutine.
type Surface struct {
	width, height    int
	zoom             int
	screenW, screenH int

	font        Font
	lineSkip    int
	activateKey ebiten.Key

	loader ImageLoader
	images map[string]*ebiten.Image

	nodes  orderedNodes
	layers []*Node
	maps   []*Node
	tweens []*TweenGroup

	nextID      uint32
	nextLayerID int

	dispatcher *Dispatcher
	limiter    *FrameLimiter

	doFrameskip bool
	frameskip   int
	render      bool
	newFPS      bool

	canvas *ebiten.Image
	tint   color.NRGBA
	fps    *fpsOverlay

	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewSurface creates a surface with an empty scene.
func NewSurface(opts SurfaceOptions) (*Surface, error) {
	if opts.Width <= 0 {
		opts.Width = 320
	}
	if opts.Height <= 0 {
		opts.Height = 240
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	if opts.FPSLimit == 0 {
		opts.FPSLimit = HardFPSLimit
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.ActivateKey == "" {
		opts.ActivateKey = "Space"
	}
	activate, err := ParseKey(opts.ActivateKey)
	if err != nil {
		return nil, err
	}
	if opts.Loader == nil {
		opts.Loader = FileLoader
	}
	limiter, err := NewFrameLimiter(opts.FPSLimit, opts.Clock)
	if err != nil {
		return nil, err
	}
	if opts.Font == nil {
		f, err := LoadTTFFile("", opts.FontSize)
		if err != nil {
			return nil, err
		}
		opts.Font = f
	}

	s := &Surface{
		width:         opts.Width,
		height:        opts.Height,
		zoom:          opts.Zoom,
		font:          opts.Font,
		lineSkip:      opts.LineSkip,
		activateKey:   activate,
		loader:        opts.Loader,
		images:        make(map[string]*ebiten.Image),
		dispatcher:    NewDispatcher(),
		limiter:       limiter,
		doFrameskip:   opts.Frameskip,
		canvas:        ebiten.NewImage(opts.Width, opts.Height),
		ScreenshotDir: "screenshots",
	}
	if !opts.HideFPS {
		s.fps = &fpsOverlay{font: opts.Font}
	}
	return s, nil
}

// Size returns the display size in pixels.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// SetScreenSize records the window size Draw composites into.
func (s *Surface) SetScreenSize(w, h int) { s.screenW, s.screenH = w, h }

// ScreenToDisplay converts window coordinates to display coordinates,
// removing the letterbox offset and the zoom.
func (s *Surface) ScreenToDisplay(x, y int) (int, int) {
	sw, sh := s.screenW, s.screenH
	if sw == 0 || sh == 0 {
		sw, sh = s.width*s.zoom, s.height*s.zoom
	}
	return (x - (sw-s.width*s.zoom)/2) / s.zoom, (y - (sh-s.height*s.zoom)/2) / s.zoom
}

// Zoom returns the compositing scale.
func (s *Surface) Zoom() int { return s.zoom }

// Dispatcher returns the event chain that nodes register with.
func (s *Surface) Dispatcher() *Dispatcher { return s.dispatcher }

// Limiter returns the frame limiter.
func (s *Surface) Limiter() *FrameLimiter { return s.limiter }

// Font returns the default font.
func (s *Surface) Font() Font { return s.font }

func (s *Surface) nextNodeID() uint32 {
	s.nextID++
	return s.nextID
}

// LoadImage loads path through the surface's loader, caching the result.
func (s *Surface) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := s.images[path]; ok {
		return img, nil
	}
	img, err := s.loader.LoadImage(path)
	if err != nil {
		return nil, err
	}
	s.images[path] = img
	return img, nil
}

// --- Node creation ---

func (s *Surface) push(n *Node) {
	s.nodes.insert(n)
	if globalDebug {
		s.debugCheckNodeCount()
	}
}

// newVisual creates a node of role and loads the frames of every direction in
// ascending direction order, so the highest direction ends up current.
func (s *Surface) newVisual(name string, role Role, files map[Direction][]string) (*Node, error) {
	n := newNode(s, name, role)
	for _, dir := range slices.Sorted(maps.Keys(files)) {
		if err := s.pushFiles(n, dir, files[dir]); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (s *Surface) pushFiles(n *Node, dir Direction, files []string) error {
	for _, f := range files {
		img, err := s.LoadImage(f)
		if err != nil {
			return err
		}
		n.PushFrame(dir, f, img)
	}
	return nil
}

// LoadFrames appends frames loaded from files to dir of n.
func (s *Surface) LoadFrames(n *Node, dir Direction, files ...string) error {
	return s.pushFiles(n, dir, files)
}

// NewSprite creates an inactive visual node from a single image.
func (s *Surface) NewSprite(path string) (*Node, error) {
	n, err := s.newVisual(path, RolePlain, map[Direction][]string{DirNone: {path}})
	if err != nil {
		return nil, err
	}
	s.push(n)
	return n, nil
}

// NewSpriteDirs creates an inactive visual node with per-direction frames. The
// last direction loaded becomes the current one.
func (s *Surface) NewSpriteDirs(files map[Direction][]string) (*Node, error) {
	n, err := s.newVisual("sprite", RolePlain, files)
	if err != nil {
		return nil, err
	}
	s.push(n)
	return n, nil
}

// NewDraggable creates a visual node that can be moved with the left button.
func (s *Surface) NewDraggable(path string) (*Node, error) {
	return s.newDraggable(path, map[Direction][]string{DirNone: {path}})
}

// NewDraggableDirs is NewDraggable with per-direction frames.
func (s *Surface) NewDraggableDirs(files map[Direction][]string) (*Node, error) {
	return s.newDraggable("draggable", files)
}

func (s *Surface) newDraggable(name string, files map[Direction][]string) (*Node, error) {
	n, err := s.newVisual(name, RoleDraggable, files)
	if err != nil {
		return nil, err
	}
	n.active = true
	s.push(n)
	s.dispatcher.Register(n)
	return n, nil
}

// NewPlayer creates the screen-centred player. It takes the layer id of layer
// when one is given and becomes the current player of every map.
func (s *Surface) NewPlayer(files map[Direction][]string, layer *Node) (*Node, error) {
	n := newNode(s, "player", RolePlayer)
	n.player = &playerState{lastDir: DirS}
	n.active = true
	for _, dir := range [...]Direction{DirN, DirS, DirW, DirE} {
		if err := s.pushFiles(n, dir, files[dir]); err != nil {
			return nil, err
		}
	}
	if layer != nil {
		n.layerID = layer.layerID
	}
	s.push(n)
	s.dispatcher.Register(n)
	for _, m := range s.maps {
		m.SetPlayer(n)
	}
	return n, nil
}

// NewLayer creates a grouping node. A zero id selects the next free one. The
// id doubles as the layer id of the layer's members.
func (s *Surface) NewLayer(id int) *Node {
	if id == 0 {
		s.nextLayerID++
		id = s.nextLayerID
	} else if id > s.nextLayerID {
		s.nextLayerID = id
	}
	n := newNode(s, fmt.Sprintf("layer-%d", id), RoleLayer)
	n.layerID = id
	n.checkBounds = false
	s.layers = append(s.layers, n)
	return n
}

// NewMap creates a scrolling map tiling the image at path tilesW by tilesH
// times. The most recent player, if any, becomes the map's player.
func (s *Surface) NewMap(path string, tilesW, tilesH int) (*Node, error) {
	img, err := s.LoadImage(path)
	if err != nil {
		return nil, err
	}
	n, err := newMapNode(s, path, img, tilesW, tilesH)
	if err != nil {
		return nil, err
	}
	if p := s.lastPlayer(); p != nil {
		n.SetPlayer(p)
	}
	s.maps = append(s.maps, n)
	s.push(n)
	s.dispatcher.Register(n)
	return n, nil
}

// NewCursor creates a node that tracks the pointer above everything else.
func (s *Surface) NewCursor(path string) (*Node, error) {
	n, err := s.newVisual(path, RoleCursor, map[Direction][]string{DirNone: {path}})
	if err != nil {
		return nil, err
	}
	n.active = true
	n.layerID = CursorLayer
	n.checkBounds = false
	s.push(n)
	s.dispatcher.Register(n)
	return n, nil
}

func (s *Surface) lastPlayer() *Node {
	var p *Node
	for i := range s.nodes.items {
		n := s.nodes.items[i].node
		if n.Role == RolePlayer && (p == nil || n.ID > p.ID) {
			p = n
		}
	}
	return p
}

// Nodes returns the visual nodes in render order.
func (s *Surface) Nodes() []*Node {
	out := make([]*Node, s.nodes.len())
	for i := range out {
		out[i] = s.nodes.at(i)
	}
	return out
}

// Layers returns the layers in creation order. The slice must not be mutated.
func (s *Surface) Layers() []*Node { return s.layers }

// Maps returns the maps in creation order. The slice must not be mutated.
func (s *Surface) Maps() []*Node { return s.maps }

// FindNode returns the node with the given id.
func (s *Surface) FindNode(id uint32) (*Node, bool) {
	for i := range s.nodes.items {
		if n := s.nodes.items[i].node; n.ID == id {
			return n, true
		}
	}
	for _, l := range s.layers {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Ordered reports whether the render order invariant holds.
func (s *Surface) Ordered() bool { return s.nodes.sorted() }

// AddTween registers a tween group that is advanced once per Update until done.
func (s *Surface) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// --- Frame ---

// Update runs one simulation step: tweens, layers, every node in render order,
// then re-sorts the nodes whose position or layer changed and decides whether
// the next Draw renders.
func (s *Surface) Update() {
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	s.newFPS = s.limiter.NewFPS()

	s.stepTweens()
	for _, l := range s.layers {
		l.Step()
	}
	var moved []*Node
	for i := range s.nodes.items {
		n := s.nodes.items[i].node
		n.Step()
	}
	for i := range s.nodes.items {
		if n := s.nodes.items[i].node; n.CoordsUpdated() {
			moved = append(moved, n)
		}
	}

	if globalDebug {
		stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}
	s.nodes.resort(moved)
	if globalDebug {
		stats.resortTime = time.Since(t0)
		stats.resorted = len(moved)
	}

	fps := s.limiter.FPS()
	if !s.doFrameskip || s.frameskip >= MaxFrameskip ||
		float64(fps) >= FPSToleranceFactor*float64(s.limiter.Limit()) {
		s.render = true
		if s.doFrameskip && s.frameskip > 0 {
			s.frameskip--
		}
	} else {
		s.render = false
		if s.doFrameskip {
			s.frameskip++
		}
	}
	if s.fps != nil && s.newFPS {
		s.fps.set(fps)
	}

	if globalDebug {
		stats.rendered = s.render
		s.debugLog(stats)
	}
}

func (s *Surface) stepTweens() {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update()
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// Rendering reports whether the last Update decided to render.
func (s *Surface) Rendering() bool { return s.render }

// Frameskip returns the number of consecutively skipped renders still owed.
func (s *Surface) Frameskip() int { return s.frameskip }

// ResetFrameskip clears the skip counter, e.g. after a pause.
func (s *Surface) ResetFrameskip() { s.frameskip = 0 }

// Tint sets a colour overlay drawn above every node. An alpha of 0 disables it.
func (s *Surface) Tint(r, g, b, a uint8) {
	s.tint = color.NRGBA{R: r, G: g, B: b, A: a}
}

// TintColor returns the current overlay colour.
func (s *Surface) TintColor() color.NRGBA { return s.tint }

// Draw composites the scene onto dst, centred and scaled by the zoom factor.
// When the last Update decided to render, the nodes, FPS overlay and tint are
// redrawn first and the frame limiter paces the loop afterwards; otherwise the
// previous composite is reused.
func (s *Surface) Draw(dst *ebiten.Image) {
	if s.render {
		s.canvas.Clear()
		for i := range s.nodes.items {
			drawNode(s.canvas, s.nodes.items[i].node)
		}
		if s.fps != nil {
			s.fps.draw(s.canvas, s.width)
		}
		if s.tint.A > 0 {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(s.width), float64(s.height))
			op.ColorScale.ScaleWithColor(s.tint)
			s.canvas.DrawImage(WhitePixel, op)
		}
	}

	b := dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(s.zoom), float64(s.zoom))
	op.GeoM.Translate(
		float64((b.Dx()-s.width*s.zoom)/2),
		float64((b.Dy()-s.height*s.zoom)/2),
	)
	dst.DrawImage(s.canvas, op)
	s.flushScreenshots()

	if s.render {
		s.render = false
		s.limiter.SleepTillNext()
	}
}
