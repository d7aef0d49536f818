package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/tilewalk"
	"github.com/phanxgames/tilewalk/audio"
	"github.com/phanxgames/tilewalk/config"
	"github.com/phanxgames/tilewalk/script"
)

// sceneOptions selects what a scene is built from.
type sceneOptions struct {
	Script     string   // startup script; empty means the config's script key
	Sheet      string   // optional TexturePacker JSON
	SheetPages []string // page images of Sheet, in order
	Mute       bool

	// loader replaces FileLoader, for tests.
	loader tilewalk.ImageLoader
}

// scene is a surface populated by a startup script.
type scene struct {
	surface  *tilewalk.Surface
	bridge   *script.Bridge
	sound    *audio.Player
	commands int
}

func surfaceOptions(cfg *config.Config) (tilewalk.SurfaceOptions, error) {
	opts := tilewalk.SurfaceOptions{
		Width:       cfg.Int("display_width"),
		Height:      cfg.Int("display_height"),
		Zoom:        cfg.Int("screen_zoom"),
		Frameskip:   cfg.Bool("frameskip"),
		FPSLimit:    cfg.Int("fps_limit"),
		FontSize:    float64(cfg.Int("font_size")),
		LineSkip:    cfg.Int("font_skip"),
		ActivateKey: cfg.Value("key_activate"),
	}
	if path := cfg.Value("font"); path != "" {
		f, err := tilewalk.LoadTTFFile(path, opts.FontSize)
		if err != nil {
			return opts, err
		}
		opts.Font = f
	}
	return opts, nil
}

func runConfig(cfg *config.Config) tilewalk.RunConfig {
	return tilewalk.RunConfig{
		Title:       cfg.Value("window_title"),
		Width:       cfg.Int("screen_width"),
		Height:      cfg.Int("screen_height"),
		Fullscreen:  cfg.Bool("fullscreen"),
		Undecorated: !cfg.Bool("frame"),
		Gamepad:     cfg.Int("joystick"),
	}
}

// imageLoader chains the sprite sheet, when given, in front of base.
func imageLoader(opts sceneOptions, base tilewalk.ImageLoader) (tilewalk.ImageLoader, error) {
	if opts.Sheet == "" {
		return base, nil
	}
	data, err := os.ReadFile(opts.Sheet)
	if err != nil {
		return nil, err
	}
	pages := make([]*ebiten.Image, 0, len(opts.SheetPages))
	for _, p := range opts.SheetPages {
		img, err := base.LoadImage(p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	sh, err := tilewalk.LoadSheet(data, pages)
	if err != nil {
		return nil, err
	}
	return tilewalk.Loaders(sh, base), nil
}

// buildScene creates the surface, audio and bridge and runs the startup
// script.
func buildScene(cfg *config.Config, opts sceneOptions, log *slog.Logger) (*scene, error) {
	so, err := surfaceOptions(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load font", err)
	}
	base := opts.loader
	if base == nil {
		base = tilewalk.FileLoader
	}
	if so.Loader, err = imageLoader(opts, base); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load sprite sheet", err)
	}
	s, err := tilewalk.NewSurface(so)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid display settings", err)
	}

	path := opts.Script
	if path == "" {
		path = cfg.Value("script")
	}
	startup, err := script.LoadStartup(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load startup script", err)
	}

	sound := audio.NewPlayer(cfg.Bool("sound") && !opts.Mute, log)
	bridge := script.NewBridge(s, sound, log)
	log.Info("running startup script", "path", path, "commands", len(startup.Commands))
	if err := startup.Run(bridge); err != nil {
		return nil, WrapExitError(ExitFailure, "startup script failed", err)
	}
	return &scene{surface: s, bridge: bridge, sound: sound, commands: len(startup.Commands)}, nil
}

func (sc *scene) summary() string {
	return fmt.Sprintf("%d commands, %d handles, %d nodes, %d layers",
		sc.commands, sc.bridge.Registry().Len(), len(sc.surface.Nodes()), len(sc.surface.Layers()))
}
