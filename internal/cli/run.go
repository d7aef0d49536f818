package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/tilewalk"
	"github.com/phanxgames/tilewalk/config"
	"github.com/phanxgames/tilewalk/ecs"
	"github.com/phanxgames/tilewalk/savegame"
	"github.com/phanxgames/tilewalk/script"
)

// quickSlot names the catalog entry written on quit and read by --continue.
const quickSlot = "quick"

// RunOptions holds flags for the run command.
type RunOptions struct {
	Replay      string
	Sheet       string
	SheetPages  []string
	DB          string
	Continue    bool
	TraceEvents bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Open a window and run a startup script",
		Long: `Build the scene described by a YAML startup script and run it.

The script defaults to the "script" key of engine.cfg. Releasing Escape
quits; the scene is saved to save_file on the way out and recorded in the
save catalog so that --continue can restore it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runRun(cmd.Context(), rootOpts, opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Replay, "replay", "", "YAML replay file injecting input")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "TexturePacker JSON sprite sheet")
	cmd.Flags().StringArrayVar(&opts.SheetPages, "sheet-page", nil, "page image of --sheet (repeatable, in page order)")
	cmd.Flags().StringVar(&opts.DB, "db", "saves.db", "save catalog database")
	cmd.Flags().BoolVar(&opts.Continue, "continue", false, "restore the latest quick save after the startup script")
	cmd.Flags().BoolVar(&opts.TraceEvents, "trace-events", false, "log every dispatched event at debug level")

	return cmd
}

func runRun(ctx context.Context, rootOpts *RootOptions, opts *RunOptions, path string, cmd *cobra.Command) error {
	log := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose || opts.TraceEvents)
	slog.SetDefault(log)

	cfg, err := config.Load(rootOpts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	sc, err := buildScene(cfg, sceneOptions{
		Script:     path,
		Sheet:      opts.Sheet,
		SheetPages: opts.SheetPages,
	}, log)
	if err != nil {
		return err
	}
	defer sc.sound.Close()
	if err := sc.sound.Start(); err != nil {
		log.Warn("sound disabled", "err", err)
	}

	catalog, err := savegame.OpenCatalog(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open save catalog", err)
	}
	defer catalog.Close()

	if opts.Continue {
		if err := restoreQuick(ctx, catalog, sc.surface, log); err != nil {
			return err
		}
	}

	rc := runConfig(cfg)
	if opts.Replay != "" {
		data, err := os.ReadFile(opts.Replay)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read replay", err)
		}
		if rc.Replay, err = tilewalk.LoadReplay(data); err != nil {
			return WrapExitError(ExitCommandError, "invalid replay", err)
		}
	}
	sc.bridge.Install(&rc)
	if opts.TraceEvents {
		traceEvents(&rc, sc.surface, log)
	}

	savePath := cfg.Value("save_file")
	rc.OnQuit = func() error {
		n, err := savegame.Save(savePath, sc.surface)
		if err != nil {
			return fmt.Errorf("save %s: %w", savePath, err)
		}
		slot, err := catalog.Add(ctx, quickSlot, savePath, n)
		if err != nil {
			return err
		}
		log.Info("saved", "path", savePath, "nodes", n, "slot", slot.ID)
		return nil
	}

	log.Info("starting", "scene", sc.summary())
	if err := tilewalk.Run(sc.surface, rc); err != nil {
		if errors.Is(err, script.ErrScript) {
			return WrapExitError(ExitFailure, "script error", err)
		}
		return WrapExitError(ExitFailure, "game loop failed", err)
	}
	return nil
}

func restoreQuick(ctx context.Context, catalog *savegame.Catalog, s *tilewalk.Surface, log *slog.Logger) error {
	slot, err := catalog.Latest(ctx, quickSlot)
	if errors.Is(err, savegame.ErrNoSlot) {
		log.Info("no quick save to continue from")
		return nil
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read save catalog", err)
	}
	if err := savegame.Load(slot.Path, s); err != nil {
		return WrapExitError(ExitFailure, "failed to restore "+slot.Path, err)
	}
	log.Info("restored", "slot", slot.ID, "path", slot.Path, "created", slot.Created)
	return nil
}

// traceEvents publishes every dispatched event into a donburi world and logs
// the queue once per frame.
func traceEvents(rc *tilewalk.RunConfig, s *tilewalk.Surface, log *slog.Logger) {
	world := donburi.NewWorld()
	s.Dispatcher().SetEventSink(ecs.NewDonburiSink(world))
	ecs.EventType.Subscribe(world, func(_ donburi.World, e ecs.DispatchedEvent) {
		log.Debug("event", "kind", e.Event.Kind, "var", e.Event.Var(), "consumed_by", e.ConsumedBy)
	})

	next := rc.OnFrame
	rc.OnFrame = func() error {
		ecs.EventType.ProcessEvents(world)
		if next != nil {
			return next()
		}
		return nil
	}
}
