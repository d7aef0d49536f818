package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/tilewalk"
	"github.com/phanxgames/tilewalk/config"
	"github.com/phanxgames/tilewalk/ecs"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Sheet      string
	SheetPages []string
	Nodes      bool

	loader tilewalk.ImageLoader
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [script]",
		Short: "Run a startup script without opening a window",
		Long: `Build the scene of a startup script offscreen, with sound disabled,
and report what it created. Useful for catching script errors in CI.

A missing engine.cfg is not created; defaults are used instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runCheck(rootOpts, opts, path, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "TexturePacker JSON sprite sheet")
	cmd.Flags().StringArrayVar(&opts.SheetPages, "sheet-page", nil, "page image of --sheet (repeatable, in page order)")
	cmd.Flags().BoolVar(&opts.Nodes, "nodes", false, "list every node after the summary")

	return cmd
}

func runCheck(rootOpts *RootOptions, opts *CheckOptions, path string, out, errOut io.Writer) error {
	log := newLogger(errOut, rootOpts.Verbose)

	var cfg *config.Config
	var err error
	if config.Exists(rootOpts.Config) {
		cfg, err = config.Load(rootOpts.Config)
	} else {
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	sc, err := buildScene(cfg, sceneOptions{
		Script:     path,
		Sheet:      opts.Sheet,
		SheetPages: opts.SheetPages,
		Mute:       true,
		loader:     opts.loader,
	}, log)
	if err != nil {
		fmt.Fprintf(out, "✗ %v\n", err)
		return err
	}
	fmt.Fprintf(out, "✓ %s\n", sc.summary())

	if opts.Nodes {
		printNodes(out, sc.surface)
	}
	return nil
}

// printNodes lists nodes by id through a donburi mirror of the scene.
func printNodes(out io.Writer, s *tilewalk.Surface) {
	mirror := ecs.NewMirror(donburi.NewWorld(), s)
	mirror.Sync()

	var rows []ecs.NodeData
	mirror.Each(func(d ecs.NodeData) { rows = append(rows, d) })
	slices.SortFunc(rows, func(a, b ecs.NodeData) int { return cmp.Compare(a.ID, b.ID) })

	fmt.Fprintf(out, "%-5s %-10s %-6s %6s %6s %5s %5s  %s\n", "ID", "ROLE", "LAYER", "X", "Y", "ALPHA", "ACT", "NAME")
	for _, d := range rows {
		fmt.Fprintf(out, "%-5d %-10s %-6d %6d %6d %5d %5t  %s\n",
			d.ID, d.Role, d.LayerID, d.X, d.Y, d.Alpha, d.Active, d.Name)
	}
}
