package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/tilewalk/savegame"
)

// SavesOptions holds flags for the saves commands.
type SavesOptions struct {
	DB string
}

// NewSavesCommand creates the saves command group.
func NewSavesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SavesOptions{}

	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Inspect the save catalog",
		Long: `List and delete entries of the save catalog written by "run".

Deleting an entry leaves its save file on disk.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "saves.db", "save catalog database")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List saved slots, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavesList(cmd, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a slot from the catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavesDelete(cmd, opts, args[0])
		},
	})

	return cmd
}

func openCatalog(path string) (*savegame.Catalog, error) {
	c, err := savegame.OpenCatalog(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open save catalog", err)
	}
	return c, nil
}

func runSavesList(cmd *cobra.Command, opts *SavesOptions) error {
	c, err := openCatalog(opts.DB)
	if err != nil {
		return err
	}
	defer c.Close()

	slots, err := c.List(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list slots", err)
	}
	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "no saves")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tNODES\tPATH")
	for _, s := range slots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Created.Local().Format(time.DateTime), s.Nodes, s.Path)
	}
	return w.Flush()
}

func runSavesDelete(cmd *cobra.Command, opts *SavesOptions, id string) error {
	c, err := openCatalog(opts.DB)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, savegame.ErrNoSlot) {
			return WrapExitError(ExitCommandError, "no such slot", err)
		}
		return WrapExitError(ExitFailure, "failed to delete slot", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	return nil
}
