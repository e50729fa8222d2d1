package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/scene"
	"github.com/msalah0e/canopy/internal/state"
	"github.com/msalah0e/canopy/internal/ui"
)

func layoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Manage saved layouts",
	}
	cmd.AddCommand(layoutSaveCmd(), layoutListCmd(), layoutRemoveCmd())
	return cmd
}

// layoutSaveCmd settles a graph once and freezes every node, so later
// renders of the same graph reuse the arrangement instead of re-running
// the simulation.
func layoutSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <file>",
		Short: "Settle a graph and save its arrangement under a name",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			name, file := args[0], args[1]

			cfg := config.Load()
			payload, _, err := loadPayload(file)
			if err != nil {
				ui.Bad.Printf("  Failed to load graph: %v\n", err)
				os.Exit(1)
			}

			sc := scene.New(*cfg, cfg.Export.Width, cfg.Export.Height)
			sc.Load(payload)
			sc.Settle()
			for _, n := range sc.Set().Nodes {
				n.Pin()
			}

			if err := state.RecordLayout(name, sc.Set(), state.CameraPose{}); err != nil {
				ui.Bad.Printf("  Failed to save layout: %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Saved layout %s (%d nodes)\n",
				ui.StatusIcon(true), ui.Brand.Sprint(name), len(sc.Set().Nodes))
		},
	}
}

func layoutListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List saved layouts",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			layouts := state.List()
			if len(layouts) == 0 {
				fmt.Println("  No saved layouts")
				return
			}
			ui.Banner("saved layouts")
			var rows [][]string
			for name, l := range layouts {
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%d", len(l.Pins)),
					l.SavedAt.Format("2006-01-02 15:04"),
				})
			}
			ui.Table([]string{"Name", "Pinned", "Saved"}, rows)
		},
	}
}

func layoutRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Delete a saved layout",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := state.Remove(args[0]); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Removed layout %s\n", ui.StatusIcon(true), args[0])
		},
	}
}
