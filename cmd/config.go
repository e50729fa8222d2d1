package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			ui.Banner("configuration")

			rows := [][]string{
				{"physics.repulsion", fmt.Sprintf("%g", cfg.Physics.Repulsion)},
				{"physics.link_distance", fmt.Sprintf("%g", cfg.Physics.LinkDistance)},
				{"physics.damping", fmt.Sprintf("%g", cfg.Physics.Damping)},
				{"render.min_node_size", fmt.Sprintf("%g", cfg.Render.MinNodeSize)},
				{"render.max_node_size", fmt.Sprintf("%g", cfg.Render.MaxNodeSize)},
				{"render.background", cfg.Render.Background},
				{"camera.min_zoom", fmt.Sprintf("%g", cfg.Camera.MinZoom)},
				{"camera.max_zoom", fmt.Sprintf("%g", cfg.Camera.MaxZoom)},
				{"camera.fit_padding", fmt.Sprintf("%g", cfg.Camera.FitPadding)},
				{"export.width", fmt.Sprintf("%g", cfg.Export.Width)},
				{"export.height", fmt.Sprintf("%g", cfg.Export.Height)},
			}
			ui.Table([]string{"Key", "Value"}, rows)
			fmt.Println()
			ui.Subtle.Printf("  %s\n", filepath.Join(config.ConfigDir(), "config.toml"))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file if none exists",
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.EnsureExists(); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Config ready at %s\n",
				ui.StatusIcon(true), filepath.Join(config.ConfigDir(), "config.toml"))
		},
	})
	return cmd
}
