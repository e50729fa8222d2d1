package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/export"
	"github.com/msalah0e/canopy/internal/scene"
	"github.com/msalah0e/canopy/internal/ui"
)

func viewCmd() *cobra.Command {
	var focusID string

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Render a graph file and open it in the default viewer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			payload, _, err := loadPayload(args[0])
			if err != nil {
				ui.Bad.Printf("  Failed to load graph: %v\n", err)
				os.Exit(1)
			}
			if len(payload.Nodes) == 0 {
				fmt.Println("  Empty graph — nothing to view")
				return
			}

			sc := scene.New(*cfg, cfg.Export.Width, cfg.Export.Height)
			sc.Load(payload)
			sc.Settle()
			if focusID != "" {
				sc.Camera().CenterOnNode(focusID)
				sc.Settle()
			}

			svg, err := export.Generate(sc, "svg", export.Options{
				Width:  cfg.Export.Width,
				Height: cfg.Export.Height,
			})
			if err != nil {
				ui.Bad.Printf("  Render failed: %v\n", err)
				os.Exit(1)
			}

			path := filepath.Join(os.TempDir(), "canopy-graph.svg")
			if err := os.WriteFile(path, svg, 0o644); err != nil {
				ui.Bad.Printf("  Failed to write SVG: %v\n", err)
				os.Exit(1)
			}

			var openCmd *exec.Cmd
			switch runtime.GOOS {
			case "darwin":
				openCmd = exec.Command("open", path)
			case "linux":
				openCmd = exec.Command("xdg-open", path)
			default:
				openCmd = exec.Command("cmd", "/c", "start", path)
			}
			if err := openCmd.Start(); err != nil {
				fmt.Printf("  SVG written to: %s\n", path)
				fmt.Println("  Open it in your browser to see the graph")
				return
			}

			ui.Good.Printf("  %s Opened graph (%d nodes, %d edges)\n",
				ui.StatusIcon(true), len(sc.Set().Nodes), len(sc.Set().Edges))
			ui.Subtle.Printf("  %s\n", path)
		},
	}

	cmd.Flags().StringVar(&focusID, "focus", "", "Node id to center the camera on")
	return cmd
}
