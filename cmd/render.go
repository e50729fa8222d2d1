package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/cache"
	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/export"
	"github.com/msalah0e/canopy/internal/parallel"
	"github.com/msalah0e/canopy/internal/scene"
	"github.com/msalah0e/canopy/internal/state"
	"github.com/msalah0e/canopy/internal/ui"
)

var formatExt = map[string]string{
	"svg":   ".svg",
	"ascii": ".txt",
	"dot":   ".dot",
	"json":  ".json",
}

func renderCmd() *cobra.Command {
	var (
		formats    []string
		outDir     string
		selectID   string
		search     string
		focusID    string
		layoutName string
		width      float64
		height     float64
		noCache    bool
		jobs       int
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Lay out a graph file and write it in one or more formats",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			if width == 0 {
				width = cfg.Export.Width
			}
			if height == 0 {
				height = cfg.Export.Height
			}

			payload, raw, err := loadPayload(args[0])
			if err != nil {
				ui.Bad.Printf("  Failed to load graph: %v\n", err)
				os.Exit(1)
			}

			sc := scene.New(*cfg, width, height)
			sc.Load(payload)
			sc.SelectNode(selectID)
			sc.SetSearch(search)

			if layoutName != "" {
				if _, ok := state.ApplyLayout(layoutName, sc.Set()); !ok {
					ui.Bad.Printf("  No saved layout named %q\n", layoutName)
					os.Exit(1)
				}
			}

			key := cache.Key(raw)
			if !noCache && cache.Restore(key, sc.Set()) {
				sc.Freeze()
			} else {
				sc.Settle()
				if !noCache {
					_ = cache.Store(key, sc.Set())
				}
			}
			if focusID != "" {
				sc.Camera().CenterOnNode(focusID)
				sc.Settle()
			}

			ui.Banner(fmt.Sprintf("rendering %d nodes, %d edges",
				len(sc.Set().Nodes), len(sc.Set().Edges)))

			opt := export.Options{Width: width, Height: height}

			// cv painting mutates shared scene state, so jobs serialize
			// around it; file writes below stay off the hot path.
			var paintMu sync.Mutex
			var batch []parallel.Job
			for _, f := range formats {
				f := strings.ToLower(f)
				batch = append(batch, parallel.Job{
					Name: f,
					Fn: func() ([]byte, error) {
						paintMu.Lock()
						defer paintMu.Unlock()
						return export.Generate(sc, f, opt)
					},
				})
			}
			results := parallel.Run(batch, jobs)

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			base = strings.TrimPrefix(base, "demo:")
			failed := false
			for _, r := range results {
				if !r.OK() {
					failed = true
					continue
				}
				if outDir == "" && len(results) == 1 {
					fmt.Print(string(r.Data))
					continue
				}
				dir := outDir
				if dir == "" {
					dir = "."
				}
				path := filepath.Join(dir, base+formatExt[r.Name])
				if err := os.WriteFile(path, r.Data, 0o644); err != nil {
					ui.Bad.Printf("  Failed to write %s: %v\n", path, err)
					failed = true
					continue
				}
				ui.Subtle.Printf("  wrote %s\n", path)
			}
			if failed {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringSliceVar(&formats, "format", []string{"svg"}, "Output formats: svg, ascii, dot, json")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default stdout for a single format)")
	cmd.Flags().StringVar(&selectID, "select", "", "Node id to highlight as selected")
	cmd.Flags().StringVar(&search, "search", "", "Term whose matches are highlighted")
	cmd.Flags().StringVar(&focusID, "focus", "", "Node id to center the camera on")
	cmd.Flags().StringVar(&layoutName, "layout", "", "Apply a saved layout by name")
	cmd.Flags().Float64Var(&width, "width", 0, "Output width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "Output height in pixels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the settled-layout cache")
	cmd.Flags().IntVar(&jobs, "jobs", 4, "Concurrent export jobs")
	return cmd
}
