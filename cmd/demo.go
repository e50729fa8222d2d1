package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/export"
	"github.com/msalah0e/canopy/internal/scene"
	"github.com/msalah0e/canopy/internal/ui"
)

func demoCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Render a bundled demo graph in the terminal",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := demoFS.ReadDir("demo")
			if err != nil || len(entries) == 0 {
				ui.Bad.Println("  No demo graphs bundled in this build")
				os.Exit(1)
			}

			if len(args) == 0 {
				ui.Banner("demo graphs")
				for _, e := range entries {
					name := strings.TrimSuffix(e.Name(), ".json")
					fmt.Printf("  %s  %s\n", ui.Brand.Sprint(name),
						ui.Subtle.Sprint("canopy demo "+name))
				}
				return
			}

			payload, _, err := loadPayload("demo:" + args[0])
			if err != nil {
				ui.Bad.Printf("  Unknown demo %q\n", args[0])
				os.Exit(1)
			}

			cfg := config.Load()
			sc := scene.New(*cfg, cfg.Export.Width, cfg.Export.Height)
			sc.Load(payload)
			sc.SetSearch(search)
			sc.Settle()

			out, err := export.Generate(sc, "ascii", export.Options{
				Width:    cfg.Export.Width,
				Height:   cfg.Export.Height,
				Colorize: true,
			})
			if err != nil {
				ui.Bad.Printf("  Render failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(out))
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Term whose matches are highlighted")
	return cmd
}
