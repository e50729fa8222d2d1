package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/cache"
	"github.com/msalah0e/canopy/internal/ui"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the settled-layout cache",
		Run: func(cmd *cobra.Command, args []string) {
			entries, _ := os.ReadDir(cache.Dir())
			ui.Banner("layout cache")
			fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-8s", "Entries"), len(entries))
			ui.Subtle.Printf("  %s\n", cache.Dir())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached layout",
		Run: func(cmd *cobra.Command, args []string) {
			if err := cache.Clear(); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Cache cleared\n", ui.StatusIcon(true))
		},
	})
	return cmd
}
