package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/graph"
	"github.com/msalah0e/canopy/internal/ui"
)

func inspectCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Report what a graph file contains after normalization",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload, _, err := loadPayload(args[0])
			if err != nil {
				ui.Bad.Printf("  Failed to load graph: %v\n", err)
				os.Exit(1)
			}

			clean, _ := graph.Normalize(payload)
			ui.Banner("inspect")

			fmt.Printf("  %s  %d", ui.Brand.Sprintf("%-8s", "Nodes"), len(clean.Nodes))
			if dropped := len(payload.Nodes) - len(clean.Nodes); dropped > 0 {
				ui.Subtle.Printf("  (%d dropped)", dropped)
			}
			fmt.Println()
			fmt.Printf("  %s  %d", ui.Brand.Sprintf("%-8s", "Edges"), len(clean.Edges))
			if dropped := len(payload.Edges) - len(clean.Edges); dropped > 0 {
				ui.Subtle.Printf("  (%d dropped)", dropped)
			}
			fmt.Println()

			if len(clean.Nodes) == 0 {
				return
			}

			degrees := graph.Degrees(clean.Edges)
			nodes := append([]graph.Node(nil), clean.Nodes...)
			sort.SliceStable(nodes, func(i, j int) bool {
				return degrees[nodes[i].ID] > degrees[nodes[j].ID]
			})
			if top > 0 && len(nodes) > top {
				nodes = nodes[:top]
			}

			fmt.Println()
			var rows [][]string
			for _, n := range nodes {
				label := n.Label
				if label == "" {
					label = ui.Subtle.Sprint("(id)")
				}
				typ := n.Type
				if typ == "" {
					typ = "-"
				}
				rows = append(rows, []string{
					n.ID, label, typ, fmt.Sprintf("%d", degrees[n.ID]),
				})
			}
			ui.Table([]string{"ID", "Label", "Type", "Degree"}, rows)
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "Show only the N most connected nodes (0 for all)")
	return cmd
}
