package cmd

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/canopy/internal/graph"
	"github.com/msalah0e/canopy/internal/ui"
)

var version = "0.3.0"

var demoFS embed.FS

// SetDemoFS sets the embedded filesystem containing bundled demo graphs.
func SetDemoFS(fs embed.FS) {
	demoFS = fs
}

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "canopy — interactive knowledge graph renderer",
	Long: ui.Brand.Sprint(ui.Web+" canopy") + " — lay out and render knowledge graphs\n" +
		ui.Subtle.Sprint("Force-directed layout with SVG, ASCII, DOT, and JSON output"),
	Version: version + " " + ui.Web,
}

func init() {
	rootCmd.SetVersionTemplate("canopy {{ .Version }}\n")

	rootCmd.AddCommand(
		renderCmd(),
		viewCmd(),
		inspectCmd(),
		demoCmd(),
		layoutCmd(),
		cacheCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadPayload reads a graph file from disk, or from the bundled demos
// when the path uses the demo: prefix.
func loadPayload(path string) (graph.Payload, []byte, error) {
	var (
		data []byte
		err  error
	)
	if name, ok := strings.CutPrefix(path, "demo:"); ok {
		data, err = demoFS.ReadFile("demo/" + name + ".json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return graph.Payload{}, nil, err
	}
	p, err := graph.ParsePayload(data)
	if err != nil {
		return graph.Payload{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, data, nil
}
