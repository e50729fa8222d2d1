package main

import (
	"embed"
	"os"

	"github.com/msalah0e/canopy/cmd"
)

//go:embed demo/*.json
var demoFS embed.FS

func main() {
	cmd.SetDemoFS(demoFS)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
