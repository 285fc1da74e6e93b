package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/GodingWal/famflix-voice-io/cleanup"
	"github.com/GodingWal/famflix-voice-io/controller"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

func main() {
	var (
		requestFile = flag.String("request", "", "Path to YAML job request (required)")
		sweep       = flag.Bool("sweep", false, "Remove stale job directories before running")
	)
	flag.Parse()

	if *requestFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -request <job.yaml> [-sweep]\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	log.SetOutput("stdout")

	if *sweep {
		cleanup.CleanupWorkDirectories(ctx)
	}

	yamlContent, err := os.ReadFile(*requestFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Unable to read request file:", err)
		os.Exit(1)
	}

	ctrl, status := controller.NewController(ctx, yamlContent)
	if status != nil {
		fmt.Fprintln(os.Stderr, status)
		os.Exit(1)
	}
	output, status := ctrl.Process()
	if status != nil {
		fmt.Fprintln(os.Stderr, status)
		os.Exit(1)
	}
	fmt.Println(output)
}
