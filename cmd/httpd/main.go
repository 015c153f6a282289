// Command httpd serves the recorded meetings over a read-only HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/meeting-tracker/internal/config"
	"github.com/jonesrussell/meeting-tracker/internal/server"
)

func main() {
	cfgPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := server.StartHTTPServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}
