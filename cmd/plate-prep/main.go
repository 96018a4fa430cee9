package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/plate-prep/internal/config"
	"github.com/ironsheep/plate-prep/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("plate-prep %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("plate-prep - license plate preprocessing tools over MCP")
			fmt.Println()
			fmt.Println("Usage: plate-prep [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PLATE_PREP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  PLATE_PREP_CONFIG=<path>      TOML file with threshold parameters")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("PLATE_PREP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Plate prep server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg, err := loadConfig(os.Getenv("PLATE_PREP_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if debug {
		log.Printf("Config: %+v", cfg)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
