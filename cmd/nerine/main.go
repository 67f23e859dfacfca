package main

import (
	"fmt"
	"log"
	"os"

	"github.com/airi103/nerine/internal/config"
	"github.com/airi103/nerine/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("nerine %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "sample" {
		out, err := runSample(cfg, os.Args[2:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	// stdout is reserved for the MCP protocol
	logger := cfg.NewLogger(os.Stderr)
	logger.Debug("starting nerine", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("nerine - color sampling MCP server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  nerine                     Serve MCP over stdin/stdout")
	fmt.Println("  nerine sample <path> [x y] Print the color at (x, y), or at a random pixel")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug       Log level (debug, info, warn, error)\n", config.EnvLogLevel)
	fmt.Printf("  %s=42               Seed for random sampling\n", config.EnvSeed)
	fmt.Printf("  %s=5      Default image_dominant_colors count\n", config.EnvDominantCount)
	fmt.Printf("  %s=8        Default image_loupe radius\n", config.EnvLoupeRadius)
}
