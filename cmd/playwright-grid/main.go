// Package main provides the playwright grid server. It exposes an HTTP API
// for launching browser targets on demand and a WebSocket proxy that bridges
// remote clients to them, so one machine can serve browser sessions to a team
// or a CI fleet.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	appconfig "github.com/rr13k/playwright/pkg/config"
	"github.com/rr13k/playwright/pkg/grid"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// originList collects repeatable -allow-origin flags. Comma-separated values
// are split so both styles work.
type originList []string

func (o *originList) String() string {
	return strings.Join(*o, ",")
}

func (o *originList) Set(value string) error {
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			*o = append(*o, origin)
		}
	}
	return nil
}

// Config holds the grid server configuration
type Config struct {
	BindAddress   string
	AuthToken     string
	Origins       originList
	MaxSessions   int
	IdleTTL       time.Duration
	Factory       string
	PublicMetrics bool
	CopyURL       bool
	ConfigPath    string
	ShowVersion   bool

	explicit map[string]bool
}

func main() {
	// Parse command line flags
	config := parseFlags()

	// Show version if requested
	if config.ShowVersion {
		printVersion()
		return
	}

	// Merge in the config file, then validate
	if err := config.resolve(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down grid...")
		cancel()
	}()

	// Run the server
	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Grid error: %v", runErr)
	}
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.BindAddress, "bind", "", "address to listen on (default 127.0.0.1:22222)")
	flag.StringVar(&config.AuthToken, "auth-token", os.Getenv("GRID_AUTH_TOKEN"), "access token clients must present (or set GRID_AUTH_TOKEN env var)")
	flag.Var(&config.Origins, "allow-origin", "origin pattern allowed to connect, repeatable (glob syntax, e.g. https://*.example.com)")
	flag.IntVar(&config.MaxSessions, "max-sessions", 0, "maximum number of concurrent browser targets (default 10)")
	flag.DurationVar(&config.IdleTTL, "idle-ttl", 0, "close targets with no client connections after this long (default 5m)")
	flag.StringVar(&config.Factory, "factory", "", "session factory: a registered name or a plugin .so path (default local)")
	flag.BoolVar(&config.PublicMetrics, "public-metrics", false, "serve /metrics without authentication")
	flag.BoolVar(&config.CopyURL, "copy-url", false, "copy the connect URL to the clipboard on startup")
	flag.StringVar(&config.ConfigPath, "config", "", "config file path (default ~/.playwright-cli/config.yaml)")
	flag.BoolVar(&config.ShowVersion, "version", false, "show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "playwright-grid - browser session grid server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: playwright-grid [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  GRID_AUTH_TOKEN    Access token clients must present\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Loopback grid for local tools\n")
		fmt.Fprintf(os.Stderr, "  playwright-grid\n")
		fmt.Fprintf(os.Stderr, "\n  # Shared grid for a team\n")
		fmt.Fprintf(os.Stderr, "  playwright-grid -bind 0.0.0.0:22222 -auth-token $TOKEN -allow-origin 'https://*.example.com'\n")
		fmt.Fprintf(os.Stderr, "\n  # Custom factory from a plugin\n")
		fmt.Fprintf(os.Stderr, "  playwright-grid -factory ./factories/farm.so\n")
	}

	flag.Parse()

	config.explicit = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { config.explicit[f.Name] = true })

	return config
}

// resolve fills unset flags from the config file and applies built-in
// defaults. Explicit flags always win.
func (c *Config) resolve() error {
	if err := appconfig.Initialize(c.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if section := appconfig.GetGrid(); section != nil {
		if !c.explicit["bind"] && c.BindAddress == "" {
			c.BindAddress = section.GetBindAddress()
		}
		if !c.explicit["auth-token"] && c.AuthToken == "" {
			c.AuthToken = section.GetAuthToken()
		}
		if !c.explicit["allow-origin"] && len(c.Origins) == 0 {
			c.Origins = section.GetAllowedOrigins()
		}
		if !c.explicit["max-sessions"] && c.MaxSessions == 0 {
			c.MaxSessions = section.GetMaxSessions()
		}
		if !c.explicit["idle-ttl"] && c.IdleTTL == 0 {
			c.IdleTTL = section.GetIdleTTL()
		}
		if !c.explicit["factory"] && c.Factory == "" {
			c.Factory = section.GetFactory()
		}
	}

	if c.Factory == "" {
		c.Factory = "local"
	}

	return nil
}

// run executes the grid server until the context is cancelled
func run(ctx context.Context, config *Config) error {
	handle, err := grid.Load(config.Factory)
	if err != nil {
		return err
	}

	server, err := grid.NewServer(grid.Config{
		BindAddress:    config.BindAddress,
		AuthToken:      config.AuthToken,
		AllowedOrigins: config.Origins,
		MaxSessions:    config.MaxSessions,
		IdleTTL:        config.IdleTTL,
		PublicMetrics:  config.PublicMetrics,
		Version:        version,
	}, handle)
	if err != nil {
		return err
	}

	fmt.Printf("playwright-grid %s\n", version)
	fmt.Printf("Factory: %s\n", handle.Name())
	fmt.Printf("Connect: %s\n", server.URL())

	if config.CopyURL {
		if err := clipboard.WriteAll(server.URL()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy connect URL to clipboard: %v\n", err)
		} else {
			fmt.Println("Connect URL copied to clipboard")
		}
	}

	return server.Start(ctx)
}

func printVersion() {
	fmt.Printf("playwright-grid %s\n", version)
	if commit != "unknown" {
		fmt.Printf("  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Printf("  Built:      %s\n", buildDate)
	}
	fmt.Printf("  Go version: %s\n", runtime.Version())
}
