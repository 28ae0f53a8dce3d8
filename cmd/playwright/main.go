// Package main provides the playwright command line launcher. It opens
// interactive browser sessions with device emulation, captures screenshots
// and PDFs, lists the available device profiles and installs the managed
// browsers.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rr13k/playwright/pkg/launcher"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(dispatch(os.Args[1:]))
}

func dispatch(args []string) int {
	if len(args) == 0 {
		printHelp()
		return 0
	}

	switch args[0] {
	case "--version", "-V", "version":
		printVersion()
		return 0
	case "--help", "-h", "help":
		printHelp()
		return 0
	case "open":
		return runCommand(runOpenCommand, args[1:])
	case "screenshot":
		return runCommand(runScreenshotCommand, args[1:])
	case "pdf":
		return runCommand(runPDFCommand, args[1:])
	case "devices":
		return runCommand(runDevicesCommand, args[1:])
	case "install":
		return runCommand(runInstallCommand, args[1:])
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "Error: unknown flag: %s\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", args[0])
		}
		fmt.Fprintln(os.Stderr, "Run 'playwright --help' for usage.")
		return 1
	}
}

// runCommand executes a subcommand handler and maps its error to an exit
// code. Guidance errors carry instructions for the operator, not failures:
// their message goes to stdout and the process exits zero.
func runCommand(handler func([]string) error, args []string) int {
	err := handler(args)
	if err == nil {
		return 0
	}

	var guidance *launcher.GuidanceError
	if errors.As(err, &guidance) {
		fmt.Println(guidance.Message)
		return 0
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func printHelp() {
	fmt.Println("playwright - browser session launcher")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  playwright <command> [options] [args]")
	fmt.Println()
	fmt.Println("COMMANDS:")
	fmt.Println("  open [options] [url]                Open a page in an interactive session")
	fmt.Println("  screenshot [options] <url> <file>   Capture a page screenshot")
	fmt.Println("  pdf [options] <url> <file>          Render a page as PDF (headless chromium)")
	fmt.Println("  devices                             List device profiles usable with -device")
	fmt.Println("  install [browser...]                Install the managed browsers")
	fmt.Println("  version                             Show version information")
	fmt.Println()
	fmt.Println("Run 'playwright <command> -h' for command options.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  playwright open -device \"iPhone 13\" https://example.com")
	fmt.Println("  playwright open -b firefox -color-scheme dark example.com")
	fmt.Println("  playwright screenshot -full-page https://example.com page.png")
	fmt.Println("  playwright pdf https://example.com page.pdf")
}

func printVersion() {
	fmt.Printf("playwright %s\n", version)
	if commit != "unknown" {
		fmt.Printf("  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Printf("  Built:      %s\n", buildDate)
	}
	fmt.Printf("  Go version: %s\n", runtime.Version())
}
