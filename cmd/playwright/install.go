package main

import (
	"flag"
	"fmt"

	"github.com/rr13k/playwright/pkg/launcher"
)

// runInstallCommand installs the engine driver and browsers. Installation
// output is intentionally verbose: this is the one command where the operator
// wants to watch the download progress.
func runInstallCommand(args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	browsers := fs.Args()
	if err := launcher.Install(browsers); err != nil {
		return err
	}

	if len(browsers) > 0 {
		fmt.Printf("Installed: %v\n", browsers)
	} else {
		fmt.Println("Installed default browsers")
	}
	return nil
}
