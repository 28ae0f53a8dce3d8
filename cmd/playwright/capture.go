package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/rr13k/playwright/pkg/launcher"
	"github.com/rr13k/playwright/pkg/logging"
)

// runScreenshotCommand opens a page headlessly, captures a screenshot and
// tears the session down.
func runScreenshotCommand(args []string) error {
	fs := flag.NewFlagSet("screenshot", flag.ContinueOnError)
	sf := newSessionFlags(fs, true)
	cf := newCaptureFlags(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: playwright screenshot [options] <url> <file>")
	}

	return capturePage(sf, fs.Arg(0), func(view launcher.View) error {
		if err := launcher.CaptureScreenshot(view, fs.Arg(1), cf.options()); err != nil {
			return err
		}
		fmt.Printf("Screenshot saved to %s\n", fs.Arg(1))
		return nil
	}, nil)
}

// runPDFCommand opens a page in headless chromium, renders it to PDF and
// tears the session down. Other browsers cannot print to PDF.
func runPDFCommand(args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ContinueOnError)
	sf := newSessionFlags(fs, true)
	cf := newCaptureFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: playwright pdf [options] <url> <file>")
	}

	return capturePage(sf, fs.Arg(0), func(view launcher.View) error {
		if err := launcher.CapturePDF(view, fs.Arg(1), cf.options()); err != nil {
			return err
		}
		fmt.Printf("PDF saved to %s\n", fs.Arg(1))
		return nil
	}, func(n *launcher.Normalized) error {
		if n.BrowserName != "chromium" || !n.Launch.Headless {
			return &launcher.ConfigurationError{
				Message: "PDF generation only works with Headless Chromium",
			}
		}
		return nil
	})
}

// capturePage runs the shared one-shot capture flow: normalize options,
// launch a session, open the page, run the capture and close the session.
// A capture failure still tears the session down; the capture error wins
// over any teardown error.
func capturePage(sf *sessionFlags, address string, capture func(launcher.View) error, check func(*launcher.Normalized) error) error {
	opts, err := sf.options()
	if err != nil {
		return err
	}

	log, _ := logging.NewLogger("cli")
	defer log.Close()

	l, err := launcher.New(log)
	if err != nil {
		return err
	}
	defer l.Close()

	normalized, err := launcher.Normalize(opts, l.Devices(), runtime.GOOS)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(normalized); err != nil {
			return err
		}
	}

	session, err := l.LaunchSession(normalized)
	if err != nil {
		return err
	}

	view, err := session.OpenInitialView(address)
	if err != nil {
		session.Close()
		return err
	}

	captureErr := capture(view)
	closeErr := session.Close()
	if captureErr != nil {
		return captureErr
	}
	return closeErr
}
