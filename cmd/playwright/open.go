package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rr13k/playwright/pkg/launcher"
	"github.com/rr13k/playwright/pkg/logging"
)

// runOpenCommand launches an interactive session and keeps it alive until the
// operator closes the last page or interrupts the process. Session teardown
// runs exactly once either way, so traces and storage snapshots are flushed
// before the browser goes away.
func runOpenCommand(args []string) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	sf := newSessionFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, err := sf.options()
	if err != nil {
		return err
	}

	log, _ := logging.NewLogger("cli")
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := launcher.New(log)
	if err != nil {
		return err
	}
	defer l.Close()

	normalized, err := launcher.Normalize(opts, l.Devices(), runtime.GOOS)
	if err != nil {
		return err
	}

	session, err := l.LaunchSession(normalized)
	if err != nil {
		return err
	}

	if _, err := session.OpenInitialView(fs.Arg(0)); err != nil {
		session.Close()
		return err
	}

	select {
	case <-ctx.Done():
		log.Infof("interrupt received, closing session")
	case <-session.Done():
		log.Infof("last page closed, session ended")
	}

	return session.Close()
}
