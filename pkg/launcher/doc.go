// Package launcher turns flat operator options into a live browser session
// and guarantees the session's teardown runs exactly once, in order, with
// every requested artifact flushed before the underlying host is released.
//
// # Architecture
//
// The package is built around four parts:
//
//  1. Option Normalizer: a pure function mapping raw options plus a device
//     registry into a LaunchConfig (how to start the host) and a
//     SessionConfig (how the session behaves)
//  2. Session Lifecycle Manager: Launcher acquires the host, Session owns it
//     and its single teardown guard
//  3. Page Bootstrap: OpenInitialView resolves an address argument against
//     local-file, scheme and bare-host heuristics and opens the first view
//  4. Host adapters: narrow SessionHost/SessionContext/View interfaces with
//     a playwright-go implementation, so the lifecycle logic is testable
//     without a browser
//
// # Teardown
//
// Shutdown is triggered explicitly through Close or implicitly when the last
// view across all of the host's sessions closes. Either way the sequence is:
//
//  1. stop tracing and write the trace file (failures propagate, the host
//     stays alive for diagnosis)
//  2. write the storage state snapshot (failures are logged and swallowed)
//  3. release the session host
//
// A state guard makes the sequence idempotent: concurrent close events and
// repeated Close calls run it once, and late callers receive the recorded
// result.
//
// # Example Usage
//
//	log, _ := logging.NewLogger("launcher")
//	l, err := launcher.New(log)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	n, err := launcher.Normalize(launcher.Options{
//	    Device:      "iPhone 13",
//	    ColorScheme: "dark",
//	    SaveTrace:   "trace.zip",
//	}, l.Devices(), runtime.GOOS)
//	if err != nil {
//	    return err
//	}
//
//	session, err := l.LaunchSession(n)
//	if err != nil {
//	    return err
//	}
//	if _, err := session.OpenInitialView("example.com"); err != nil {
//	    return err
//	}
//	<-session.Done() // closes itself when the last view closes
package launcher
