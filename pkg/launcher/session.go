package launcher

import (
	"fmt"
	"sync"

	"github.com/rr13k/playwright/pkg/logging"
)

// sessionState tracks where a session is in its lifecycle.
type sessionState int

const (
	stateActive sessionState = iota
	stateShuttingDown
	stateClosed
)

// teardownGuard serializes shutdown: the first caller to begin runs the
// teardown sequence, every other caller waits for its result. Once latched
// the guard never re-arms, so the sequence can run at most once.
type teardownGuard struct {
	mu    sync.Mutex
	state sessionState
	err   error
	done  chan struct{}
}

func newTeardownGuard() *teardownGuard {
	return &teardownGuard{done: make(chan struct{})}
}

// begin reports whether the caller won the right to run teardown.
func (g *teardownGuard) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != stateActive {
		return false
	}
	g.state = stateShuttingDown
	return true
}

// finish records the teardown result and wakes every waiter.
func (g *teardownGuard) finish(err error) {
	g.mu.Lock()
	g.state = stateClosed
	g.err = err
	g.mu.Unlock()
	close(g.done)
}

// wait blocks until teardown has finished and returns its result.
func (g *teardownGuard) wait() error {
	<-g.done
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Session is the live browser session owned by the lifecycle manager. It is
// destroyed exactly once, either explicitly through Close or implicitly when
// its last view closes.
type Session struct {
	host    SessionHost
	context SessionContext

	// LaunchEcho and SessionEcho carry the configuration handed back to
	// callers, with presentation-only fields stripped.
	LaunchEcho  LaunchConfig
	SessionEcho SessionConfig

	traceFile   string
	storageFile string
	guard       *teardownGuard
	log         *logging.Logger
}

// newSession creates the browsing session and wires its lifecycle: view
// observation first (so nothing can navigate unobserved), then timeouts,
// then tracing so the earliest actions land in the trace.
func newSession(host SessionHost, n *Normalized, log *logging.Logger) (*Session, error) {
	context, err := host.NewSession(n.Session)
	if err != nil {
		_ = host.Release()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s := &Session{
		host:        host,
		context:     context,
		LaunchEcho:  n.Launch.Echo(),
		SessionEcho: n.Session.Echo(),
		traceFile:   n.TraceFile,
		storageFile: n.StorageFile,
		guard:       newTeardownGuard(),
		log:         log,
	}

	context.OnView(s.adoptView)

	if n.TimeoutMS > 0 {
		context.SetTimeouts(n.TimeoutMS)
	}

	if n.TraceFile != "" {
		if err := context.StartTracing(); err != nil {
			_ = host.Release()
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	return s, nil
}

// adoptView wires lifecycle handlers into a freshly opened view: dialogs are
// kept open for whoever is driving the session, and the view's close is what
// may shut the whole session down.
func (s *Session) adoptView(v View) {
	v.OnDialog(func() {})
	v.OnClose(func() {
		if s.liveViews() > 0 {
			return
		}
		// Last view gone: tear down off the event goroutine. Errors are
		// dropped because the host may already have closed underneath us.
		go func() {
			_ = s.Close()
		}()
	})
}

// liveViews counts open views across every session owned by the host.
func (s *Session) liveViews() int {
	views := 0
	for _, context := range s.host.Sessions() {
		views += len(context.Views())
	}
	return views
}

// Close runs the ordered teardown exactly once: stop tracing, snapshot
// storage, release the host. Concurrent and repeated calls wait for the
// in-flight teardown and return its result.
func (s *Session) Close() error {
	if !s.guard.begin() {
		return s.guard.wait()
	}
	err := s.teardown()
	s.guard.finish(err)
	return err
}

// Done is closed once teardown has finished.
func (s *Session) Done() <-chan struct{} {
	return s.guard.done
}

// teardown flushes artifacts and releases the host, strictly in that order:
// releasing the host would invalidate both capture operations.
func (s *Session) teardown() error {
	if s.traceFile != "" {
		if err := s.context.StopTracing(s.traceFile); err != nil {
			// Keep the host alive: the live session is the only thing a
			// broken trace can still be diagnosed against.
			return fmt.Errorf("failed to stop tracing: %w", err)
		}
		s.log.Infof("trace written to %s", s.traceFile)
	}
	if s.storageFile != "" {
		if err := s.context.SaveStorage(s.storageFile); err != nil {
			s.log.Warnf("failed to save storage state to %s: %v", s.storageFile, err)
		} else {
			s.log.Infof("storage state written to %s", s.storageFile)
		}
	}
	if err := s.host.Release(); err != nil {
		return fmt.Errorf("failed to release session host: %w", err)
	}
	s.log.Infof("session host released")
	return nil
}
