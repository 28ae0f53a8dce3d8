package grid

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/playwright-community/playwright-go"
)

func init() {
	Register("local", &localFactory{})
}

// localFactory launches Chromium on the grid host itself and exposes its
// DevTools endpoint on an ephemeral loopback port. Remote clients reach the
// browser through the grid's WebSocket proxy, never the loopback port
// directly.
type localFactory struct {
	mu sync.Mutex
	pw *playwright.Playwright
}

func (f *localFactory) Launch(ctx context.Context, req LaunchRequest) (*Target, error) {
	if req.Browser != "" && req.Browser != "chromium" {
		return nil, fmt.Errorf("local factory launches chromium only, got %q", req.Browser)
	}
	pw, err := f.runtime()
	if err != nil {
		return nil, err
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve debugging port: %w", err)
	}

	headless := true
	if req.Headless != nil {
		headless = *req.Headless
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--remote-debugging-port=" + strconv.Itoa(port)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	endpoint, err := debuggerEndpoint(ctx, port)
	if err != nil {
		_ = browser.Close()
		return nil, err
	}

	return &Target{
		ID:        ulid.Make().String(),
		Browser:   "chromium",
		Endpoint:  endpoint,
		CreatedAt: time.Now().UTC(),
		Close:     browser.Close,
	}, nil
}

func (f *localFactory) runtime() (*playwright.Playwright, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pw != nil {
		return f.pw, nil
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	f.pw = pw
	return pw, nil
}

// freePort reserves an ephemeral loopback port by binding and releasing it.
// The browser reclaims the port moments later; the window for another
// process to steal it is small enough in practice.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// debuggerEndpoint polls the DevTools version endpoint until the freshly
// launched browser reports its WebSocket debugger URL.
func debuggerEndpoint(ctx context.Context, port int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://127.0.0.1:%d/json/version", port)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if endpoint, err := fetchDebuggerURL(ctx, url); err == nil {
			return endpoint, nil
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("browser never exposed a debugger endpoint on port %d: %w", port, ctx.Err())
		case <-ticker.C:
		}
	}
}

func fetchDebuggerURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var version struct {
		WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return "", err
	}
	if version.WebSocketDebuggerURL == "" {
		return "", fmt.Errorf("version endpoint returned no debugger url")
	}
	return version.WebSocketDebuggerURL, nil
}
