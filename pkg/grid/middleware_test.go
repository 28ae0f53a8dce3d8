package grid

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", extractAccessToken(req))

	req = httptest.NewRequest("GET", "/v1/sessions?access_token=query-token", nil)
	assert.Equal(t, "query-token", extractAccessToken(req))

	// The header wins when both are present.
	req = httptest.NewRequest("GET", "/v1/sessions?access_token=query-token", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", extractAccessToken(req))

	req = httptest.NewRequest("GET", "/v1/sessions", nil)
	assert.Empty(t, extractAccessToken(req))
}

func TestAuthorize_NoTokenConfigured(t *testing.T) {
	s := &Server{cfg: Config{}}

	req := httptest.NewRequest("GET", "/v1/sessions", nil)
	assert.True(t, s.authorize(req))
}

func TestAuthorize_TokenConfigured(t *testing.T) {
	s := &Server{cfg: Config{AuthToken: "secret"}}

	req := httptest.NewRequest("GET", "/v1/sessions", nil)
	assert.False(t, s.authorize(req))

	req = httptest.NewRequest("GET", "/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	assert.False(t, s.authorize(req))

	req = httptest.NewRequest("GET", "/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer secret")
	assert.True(t, s.authorize(req))
}

func TestIsOriginAllowed(t *testing.T) {
	handle, err := Validate("stub", &stubFactory{})
	require.NoError(t, err)
	s, err := NewServer(Config{AllowedOrigins: []string{"https://*.example.com", "http://localhost:*"}}, handle)
	require.NoError(t, err)

	// Non-browser clients send no Origin header.
	req := httptest.NewRequest("GET", "/v1/sessions/x/connect", nil)
	assert.True(t, s.isOriginAllowed(req))

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, s.isOriginAllowed(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, s.isOriginAllowed(req))

	req.Header.Set("Origin", "https://evil.test")
	assert.False(t, s.isOriginAllowed(req))
}

func TestIsOriginAllowed_NoPatternsRejectBrowsers(t *testing.T) {
	handle, err := Validate("stub", &stubFactory{})
	require.NoError(t, err)
	s, err := NewServer(Config{}, handle)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/v1/sessions/x/connect", nil)
	assert.True(t, s.isOriginAllowed(req))

	req.Header.Set("Origin", "https://anything.test")
	assert.False(t, s.isOriginAllowed(req))
}

func TestIsLoopbackBindAddress(t *testing.T) {
	for addr, want := range map[string]bool{
		"127.0.0.1:22222":    true,
		"localhost:1":        true,
		"[::1]:8080":         true,
		"0.0.0.0:22222":      false,
		"192.168.1.10:22222": false,
		"grid.internal:443":  false,
		"":                   false,
	} {
		assert.Equal(t, want, isLoopbackBindAddress(addr), "address %q", addr)
	}
}
