package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimitMiddleware(ctx, 0.001, 2, nil)
	handler := rl.Middleware(okHandler())

	send := func(remote string) int {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))
}

func TestRateLimitMiddleware_ForwardedForIgnoredFromUntrustedPeer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimitMiddleware(ctx, 0.001, 1, nil)
	handler := rl.Middleware(okHandler())

	send := func(forwarded string) int {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.RemoteAddr = "198.51.100.9:5000"
		r.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	// Rotating the header does not buy a fresh bucket.
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.3"))
}

func TestClientKey(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.5"})
	require.NoError(t, err)
	rl := &RateLimitMiddleware{trusted: proxies}

	tests := []struct {
		name      string
		remote    string
		forwarded []string
		expected  string
	}{
		{"untrusted peer without header", "198.51.100.9:4321", nil, "198.51.100.9"},
		{"untrusted peer header ignored", "198.51.100.9:4321", []string{"203.0.113.7"}, "198.51.100.9"},
		{"trusted peer uses forwarded client", "192.168.1.5:4321", []string{"203.0.113.7"}, "203.0.113.7"},
		{"spoofed left hops are skipped", "10.1.2.3:4321", []string{"1.1.1.1, 203.0.113.7"}, "203.0.113.7"},
		{"proxy chain is walked", "10.1.2.3:4321", []string{"203.0.113.7, 10.9.9.9"}, "203.0.113.7"},
		{"repeated headers are joined", "10.1.2.3:4321", []string{"1.1.1.1", "203.0.113.7"}, "203.0.113.7"},
		{"trusted peer without header", "10.1.2.3:4321", nil, "10.1.2.3"},
		{"only trusted hops", "10.1.2.3:4321", []string{"10.4.4.4"}, "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for _, v := range tt.forwarded {
				r.Header.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tt.expected, rl.clientKey(r))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.5 ", "", "::1"})
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "192.168.1.5/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}
