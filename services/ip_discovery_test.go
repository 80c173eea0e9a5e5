package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"warehouse_landing_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	addr  string
	err   error
	calls int32
	delay time.Duration
}

func (s *stubResolver) ResolveAddress(ctx context.Context) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.addr, s.err
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPAddressProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads ip field", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `{"ip":"203.0.113.7"}`)
		addr, err := (&HTTPAddressProvider{URL: server.URL}).ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.7", addr)
	})

	t.Run("Falls back to query field", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `{"status":"success","query":"2001:db8::1"}`)
		addr, err := (&HTTPAddressProvider{URL: server.URL}).ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::1", addr)
	})

	t.Run("Rejects malformed address", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `{"ip":"999.1.1.1"}`)
		_, err := (&HTTPAddressProvider{URL: server.URL}).ResolveAddress(ctx)
		assert.ErrorIs(t, err, ErrNoAddress)
	})

	t.Run("Rejects non-2xx", func(t *testing.T) {
		server := jsonServer(t, http.StatusServiceUnavailable, `{"ip":"203.0.113.7"}`)
		_, err := (&HTTPAddressProvider{URL: server.URL}).ResolveAddress(ctx)
		assert.Error(t, err)
	})

	t.Run("Rejects non-JSON body", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `203.0.113.7`)
		_, err := (&HTTPAddressProvider{URL: server.URL}).ResolveAddress(ctx)
		assert.Error(t, err)
	})
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"192.168.1.10", "192.168.1.10", true},
		{" 8.8.8.8 ", "8.8.8.8", true},
		{"2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1", true},
		{"::1", "::1", true},
		{"fe80::1%eth0", "", false},
		{"256.0.0.1", "", false},
		{"", "", false},
		{"not-an-ip", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAddress(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestAddressResolver(t *testing.T) {
	ctx := context.Background()

	addr, err := RequestAddressResolver{Address: "203.0.113.9"}.ResolveAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", addr)

	for _, private := range []string{"127.0.0.1", "10.0.0.4", "192.168.0.2", "::1", "fe80::1", "", "garbage"} {
		_, err := RequestAddressResolver{Address: private}.ResolveAddress(ctx)
		assert.ErrorIs(t, err, ErrNoAddress, private)
	}
}

func TestFallbackResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("First success wins and later providers are not queried", func(t *testing.T) {
		first := &stubResolver{err: errors.New("down")}
		second := &stubResolver{addr: "198.51.100.2"}
		third := &stubResolver{addr: "198.51.100.3"}
		r := &FallbackResolver{Providers: []AddressResolver{first, second, third}, AttemptTimeout: time.Second}

		addr, err := r.ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.2", addr)
		assert.EqualValues(t, 1, first.calls)
		assert.EqualValues(t, 1, second.calls)
		assert.EqualValues(t, 0, third.calls)
	})

	t.Run("Total failure returns placeholder", func(t *testing.T) {
		r := &FallbackResolver{Providers: []AddressResolver{
			&stubResolver{err: errors.New("a")},
			&stubResolver{err: errors.New("b")},
		}}
		addr, err := r.ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, PlaceholderAddress, addr)
	})

	t.Run("Slow provider is abandoned after the attempt timeout", func(t *testing.T) {
		slow := &stubResolver{addr: "198.51.100.9", delay: time.Second}
		fast := &stubResolver{addr: "198.51.100.10"}
		r := &FallbackResolver{Providers: []AddressResolver{slow, fast}, AttemptTimeout: 20 * time.Millisecond}

		start := time.Now()
		addr, err := r.ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.10", addr)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("HTTP chain skips failing services", func(t *testing.T) {
		bad := jsonServer(t, http.StatusInternalServerError, `{}`)
		good := jsonServer(t, http.StatusOK, `{"ip":"203.0.113.50"}`)
		r := NewFallbackResolver([]string{bad.URL, good.URL}, time.Second, nil)

		addr, err := r.ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.50", addr)
	})

	t.Run("WithLeading queries the request address first", func(t *testing.T) {
		tail := &stubResolver{addr: "198.51.100.2"}
		base := &FallbackResolver{Providers: []AddressResolver{tail}}
		r := base.WithLeading(RequestAddressResolver{Address: "203.0.113.1"})

		addr, err := r.ResolveAddress(ctx)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.1", addr)
		assert.EqualValues(t, 0, tail.calls)
		assert.Len(t, base.Providers, 1)
	})
}

func TestResolverFor(t *testing.T) {
	saved := IPResolver
	t.Cleanup(func() { IPResolver = saved })

	IPResolver = nil
	addr, err := ResolverFor("10.0.0.4", "").ResolveAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlaceholderAddress, addr, "private request address with no lookup chain")

	t.Run("Reported address used behind a proxy", func(t *testing.T) {
		addr, err := ResolverFor("10.0.0.4", "198.51.100.20").ResolveAddress(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.20", addr)
	})

	t.Run("Public request address wins", func(t *testing.T) {
		addr, err := ResolverFor("203.0.113.9", "198.51.100.20").ResolveAddress(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.9", addr)
	})

	t.Run("Private or malformed reported address is ignored", func(t *testing.T) {
		for _, reported := range []string{"192.168.1.5", "not-an-ip", "::1"} {
			addr, err := ResolverFor("127.0.0.1", reported).ResolveAddress(context.Background())
			require.NoError(t, err)
			assert.Equal(t, PlaceholderAddress, addr, reported)
		}
	})

	t.Run("Server chain runs last", func(t *testing.T) {
		tail := &stubResolver{addr: "198.51.100.7"}
		IPResolver = &FallbackResolver{Providers: []AddressResolver{tail}}

		addr, err := ResolverFor("127.0.0.1", "").ResolveAddress(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.7", addr)

		addr, err = ResolverFor("127.0.0.1", "198.51.100.20").ResolveAddress(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.20", addr)
		assert.EqualValues(t, 1, tail.calls)
	})
}

func TestInitIPResolver(t *testing.T) {
	saved := IPResolver
	t.Cleanup(func() { IPResolver = saved })

	cfg := &config.Config{
		IPLookupServices: []string{"https://a.example.com/json", "https://b.example.com/json"},
		IPLookupTimeout:  time.Second,
	}

	InitIPResolver(cfg)
	assert.Empty(t, IPResolver.Providers, "server lookup is off by default")
	assert.Equal(t, "https://a.example.com/json https://b.example.com/json", BrowserLookupServicesAttr())

	cfg.ServerIPLookup = true
	InitIPResolver(cfg)
	assert.Len(t, IPResolver.Providers, 2)
}
