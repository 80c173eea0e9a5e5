package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"warehouse_landing_go/config"

	"github.com/rs/zerolog/log"
)

// PlaceholderAddress is reported when no provider can determine the public address.
const PlaceholderAddress = "0.0.0.0"

// AddressResolver discovers the public IP address of the visitor.
type AddressResolver interface {
	ResolveAddress(ctx context.Context) (string, error)
}

// HTTPAddressProvider asks a public "what is my IP" JSON service.
// The address is read from the "ip" field, falling back to "query".
type HTTPAddressProvider struct {
	URL    string
	Client *http.Client
}

func (p *HTTPAddressProvider) ResolveAddress(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", p.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%s returned status %d", p.URL, resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response from %s: %w", p.URL, err)
	}

	candidate, _ := body["ip"].(string)
	if candidate == "" {
		candidate, _ = body["query"].(string)
	}
	addr, ok := ParseAddress(candidate)
	if !ok {
		return "", fmt.Errorf("%s: %w", p.URL, ErrNoAddress)
	}
	return addr, nil
}

// ParseAddress validates an IPv4 or IPv6 literal and returns its canonical form.
// Zoned IPv6 addresses are rejected.
func ParseAddress(raw string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil || addr.Zone() != "" {
		return "", false
	}
	return addr.String(), true
}

// RequestAddressResolver reports a visitor address seen by the server, either
// the request's remote address or the one app.js looked up and posted, as
// long as it is publicly routable. Private, loopback and link-local addresses
// are rejected so the chain moves on.
type RequestAddressResolver struct {
	Address string
}

func (r RequestAddressResolver) ResolveAddress(ctx context.Context) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(r.Address))
	if err != nil {
		return "", fmt.Errorf("request address %q: %w", r.Address, ErrNoAddress)
	}
	addr = addr.Unmap()
	if addr.Zone() != "" || !addr.IsGlobalUnicast() || addr.IsPrivate() || addr.IsLoopback() {
		return "", fmt.Errorf("request address %s is not public: %w", addr, ErrNoAddress)
	}
	return addr.String(), nil
}

// FallbackResolver tries each provider in order and returns the first address
// found. Providers are queried one at a time, each bounded by AttemptTimeout.
// When every provider fails it returns PlaceholderAddress and a nil error.
type FallbackResolver struct {
	Providers      []AddressResolver
	AttemptTimeout time.Duration
}

// NewFallbackResolver builds a chain of HTTP providers for the given service URLs.
func NewFallbackResolver(serviceURLs []string, attemptTimeout time.Duration, client *http.Client) *FallbackResolver {
	providers := make([]AddressResolver, 0, len(serviceURLs))
	for _, u := range serviceURLs {
		providers = append(providers, &HTTPAddressProvider{URL: u, Client: client})
	}
	return &FallbackResolver{Providers: providers, AttemptTimeout: attemptTimeout}
}

// WithLeading returns a copy of the chain with first queried, in order,
// before the others.
func (f *FallbackResolver) WithLeading(first ...AddressResolver) *FallbackResolver {
	providers := make([]AddressResolver, 0, len(f.Providers)+len(first))
	providers = append(providers, first...)
	providers = append(providers, f.Providers...)
	return &FallbackResolver{Providers: providers, AttemptTimeout: f.AttemptTimeout}
}

func (f *FallbackResolver) ResolveAddress(ctx context.Context) (string, error) {
	timeout := f.AttemptTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	for i, provider := range f.Providers {
		if ctx.Err() != nil {
			break
		}
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		addr, err := provider.ResolveAddress(attemptCtx)
		cancel()
		if err == nil {
			return addr, nil
		}
		log.Debug().Err(err).Int("attempt", i+1).Msg("IP lookup failed, trying next provider")
	}

	log.Warn().Msg("Failed to determine client IP from all services, using placeholder")
	return PlaceholderAddress, nil
}

// IPResolver is the server's own external lookup chain, set by
// InitIPResolver. It has no providers unless LANDING_SERVER_IP_LOOKUP is on:
// queried from the server, the services report the server's egress address.
var IPResolver *FallbackResolver

// browserLookupServices are the services app.js queries for the visitor's
// public address.
var browserLookupServices []string

// InitIPResolver builds IPResolver and the browser lookup list from the
// configured services.
func InitIPResolver(cfg *config.Config) {
	browserLookupServices = append([]string{}, cfg.IPLookupServices...)
	IPResolver = &FallbackResolver{AttemptTimeout: cfg.IPLookupTimeout}
	if cfg.ServerIPLookup {
		IPResolver = NewFallbackResolver(cfg.IPLookupServices, cfg.IPLookupTimeout, &http.Client{})
		log.Warn().Msg("Server-side IP lookup enabled, leads without a public client address get the server's egress address")
	}
}

// BrowserLookupServicesAttr is the space separated service list rendered into
// the lead form for app.js.
func BrowserLookupServicesAttr() string {
	return strings.Join(browserLookupServices, " ")
}

// ResolverFor returns the chain for one visitor request: the request's own
// address, then the address app.js reported, then IPResolver.
func ResolverFor(remoteAddr, reportedAddr string) AddressResolver {
	base := IPResolver
	if base == nil {
		base = &FallbackResolver{}
	}
	leading := []AddressResolver{RequestAddressResolver{Address: remoteAddr}}
	if strings.TrimSpace(reportedAddr) != "" {
		leading = append(leading, RequestAddressResolver{Address: reportedAddr})
	}
	return base.WithLeading(leading...)
}
