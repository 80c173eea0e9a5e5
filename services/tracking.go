package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warehouse_landing_go/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrMissingButtonID is reported for a click without a button identifier.
var ErrMissingButtonID = errors.New("button id is required")

// TrackingEvent is the body sent to the click metadata endpoint.
type TrackingEvent struct {
	ClientID  string `json:"client_id"`
	ProjectID string `json:"project_id,omitempty"`
	ButtonID  string `json:"button_id"`
	Count     int    `json:"count"`
	IPAddress string `json:"ip_address,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// TrackingOutcome reports what happened to one click. Err is nil on delivery.
type TrackingOutcome struct {
	ID       string
	ButtonID string
	Err      error
}

// Beacon sends fire-and-forget click events.
type Beacon struct {
	Endpoint   string
	ClientID   string
	ProjectID  string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Resolver is used when Track is not given one.
	Resolver AddressResolver
}

// Tracker is the global click beacon, set by InitTracker.
var Tracker *Beacon

// NewBeacon creates a beacon from configuration.
func NewBeacon(cfg *config.Config, resolver AddressResolver) *Beacon {
	return &Beacon{
		Endpoint:   cfg.TrackingEndpoint,
		ClientID:   cfg.TrackingClientID,
		ProjectID:  cfg.TrackingProjectID,
		APIKey:     cfg.TrackingAPIKey,
		Timeout:    cfg.RequestTimeout,
		HTTPClient: &http.Client{},
		Resolver:   resolver,
	}
}

// InitTracker sets the global Tracker.
func InitTracker(cfg *config.Config, resolver AddressResolver) {
	Tracker = NewBeacon(cfg, resolver)
	if !Tracker.Enabled() {
		log.Info().Msg("Click tracking disabled (LANDING_TRACKING_CLIENT_ID not set)")
	}
}

// Enabled reports whether the beacon has a client id to report under.
func (b *Beacon) Enabled() bool {
	return b != nil && b.ClientID != ""
}

// Track records a click without blocking the caller. The returned channel
// receives exactly one outcome; failures are logged and never returned to
// the UI.
func (b *Beacon) Track(buttonID, timezone string, resolver AddressResolver) <-chan TrackingOutcome {
	out := make(chan TrackingOutcome, 1)
	outcome := TrackingOutcome{ID: uuid.NewString(), ButtonID: strings.TrimSpace(buttonID)}

	switch {
	case !b.Enabled():
		outcome.Err = ErrTrackingDisabled
	case outcome.ButtonID == "":
		outcome.Err = ErrMissingButtonID
	}
	if outcome.Err != nil {
		out <- outcome
		close(out)
		return out
	}

	if resolver == nil {
		resolver = b.Resolver
	}

	go func() {
		defer close(out)

		timeout := b.Timeout
		if timeout <= 0 {
			timeout = config.DefaultRequestTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		event := TrackingEvent{
			ClientID:  b.ClientID,
			ProjectID: b.ProjectID,
			ButtonID:  outcome.ButtonID,
			Count:     1,
			Timezone:  ResolveTimezone(timezone),
		}
		if resolver != nil {
			if addr, err := resolver.ResolveAddress(ctx); err == nil {
				event.IPAddress = addr
			}
		}

		if err := b.send(ctx, event); err != nil {
			log.Warn().Err(err).Str("button_id", event.ButtonID).Str("event_id", outcome.ID).Msg("Button tracking failed")
			outcome.Err = err
		} else {
			log.Debug().Str("button_id", event.ButtonID).Str("event_id", outcome.ID).Msg("Button click tracked")
		}
		out <- outcome
	}()

	return out
}

func (b *Beacon) send(ctx context.Context, event TrackingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode tracking event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build tracking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.APIKey != "" {
		req.Header.Set("X-API-Key", b.APIKey)
	}

	client := b.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send tracking event: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tracking endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
