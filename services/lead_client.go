package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warehouse_landing_go/config"
)

// maxResponseBody caps how much of a CRM response is read.
const maxResponseBody = 1 << 20

// LeadSubmitter delivers a lead to the CRM.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, payload SubmissionPayload) error
}

// Leads is the global CRM client, set by InitLeadClient.
var Leads LeadSubmitter

// LeadClient posts leads to {APIHost}/forms.
type LeadClient struct {
	APIHost    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewLeadClient creates a client from configuration.
func NewLeadClient(cfg *config.Config) *LeadClient {
	return &LeadClient{
		APIHost:    cfg.APIHost,
		APIKey:     cfg.APIKey,
		Timeout:    cfg.RequestTimeout,
		HTTPClient: &http.Client{},
	}
}

// InitLeadClient sets the global Leads client.
func InitLeadClient(cfg *config.Config) {
	Leads = NewLeadClient(cfg)
}

// crmResponse is the subset of the CRM reply the client cares about.
type crmResponse struct {
	Status  *bool
	Message string
}

// SubmitLead sends exactly one POST. A 2xx reply without an explicit
// status:false is a success; an empty or non-JSON body does not carry the flag.
func (c *LeadClient) SubmitLead(ctx context.Context, payload SubmissionPayload) error {
	host := strings.TrimSuffix(strings.TrimSpace(c.APIHost), "/")
	if host == "" {
		return ErrAPIHostNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/forms", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit lead: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read lead response: %w", err)
	}
	result := parseCRMResponse(raw)

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok || (result.Status != nil && !*result.Status) {
		return &RemoteError{StatusCode: resp.StatusCode, Message: result.Message}
	}
	return nil
}

func parseCRMResponse(raw []byte) crmResponse {
	var out crmResponse
	if len(bytes.TrimSpace(raw)) == 0 {
		return out
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return out
	}
	if status, ok := body["status"].(bool); ok {
		out.Status = &status
	}
	if msg, ok := body["message"].(string); ok {
		out.Message = strings.TrimSpace(msg)
	}
	return out
}
