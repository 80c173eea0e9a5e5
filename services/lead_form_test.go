package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"warehouse_landing_go/models"
	"warehouse_landing_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every timer that came due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []SubmissionPayload
	err      error
	block    chan struct{}
}

func (s *recordingSubmitter) SubmitLead(ctx context.Context, payload SubmissionPayload) error {
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *recordingSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func testFields() []models.FormField {
	return []models.FormField{
		{Name: FieldFullName, Label: "Full Name", Type: models.FieldTypeText, Required: true},
		{Name: FieldEmail, Label: "Email", Type: models.FieldTypeEmail, Required: true},
		{Name: FieldPhone, Label: "Phone", Type: models.FieldTypeTel},
		{Name: FieldBudget, Label: "Monthly Budget", Type: models.FieldTypeText},
		{Name: FieldPreferredLocation, Label: "Preferred Location", Type: models.FieldTypeSelect, Options: []string{"North", "South"}},
	}
}

func newTestForm(submitter LeadSubmitter, clock Clock) *LeadForm {
	return NewLeadForm(testFields(), LeadFormOptions{
		ClientID:  "client-1",
		Submitter: submitter,
		Resolver:  &stubResolver{addr: "203.0.113.4"},
		Clock:     clock,
		Localizer: i18n.Localizer{Lang: "en"},
	})
}

func fillValid(f *LeadForm) {
	f.SetValue(FieldFullName, "Jane Doe")
	f.SetValue(FieldEmail, "  jane@acme.com ")
	f.SetValue(FieldPhone, "+1 (555) 010-2000")
	f.SetValue(FieldBudget, "12,000")
}

var testHints = ClientHints{UserAgent: uaChrome, ViewportWidth: 1440, Timezone: "America/Denver"}

func TestValidateForm(t *testing.T) {
	tr := i18n.Localizer{Lang: "en"}
	fields := testFields()

	t.Run("Required fields", func(t *testing.T) {
		errs := ValidateForm(fields, FormState{FieldFullName: "   "}, tr)
		assert.Equal(t, "Full Name is required", errs[FieldFullName])
		assert.Equal(t, "Email is required", errs[FieldEmail])
		assert.NotContains(t, errs, FieldPhone)
	})

	t.Run("Format rules replace required message", func(t *testing.T) {
		errs := ValidateForm(fields, FormState{FieldFullName: "Jane", FieldEmail: "jane@acme", FieldPhone: "call me"}, tr)
		assert.Equal(t, "Please enter a valid email address", errs[FieldEmail])
		assert.Equal(t, "Please enter a valid phone number", errs[FieldPhone])
		assert.Len(t, errs, 2)
	})

	t.Run("Localized messages", func(t *testing.T) {
		errs := ValidateForm(fields, FormState{}, i18n.Localizer{Lang: "es"})
		assert.Equal(t, "Full Name es obligatorio", errs[FieldFullName])
	})

	t.Run("Valid form", func(t *testing.T) {
		errs := ValidateForm(fields, FormState{FieldFullName: "Jane", FieldEmail: "jane@acme.com", FieldPhone: "555 0100"}, tr)
		assert.Empty(t, errs)
	})
}

func TestLeadFormSetValue(t *testing.T) {
	f := newTestForm(&recordingSubmitter{}, &fakeClock{})

	f.SetValue("unknownField", "x")
	assert.NotContains(t, f.View().Values, "unknownField")

	require.ErrorIs(t, f.Submit(context.Background(), testHints), ErrValidationFailed)
	assert.Contains(t, f.View().Errors, FieldFullName)

	f.SetValue(FieldFullName, "J")
	view := f.View()
	assert.NotContains(t, view.Errors, FieldFullName, "editing a field clears its error")
	assert.Contains(t, view.Errors, FieldEmail)
}

func TestLeadFormSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Validation failure makes no network call", func(t *testing.T) {
		sub := &recordingSubmitter{}
		f := newTestForm(sub, &fakeClock{})
		f.SetValue(FieldEmail, "not-an-email")

		err := f.Submit(ctx, testHints)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Zero(t, sub.count())
		assert.Equal(t, StatusIdle, f.View().Status)
	})

	t.Run("Valid form sends exactly one POST with trimmed email", func(t *testing.T) {
		var calls int32
		var gotEmail string
		server := crmServer(t, http.StatusOK, `{"status":true}`, &calls, nil)
		client := &LeadClient{APIHost: server.URL}
		sub := &recordingSubmitter{}
		f := newTestForm(submitterFunc(func(ctx context.Context, p SubmissionPayload) error {
			gotEmail = p.FormData.Email
			sub.SubmitLead(ctx, p)
			return client.SubmitLead(ctx, p)
		}), &fakeClock{})
		fillValid(f)

		require.NoError(t, f.Submit(ctx, testHints))
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
		assert.Equal(t, "jane@acme.com", gotEmail)

		p := sub.payloads[0]
		assert.Equal(t, "client-1", p.ClientID)
		assert.Equal(t, "203.0.113.4", p.FormData.IPAddress)
		assert.Equal(t, "America/Denver", p.FormData.Timezone)
		assert.Equal(t, BrowserChrome, p.FormData.Browser)
		assert.Equal(t, DeviceDesktop, p.FormData.DeviceType)
		require.NotNil(t, p.FormData.MonthlyBudget)
		assert.Equal(t, float64(12000), p.FormData.MonthlyBudget.Number)
	})

	t.Run("Remote 500 keeps values and shows an error", func(t *testing.T) {
		server := crmServer(t, http.StatusInternalServerError, `{}`, nil, nil)
		f := newTestForm(&LeadClient{APIHost: server.URL}, &fakeClock{})
		fillValid(f)

		err := f.Submit(ctx, testHints)
		var remote *RemoteError
		require.True(t, errors.As(err, &remote))

		view := f.View()
		assert.Equal(t, StatusError, view.Status)
		assert.Equal(t, "There was an error submitting the form. Please try again.", view.SubmitError)
		assert.Equal(t, "Jane Doe", view.Values[FieldFullName])
		assert.False(t, view.ShowSuccess)
	})

	t.Run("Remote message is shown verbatim", func(t *testing.T) {
		f := newTestForm(&recordingSubmitter{err: &RemoteError{StatusCode: 200, Message: "Duplicate lead"}}, &fakeClock{})
		fillValid(f)

		require.Error(t, f.Submit(ctx, testHints))
		assert.Equal(t, "Duplicate lead", f.View().SubmitError)
	})

	t.Run("Missing submitter uses generic message", func(t *testing.T) {
		f := newTestForm(nil, &fakeClock{})
		fillValid(f)

		assert.ErrorIs(t, f.Submit(ctx, testHints), ErrAPIHostNotConfigured)
		assert.Equal(t, "There was an error submitting the form. Please try again.", f.View().SubmitError)
	})

	t.Run("Error persists until next submit", func(t *testing.T) {
		sub := &recordingSubmitter{err: errors.New("connection refused")}
		f := newTestForm(sub, &fakeClock{})
		fillValid(f)

		require.Error(t, f.Submit(ctx, testHints))
		f.SetValue(FieldFullName, "Jane Q. Doe")
		assert.Equal(t, StatusError, f.View().Status)

		sub.err = nil
		require.NoError(t, f.Submit(ctx, testHints))
		assert.Empty(t, f.View().SubmitError)
		assert.Equal(t, 2, sub.count())
	})

	t.Run("Success clears values and hides banner after five seconds", func(t *testing.T) {
		clock := &fakeClock{}
		f := newTestForm(&recordingSubmitter{}, clock)
		fillValid(f)

		require.NoError(t, f.Submit(ctx, testHints))
		view := f.View()
		assert.Equal(t, StatusSubmitted, view.Status)
		assert.True(t, view.ShowSuccess)
		assert.Empty(t, view.Values)

		clock.Advance(4999 * time.Millisecond)
		assert.True(t, f.View().ShowSuccess)

		clock.Advance(time.Millisecond)
		view = f.View()
		assert.False(t, view.ShowSuccess)
		assert.Equal(t, StatusIdle, view.Status)
	})

	t.Run("Re-entry while in flight is rejected", func(t *testing.T) {
		sub := &recordingSubmitter{block: make(chan struct{})}
		f := newTestForm(sub, &fakeClock{})
		fillValid(f)

		done := make(chan error, 1)
		go func() { done <- f.Submit(ctx, testHints) }()

		require.Eventually(t, func() bool { return f.View().Submitting() }, time.Second, 5*time.Millisecond)
		assert.ErrorIs(t, f.Submit(ctx, testHints), ErrSubmissionInFlight)

		close(sub.block)
		require.NoError(t, <-done)
		assert.Equal(t, 1, sub.count())
	})

	t.Run("Close guards late completion and timers", func(t *testing.T) {
		sub := &recordingSubmitter{block: make(chan struct{})}
		clock := &fakeClock{}
		f := newTestForm(sub, clock)
		fillValid(f)

		done := make(chan error, 1)
		go func() { done <- f.Submit(ctx, testHints) }()
		require.Eventually(t, func() bool { return f.View().Submitting() }, time.Second, 5*time.Millisecond)

		f.Close()
		assert.ErrorIs(t, <-done, context.Canceled)

		view := f.View()
		assert.Equal(t, StatusSubmitting, view.Status, "torn-down form is not mutated")
		assert.Equal(t, "Jane Doe", view.Values[FieldFullName])
		assert.ErrorIs(t, f.Submit(ctx, testHints), ErrFormClosed)
	})

	t.Run("Close stops the banner timer", func(t *testing.T) {
		clock := &fakeClock{}
		f := newTestForm(&recordingSubmitter{}, clock)
		fillValid(f)
		require.NoError(t, f.Submit(ctx, testHints))

		f.Close()
		clock.Advance(SuccessBannerDuration)
		assert.True(t, f.View().ShowSuccess)
	})
}

type submitterFunc func(ctx context.Context, p SubmissionPayload) error

func (fn submitterFunc) SubmitLead(ctx context.Context, p SubmissionPayload) error {
	return fn(ctx, p)
}
