package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"warehouse_landing_go/models"
	"warehouse_landing_go/services/i18n"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SuccessBannerDuration is how long the success banner stays up after a submit.
const SuccessBannerDuration = 5 * time.Second

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// FormStatus is the submission state of a LeadForm.
type FormStatus string

const (
	StatusIdle       FormStatus = "idle"
	StatusSubmitting FormStatus = "submitting"
	StatusSubmitted  FormStatus = "submitted"
	StatusError      FormStatus = "error"
)

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks. Tests substitute a fake.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is backed by time.AfterFunc.
var SystemClock Clock = systemClock{}

// ValidateForm checks every configured field and returns a fresh error set.
// Rules run in order (required, email, tel) and a later match replaces an
// earlier message for the same field.
func ValidateForm(fields []models.FormField, state FormState, tr i18n.Localizer) ValidationErrors {
	errs := make(ValidationErrors)
	for _, field := range fields {
		value := strings.TrimSpace(state[field.Name])

		if field.Required && value == "" {
			errs[field.Name] = field.Label + " " + tr.T("form.required")
		}
		if field.Type == models.FieldTypeEmail && value != "" && !emailRe.MatchString(value) {
			errs[field.Name] = tr.T("form.invalidEmail")
		}
		if field.Type == models.FieldTypeTel && value != "" && !phoneRe.MatchString(value) {
			errs[field.Name] = tr.T("form.invalidPhone")
		}
	}
	return errs
}

// LeadFormOptions wires a LeadForm to its collaborators.
type LeadFormOptions struct {
	ClientID  string
	Submitter LeadSubmitter
	Resolver  AddressResolver
	Clock     Clock
	Localizer i18n.Localizer
}

// LeadForm tracks one visitor's lead form through validation and submission.
type LeadForm struct {
	ID string

	mu          sync.Mutex
	fields      []models.FormField
	values      FormState
	errors      ValidationErrors
	status      FormStatus
	submitError string
	showSuccess bool
	closed      bool
	timer       Timer
	cancel      context.CancelFunc

	opts LeadFormOptions
}

// NewLeadForm creates an idle form for the configured fields.
func NewLeadForm(fields []models.FormField, opts LeadFormOptions) *LeadForm {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	return &LeadForm{
		ID:     uuid.NewString(),
		fields: fields,
		values: make(FormState),
		errors: make(ValidationErrors),
		status: StatusIdle,
		opts:   opts,
	}
}

func (f *LeadForm) hasField(name string) bool {
	for _, field := range f.fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// SetValue records a field value and clears that field's error.
// Names that are not configured fields are ignored.
func (f *LeadForm) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || !f.hasField(name) {
		return
	}
	f.values[name] = value
	delete(f.errors, name)
}

// SetValues applies SetValue for every entry.
func (f *LeadForm) SetValues(values map[string]string) {
	for name, value := range values {
		f.SetValue(name, value)
	}
}

// Submit validates the form and, when valid, sends exactly one lead.
// It returns ErrSubmissionInFlight while a previous call is pending,
// ErrValidationFailed without any network call when fields are invalid,
// and otherwise the submitter's error.
func (f *LeadForm) Submit(ctx context.Context, hints ClientHints) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}

	errs := ValidateForm(f.fields, f.values, f.opts.Localizer)
	f.errors = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		return ErrValidationFailed
	}

	f.status = StatusSubmitting
	f.submitError = ""
	f.showSuccess = false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	snapshot := make(FormState, len(f.values))
	for k, v := range f.values {
		snapshot[k] = v
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	env := Enrich(ctx, hints, f.opts.Resolver)
	payload := BuildPayload(f.opts.ClientID, snapshot, env)

	var err error
	if f.opts.Submitter == nil {
		err = ErrAPIHostNotConfigured
	} else {
		err = f.opts.Submitter.SubmitLead(ctx, payload)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancel = nil
	if f.closed {
		return err
	}

	if err != nil {
		f.status = StatusError
		f.submitError = f.failureMessage(err)
		log.Error().Err(err).Str("form_id", f.ID).Msg("Lead submission failed")
		return err
	}

	f.values = make(FormState)
	f.status = StatusSubmitted
	f.showSuccess = true
	f.timer = f.opts.Clock.AfterFunc(SuccessBannerDuration, f.clearSuccess)
	log.Info().Str("form_id", f.ID).Str("device_type", env.DeviceType).Msg("Lead submitted")
	return nil
}

func (f *LeadForm) failureMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return f.opts.Localizer.T("form.submitFailed")
}

func (f *LeadForm) clearSuccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.showSuccess = false
	f.timer = nil
	if f.status == StatusSubmitted {
		f.status = StatusIdle
	}
}

// Close tears the form down. An in-flight submission is cancelled and no
// later completion or timer changes the form.
func (f *LeadForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// LeadFormView is an immutable copy of the form for rendering.
type LeadFormView struct {
	ID          string
	Fields      []models.FormField
	Values      FormState
	Errors      ValidationErrors
	Status      FormStatus
	SubmitError string
	ShowSuccess bool
}

// Submitting reports whether the submit button should be disabled.
func (v LeadFormView) Submitting() bool {
	return v.Status == StatusSubmitting
}

// View returns a snapshot of the current form state.
func (f *LeadForm) View() LeadFormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make(FormState, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	errs := make(ValidationErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return LeadFormView{
		ID:          f.ID,
		Fields:      f.fields,
		Values:      values,
		Errors:      errs,
		Status:      f.status,
		SubmitError: f.submitError,
		ShowSuccess: f.showSuccess,
	}
}
