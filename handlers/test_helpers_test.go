package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"warehouse_landing_go/config"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/content"
	"warehouse_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	if err := content.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		AppURL:          "https://harborline.example",
		ClientID:        "client-123",
		DefaultLanguage: "en",
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())
	c.Set("locale", "en")
	c.Set("csrf", "test-csrf-token")

	return e, c, rec
}

// withLocale mirrors what the Locale middleware does for a request.
func withLocale(c echo.Context, lang string) {
	c.Set("locale", lang)
	c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
}

// recordingSubmitter captures leads instead of posting them.
type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []services.SubmissionPayload
	err      error
}

func (r *recordingSubmitter) SubmitLead(ctx context.Context, payload services.SubmissionPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return r.err
}

func (r *recordingSubmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

// useSubmitter swaps the global CRM client for the duration of a test.
func useSubmitter(t *testing.T, s services.LeadSubmitter) {
	t.Helper()
	saved := services.Leads
	services.Leads = s
	t.Cleanup(func() { services.Leads = saved })
}
