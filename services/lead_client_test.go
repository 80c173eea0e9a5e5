package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crmServer(t *testing.T, status int, body string, calls *int32, inspect func(r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if inspect != nil {
			inspect(r)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLeadClientSubmitLead(t *testing.T) {
	ctx := context.Background()
	payload := BuildPayload("client-1", FormState{FieldEmail: " jane@acme.com "}, Environment{Timezone: "UTC"})

	t.Run("Posts JSON to forms endpoint with api key", func(t *testing.T) {
		var calls int32
		server := crmServer(t, http.StatusOK, `{"status":true}`, &calls, func(r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/forms", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "secret", r.Header.Get("x-api-key"))

			var got SubmissionPayload
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "client-1", got.ClientID)
			assert.Equal(t, "jane@acme.com", got.FormData.Email)
		})

		client := &LeadClient{APIHost: server.URL + "/", APIKey: "secret"}
		require.NoError(t, client.SubmitLead(ctx, payload))
		assert.EqualValues(t, 1, calls)
	})

	t.Run("Missing host is a configuration error", func(t *testing.T) {
		err := (&LeadClient{}).SubmitLead(ctx, payload)
		assert.ErrorIs(t, err, ErrAPIHostNotConfigured)
	})

	t.Run("Non-2xx carries remote message", func(t *testing.T) {
		server := crmServer(t, http.StatusInternalServerError, `{"message":"Database unavailable"}`, nil, nil)

		err := (&LeadClient{APIHost: server.URL}).SubmitLead(ctx, payload)
		var remote *RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
		assert.Equal(t, "Database unavailable", remote.Message)
	})

	t.Run("2xx with status false is a failure", func(t *testing.T) {
		server := crmServer(t, http.StatusOK, `{"status":false,"message":"Duplicate lead"}`, nil, nil)

		err := (&LeadClient{APIHost: server.URL}).SubmitLead(ctx, payload)
		var remote *RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, "Duplicate lead", remote.Message)
	})

	t.Run("Empty and non-JSON 2xx bodies succeed", func(t *testing.T) {
		for _, body := range []string{"", "OK", `{"id":12}`} {
			server := crmServer(t, http.StatusCreated, body, nil, nil)
			assert.NoError(t, (&LeadClient{APIHost: server.URL}).SubmitLead(ctx, payload), body)
		}
	})

	t.Run("Non-2xx without JSON has empty message", func(t *testing.T) {
		server := crmServer(t, http.StatusBadGateway, "<html>bad gateway</html>", nil, nil)

		err := (&LeadClient{APIHost: server.URL}).SubmitLead(ctx, payload)
		var remote *RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Empty(t, remote.Message)
	})

	t.Run("Timeout is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer server.Close()

		err := (&LeadClient{APIHost: server.URL, Timeout: 20 * time.Millisecond}).SubmitLead(ctx, payload)
		require.Error(t, err)
		var remote *RemoteError
		assert.False(t, errors.As(err, &remote))
	})
}
