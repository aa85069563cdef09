package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendEmailer(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	e := NewResendEmailer(map[string]string{
		"RESEND_API_KEY":    "re_test",
		"RESEND_FROM_EMAIL": "Portfolio <noreply@example.com>",
		"RESEND_API_URL":    srv.URL,
	})
	require.NotNil(t, e)

	require.NoError(t, e.SendEmail(context.Background(), "Hello", "<p>hi</p>", []string{"a@example.com"}))
	assert.Equal(t, "Portfolio <noreply@example.com>", got.From)
	assert.Equal(t, []string{"a@example.com"}, got.To)
	assert.Equal(t, "<p>hi</p>", got.Html)

	assert.Error(t, e.SendEmail(context.Background(), "Hello", "body", nil))
}

func TestResendEmailerReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	e := NewResendEmailer(map[string]string{"RESEND_API_KEY": "k", "RESEND_FROM_EMAIL": "f", "RESEND_API_URL": srv.URL})
	err := e.SendEmail(context.Background(), "s", "b", []string{"a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestNotifiersDisabledWithoutConfig(t *testing.T) {
	assert.Nil(t, NewResendEmailer(map[string]string{"RESEND_API_KEY": "k"}))
	assert.Nil(t, NewTwilioSMS(map[string]string{"TWILIO_ACCOUNT_SID": "AC1"}))
}
