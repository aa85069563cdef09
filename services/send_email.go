package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

const resendAPIURL = "https://api.resend.com"

// EmailSender delivers a notification email
type EmailSender interface {
	SendEmail(ctx context.Context, subject, body string, recipients []string) error
}

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendEmailer sends mail through the Resend HTTP API
type ResendEmailer struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client
}

// NewResendEmailer reads RESEND_API_KEY and RESEND_FROM_EMAIL.
// It returns nil when email is not configured.
func NewResendEmailer(c map[string]string) *ResendEmailer {
	apiKey := config.GetString(c, "RESEND_API_KEY", "")
	fromEmail := config.GetString(c, "RESEND_FROM_EMAIL", "")
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	return &ResendEmailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		baseURL:   config.GetString(c, "RESEND_API_URL", resendAPIURL),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendEmail sends an HTML email to recipients
func (e *ResendEmailer) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    e.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
