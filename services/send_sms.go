package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a text message to a phone number
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioSMS sends text messages through Twilio's messaging API
type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMS reads TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER.
// It returns nil when SMS is not configured.
func NewTwilioSMS(c map[string]string) *TwilioSMS {
	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	if sid == "" || token == "" || from == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &TwilioSMS{client: client, from: from}
}

func (s *TwilioSMS) SendSMS(ctx context.Context, to, body string) error {
	if to == "" {
		return errors.New("no destination number")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Sent SMS via Twilio")
	}
	return nil
}
