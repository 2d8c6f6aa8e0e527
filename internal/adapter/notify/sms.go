package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/couchcryptid/spaceweather-watch/internal/config"
)

// SMSChannel sends notifications through the Twilio Messages API. SMS bodies
// carry the subject plus the full report, matching the email content.
type SMSChannel struct {
	client *twilio.RestClient
	from   string
	to     string
}

// NewSMSChannel builds the SMS channel from a complete Twilio credential
// group. Callers must check cfg.SMSEnabled() first.
func NewSMSChannel(cfg *config.Config) *SMSChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioSID,
		Password: cfg.TwilioToken,
	})
	return &SMSChannel{
		client: client,
		from:   cfg.TwilioFrom,
		to:     cfg.SMSTo,
	}
}

func (s *SMSChannel) Name() string { return "sms" }

func (s *SMSChannel) Send(_ context.Context, subject, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(s.to)
	params.SetBody(subject + "\n" + body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
