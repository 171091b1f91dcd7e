package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers WhatsApp messages through the Twilio API. The
// "whatsapp:" channel prefix is applied here so callers pass bare phone
// numbers.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender builds a sender from account credentials and the
// provisioned sending number.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

// SendWhatsApp sends one message. The Twilio client does not take a context;
// the bulk fan-out bounds the overall call through the request deadline
// instead.
func (s *TwilioSender) SendWhatsApp(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom("whatsapp:" + s.from)
	params.SetTo("whatsapp:" + to)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	return nil
}
