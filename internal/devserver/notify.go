package devserver

import (
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers verification codes to a destination.
type Notifier interface {
	SendCode(destination, code string) error
}

// TwilioNotifier sends codes over SMS, or logs them when credentials
// are not configured so the flow stays usable in local development.
type TwilioNotifier struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioNotifier creates an SMS notifier.
func NewTwilioNotifier(accountSID, authToken, fromNumber string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{client: client, fromNumber: fromNumber}
}

// SendCode implements Notifier. Email destinations and unconfigured
// credentials fall back to a log line.
func (t *TwilioNotifier) SendCode(destination, code string) error {
	message := fmt.Sprintf("Your verification code is: %s", code)

	if t.fromNumber == "" || strings.Contains(destination, "@") {
		log.Printf("[MOCK DELIVERY] To: %s, Message: %s", destination, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(destination)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
