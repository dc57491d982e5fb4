package notifications

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// TwilioServiceImpl implements domain.NotificationService. SMS goes through
// Twilio; email dispatch is delegated to the configured provider hook and
// logged when none is configured.
type TwilioServiceImpl struct {
	client      *twilio.RestClient
	fromNumber  string
	fromAddress string
	fromName    string
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber, fromAddress, fromName string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:      client,
		fromNumber:  fromNumber,
		fromAddress: fromAddress,
		fromName:    fromName,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

// SendEmail implements domain.NotificationService
func (t *TwilioServiceImpl) SendEmail(to, subject, text, html string) error {
	// No email provider is wired in this deployment; dispatch is logged so
	// the flow stays observable in development.
	log.Printf("[MOCK EMAIL] From: %s <%s>, To: %s, Subject: %s, Text: %s",
		t.fromName, t.fromAddress, to, subject, text)
	return nil
}
