package mocks

import (
	"sync"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// SentEmail records one SendEmail call
type SentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, text, html string) error

	mu     sync.Mutex
	SMS    []string
	Emails []SentEmail
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records the message and succeeds
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SMS = append(m.SMS, message)
	return nil
}

// SendEmail records the message and succeeds
func (m *MockNotificationService) SendEmail(to, subject, text, html string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, text, html)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Emails = append(m.Emails, SentEmail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
