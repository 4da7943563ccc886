package app

import "estate_backend/internal/email"

// MockEmailProvider is used in tests and local development when no SMTP
// server is configured.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(e *email.Email) error { return nil }
func (m *MockEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	return nil
}
func (m *MockEmailProvider) Close() error { return nil }
