package email

// Provider sends outbound mail.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
	Close() error
}

// TemplateRenderer turns a named template plus data into an HTML body.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name, templateStr string) error
}
