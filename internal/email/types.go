package email

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string // plain-text fallback
	HTML    string
}

// TemplateData feeds the html templates.
type TemplateData map[string]interface{}
