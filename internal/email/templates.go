package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the appointment flow.
const (
	TemplateAppointmentRequested = "appointment_requested"
	TemplateAppointmentDecided   = "appointment_decided"
)

// TemplateManager is a concurrency-safe in-memory template store.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Built-ins are parsed at construction; a parse failure here is a
	// programming error.
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var builtinTemplates = map[string]string{
	TemplateAppointmentRequested: `
<h2>New viewing request</h2>
<p>{{.BuyerName}} requested a viewing of <strong>{{.PropertyTitle}}</strong>.</p>
<p>Requested slot: {{.ScheduledAt}}</p>
{{if .Message}}<p>Message: {{.Message}}</p>{{end}}
<p>Open your dashboard to confirm or decline.</p>`,

	TemplateAppointmentDecided: `
<h2>Viewing {{.Status}}</h2>
<p>Your viewing request for <strong>{{.PropertyTitle}}</strong> on {{.ScheduledAt}} was {{.Status}}.</p>`,
}
