package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesRender(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateAppointmentRequested, TemplateData{
		"BuyerName":     "Asha",
		"PropertyTitle": "2BHK in Baner",
		"ScheduledAt":   "Mon, 01 Sep 2026 10:00:00 IST",
		"Message":       "Is parking included?",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Asha")
	assert.Contains(t, html, "2BHK in Baner")
	assert.Contains(t, html, "Is parking included?")

	html, err = tm.Render(TemplateAppointmentDecided, TemplateData{
		"PropertyTitle": "2BHK in Baner",
		"ScheduledAt":   "Mon, 01 Sep 2026 10:00:00 IST",
		"Status":        "confirmed",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "confirmed")
}

func TestRenderEscapesHTML(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateAppointmentRequested, TemplateData{
		"BuyerName":     "<script>alert(1)</script>",
		"PropertyTitle": "Flat",
		"ScheduledAt":   "now",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()

	_, err := tm.Render("no_such_template", nil)
	assert.Error(t, err)
}
