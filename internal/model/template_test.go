package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailTemplateRender(t *testing.T) {
	tmpl := EmailTemplate{
		Name:    "Introduction",
		Subject: "Hello {{Customer Name}}",
		Body:    "Hi {{Customer Name}},\n\nGreat to connect with {{Company Name}}.\n\nBest,\n{{My Name}}",
	}
	lead := Lead{Name: "Alice Freeman", Company: "TechNova Inc."}

	subject, body := tmpl.Render(&lead, "Jordan")

	assert.Equal(t, "Hello Alice Freeman", subject)
	assert.Contains(t, body, "Hi Alice Freeman,")
	assert.Contains(t, body, "Great to connect with TechNova Inc.")
	assert.Contains(t, body, "Best,\nJordan")
}

func TestEmailTemplateRenderUnknownPlaceholder(t *testing.T) {
	tmpl := EmailTemplate{Subject: "{{Customer Name}} x {{Deal Size}}"}
	lead := Lead{Name: "Bob Smith"}

	subject, _ := tmpl.Render(&lead, "Jordan")

	assert.Equal(t, "Bob Smith x {{Deal Size}}", subject)
}
