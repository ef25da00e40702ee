package model

import (
	"strings"
	"time"
)

// EmailTemplate is a reusable outbound email with placeholder fields.
type EmailTemplate struct {
	LastModified time.Time `json:"lastModified"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
}

// Render substitutes the template placeholders with values from the lead
// and the sending user. Unknown placeholders are left untouched.
func (t *EmailTemplate) Render(lead *Lead, senderName string) (subject, body string) {
	r := strings.NewReplacer(
		"{{Customer Name}}", lead.Name,
		"{{Company Name}}", lead.Company,
		"{{My Name}}", senderName,
	)
	return r.Replace(t.Subject), r.Replace(t.Body)
}
