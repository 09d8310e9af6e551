package notify

import (
	"bytes"
	"text/template"
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
)

const contactCreatedSubject = "New Contact Created Successfully"

var contactCreatedTemplate = template.Must(template.New("contact_created").Funcs(template.FuncMap{
	"orDefault": func(value string) string {
		if value == "" {
			return "Not provided"
		}
		return value
	},
	"stamp": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 3:04 PM MST")
	},
}).Parse(`Hello {{.OwnerName}},

A new contact has been successfully added to your contact management system.

Contact Details:
- Name: {{.Contact.Name}}
- Email: {{orDefault .Contact.Email}}
- Phone: {{orDefault .Contact.Phone}}
- Created: {{stamp .Contact.CreatedAt}}

Thank you for using our Contact Management System.

Best regards,
Contact Management Team
`))

func renderContactCreated(event types.ContactCreatedEvent) (string, error) {
	var buf bytes.Buffer
	if err := contactCreatedTemplate.Execute(&buf, event); err != nil {
		return "", err
	}
	return buf.String(), nil
}
