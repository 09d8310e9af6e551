package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrSendGridAPIKeyRequired indicates the SendGrid notifier has no API key.
var ErrSendGridAPIKeyRequired = errors.New("go-contacts: sendgrid api key required")

// MailSender is the subset of the SendGrid client used by the notifier.
type MailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridConfig wires the SendGrid notifier.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// Client overrides the SendGrid client, mostly for tests.
	Client MailSender
}

// SendGridNotifier emails the owning account when a contact is created.
type SendGridNotifier struct {
	client MailSender
	from   *mail.Email
}

// NewSendGridNotifier validates cfg and returns the notifier.
func NewSendGridNotifier(cfg SendGridConfig) (*SendGridNotifier, error) {
	client := cfg.Client
	if client == nil {
		key := strings.TrimSpace(cfg.APIKey)
		if key == "" {
			return nil, ErrSendGridAPIKeyRequired
		}
		client = sendgrid.NewSendClient(key)
	}
	fromEmail := strings.TrimSpace(cfg.FromEmail)
	if fromEmail == "" {
		return nil, errors.New("go-contacts: sendgrid from address required")
	}
	return &SendGridNotifier{
		client: client,
		from:   mail.NewEmail(cfg.FromName, fromEmail),
	}, nil
}

var _ types.Notifier = (*SendGridNotifier)(nil)

// ContactCreated implements types.Notifier.
func (n *SendGridNotifier) ContactCreated(ctx context.Context, event types.ContactCreatedEvent) error {
	if strings.TrimSpace(event.OwnerEmail) == "" {
		return errors.New("go-contacts: owner email missing")
	}
	body, err := renderContactCreated(event)
	if err != nil {
		return err
	}

	message := mail.NewV3Mail()
	message.SetFrom(n.from)
	message.Subject = contactCreatedSubject
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(event.OwnerName, event.OwnerEmail))
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", body))

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp != nil && resp.StatusCode >= 300 {
		return fmt.Errorf("go-contacts: sendgrid responded %d", resp.StatusCode)
	}
	return nil
}
