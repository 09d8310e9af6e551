package notify

import (
	"context"
	"sync"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-masker"
)

var maskFieldsOnce sync.Once

var maskedFields = []string{"owner_email", "contact_email", "contact_phone"}

// LogNotifier records contact notifications in the service log with
// personal data masked. It is the default when no mail provider is wired.
type LogNotifier struct {
	logger types.Logger
	mask   *masker.Masker
}

// NewLogNotifier returns a log notifier. A nil mask uses masker.Default.
func NewLogNotifier(logger types.Logger, mask *masker.Masker) *LogNotifier {
	if logger == nil {
		logger = types.NopLogger{}
	}
	if mask == nil {
		mask = defaultMasker()
	} else {
		registerMaskFields(mask)
	}
	return &LogNotifier{logger: logger, mask: mask}
}

var _ types.Notifier = (*LogNotifier)(nil)

// ContactCreated implements types.Notifier.
func (n *LogNotifier) ContactCreated(_ context.Context, event types.ContactCreatedEvent) error {
	payload := map[string]any{
		"owner_email":   event.OwnerEmail,
		"contact_email": event.Contact.Email,
		"contact_phone": event.Contact.Phone,
	}
	if n.mask != nil {
		masked, err := n.mask.Mask(payload)
		if err != nil {
			return err
		}
		if m, ok := masked.(map[string]any); ok {
			payload = m
		}
	}
	n.logger.Info("go-contacts: contact created notification",
		"contact_id", event.Contact.ID,
		"owner_id", event.Contact.OwnerID,
		"actor_id", event.ActorID,
		"owner_email", payload["owner_email"],
		"contact_email", payload["contact_email"],
		"contact_phone", payload["contact_phone"],
	)
	return nil
}

func defaultMasker() *masker.Masker {
	maskFieldsOnce.Do(func() {
		registerMaskFields(masker.Default)
	})
	return masker.Default
}

func registerMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	for _, field := range maskedFields {
		mask.RegisterMaskField(field, "filled4")
	}
}
