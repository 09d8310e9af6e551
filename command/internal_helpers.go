package command

import (
	"context"
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeScopeGuard(g scope.Guard) scope.Guard {
	return scope.Ensure(g)
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

// surfaceError passes categorized errors through and replaces anything else
// with a generic failure after logging the cause.
func surfaceError(logger types.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if types.IsCategorized(err) {
		return err
	}
	safeLogger(logger).Error("go-contacts: "+op+" failed", err)
	return types.Unexpected(err)
}

func notifyContactCreated(ctx context.Context, notifier types.Notifier, logger types.Logger, event types.ContactCreatedEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.ContactCreated(ctx, event); err != nil {
		safeLogger(logger).Error("go-contacts: contact created notification failed", err,
			"contact_id", event.Contact.ID,
			"owner_id", event.Contact.OwnerID,
		)
	}
}

func strPtr(v string) *string {
	return &v
}

func requireAdmin(actor types.ActorRef) error {
	if actor.ID == uuid.Nil {
		return types.Unauthorized("authenticated caller required")
	}
	if !actor.IsAdmin() {
		return types.Forbidden(msgAdminOnly)
	}
	return nil
}
