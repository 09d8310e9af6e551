package authctx

import (
	"context"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const (
	textCodeActorMissing = "ACTOR_CONTEXT_MISSING"
	textCodeActorInvalid = "ACTOR_CONTEXT_INVALID"
)

type actorKey struct{}

// WithActor stores the authenticated caller on the context.
func WithActor(ctx context.Context, actor types.ActorRef) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by WithActor.
func ActorFromContext(ctx context.Context) (types.ActorRef, bool) {
	if ctx == nil {
		return types.ActorRef{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(types.ActorRef)
	if !ok || actor.ID == uuid.Nil {
		return types.ActorRef{}, false
	}
	return actor, true
}

// ResolveActor returns the caller stored on the request context or an
// unauthorized error when authentication middleware did not run.
func ResolveActor(ctx context.Context) (types.ActorRef, error) {
	if ctx == nil {
		return types.ActorRef{}, errors.New("go-contacts: missing request context", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorMissing)
	}
	if actor, ok := ActorFromContext(ctx); ok {
		return actor, nil
	}
	return types.ActorRef{}, errors.New("go-contacts: auth actor not found on request", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodeActorMissing)
}

// ActorRefFromSubject converts a token subject and role claim into the
// ActorRef consumed by commands and queries.
func ActorRefFromSubject(subject, role string) (types.ActorRef, error) {
	if subject == "" {
		return types.ActorRef{}, errors.New("go-contacts: token missing subject", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	actorID, err := uuid.Parse(subject)
	if err != nil {
		return types.ActorRef{}, errors.Wrap(err, errors.CategoryAuth, "go-contacts: invalid token subject").
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	return types.ActorRef{ID: actorID, Role: types.NormalizeRole(role)}, nil
}
