package httpapi

import "context"

type contextKey string

const actorContextKey contextKey = "ladder_actor"

// actor is the caller as asserted by the upstream gateway.
type actor struct {
	PlayerID string
	Admin    bool
}

func withActor(ctx context.Context, a actor) context.Context {
	return context.WithValue(ctx, actorContextKey, a)
}

func actorFromContext(ctx context.Context) (actor, bool) {
	a, ok := ctx.Value(actorContextKey).(actor)
	return a, ok
}
