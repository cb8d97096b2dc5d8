package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	actorHeader   = "X-Actor-ID"
	actorValueKey = "actor_id"
)

// ActorIdentity extracts the device-local actor id from the request header.
// Actors are self-asserted identities, not authenticated accounts; the id is
// only used for visibility filtering and ownership stamping.
func ActorIdentity(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			actorID := strings.TrimSpace(string(ctx.Request.Header.Peek(actorHeader)))
			if actorID != "" {
				ctx.SetUserValue(actorValueKey, actorID)
			}
			next(ctx)
		}
	}
}

// ActorID returns the requesting actor's id, or "" for anonymous callers.
func ActorID(ctx *fasthttp.RequestCtx) string {
	if v, ok := ctx.UserValue(actorValueKey).(string); ok {
		return v
	}
	return strings.TrimSpace(string(ctx.Request.Header.Peek(actorHeader)))
}
