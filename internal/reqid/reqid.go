// Package reqid carries the per-request id through contexts.
package reqid

import "context"

type contextKey string

const key contextKey = "request_id"

// With returns a copy of ctx carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

// From returns the request id stored in ctx, or "".
func From(ctx context.Context) string {
	id, _ := ctx.Value(key).(string)
	return id
}
