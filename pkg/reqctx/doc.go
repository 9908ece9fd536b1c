// Package reqctx carries request-scoped metadata through context.Context.
//
// The HTTP request-id middleware attaches a RequestMeta to every request
// context; services and the slog context handler in pkg/logs read it back:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: rid})
//	rid := reqctx.RequestIDFromContext(ctx)
//
// Context keys are unexported so other packages cannot collide with them.
package reqctx
