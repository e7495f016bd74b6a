package outcome

import (
	"context"
	"time"
)

// OnRequestFunc is called before the transport executes. Use this to enrich
// the context with logging fields or trace spans; the returned context is
// attached to the outgoing request and used for the rest of the call.
type OnRequestFunc func(ctx context.Context, method, path string) context.Context

// OnDispatchFunc is called after the raw response is captured, just before
// the dispatcher classifies it.
type OnDispatchFunc func(ctx context.Context, method, path string, status int)

// OnSuccessFunc is called when a call classifies as Success.
type OnSuccessFunc func(ctx context.Context, method, path string, status int, duration time.Duration)

// OnFailureFunc is called when a call classifies as any Failure, including
// TransportError (in which case the dispatcher never ran).
type OnFailureFunc func(ctx context.Context, method, path string, failure Failure, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onRequest  []OnRequestFunc
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
}

// Option configures a Client.
type Option func(*Client)

// WithRegistry supplies the dispatch registry used by Client.Call. Without
// one, Call fails with ErrNoRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *Client) {
		c.registry = r
	}
}

// WithOnRequest adds a hook called before the transport executes. Multiple
// hooks are called in order, with context chaining through each.
//
// Example:
//
//	outcome.WithOnRequest(func(ctx context.Context, method, path string) context.Context {
//	    return logx.WithCtx(ctx, slog.String("op", method+" "+path))
//	})
func WithOnRequest(fn OnRequestFunc) Option {
	return func(c *Client) {
		c.hooks.onRequest = append(c.hooks.onRequest, fn)
	}
}

// WithOnDispatch adds a hook called just before classification. Multiple
// hooks are called in order.
//
// Example:
//
//	outcome.WithOnDispatch(func(ctx context.Context, method, path string, status int) {
//	    logger.Debug("classifying response", "status", status)
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(c *Client) {
		c.hooks.onDispatch = append(c.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called when a call classifies as Success.
// Multiple hooks are called in order.
//
// Example:
//
//	outcome.WithOnSuccess(func(ctx context.Context, method, path string, status int, d time.Duration) {
//	    metrics.Timing("api.success", d, "op:"+method+" "+path)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(c *Client) {
		c.hooks.onSuccess = append(c.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called when a call classifies as any Failure.
// Multiple hooks are called in order.
//
// Example:
//
//	outcome.WithOnFailure(func(ctx context.Context, method, path string, f outcome.Failure, d time.Duration) {
//	    metrics.Incr("api.failure", "kind:"+string(f.Kind()))
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(c *Client) {
		c.hooks.onFailure = append(c.hooks.onFailure, fn)
	}
}
