package outcome

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrNoRegistry is returned by Client.Call when no registry was supplied at
// construction.
var ErrNoRegistry = errors.New("client has no registry")

// Transport executes one prepared HTTP request. *http.Client satisfies it;
// adapt anything else to this shape. Cancellation travels through the
// request's context — once a response body has been read, classification
// itself is not cancellable (it completes in bounded time).
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client orchestrates one call: transport execution, RawResponse capture,
// and a single dispatch. It converts transport-level failure into
// TransportError before the dispatcher can run, and splits the dispatcher's
// Outcome across Go's two channels: Success as the value, everything else as
// the error.
//
// Client is safe for concurrent use after construction.
type Client struct {
	transport Transport
	registry  *Registry
	hooks     hooks
}

// NewClient creates a Client over the given transport. A nil transport means
// http.DefaultClient.
//
// Example:
//
//	client := outcome.NewClient(httpClient,
//	    outcome.WithRegistry(registry),
//	    outcome.WithOnFailure(func(ctx context.Context, method, path string, f outcome.Failure, d time.Duration) {
//	        logger.Error("call failed", "op", method+" "+path, "kind", f.Kind())
//	    }),
//	)
func NewClient(transport Transport, opts ...Option) *Client {
	if transport == nil {
		transport = http.DefaultClient
	}
	c := &Client{transport: transport}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call resolves the dispatcher for (method, path) from the registry and
// executes the prepared request. The path is the operation's template (e.g.
// "/pets/{petId}"), not the concrete URL — request preparation, including
// parameter substitution, happens before Call.
func (c *Client) Call(ctx context.Context, method, path string, req *http.Request) (*Success, error) {
	if c.registry == nil {
		return nil, ErrNoRegistry
	}
	d, err := c.registry.Lookup(method, path)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, d, req, method, path)
}

// Execute runs the prepared request through an explicitly chosen dispatcher,
// bypassing registry resolution.
func (c *Client) Execute(ctx context.Context, d Dispatcher, req *http.Request) (*Success, error) {
	return c.do(ctx, d, req, req.Method, req.URL.Path)
}

func (c *Client) do(ctx context.Context, d Dispatcher, req *http.Request, method, path string) (*Success, error) {
	ctx = c.callOnRequest(ctx, method, path)
	req = req.WithContext(ctx)

	start := time.Now()

	resp, err := c.transport.Do(req)
	if err != nil {
		f := &TransportError{Err: err}
		c.callOnFailure(ctx, method, path, f, time.Since(start))
		return nil, f
	}

	raw, err := CaptureResponse(resp)
	if err != nil {
		f := &TransportError{Err: err}
		c.callOnFailure(ctx, method, path, f, time.Since(start))
		return nil, f
	}

	c.callOnDispatch(ctx, method, path, raw.Status)

	switch o := d.Dispatch(raw).(type) {
	case *Success:
		c.callOnSuccess(ctx, method, path, o.Status, time.Since(start))
		return o, nil
	case Failure:
		c.callOnFailure(ctx, method, path, o, time.Since(start))
		return nil, o
	default:
		// The Outcome set is sealed; a new variant here is a bug.
		panic("outcome: unreachable dispatch variant")
	}
}

func (c *Client) callOnRequest(ctx context.Context, method, path string) context.Context {
	for _, fn := range c.hooks.onRequest {
		ctx = fn(ctx, method, path)
	}
	return ctx
}

func (c *Client) callOnDispatch(ctx context.Context, method, path string, status int) {
	for _, fn := range c.hooks.onDispatch {
		fn(ctx, method, path, status)
	}
}

func (c *Client) callOnSuccess(ctx context.Context, method, path string, status int, duration time.Duration) {
	for _, fn := range c.hooks.onSuccess {
		fn(ctx, method, path, status, duration)
	}
}

func (c *Client) callOnFailure(ctx context.Context, method, path string, failure Failure, duration time.Duration) {
	for _, fn := range c.hooks.onFailure {
		fn(ctx, method, path, failure, duration)
	}
}
