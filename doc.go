// Package outcome is a typed HTTP response dispatch layer. It correlates an
// operation's declared responses (status codes, content types, body shapes)
// with exact decoded values, and classifies every raw response into exactly
// one of a typed success, a typed schema error, or a fixed set of boundary
// failures.
//
// # Quick Start
//
// Declare an operation's responses:
//
//	type Pet struct {
//	    ID   string  `json:"id"`
//	    Name string  `json:"name"`
//	    Tag  *string `json:"tag,omitempty"`
//	}
//
//	type APIError struct {
//	    Code    int    `json:"code"`
//	    Message string `json:"message"`
//	}
//
//	getPet := outcome.NewOperation(http.MethodGet, "/pets/{petId}",
//	    outcome.JSON[Pet](200),
//	    outcome.JSON[APIError](404),
//	    outcome.JSON[APIError](500),
//	)
//
// Register it and call through a client:
//
//	registry := outcome.NewRegistry()
//	registry.Register(getPet)
//
//	client := outcome.NewClient(nil, outcome.WithRegistry(registry))
//
//	success, err := client.Call(ctx, http.MethodGet, "/pets/{petId}", req)
//	if err != nil {
//	    if apiErr, ok := outcome.ErrorBodyAs[APIError](err); ok {
//	        // declared 404/500, typed body
//	    }
//	    // otherwise one of the five boundary errors
//	}
//	pet := success.Body.(Pet)
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Operations: declare which statuses and content types exist, and the
//     decoder for each body shape
//   - Dispatcher: classifies one raw response into one tagged Outcome
//   - Client: executes the transport call and splits the Outcome across
//     Go's value/error channels
//
// Classification is a single-level decision tree, every path terminal:
//
//  1. Status not declared → UnexpectedStatusError
//  2. Content type not declared for that status → UnexpectedContentTypeError
//  3. Bodiless declaration → Success/HTTPError with nil body
//  4. Declared JSON that does not parse → ParseError
//  5. Parsed JSON the decoder rejects → DecodeError
//  6. Otherwise → Success (2xx) or HTTPError (non-2xx), typed body
//
// Success is computed structurally from the status (first digit 2), never
// from a table of known codes, so schema-declared codes like 250 classify as
// success.
//
// # Two Failure Families
//
// Schema errors (HTTPError) are statuses an API documents as failures: 404,
// 500. They are declared per operation and carry bodies typed per the
// declaration.
//
// Boundary errors exist regardless of any declaration and are identical in
// shape across all operations: TransportError, UnexpectedStatusError,
// UnexpectedContentTypeError, ParseError, DecodeError. One generic handler
// covers them everywhere.
//
// The dispatcher never panics and never folds an unrecognized status into a
// nearby declared one; every condition is a returned tagged value. The only
// failure originating before a response exists is TransportError, which the
// Client produces without ever invoking the dispatcher.
//
// # Declarations
//
// Response options compose on NewOperation:
//
//   - JSON[T](status): application/json body decoded into T
//   - JSONRange[T]("4XX"): a whole status class; exact declarations win
//   - NoContent(status): bodiless (204-style), body nil, content type "none"
//   - RespondText(pattern, ct): raw body passed through as string
//   - Respond(pattern, ct, fn): custom decoder, the low-level form
//
// Decoded types implementing Validate() error are validated after
// unmarshaling; a validation failure surfaces as a DecodeError, never a
// falsely-typed Success.
//
// # Structural Mode
//
// Structural() returns a dispatcher that needs no declarations: 2xx is
// Success, anything else is HTTPError, JSON bodies decode into any. It gives
// up the exhaustiveness guarantee in exchange for zero setup. The openapi
// subpackage builds registries of structural dispatchers from an OpenAPI
// document.
//
// # Hooks
//
// Hooks provide observability without coupling to a logging or metrics
// system, configured by functional options on the client: WithOnRequest
// (context enrichment before the transport call), WithOnDispatch,
// WithOnSuccess, WithOnFailure. Multiple hooks of one type run in order.
//
// # Thread Safety
//
// Operations and dispatchers are immutable after construction and hold no
// per-call state; unlimited concurrent dispatches need no coordination.
// Registries are written at initialization and read thereafter; do not
// register after lookups begin. Clients are safe for concurrent use.
package outcome
