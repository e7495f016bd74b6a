package outcome

import "errors"

// Outcome is the classified result of dispatching one RawResponse: a sealed
// sum of Success, *HTTPError, and the five boundary errors. Consumers switch
// on the concrete type or on Kind; the set of variants is closed.
type Outcome interface {
	Kind() Kind

	// outcome seals the set of variants to this package.
	outcome()
}

// Failure is the error half of an Outcome: every variant except Success.
// All failures are ordinary Go errors, so the executor can return them on
// the error channel while callers still pattern-match the concrete types.
type Failure interface {
	Outcome
	error
}

// Success carries a declared 2xx response. Body's dynamic type is a pure
// function of (Status, ContentType) per the operation's declarations; it is
// nil when ContentType is ContentTypeNone.
type Success struct {
	Status      int
	ContentType string
	Body        any
}

func (s *Success) Kind() Kind { return KindSuccess }

func (s *Success) outcome()                    {}
func (e *HTTPError) outcome()                  {}
func (e *TransportError) outcome()             {}
func (e *UnexpectedStatusError) outcome()      {}
func (e *UnexpectedContentTypeError) outcome() {}
func (e *ParseError) outcome()                 {}
func (e *DecodeError) outcome()                {}

// BodyAs extracts a typed body from a Success or HTTPError outcome. It
// reports false for boundary errors and for bodies of a different type.
func BodyAs[T any](o Outcome) (T, bool) {
	var body any
	switch v := o.(type) {
	case *Success:
		body = v.Body
	case *HTTPError:
		body = v.Body
	default:
		var zero T
		return zero, false
	}
	t, ok := body.(T)
	return t, ok
}

// ErrorBodyAs extracts a typed body from an HTTPError in an error chain.
// Use it on the error channel of Client calls:
//
//	pet, err := client.Call(ctx, "GET", "/pets/{petId}", req)
//	if apiErr, ok := outcome.ErrorBodyAs[APIError](err); ok {
//	    // declared failure status, typed body
//	}
func ErrorBodyAs[T any](err error) (T, bool) {
	var he *HTTPError
	if !errors.As(err, &he) {
		var zero T
		return zero, false
	}
	t, ok := he.Body.(T)
	return t, ok
}

// classify wraps a decoded body as Success or HTTPError per the status class.
func classify(status int, contentType string, body any) Outcome {
	if IsSuccess(status) {
		return &Success{Status: status, ContentType: contentType, Body: body}
	}
	return &HTTPError{Status: status, ContentType: contentType, Body: body}
}
