package outcome

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidJSON is the cause recorded on a ParseError when a declared-JSON
// body is not syntactically valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// Kind discriminates Outcome variants at runtime. Every boundary kind is
// identical in shape across operations, so a single generic handler can cover
// all of them.
type Kind string

const (
	KindSuccess               Kind = "success"
	KindHTTPError             Kind = "http_error"
	KindTransport             Kind = "transport_error"
	KindUnexpectedStatus      Kind = "unexpected_status"
	KindUnexpectedContentType Kind = "unexpected_content_type"
	KindParse                 Kind = "parse_error"
	KindDecode                Kind = "decode_error"
)

// HTTPError is a schema error: a status the operation explicitly declares as
// a failure (404, 500, ...), with its body decoded per the declaration. It is
// distinguishable from every boundary error by type and by Kind.
type HTTPError struct {
	// Status is the declared non-2xx status code.
	Status int

	// ContentType is the declared content type that matched, or
	// ContentTypeNone for bodiless declarations.
	ContentType string

	// Body is the decoded body. Its dynamic type is determined entirely by
	// (status, content type) per the operation's declarations; nil for
	// bodiless declarations.
	Body any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *HTTPError) Kind() Kind { return KindHTTPError }

// TransportError reports that the transport call itself failed: the request
// never produced a status code. It is the only failure that originates before
// a RawResponse exists, and the dispatcher is never invoked when it occurs.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Kind() Kind    { return KindTransport }

// UnexpectedStatusError reports a response status the operation does not
// declare at all.
type UnexpectedStatusError struct {
	Status int
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

func (e *UnexpectedStatusError) Kind() Kind { return KindUnexpectedStatus }

// UnexpectedContentTypeError reports a declared status whose Content-Type
// header matches none of the declared content types for that status. Actual
// is empty when the header was absent or unparseable.
type UnexpectedContentTypeError struct {
	Status   int
	Expected []string
	Actual   string
	Body     string
}

func (e *UnexpectedContentTypeError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "<none>"
	}
	return fmt.Sprintf("unexpected content type %s for status %d (expected %s)",
		actual, e.Status, strings.Join(e.Expected, ", "))
}

func (e *UnexpectedContentTypeError) Kind() Kind { return KindUnexpectedContentType }

// ParseError reports that a declared-JSON body failed to parse syntactically.
type ParseError struct {
	Status      int
	ContentType string
	Err         error
	Body        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s body for status %d: %v", e.ContentType, e.Status, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Kind() Kind    { return KindParse }

// DecodeError reports that a body parsed as JSON but the decoder for this
// (operation, status) rejected its shape.
type DecodeError struct {
	Status      int
	ContentType string
	Err         error
	Body        string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s body for status %d: %v", e.ContentType, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Kind() Kind    { return KindDecode }
