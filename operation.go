package outcome

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// validatable is the interface for decoded-body validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}

// DecodeFunc turns a syntactically valid JSON body into a typed value. It is
// the runtime boundary where a declared shape is confirmed: implementations
// never panic and signal rejection through the error return, which the
// dispatcher surfaces as a DecodeError.
type DecodeFunc func(raw json.RawMessage) (any, error)

type contentMode int

const (
	modeNone contentMode = iota // declared bodiless
	modeJSON                    // JSON body, parse gate + decoder
	modeText                    // raw body passed through as string
)

// contentEntry is one declared (content type → body shape) pair for a status.
type contentEntry struct {
	declared string // normalized "type/subtype", or ContentTypeNone
	media    mediaType
	mode     contentMode
	decode   DecodeFunc
}

// responseDef holds the declared content entries for one status pattern.
type responseDef struct {
	entries []contentEntry
}

// expected lists the declared content types in declaration order, for
// UnexpectedContentTypeError diagnostics.
func (d *responseDef) expected() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.declared
	}
	return out
}

func (d *responseDef) match(actual mediaType) *contentEntry {
	for i := range d.entries {
		e := &d.entries[i]
		if e.mode == modeNone {
			continue
		}
		if actual.Matches(e.media) {
			return e
		}
	}
	return nil
}

func (d *responseDef) none() *contentEntry {
	for i := range d.entries {
		if d.entries[i].mode == modeNone {
			return &d.entries[i]
		}
	}
	return nil
}

func (d *responseDef) noneOnly() bool {
	return len(d.entries) == 1 && d.entries[0].mode == modeNone
}

// put adds or replaces the entry for a declared content type. Last
// declaration for the same content type wins.
func (d *responseDef) put(e contentEntry) {
	for i := range d.entries {
		if d.entries[i].declared == e.declared {
			d.entries[i] = e
			return
		}
	}
	d.entries = append(d.entries, e)
}

// Operation describes one (method, path) endpoint: its declared statuses,
// their content types, and the decoder for each. Operations are built once,
// are immutable afterwards, and hold no per-call state, so a single Operation
// serves unlimited concurrent dispatches.
type Operation struct {
	method string
	path   string
	exact  map[int]*responseDef
	ranges map[int]*responseDef // keyed by hundreds digit 1..5
}

// ResponseOption declares one response shape on an Operation.
type ResponseOption func(*Operation)

// NewOperation builds the dispatcher for a (method, path) endpoint from its
// response declarations.
//
// Example:
//
//	op := outcome.NewOperation(http.MethodGet, "/pets/{petId}",
//	    outcome.JSON[Pet](200),
//	    outcome.JSON[APIError](404),
//	    outcome.JSON[APIError](500),
//	)
//
// Malformed declarations (bad status pattern, bad content type) panic: they
// are build-time configuration errors, not dispatch-time conditions.
func NewOperation(method, path string, opts ...ResponseOption) *Operation {
	op := &Operation{
		method: strings.ToUpper(method),
		path:   path,
		exact:  make(map[int]*responseDef),
		ranges: make(map[int]*responseDef),
	}
	for _, opt := range opts {
		opt(op)
	}
	return op
}

// Method returns the operation's HTTP method, uppercased.
func (op *Operation) Method() string { return op.method }

// Path returns the operation's path template.
func (op *Operation) Path() string { return op.path }

// responseFor resolves the declaration covering a status: an exact match
// wins over a class range.
func (op *Operation) responseFor(status int) *responseDef {
	if def, ok := op.exact[status]; ok {
		return def
	}
	if def, ok := op.ranges[status/100]; ok {
		return def
	}
	return nil
}

func (op *Operation) define(pattern string, entry contentEntry) {
	sp, ok := parseStatusPattern(pattern)
	if !ok {
		panic(fmt.Sprintf("outcome: invalid status pattern %q", pattern))
	}

	var def *responseDef
	if sp.class != 0 {
		def = op.ranges[sp.class]
		if def == nil {
			def = &responseDef{}
			op.ranges[sp.class] = def
		}
	} else {
		def = op.exact[sp.exact]
		if def == nil {
			def = &responseDef{}
			op.exact[sp.exact] = def
		}
	}
	def.put(entry)
}

// Respond declares a JSON response shape for a status pattern ("200" or
// "4XX") with a custom decoder. Most callers want the JSON and NoContent
// sugar instead; Respond is the low-level registration used by schema-driven
// builders.
func Respond(pattern, contentType string, fn DecodeFunc) ResponseOption {
	if contentType == ContentTypeNone {
		return func(op *Operation) {
			op.define(pattern, contentEntry{declared: ContentTypeNone, mode: modeNone})
		}
	}
	media, ok := parseMediaType(contentType)
	if !ok {
		panic(fmt.Sprintf("outcome: invalid content type %q", contentType))
	}
	return func(op *Operation) {
		op.define(pattern, contentEntry{
			declared: mimeOf(media),
			media:    media,
			mode:     modeJSON,
			decode:   fn,
		})
	}
}

// RespondText declares a response whose body is passed through verbatim as a
// string (e.g. a text/plain healthcheck). The body skips the JSON parse gate
// but still participates in content-type checking.
func RespondText(pattern, contentType string) ResponseOption {
	media, ok := parseMediaType(contentType)
	if !ok {
		panic(fmt.Sprintf("outcome: invalid content type %q", contentType))
	}
	return func(op *Operation) {
		op.define(pattern, contentEntry{
			declared: mimeOf(media),
			media:    media,
			mode:     modeText,
		})
	}
}

// JSON declares an application/json response for an exact status, decoded
// into T. If T (or *T) implements Validate() error, validation runs after
// unmarshaling and a failure surfaces as a DecodeError.
func JSON[T any](status int) ResponseOption {
	return Respond(strconv.Itoa(status), "application/json", decodeJSON[T]())
}

// JSONRange declares an application/json response for a whole status class
// ("2XX".."5XX"), decoded into T. Exact declarations take precedence at
// dispatch time.
func JSONRange[T any](pattern string) ResponseOption {
	return Respond(pattern, "application/json", decodeJSON[T]())
}

// NoContent declares a bodiless response for an exact status (e.g. 204).
// Dispatch yields body nil and content type ContentTypeNone; per HTTP
// semantics any stray body bytes are ignored.
func NoContent(status int) ResponseOption {
	return Respond(strconv.Itoa(status), ContentTypeNone, nil)
}

func decodeJSON[T any]() DecodeFunc {
	return func(raw json.RawMessage) (any, error) {
		var data T
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}

		if v, ok := any(data).(validatable); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		} else if v, ok := any(&data).(validatable); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}

		return data, nil
	}
}
