package outcome

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Dispatcher classifies one RawResponse into exactly one Outcome. Dispatch
// is pure and stateless: every path is terminal within a single invocation,
// nothing is retried, and concurrent calls need no coordination.
type Dispatcher interface {
	Dispatch(raw RawResponse) Outcome
}

// Dispatch classifies a raw response against the operation's declarations.
//
// The decision tree, every branch terminal:
//
//  1. Undeclared status → UnexpectedStatusError.
//  2. Declared status, content type matching no declaration →
//     UnexpectedContentTypeError.
//  3. Bodiless declaration → Success or HTTPError with a nil body.
//  4. JSON declaration, body not valid JSON → ParseError.
//  5. Decoder rejects the parsed shape → DecodeError.
//  6. Otherwise → Success (2xx) or HTTPError (non-2xx) with the decoded body.
func (op *Operation) Dispatch(raw RawResponse) Outcome {
	def := op.responseFor(raw.Status)
	if def == nil {
		return &UnexpectedStatusError{Status: raw.Status, Body: raw.Text}
	}

	actual, hasType := raw.contentType()

	// A status declared only as bodiless is treated as bodiless regardless
	// of header or stray body bytes, per HTTP semantics for 204-style
	// responses. A status declaring both shapes picks by header presence.
	if none := def.none(); none != nil && (def.noneOnly() || !hasType) {
		return classify(raw.Status, ContentTypeNone, nil)
	}

	if !hasType {
		return &UnexpectedContentTypeError{
			Status:   raw.Status,
			Expected: def.expected(),
			Body:     raw.Text,
		}
	}

	entry := def.match(actual)
	if entry == nil {
		return &UnexpectedContentTypeError{
			Status:   raw.Status,
			Expected: def.expected(),
			Actual:   mimeOf(actual),
			Body:     raw.Text,
		}
	}

	if entry.mode == modeText {
		return classify(raw.Status, entry.declared, raw.Text)
	}

	if !gjson.Valid(raw.Text) {
		return &ParseError{
			Status:      raw.Status,
			ContentType: entry.declared,
			Err:         ErrInvalidJSON,
			Body:        raw.Text,
		}
	}

	body, err := entry.decode(json.RawMessage(raw.Text))
	if err != nil {
		return &DecodeError{
			Status:      raw.Status,
			ContentType: entry.declared,
			Err:         err,
			Body:        raw.Text,
		}
	}

	return classify(raw.Status, entry.declared, body)
}
