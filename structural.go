package outcome

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Structural returns the zero-declaration dispatcher: it classifies purely
// by status class and decodes JSON bodies structurally into any. It trades
// the declared-status exhaustiveness guarantee for convenience — no status is
// ever UnexpectedStatusError and no content type is ever
// UnexpectedContentTypeError. Parse discipline is kept: a JSON content type
// with a malformed body still yields a ParseError.
//
// Use NewOperation for schema-backed operations; Structural is the fallback
// for endpoints with no declarations at hand.
func Structural() Dispatcher {
	return structural{}
}

type structural struct{}

func (structural) Dispatch(raw RawResponse) Outcome {
	if raw.Text == "" {
		return classify(raw.Status, ContentTypeNone, nil)
	}

	mt, ok := raw.contentType()
	if !ok {
		// Body present but no usable Content-Type: pass the text through.
		return classify(raw.Status, "", raw.Text)
	}

	if !isJSONMedia(mt) {
		return classify(raw.Status, mimeOf(mt), raw.Text)
	}

	if !gjson.Valid(raw.Text) {
		return &ParseError{
			Status:      raw.Status,
			ContentType: mimeOf(mt),
			Err:         ErrInvalidJSON,
			Body:        raw.Text,
		}
	}

	var body any
	if err := json.Unmarshal([]byte(raw.Text), &body); err != nil {
		return &DecodeError{
			Status:      raw.Status,
			ContentType: mimeOf(mt),
			Err:         err,
			Body:        raw.Text,
		}
	}

	return classify(raw.Status, mimeOf(mt), body)
}
