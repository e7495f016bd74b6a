package outcome

import (
	"strconv"
	"strings"

	"github.com/elnormous/contenttype"
)

// ContentTypeNone is the sentinel content type for declared responses that
// carry no body (e.g. 204 No Content).
const ContentTypeNone = "none"

// IsSuccess reports whether status belongs to the 2xx class. The check is
// structural, so non-standard codes declared by a schema (250, 299) are
// honored.
func IsSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// statusPattern is a parsed response-status declaration: either an exact
// code (404) or a whole class ("4XX").
type statusPattern struct {
	exact int  // valid when class == 0
	class int  // hundreds digit 1..5 when a range was declared
}

// parseStatusPattern accepts "200".."599" and "1XX".."5XX" (case-insensitive).
func parseStatusPattern(pattern string) (statusPattern, bool) {
	if len(pattern) != 3 {
		return statusPattern{}, false
	}
	upper := strings.ToUpper(pattern)
	if strings.HasSuffix(upper, "XX") {
		class := int(upper[0] - '0')
		if class < 1 || class > 5 {
			return statusPattern{}, false
		}
		return statusPattern{class: class}, true
	}
	code, err := strconv.Atoi(pattern)
	if err != nil || code < 100 || code > 599 {
		return statusPattern{}, false
	}
	return statusPattern{exact: code}, true
}

// mediaType aliases the contenttype representation so the rest of the
// package does not repeat the import.
type mediaType = contenttype.MediaType

// parseMediaType parses a Content-Type header value, discarding parameters.
// Returns false when the header is absent or unparseable.
func parseMediaType(header string) (contenttype.MediaType, bool) {
	if strings.TrimSpace(header) == "" {
		return contenttype.MediaType{}, false
	}
	mt := contenttype.NewMediaType(header)
	if mt.Type == "" && mt.Subtype == "" {
		return contenttype.MediaType{}, false
	}
	return mt, true
}

// mimeOf renders a media type as "type/subtype", the header value up to its
// first parameter.
func mimeOf(mt contenttype.MediaType) string {
	return mt.Type + "/" + mt.Subtype
}

// isJSONMedia reports whether a media type carries a JSON payload, covering
// application/json and +json structured suffixes.
func isJSONMedia(mt contenttype.MediaType) bool {
	return mt.Subtype == "json" || strings.HasSuffix(mt.Subtype, "+json")
}
