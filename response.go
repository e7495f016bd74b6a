package outcome

import (
	"fmt"
	"io"
	"net/http"
)

// RawResponse is the sole input to a Dispatcher: status, headers, and the
// fully-read body. It is produced once per request by the Client and consumed
// once by a dispatcher; nothing at this layer streams.
type RawResponse struct {
	// Status is the HTTP status code.
	Status int

	// Header holds the response headers. Lookup is case-insensitive via
	// http.Header's canonical form.
	Header http.Header

	// Text is the full response body.
	Text string
}

// CaptureResponse drains resp.Body into a RawResponse and closes it. A read
// failure is a transport-level problem and is returned as an error for the
// caller to wrap.
func CaptureResponse(resp *http.Response) (RawResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return RawResponse{
		Status: resp.StatusCode,
		Header: resp.Header,
		Text:   string(body),
	}, nil
}

// contentType returns the parsed media type of the Content-Type header.
// ok is false when the header is absent or unparseable.
func (r RawResponse) contentType() (mt mediaType, ok bool) {
	return parseMediaType(r.Header.Get("Content-Type"))
}
