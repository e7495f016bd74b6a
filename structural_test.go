package outcome

import "testing"

func TestStructural_Dispatch(t *testing.T) {
	d := Structural()

	t.Run("2xx json decodes structurally", func(t *testing.T) {
		o := d.Dispatch(rawResponse(200, "application/json", `{"id":"42"}`))

		s, ok := o.(*Success)
		if !ok {
			t.Fatalf("outcome = %T, want *Success", o)
		}
		body, ok := s.Body.(map[string]any)
		if !ok {
			t.Fatalf("Body = %T, want map[string]any", s.Body)
		}
		if body["id"] != "42" {
			t.Errorf("body[id] = %v, want 42", body["id"])
		}
	})

	t.Run("non-2xx classifies as http error, never unexpected status", func(t *testing.T) {
		o := d.Dispatch(rawResponse(418, "application/json", `{"code":418}`))

		if _, ok := o.(*HTTPError); !ok {
			t.Fatalf("outcome = %T, want *HTTPError", o)
		}
	})

	t.Run("parse discipline is kept", func(t *testing.T) {
		o := d.Dispatch(rawResponse(200, "application/json", `{not valid`))

		if _, ok := o.(*ParseError); !ok {
			t.Fatalf("outcome = %T, want *ParseError", o)
		}
	})

	t.Run("json structured suffix decodes", func(t *testing.T) {
		o := d.Dispatch(rawResponse(400, "application/problem+json", `{"title":"bad"}`))

		he, ok := o.(*HTTPError)
		if !ok {
			t.Fatalf("outcome = %T, want *HTTPError", o)
		}
		if _, ok := he.Body.(map[string]any); !ok {
			t.Errorf("Body = %T, want map[string]any", he.Body)
		}
	})

	t.Run("non-json body passes through as text", func(t *testing.T) {
		o := d.Dispatch(rawResponse(200, "text/plain", "ok"))

		s, ok := o.(*Success)
		if !ok {
			t.Fatalf("outcome = %T, want *Success", o)
		}
		if s.Body != "ok" {
			t.Errorf("Body = %v, want ok", s.Body)
		}
	})

	t.Run("empty body is bodiless", func(t *testing.T) {
		o := d.Dispatch(rawResponse(204, "", ""))

		s, ok := o.(*Success)
		if !ok {
			t.Fatalf("outcome = %T, want *Success", o)
		}
		if s.ContentType != ContentTypeNone || s.Body != nil {
			t.Errorf("got (%q, %v), want (none, nil)", s.ContentType, s.Body)
		}
	})
}
