package outcome_test

import (
	"fmt"
	"net/http"

	"github.com/bjaus/outcome"
)

// Pet is a success body for the example operation.
type Pet struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Tag  *string `json:"tag,omitempty"`
}

// APIError is the declared error body for 404 and 500.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Example() {
	getPet := outcome.NewOperation(http.MethodGet, "/pets/{petId}",
		outcome.JSON[Pet](200),
		outcome.JSON[APIError](404),
		outcome.JSON[APIError](500),
	)

	raw := func(status int, body string) outcome.RawResponse {
		header := http.Header{}
		header.Set("Content-Type", "application/json")
		return outcome.RawResponse{Status: status, Header: header, Text: body}
	}

	// A declared 2xx decodes into the declared success shape.
	if pet, ok := outcome.BodyAs[Pet](getPet.Dispatch(raw(200, `{"id":"42","name":"Buddy"}`))); ok {
		fmt.Printf("success: %s (%s)\n", pet.Name, pet.ID)
	}

	// A declared non-2xx decodes into the declared error shape.
	if apiErr, ok := outcome.BodyAs[APIError](getPet.Dispatch(raw(404, `{"code":404,"message":"not found"}`))); ok {
		fmt.Printf("schema error: %d %s\n", apiErr.Code, apiErr.Message)
	}

	// An undeclared status is a boundary error, never coerced.
	o := getPet.Dispatch(raw(503, `{"status":"down"}`))
	fmt.Printf("boundary: %s\n", o.Kind())

	// Output:
	// success: Buddy (42)
	// schema error: 404 not found
	// boundary: unexpected_status
}

func ExampleRegistry() {
	registry := outcome.NewRegistry()
	registry.Register(
		outcome.NewOperation(http.MethodGet, "/pets/{petId}", outcome.JSON[Pet](200)),
		outcome.NewOperation(http.MethodDelete, "/pets/{petId}", outcome.NoContent(204)),
	)

	d, err := registry.Lookup(http.MethodDelete, "/pets/{petId}")
	if err != nil {
		fmt.Println(err)
		return
	}

	o := d.Dispatch(outcome.RawResponse{Status: 204, Header: http.Header{}})
	fmt.Println(o.Kind())

	// Output:
	// success
}
