package outcome

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	resp   *http.Response
	err    error
	calls  int
	gotCtx context.Context
}

func (s *stubTransport) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	s.gotCtx = req.Context()
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func jsonResponse(status int, body string) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newRequest(t *testing.T, method, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	return req
}

func TestClient_Call(t *testing.T) {
	registry := NewRegistry()
	registry.Register(getPetOperation())

	t.Run("success channel carries the typed body", func(t *testing.T) {
		transport := &stubTransport{resp: jsonResponse(200, `{"id":"42","name":"Buddy"}`)}
		client := NewClient(transport, WithRegistry(registry))

		success, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/42"))

		require.NoError(t, err)
		require.NotNil(t, success)
		assert.Equal(t, 200, success.Status)
		assert.Equal(t, pet{ID: "42", Name: "Buddy"}, success.Body)
	})

	t.Run("schema error arrives on the error channel", func(t *testing.T) {
		transport := &stubTransport{resp: jsonResponse(404, `{"code":404,"message":"not found"}`)}
		client := NewClient(transport, WithRegistry(registry))

		success, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/42"))

		assert.Nil(t, success)
		var he *HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, 404, he.Status)

		body, ok := ErrorBodyAs[apiError](err)
		require.True(t, ok)
		assert.Equal(t, apiError{Code: 404, Message: "not found"}, body)
	})

	t.Run("transport failure converts before dispatch", func(t *testing.T) {
		cause := errors.New("connection refused")
		transport := &stubTransport{err: cause}
		dispatched := false
		client := NewClient(transport,
			WithRegistry(registry),
			WithOnDispatch(func(ctx context.Context, method, path string, status int) {
				dispatched = true
			}),
		)

		_, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/42"))

		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.ErrorIs(t, err, cause)
		assert.False(t, dispatched, "dispatcher must not run on transport failure")
	})

	t.Run("missing registry fails loudly", func(t *testing.T) {
		client := NewClient(&stubTransport{})

		_, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/42"))

		assert.ErrorIs(t, err, ErrNoRegistry)
	})

	t.Run("unregistered operation fails loudly", func(t *testing.T) {
		client := NewClient(&stubTransport{}, WithRegistry(registry))

		_, err := client.Call(context.Background(), http.MethodDelete, "/pets/{petId}",
			newRequest(t, http.MethodDelete, "http://api.test/pets/42"))

		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}

func TestClient_Execute(t *testing.T) {
	t.Run("runs an explicit dispatcher against a live server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, `{"id":"7","name":"Rex"}`)
		}))
		defer server.Close()

		client := NewClient(server.Client())
		success, err := client.Execute(context.Background(), getPetOperation(),
			newRequest(t, http.MethodGet, server.URL+"/pets/7"))

		require.NoError(t, err)
		assert.Equal(t, pet{ID: "7", Name: "Rex"}, success.Body)
	})

	t.Run("undeclared status from a live server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"status":"down"}`)
		}))
		defer server.Close()

		client := NewClient(server.Client())
		_, err := client.Execute(context.Background(), getPetOperation(),
			newRequest(t, http.MethodGet, server.URL+"/pets/7"))

		var ue *UnexpectedStatusError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, http.StatusServiceUnavailable, ue.Status)
	})
}

func TestClient_Hooks(t *testing.T) {
	registry := NewRegistry()
	registry.Register(getPetOperation())

	type ctxKey struct{}

	t.Run("hooks run in order with context chaining", func(t *testing.T) {
		var order []string
		transport := &stubTransport{resp: jsonResponse(200, `{"id":"1","name":"x"}`)}

		client := NewClient(transport,
			WithRegistry(registry),
			WithOnRequest(func(ctx context.Context, method, path string) context.Context {
				order = append(order, "request-1")
				return context.WithValue(ctx, ctxKey{}, "seen")
			}),
			WithOnRequest(func(ctx context.Context, method, path string) context.Context {
				order = append(order, "request-2")
				assert.Equal(t, "seen", ctx.Value(ctxKey{}), "context chains through hooks")
				return ctx
			}),
			WithOnDispatch(func(ctx context.Context, method, path string, status int) {
				order = append(order, "dispatch")
				assert.Equal(t, 200, status)
			}),
			WithOnSuccess(func(ctx context.Context, method, path string, status int, d time.Duration) {
				order = append(order, "success")
				assert.GreaterOrEqual(t, d, time.Duration(0))
			}),
		)

		_, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/1"))

		require.NoError(t, err)
		assert.Equal(t, []string{"request-1", "request-2", "dispatch", "success"}, order)
		assert.Equal(t, "seen", transport.gotCtx.Value(ctxKey{}), "enriched context reaches the transport")
	})

	t.Run("failure hook receives the classified failure", func(t *testing.T) {
		var got Failure
		transport := &stubTransport{resp: jsonResponse(404, `{"code":404,"message":"nope"}`)}

		client := NewClient(transport,
			WithRegistry(registry),
			WithOnFailure(func(ctx context.Context, method, path string, f Failure, d time.Duration) {
				got = f
			}),
		)

		_, err := client.Call(context.Background(), http.MethodGet, "/pets/{petId}",
			newRequest(t, http.MethodGet, "http://api.test/pets/1"))

		require.Error(t, err)
		require.NotNil(t, got)
		assert.Equal(t, KindHTTPError, got.Kind())
	})
}
