// Package openapi builds outcome dispatch registries from OpenAPI documents.
//
// It realizes the schema-source side of the outcome package: load an OpenAPI
// 3 (or Swagger 2.0) document from a file or URL, then derive one dispatcher
// per declared (path, method) with the document's statuses and content types.
// Bodies decode structurally into any; for exact compile-time body types,
// declare operations by hand with outcome.NewOperation.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Settings configures loading and registry construction.
type Settings struct {
	// HTTPTimeout bounds each HTTP request when loading from a URL.
	HTTPTimeout time.Duration

	// DefaultResponses maps a document's "default" responses onto every
	// status class not otherwise declared as a range. Off by default: a
	// default response swallows the UnexpectedStatus classification for
	// statuses the operation never names.
	DefaultResponses bool
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{HTTPTimeout: 10 * time.Second}
}

// Option mutates Settings.
type Option func(*Settings)

// WithHTTPTimeout bounds each HTTP request when loading from a URL.
func WithHTTPTimeout(d time.Duration) Option {
	return func(s *Settings) { s.HTTPTimeout = d }
}

// WithDefaultResponses opts in to mapping "default" responses; see
// Settings.DefaultResponses.
func WithDefaultResponses(enable bool) Option {
	return func(s *Settings) { s.DefaultResponses = enable }
}

// Load reads, validates, and returns an OpenAPI v3 document. Swagger 2.0
// input is converted to v3 via kin-openapi's openapi2conv. input may be a
// filesystem path or an http/https URL; YAML and JSON are both accepted.
func Load(ctx context.Context, input string, opts ...Option) (*openapi3.T, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("openapi: input is empty")
	}

	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	u, uerr := url.Parse(input)
	if uerr == nil && u.Scheme != "" && u.Host != "" {
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, fmt.Errorf("openapi: unsupported URL scheme %q", scheme)
		}

		raw, err := fetch(ctx, input, settings.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("openapi: fetch %s: %w", input, err)
		}

		version, err := detectVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s: %w", input, err)
		}

		if version == 2 {
			return convertV2(ctx, raw)
		}

		loader := newLoader(settings)
		doc, err := loader.LoadFromURI(u)
		if err != nil {
			return nil, fmt.Errorf("openapi: load %s: %w", input, err)
		}
		return validated(ctx, doc)
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("openapi: resolve path: %w", err)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi: read file: %w", err)
	}

	version, err := detectVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", abs, err)
	}

	if version == 2 {
		return convertV2(ctx, raw)
	}

	loader := newLoader(settings)
	doc, err := loader.LoadFromFile(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", abs, err)
	}
	return validated(ctx, doc)
}

func newLoader(settings Settings) *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	client := &http.Client{Timeout: settings.HTTPTimeout}
	loader.ReadFromURIFunc = func(l *openapi3.Loader, uri *url.URL) ([]byte, error) {
		switch strings.ToLower(uri.Scheme) {
		case "", "file":
			path := uri.Path
			if path == "" {
				path = uri.Opaque
			}
			return os.ReadFile(path)
		case "http", "https":
			return fetchWith(client, uri.String())
		default:
			return nil, fmt.Errorf("unsupported ref scheme: %s", uri.Scheme)
		}
	}
	return loader
}

func fetchWith(client *http.Client, rawURL string) ([]byte, error) {
	resp, err := client.Get(rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}

func validated(ctx context.Context, doc *openapi3.T) (*openapi3.T, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// convertV2 unmarshals Swagger 2.0 bytes and converts them to v3. The bytes
// go through a YAML→JSON round trip first: the openapi2 types only carry
// JSON unmarshalers.
func convertV2(ctx context.Context, raw []byte) (*openapi3.T, error) {
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("openapi: parse swagger 2.0: %w", err)
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse swagger 2.0: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("openapi: parse swagger 2.0: %w", err)
	}
	doc, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("openapi: convert v2 to v3: %w", err)
	}
	return validated(ctx, doc)
}

// detectVersion returns 3 for OpenAPI v3, 2 for Swagger 2.0, else an error.
// yaml.Unmarshal accepts both YAML and JSON input.
func detectVersion(raw []byte) (int, error) {
	var probe struct {
		Swagger string `yaml:"swagger"`
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("parse document: %w", err)
	}
	switch {
	case strings.HasPrefix(probe.OpenAPI, "3"):
		return 3, nil
	case strings.HasPrefix(probe.Swagger, "2"):
		return 2, nil
	}
	return 0, errors.New("unknown or unsupported OpenAPI/Swagger version")
}

func fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
