package openapi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/bjaus/outcome"
)

// statusKeyRe accepts the OpenAPI response keys this builder maps: exact
// codes and class ranges ("404", "4XX").
var statusKeyRe = regexp.MustCompile(`^[1-5][0-9]{2}$|^[1-5][Xx]{2}$`)

// BuildRegistry derives one dispatcher per declared (path, method) in the
// document. Each response status keeps its declared content types; JSON
// bodies decode structurally into any, other bodies pass through as text,
// and responses without content are bodiless. Undeclared statuses classify
// as UnexpectedStatusError, exactly as with hand-declared operations.
func BuildRegistry(doc *openapi3.T, opts ...Option) (*outcome.Registry, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	registry := outcome.NewRegistry()

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			built, err := buildOperation(method, p, op, settings)
			if err != nil {
				return nil, err
			}
			registry.Register(built)
		}
	}

	return registry, nil
}

func buildOperation(method, path string, op *openapi3.Operation, settings Settings) (*outcome.Operation, error) {
	codes := make([]string, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var ropts []outcome.ResponseOption
	covered := make(map[byte]bool) // status classes declared as ranges
	var defaultResp *openapi3.Response

	for _, code := range codes {
		rref := op.Responses[code]
		if rref == nil || rref.Value == nil {
			continue
		}
		if code == "default" {
			defaultResp = rref.Value
			continue
		}
		if !statusKeyRe.MatchString(code) {
			return nil, fmt.Errorf("openapi: invalid response code %q for %s %s", code, method, path)
		}
		if strings.HasSuffix(strings.ToUpper(code), "XX") {
			covered[code[0]] = true
		}
		opts, err := responseOptions(code, rref.Value, method, path)
		if err != nil {
			return nil, err
		}
		ropts = append(ropts, opts...)
	}

	// "default" covers every class not already declared as a range; exact
	// declarations still win at dispatch time.
	if defaultResp != nil && settings.DefaultResponses {
		for class := byte('1'); class <= '5'; class++ {
			if covered[class] {
				continue
			}
			opts, err := responseOptions(string(class)+"XX", defaultResp, method, path)
			if err != nil {
				return nil, err
			}
			ropts = append(ropts, opts...)
		}
	}

	return outcome.NewOperation(method, path, ropts...), nil
}

func responseOptions(pattern string, resp *openapi3.Response, method, path string) ([]outcome.ResponseOption, error) {
	if len(resp.Content) == 0 {
		return []outcome.ResponseOption{outcome.Respond(pattern, outcome.ContentTypeNone, nil)}, nil
	}

	types := make([]string, 0, len(resp.Content))
	for ct := range resp.Content {
		types = append(types, ct)
	}
	sort.Strings(types)

	opts := make([]outcome.ResponseOption, 0, len(types))
	for _, ct := range types {
		if !strings.Contains(ct, "/") {
			return nil, fmt.Errorf("openapi: invalid content type %q for %s %s", ct, method, path)
		}
		if isJSONContentType(ct) {
			opts = append(opts, outcome.Respond(pattern, ct, decodeAny))
		} else {
			opts = append(opts, outcome.RespondText(pattern, ct))
		}
	}
	return opts, nil
}

func isJSONContentType(ct string) bool {
	base := ct
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(strings.TrimSpace(base))
	return strings.HasSuffix(base, "/json") || strings.HasSuffix(base, "+json")
}

func decodeAny(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
