// Package endpoint resolves the transport Endpoint a request is sent to.
package endpoint

import (
	"context"
	"fmt"
	"strings"

	"github.com/smithy-lang/smithy-runtime-go/endpoint/rulesfn"
	"github.com/smithy-lang/smithy-runtime-go/transport"
)

// Resolver resolves an Endpoint for an operation, given per-call
// parameters (e.g. region, any input members bound to hostLabel).
type Resolver interface {
	ResolveEndpoint(ctx context.Context, params Parameters) (transport.Endpoint, error)
}

// Parameters carries the inputs an Resolver may consult: the operation
// identifier and a set of named values, including any hostLabel-bound input
// members keyed by member name.
type Parameters struct {
	OperationID string
	Values      map[string]string
}

// Static is a Resolver that always returns the same Endpoint, for services
// with a single, non-parameterized endpoint.
type Static struct {
	Endpoint transport.Endpoint
}

// ResolveEndpoint implements Resolver.
func (s Static) ResolveEndpoint(context.Context, Parameters) (transport.Endpoint, error) {
	return s.Endpoint, nil
}

// HostLabel composes a static host with per-operation host-prefix segments
// computed from input members annotated with the smithy.api#hostLabel
// trait. Each segment is substituted into Prefix's "{member}" placeholders
// and validated as an RFC 1123 DNS label; an invalid or missing label is
// fatal, per spec.
type HostLabel struct {
	// BaseURI is the endpoint's base URI (scheme + host with no
	// per-operation prefix).
	BaseURI string

	// Prefixes maps an operation ID to its host-prefix pattern, e.g.
	// "{bucket}.". Operations absent from this map use BaseURI unchanged.
	Prefixes map[string]string
}

// ResolveEndpoint implements Resolver.
func (h HostLabel) ResolveEndpoint(_ context.Context, params Parameters) (transport.Endpoint, error) {
	prefix, ok := h.Prefixes[params.OperationID]
	if !ok {
		return transport.Endpoint{URI: h.BaseURI}, nil
	}

	resolved, err := substituteHostLabels(prefix, params.Values)
	if err != nil {
		return transport.Endpoint{}, err
	}

	if i := strings.Index(h.BaseURI, "://"); i != -1 {
		host := i + len("://")
		return transport.Endpoint{URI: h.BaseURI[:host] + resolved + h.BaseURI[host:]}, nil
	}
	return transport.Endpoint{URI: resolved + h.BaseURI}, nil
}

// substituteHostLabels replaces each "{name}" placeholder in prefix with
// values[name], validating each substituted value is a legal DNS label.
func substituteHostLabels(prefix string, values map[string]string) (string, error) {
	var out strings.Builder

	rest := prefix
	for {
		start := strings.IndexByte(rest, '{')
		if start == -1 {
			out.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end == -1 {
			return "", fmt.Errorf("unterminated host label placeholder in %q", prefix)
		}
		end += start

		out.WriteString(rest[:start])

		name := rest[start+1 : end]
		value, ok := values[name]
		if !ok {
			return "", fmt.Errorf("unresolved host label %q", name)
		}

		ec := rulesfn.NewErrorCollector()
		if !rulesfn.IsValidHostLabel(value, false, ec) {
			return "", fmt.Errorf("invalid host label %q for member %q: %v", value, name, ec)
		}
		out.WriteString(value)

		rest = rest[end+1:]
	}

	return out.String(), nil
}
