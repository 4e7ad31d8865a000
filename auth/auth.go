// The '@httpApiKeyAuth' trait support is experimental and subject to breaking changes.
package auth

type key string

const (
	// The current auth configuration that has been set by any auth middleware and
	// that will prevent from being set more than once.
	CURRENT_AUTH_CONFIG key = "currentAuthConfig"
)

// Message is an opaque transport message value (e.g. a *smithyhttp.Request)
// carried through auth middleware. It is typed as interface{} rather than a
// transport-specific type because auth middleware may apply to non-HTTP
// transports.
type Message interface{}

// HttpAuthDefinition describes where and how to place an HTTP API key
// credential on a request, taken from a service model's
// @httpApiKeyAuth trait.
type HttpAuthDefinition struct {
	// In is "header" or "query", naming which part of the request carries
	// the key.
	In string

	// Name is the header or query parameter name.
	Name string

	// Scheme, only valid when In is "header", prefixes the header value
	// (e.g. "Bearer").
	Scheme string
}
