package transport

import "github.com/smithy-lang/smithy-runtime-go"

// Endpoint is a Smithy endpoint, the result of resolving an operation's
// transport target: a URI, any transport-level fields (e.g. additional
// headers an endpoint mandates), and a typed property bag auth schemes
// consult for per-endpoint overrides (e.g. a region override for sigv4).
type Endpoint struct {
	URI string

	Fields Fields

	Properties smithy.Properties
}
