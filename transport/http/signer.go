package http

import (
	"context"

	smithy "github.com/smithy-lang/smithy-runtime-go"
	"github.com/smithy-lang/smithy-runtime-go/auth"
)

// Signer signs an HTTP request in-place using a resolved identity, and any
// scheme-specific configuration carried in the request's SignerProperties
// (e.g. SigV4 signing name/region, set via the SigV4*Properties helpers in
// properties.go).
type Signer interface {
	SignRequest(context.Context, *Request, auth.Identity, smithy.Properties) error
}

// AuthScheme binds an identity resolver and a Signer to an auth scheme ID,
// so the auth resolver (see the auth package) can select one from a
// service's supported schemes without the caller needing scheme-specific
// knowledge.
type AuthScheme interface {
	SchemeID() string
	IdentityResolver(auth.IdentityResolverOptions) auth.IdentityResolver
	Signer() Signer
}
