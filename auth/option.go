package auth

import "github.com/smithy-lang/smithy-runtime-go"

// Option represents a possible authentication method for an operation.
type Option struct {
	SchemeID           string
	IdentityProperties smithy.Properties
	SignerProperties   smithy.Properties
}
