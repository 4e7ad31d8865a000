package auth

import (
	"context"
	"errors"
	"fmt"
)

// NotFoundError is returned by an IdentityResolver (or a credential source
// feeding one) when it has no identity to offer, as distinct from failing
// to produce one it otherwise owns. A chain resolver continues past this
// error to its next candidate; any other error aborts the chain.
type NotFoundError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: not found: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: not found", e.Source)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// AuthSchemeResolver produces the ordered list of auth scheme candidates an
// operation may use, most preferred first.
type AuthSchemeResolver interface {
	ResolveAuthSchemes(ctx context.Context, operationID string, params any) ([]Option, error)
}

// ResolvedAuthScheme pairs a selected Option with the identity it resolved
// to.
type ResolvedAuthScheme struct {
	Option   Option
	Identity Identity
}

// ResolveIdentity is a chain resolver: it tries each option's identity
// resolver in order, short-circuiting on the first successful resolution.
// It continues past a NotFoundError, aggregating each into the returned
// error only once every option is exhausted, and stops immediately,
// returning the error, on anything else.
func ResolveIdentity(
	ctx context.Context,
	options []Option,
	resolverFor func(schemeID string) IdentityResolver,
) (*ResolvedAuthScheme, error) {
	var notFound []error

	for _, opt := range options {
		resolver := resolverFor(opt.SchemeID)
		if resolver == nil {
			notFound = append(notFound, &NotFoundError{
				Source: opt.SchemeID,
				Err:    errors.New("no identity resolver registered"),
			})
			continue
		}

		identity, err := resolver.GetIdentity(ctx, opt.IdentityProperties)
		if err == nil {
			return &ResolvedAuthScheme{Option: opt, Identity: identity}, nil
		}

		if IsNotFound(err) {
			notFound = append(notFound, err)
			continue
		}

		return nil, err
	}

	return nil, errors.Join(append([]error{errors.New("no auth scheme option resolved an identity")}, notFound...)...)
}
