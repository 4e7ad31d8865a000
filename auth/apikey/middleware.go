package apikey

import (
	"context"
	"fmt"

	"github.com/smithy-lang/smithy-runtime-go/auth"
	"github.com/smithy-lang/smithy-runtime-go/middleware"
	smithyhttp "github.com/smithy-lang/smithy-runtime-go/transport/http"
)

// Signer provides an interface for implementations to decorate a request
// message with an api key. The signer is responsible for validating the
// message type is compatible with the signer, and reads the auth
// definition (location, name, scheme) from the context via
// auth.CURRENT_AUTH_CONFIG rather than taking it as a parameter, since it
// is resolved once per operation by the auth scheme machinery.
type Signer interface {
	SignWithApiKey(context.Context, string, auth.Message) (auth.Message, error)
}

// AuthenticationMiddleware provides the Finalize middleware step for signing
// a request message with an api key.
type AuthenticationMiddleware struct {
	signer         Signer
	apiKeyProvider ApiKeyProvider
	authDefinition auth.HttpAuthDefinition
}

// AddAuthenticationMiddleware helper adds the AuthenticationMiddleware to the
// middleware Stack in the Finalize step with the options provided.
func AddAuthenticationMiddleware(s *middleware.Stack, signer Signer, apiKeyProvider ApiKeyProvider, authDefinition auth.HttpAuthDefinition) error {
	return s.Finalize.Add(
		NewAuthenticationMiddleware(signer, apiKeyProvider, authDefinition),
		middleware.After,
	)
}

// NewAuthenticationMiddleware returns an initialized AuthenticationMiddleware.
func NewAuthenticationMiddleware(signer Signer, apiKeyProvider ApiKeyProvider, authDefinition auth.HttpAuthDefinition) *AuthenticationMiddleware {
	return &AuthenticationMiddleware{
		signer:         signer,
		apiKeyProvider: apiKeyProvider,
		authDefinition: authDefinition,
	}
}

const authenticationMiddlewareID = "ApiKeyAuthentication"

// Name returns the resolver identifier, implementing middleware.FinalizeMiddleware.
func (m *AuthenticationMiddleware) Name() string {
	return authenticationMiddlewareID
}

// HandleFinalize implements the FinalizeMiddleware interface in order to
// update the request with api key authentication.
func (m *AuthenticationMiddleware) HandleFinalize(
	ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler,
) (
	out middleware.FinalizeOutput, err error,
) {
	if m.apiKeyProvider == nil || ctx.Value(auth.CURRENT_AUTH_CONFIG) != nil {
		return next.HandleFinalize(ctx, in)
	}

	apiKey, err := m.apiKeyProvider.RetrieveApiKey(ctx)
	if err != nil || len(apiKey) == 0 {
		fmt.Println("failed AuthenticationMiddleware wrap message, %w", err)
		return next.HandleFinalize(ctx, in)
	}

	ctx = context.WithValue(ctx, auth.CURRENT_AUTH_CONFIG, m.authDefinition)

	signedMessage, err := m.signer.SignWithApiKey(ctx, apiKey, in.Request)
	if err != nil {
		fmt.Println("failed AuthenticationMiddleware sign message, %w", err)
		return next.HandleFinalize(ctx, in)
	}

	in.Request = signedMessage
	return next.HandleFinalize(ctx, in)
}

// SignHTTPSMessage provides an api key authentication implementation that
// signs an HTTP request carried over TLS with the provided api key,
// per the auth definition found on the context (see auth.CURRENT_AUTH_CONFIG).
type SignHTTPSMessage struct{}

// NewSignHTTPSMessage returns an initialized signer for HTTP messages.
func NewSignHTTPSMessage() *SignHTTPSMessage {
	return &SignHTTPSMessage{}
}

// SignWithApiKey returns a copy of the HTTP request with the api key added
// via either Header or Query parameter as defined in the Smithy model.
// API keys are only ever sent over HTTPS, since they are a bare credential
// with no additional integrity protection.
func (SignHTTPSMessage) SignWithApiKey(ctx context.Context, apiKey string, message auth.Message) (auth.Message, error) {
	req, ok := message.(*smithyhttp.Request)
	if !ok {
		return nil, fmt.Errorf("expect smithy-go HTTP Request, got %T", message)
	}

	if req.URL.Scheme != "https" {
		return nil, fmt.Errorf("apikey auth requires HTTPS")
	}

	authDefinition, ok := ctx.Value(auth.CURRENT_AUTH_CONFIG).(auth.HttpAuthDefinition)
	if !ok || (authDefinition.In != "header" && authDefinition.In != "query") {
		return nil, fmt.Errorf("invalid HTTP auth definition")
	}

	reqClone := req.Clone()
	switch authDefinition.In {
	case "header":
		headerValue := apiKey
		if authDefinition.Scheme != "" {
			headerValue = authDefinition.Scheme + " " + apiKey
		}
		reqClone.Header.Set(authDefinition.Name, headerValue)
	case "query":
		values := reqClone.URL.Query()
		values.Set(authDefinition.Name, apiKey)
		reqClone.URL.RawQuery = values.Encode()
	}

	return reqClone, nil
}
