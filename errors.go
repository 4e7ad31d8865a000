package smithy

import "fmt"

// APIError is implemented by service-modeled errors: a shape carrying a
// protocol-level error code distinct from its Go type name.
type APIError interface {
	error
	ErrorCode() string
	ErrorMessage() string
	ErrorFault() ErrorFault
}

// ErrorFault attributes an API error to the client or the server, per
// smithy.api#error.
type ErrorFault int

// Enumerates ErrorFault.
const (
	FaultUnknown ErrorFault = iota
	FaultClient
	FaultServer
)

// GenericAPIError is returned in place of a modeled error when the response
// carries an error code the client's TypeRegistry does not recognize (e.g.
// a newer service version the client wasn't generated against).
type GenericAPIError struct {
	Code    string
	Message string
	Fault   ErrorFault
}

// Error implements the error interface.
func (e *GenericAPIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// ErrorCode returns the protocol error code.
func (e *GenericAPIError) ErrorCode() string { return e.Code }

// ErrorMessage returns the error message.
func (e *GenericAPIError) ErrorMessage() string { return e.Message }

// ErrorFault returns the error's client/server attribution.
func (e *GenericAPIError) ErrorFault() ErrorFault { return e.Fault }

// DeserializationError wraps a failure to decode a response body. Snapshot,
// when present, holds the raw bytes read from the body up to the point of
// failure (captured via a bounded ring buffer), to aid diagnosing malformed
// responses without buffering the entire body on the happy path.
type DeserializationError struct {
	Err      error
	Snapshot []byte
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DeserializationError) Unwrap() error { return e.Err }

// SerializationError wraps a failure to encode a request.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize request: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error { return e.Err }

// ValidationError reports that a modeled value failed a constraint trait
// (smithy.api#required, #length, #range, #pattern, #enum) before the
// request was ever serialized.
type ValidationError struct {
	Name string // member or shape name that failed validation
	Err  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// BindingError reports a failure while binding a shape's members to or from
// an HTTP message (a header, query parameter, or path label).
type BindingError struct {
	Name string // member name
	Err  error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error { return e.Err }

// SigningError reports a failure to sign an outgoing request, e.g. an
// identity resolution failure or an error from the underlying signer.
type SigningError struct {
	Err error
}

// Error implements the error interface.
func (e *SigningError) Error() string {
	return fmt.Sprintf("sign request: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SigningError) Unwrap() error { return e.Err }

// OperationError decorates any error returned from an operation invocation
// with the service and operation name, so that logs and error messages
// identify where in a multi-service client the failure occurred.
type OperationError struct {
	ServiceID     string
	OperationName string
	Err           error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("operation error %s: %s, %v", e.ServiceID, e.OperationName, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error { return e.Err }
