// Package interceptor implements the ordered lifecycle phases an operation
// call traverses: execution, serialization, a retry loop of attempts (each
// signing, transmitting, and deserializing), and completion. Interceptors
// observe (read*) or mutate (modify*) the call at each phase.
package interceptor

import "context"

// Context carries the in-flight state of a call through every phase.
// Interceptors read and, for modify* phases, mutate its fields in place;
// since every hook receives the same *Context, a modify* hook's change is
// automatically visible to the next hook in the same phase and to every
// later phase, satisfying the "output of each is input of the next" rule.
type Context struct {
	// Input is the modeled operation input.
	Input any
	// Output is the modeled operation output, populated after a successful
	// attempt's deserialization phase.
	Output any
	// Request is the transport request (e.g. *smithyhttp.Request),
	// populated after serialization.
	Request any
	// Response is the transport response, populated after transmit.
	Response any

	// Attempt is the 1-indexed current attempt number, set by the caller
	// driving the retry loop before each RunAttempt.
	Attempt int

	// err, when non-nil, marks the call (or current attempt) as failed.
	// read* hooks may set it without halting their own phase's remaining
	// hooks; the pipeline checks it only at phase boundaries.
	err error
}

// Err returns the error recorded so far, or nil.
func (c *Context) Err() error { return c.err }

// Fail records err on the context, to be surfaced once the current phase's
// remaining read* hooks have run.
func (c *Context) Fail(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Interceptor implements every lifecycle hook. Embed NopInterceptor to
// satisfy the interface while overriding only the hooks a concrete
// interceptor cares about.
type Interceptor interface {
	ReadBeforeExecution(context.Context, *Context) error

	ModifyBeforeSerialization(context.Context, *Context) error
	ReadBeforeSerialization(context.Context, *Context) error
	ReadAfterSerialization(context.Context, *Context) error

	ModifyBeforeRetryLoop(context.Context, *Context) error

	ReadBeforeAttempt(context.Context, *Context) error

	ModifyBeforeSigning(context.Context, *Context) error
	ReadBeforeSigning(context.Context, *Context) error
	ReadAfterSigning(context.Context, *Context) error

	ModifyBeforeTransmit(context.Context, *Context) error
	ReadBeforeTransmit(context.Context, *Context) error
	ReadAfterTransmit(context.Context, *Context) error

	ModifyBeforeDeserialization(context.Context, *Context) error
	ReadBeforeDeserialization(context.Context, *Context) error
	ReadAfterDeserialization(context.Context, *Context) error

	ModifyBeforeAttemptCompletion(context.Context, *Context) error
	ReadAfterAttempt(context.Context, *Context) error

	ModifyBeforeCompletion(context.Context, *Context) error
	ReadAfterExecution(context.Context, *Context) error
}

// NopInterceptor implements Interceptor with every hook a no-op.
type NopInterceptor struct{}

// ReadBeforeExecution is a no-op.
func (NopInterceptor) ReadBeforeExecution(context.Context, *Context) error { return nil }

// ModifyBeforeSerialization is a no-op.
func (NopInterceptor) ModifyBeforeSerialization(context.Context, *Context) error { return nil }

// ReadBeforeSerialization is a no-op.
func (NopInterceptor) ReadBeforeSerialization(context.Context, *Context) error { return nil }

// ReadAfterSerialization is a no-op.
func (NopInterceptor) ReadAfterSerialization(context.Context, *Context) error { return nil }

// ModifyBeforeRetryLoop is a no-op.
func (NopInterceptor) ModifyBeforeRetryLoop(context.Context, *Context) error { return nil }

// ReadBeforeAttempt is a no-op.
func (NopInterceptor) ReadBeforeAttempt(context.Context, *Context) error { return nil }

// ModifyBeforeSigning is a no-op.
func (NopInterceptor) ModifyBeforeSigning(context.Context, *Context) error { return nil }

// ReadBeforeSigning is a no-op.
func (NopInterceptor) ReadBeforeSigning(context.Context, *Context) error { return nil }

// ReadAfterSigning is a no-op.
func (NopInterceptor) ReadAfterSigning(context.Context, *Context) error { return nil }

// ModifyBeforeTransmit is a no-op.
func (NopInterceptor) ModifyBeforeTransmit(context.Context, *Context) error { return nil }

// ReadBeforeTransmit is a no-op.
func (NopInterceptor) ReadBeforeTransmit(context.Context, *Context) error { return nil }

// ReadAfterTransmit is a no-op.
func (NopInterceptor) ReadAfterTransmit(context.Context, *Context) error { return nil }

// ModifyBeforeDeserialization is a no-op.
func (NopInterceptor) ModifyBeforeDeserialization(context.Context, *Context) error { return nil }

// ReadBeforeDeserialization is a no-op.
func (NopInterceptor) ReadBeforeDeserialization(context.Context, *Context) error { return nil }

// ReadAfterDeserialization is a no-op.
func (NopInterceptor) ReadAfterDeserialization(context.Context, *Context) error { return nil }

// ModifyBeforeAttemptCompletion is a no-op.
func (NopInterceptor) ModifyBeforeAttemptCompletion(context.Context, *Context) error { return nil }

// ReadAfterAttempt is a no-op.
func (NopInterceptor) ReadAfterAttempt(context.Context, *Context) error { return nil }

// ModifyBeforeCompletion is a no-op.
func (NopInterceptor) ModifyBeforeCompletion(context.Context, *Context) error { return nil }

// ReadAfterExecution is a no-op.
func (NopInterceptor) ReadAfterExecution(context.Context, *Context) error { return nil }

var _ Interceptor = NopInterceptor{}
