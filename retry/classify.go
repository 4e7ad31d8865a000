// Package retry implements the retry orchestrator: the attempt loop around
// signing, transmitting, and deserializing a request, with retry-safety
// classification and exponential backoff with full jitter.
package retry

import (
	smithy "github.com/smithy-lang/smithy-runtime-go"
	"github.com/smithy-lang/smithy-runtime-go/traits"
)

// Classification is the outcome of classifying an attempt's result.
type Classification int

// Enumerates Classification.
const (
	// ClassificationSuccess means the attempt succeeded; stop.
	ClassificationSuccess Classification = iota
	// ClassificationThrottling means the attempt failed with a throttling
	// error; retry with the strategy's throttling-specific backoff.
	ClassificationThrottling
	// ClassificationRetryable means the attempt failed in a way that is
	// safe to retry.
	ClassificationRetryable
	// ClassificationTerminal means the attempt failed in a way that must
	// not be retried; surface the error.
	ClassificationTerminal
)

// AttemptResult is the input to Classify: the error from an attempt (nil on
// success), the traits of the operation invoked, the traits of the modeled
// error shape (if the error is a modeled APIError), and whether the
// transport observed a connection reset before any response bytes arrived.
type AttemptResult struct {
	Err              error
	OperationSchema  *smithy.Schema
	ErrorSchema      *smithy.Schema
	ConnResetNoBytes bool
}

// Classify implements the retry-safety rule from spec: combine (a)
// operation traits (readonly or idempotent -> safe), (b) error trait
// (retryable, or retryable(throttling: true)), and (c) a transport signal
// (connection reset before any bytes received -> safe to retry).
func Classify(r AttemptResult) Classification {
	if r.Err == nil {
		return ClassificationSuccess
	}

	if r.ErrorSchema != nil {
		if rt, ok := smithy.SchemaTrait[*traits.Retryable](r.ErrorSchema); ok {
			if rt.Throttling {
				return ClassificationThrottling
			}
			return ClassificationRetryable
		}
	}

	if r.ConnResetNoBytes {
		return ClassificationRetryable
	}

	if r.OperationSchema != nil {
		if _, ok := smithy.SchemaTrait[*traits.Readonly](r.OperationSchema); ok {
			return ClassificationRetryable
		}
		if _, ok := smithy.SchemaTrait[*traits.Idempotent](r.OperationSchema); ok {
			return ClassificationRetryable
		}
	}

	return ClassificationTerminal
}
