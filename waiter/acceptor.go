package waiter

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// AcceptorState is the terminal or continuation state an Acceptor reports
// when its matcher succeeds.
type AcceptorState int

// Enumerates AcceptorState.
const (
	// RetryState means: sleep per backoff and poll again.
	RetryState AcceptorState = iota
	// SuccessState means: the wait is satisfied, return success.
	SuccessState
	// FailureState means: the wait has failed terminally, raise an error.
	FailureState
)

// String implements fmt.Stringer.
func (s AcceptorState) String() string {
	switch s {
	case SuccessState:
		return "success"
	case FailureState:
		return "failure"
	default:
		return "retry"
	}
}

// Comparator is a JMESPath acceptor's comparison operator.
type Comparator int

// Enumerates Comparator.
const (
	// StringEquals compares the JMESPath result against Expected; a result
	// that is not a string never matches.
	StringEquals Comparator = iota
	// BooleanEquals compares the JMESPath result against Expected
	// ("true"/"false"); a result that is not a bool never matches.
	BooleanEquals
	// AllStringEquals requires a JMESPath list result to be non-empty and
	// every element of it to be a string equal to Expected.
	AllStringEquals
	// AnyStringEquals requires at least one element of a JMESPath list
	// result to equal Expected.
	AnyStringEquals
)

// Matcher evaluates whether an attempt's (input, output, err) satisfies an
// Acceptor.
type Matcher interface {
	Match(input, output interface{}, err error) (bool, error)
}

// OutputMatcher is a predicate evaluated directly against the decoded
// output.
type OutputMatcher func(output interface{}) bool

// Match implements Matcher.
func (m OutputMatcher) Match(_, output interface{}, err error) (bool, error) {
	if err != nil {
		return false, nil
	}
	return m(output), nil
}

// ErrorMatcher matches a modeled error shape identifier against the attempt
// error, when the error implements an ErrorCode() string method (as
// smithy.APIError does).
type ErrorMatcher string

// Match implements Matcher.
func (m ErrorMatcher) Match(_, _ interface{}, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	type codeError interface{ ErrorCode() string }
	ce, ok := err.(codeError)
	if !ok {
		return false, nil
	}
	return ce.ErrorCode() == string(m), nil
}

// JMESPathMatcher evaluates Path against the virtual document
// {"input": input, "output": output} and compares the result to Expected
// using Comparator.
type JMESPathMatcher struct {
	Path       string
	Expected   string
	Comparator Comparator
}

// Match implements Matcher. A non-nil attempt error never matches a
// JMESPath acceptor, since Path is evaluated against decoded output.
func (m JMESPathMatcher) Match(input, output interface{}, err error) (bool, error) {
	if err != nil {
		return false, nil
	}

	doc := map[string]interface{}{"input": input, "output": output}
	result, jerr := jmespath.Search(m.Path, doc)
	if jerr != nil {
		return false, fmt.Errorf("evaluate waiter jmespath %q: %w", m.Path, jerr)
	}

	switch m.Comparator {
	case StringEquals:
		s, ok := result.(string)
		return ok && s == m.Expected, nil
	case BooleanEquals:
		b, ok := result.(bool)
		if !ok {
			return false, nil
		}
		expected := m.Expected == "true"
		return b == expected, nil
	case AllStringEquals:
		list, ok := result.([]interface{})
		if !ok || len(list) == 0 {
			return false, nil
		}
		for _, v := range list {
			s, ok := v.(string)
			if !ok || s != m.Expected {
				return false, nil
			}
		}
		return true, nil
	case AnyStringEquals:
		list, ok := result.([]interface{})
		if !ok {
			return false, nil
		}
		for _, v := range list {
			if s, ok := v.(string); ok && s == m.Expected {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown waiter comparator %v", m.Comparator)
	}
}

// Acceptor pairs a Matcher with the AcceptorState to report when it matches.
type Acceptor struct {
	State   AcceptorState
	Matcher Matcher
}

// Evaluate runs acceptors in order, returning the first match's state. No
// acceptor matching is itself a RetryState, per the unmatched-response
// policy: only an explicit Failure acceptor (or a malformed JMESPath
// expression) ends the wait with an error.
func Evaluate(acceptors []Acceptor, input, output interface{}, attemptErr error) (AcceptorState, error) {
	for _, a := range acceptors {
		matched, err := a.Matcher.Match(input, output, attemptErr)
		if err != nil {
			return FailureState, err
		}
		if matched {
			return a.State, nil
		}
	}

	return RetryState, nil
}
