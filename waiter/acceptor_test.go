package waiter

import (
	"errors"
	"testing"
)

type codedError struct{ code string }

func (e codedError) Error() string     { return e.code }
func (e codedError) ErrorCode() string { return e.code }

func TestJMESPathMatcher(t *testing.T) {
	input := map[string]interface{}{"name": "widget"}

	cases := map[string]struct {
		matcher JMESPathMatcher
		output  interface{}
		want    bool
	}{
		"stringEquals match": {
			matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals},
			output:  map[string]interface{}{"status": "RUNNING"},
			want:    true,
		},
		"stringEquals no match": {
			matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals},
			output:  map[string]interface{}{"status": "STOPPED"},
			want:    false,
		},
		"booleanEquals match": {
			matcher: JMESPathMatcher{Path: "output.ready", Expected: "true", Comparator: BooleanEquals},
			output:  map[string]interface{}{"ready": true},
			want:    true,
		},
		"allStringEquals match": {
			matcher: JMESPathMatcher{Path: "output.states[].status", Expected: "UP", Comparator: AllStringEquals},
			output: map[string]interface{}{"states": []interface{}{
				map[string]interface{}{"status": "UP"},
				map[string]interface{}{"status": "UP"},
			}},
			want: true,
		},
		"allStringEquals one mismatch": {
			matcher: JMESPathMatcher{Path: "output.states[].status", Expected: "UP", Comparator: AllStringEquals},
			output: map[string]interface{}{"states": []interface{}{
				map[string]interface{}{"status": "UP"},
				map[string]interface{}{"status": "DOWN"},
			}},
			want: false,
		},
		"anyStringEquals match": {
			matcher: JMESPathMatcher{Path: "output.states[].status", Expected: "DOWN", Comparator: AnyStringEquals},
			output: map[string]interface{}{"states": []interface{}{
				map[string]interface{}{"status": "UP"},
				map[string]interface{}{"status": "DOWN"},
			}},
			want: true,
		},
		"references input": {
			matcher: JMESPathMatcher{Path: "input.name", Expected: "widget", Comparator: StringEquals},
			output:  map[string]interface{}{},
			want:    true,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := c.matcher.Match(input, c.output, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected match=%v, got %v", c.want, got)
			}
		})
	}
}

func TestErrorMatcher(t *testing.T) {
	m := ErrorMatcher("ResourceNotFound")

	matched, err := m.Match(nil, nil, codedError{code: "ResourceNotFound"})
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}

	matched, err = m.Match(nil, nil, codedError{code: "Other"})
	if err != nil || matched {
		t.Fatalf("expected no match, got matched=%v err=%v", matched, err)
	}

	matched, err = m.Match(nil, nil, errors.New("unmodeled"))
	if err != nil || matched {
		t.Fatalf("expected no match for non-coded error, got matched=%v err=%v", matched, err)
	}
}

func TestEvaluate(t *testing.T) {
	acceptors := []Acceptor{
		{State: FailureState, Matcher: ErrorMatcher("ResourceNotFound")},
		{State: SuccessState, Matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals}},
	}

	state, err := Evaluate(acceptors, nil, map[string]interface{}{"status": "RUNNING"}, nil)
	if err != nil || state != SuccessState {
		t.Fatalf("expected success, got state=%v err=%v", state, err)
	}

	state, err = Evaluate(acceptors, nil, nil, codedError{code: "ResourceNotFound"})
	if err != nil || state != FailureState {
		t.Fatalf("expected failure, got state=%v err=%v", state, err)
	}

	state, err = Evaluate(acceptors, nil, map[string]interface{}{"status": "PENDING"}, nil)
	if err != nil || state != RetryState {
		t.Fatalf("expected retry on no match, got state=%v err=%v", state, err)
	}
}
