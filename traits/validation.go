package traits

// Required represents smithy.api#required: the member must always be
// present on the serialized wire form.
type Required struct{}

// TraitID identifies the trait.
func (*Required) TraitID() string { return "smithy.api#required" }

// Length represents smithy.api#length, bounding a string/blob/collection's
// size. Either bound may be nil to indicate it is unset.
type Length struct {
	Min *int64
	Max *int64
}

// TraitID identifies the trait.
func (*Length) TraitID() string { return "smithy.api#length" }

// Range represents smithy.api#range, bounding a numeric member's value.
type Range struct {
	Min *float64
	Max *float64
}

// TraitID identifies the trait.
func (*Range) TraitID() string { return "smithy.api#range" }

// Pattern represents smithy.api#pattern, a regular expression a string
// member's value must match.
type Pattern struct {
	Regex string
}

// TraitID identifies the trait.
func (*Pattern) TraitID() string { return "smithy.api#pattern" }

// Enum represents smithy.api#enum, constraining a string member's value to
// one of a fixed set.
type Enum struct {
	Values []string
}

// TraitID identifies the trait.
func (*Enum) TraitID() string { return "smithy.api#enum" }

// IdempotencyToken represents smithy.api#idempotencyToken: a string member
// that carries a unique value per request. The runtime does not fill the
// member when it is left unset.
type IdempotencyToken struct{}

// TraitID identifies the trait.
func (*IdempotencyToken) TraitID() string { return "smithy.api#idempotencyToken" }

// Retryable represents smithy.api#retryable, marking a modeled error as
// safe to retry. Throttling distinguishes throttling errors, which the
// retry orchestrator treats with a distinct backoff policy.
type Retryable struct {
	Throttling bool
}

// TraitID identifies the trait.
func (*Retryable) TraitID() string { return "smithy.api#retryable" }

// Readonly represents smithy.api#readonly: the operation has no observable
// side effects and is always safe to retry.
type Readonly struct{}

// TraitID identifies the trait.
func (*Readonly) TraitID() string { return "smithy.api#readonly" }

// Idempotent represents smithy.api#idempotent: repeating the operation's
// side effects is safe, so it is retryable even on a transport failure
// after the request may have reached the server.
type Idempotent struct{}

// TraitID identifies the trait.
func (*Idempotent) TraitID() string { return "smithy.api#idempotent" }
