// Package rand provides random value generation, e.g. UUIDs usable as
// idempotency tokens for members carrying the smithy.api#idempotencyToken
// trait. Nothing else in the module calls it to fill such members.
package rand

import (
	"io"

	"github.com/smithy-lang/smithy-runtime-go/internal/uuid"
)

// UUID generates version-4 (random) UUIDs, reading entropy from a wrapped
// io.Reader.
type UUID struct {
	random io.Reader
}

// NewUUID returns a UUID generator that reads its entropy from random.
func NewUUID(random io.Reader) *UUID {
	return &UUID{random: random}
}

// GetUUID returns a new version-4 UUID in canonical text form.
func (u *UUID) GetUUID() (string, error) {
	var b [16]byte
	if _, err := io.ReadFull(u.random, b[:]); err != nil {
		return "", err
	}

	// version 4
	b[6] = (b[6] & 0x0F) | 0x40
	// variant 10
	b[8] = (b[8] & 0x3F) | 0x80

	return uuid.Format(b), nil
}
