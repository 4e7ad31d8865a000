package v4

import (
	"crypto/sha256"
	"io"
)

// Stosha returns the raw SHA256 digest of a string. Callers that need the
// canonical hex form (payload hash in the canonical request, or the
// canonical request's own digest in buildStringToSign) hex-encode the
// result themselves; Stosha stays raw so it composes either way.
func Stosha(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

// rtosha reads rs to completion and returns the raw SHA256 digest of its
// contents, restoring the seeker's original position afterward so the body
// can still be sent on the wire.
func rtosha(rs io.ReadSeeker) ([]byte, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, rs); err != nil {
		return nil, err
	}

	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
