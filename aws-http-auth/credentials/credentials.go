// Package credentials defines the credential types consumed by the
// aws-http-auth signers.
package credentials

import "time"

// Credentials are AWS access credentials used to sign requests with
// Signature Version 4 (or 4A). AccessKeyID and SecretAccessKey are always
// required; SessionToken is set for temporary credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Expiration, if set, is the time after which the credentials are no
	// longer valid. A zero value indicates the credentials do not expire.
	Expiration *time.Time
}

// Expired reports whether the credentials have an expiration and it has
// passed as of now.
func (c Credentials) Expired(now time.Time) bool {
	return c.Expiration != nil && !c.Expiration.After(now)
}
