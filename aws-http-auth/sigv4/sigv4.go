// Package sigv4 implements AWS Signature Version 4 request signing.
package sigv4

import (
	"container/list"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/smithy-lang/smithy-runtime-go/aws-http-auth/credentials"
	v4internal "github.com/smithy-lang/smithy-runtime-go/aws-http-auth/internal/v4"
	v4 "github.com/smithy-lang/smithy-runtime-go/aws-http-auth/v4"
)

const algorithm = "AWS4-HMAC-SHA256"

// defaultKeyCacheSize bounds the number of derived signing keys held in
// memory at once. The cascade is deterministic in (secret, date, region,
// service), so a small LRU avoids re-deriving it on every request from a
// long-lived client signing against the same few scopes.
const defaultKeyCacheSize = 16

// Signer signs requests with SigV4, caching derived signing keys across
// calls.
type Signer struct {
	options v4.SignerOptions

	mu        sync.Mutex
	keyCache  map[string]*list.Element
	keyOrder  *list.List
	cacheSize int
}

// New creates a Signer, applying opts in order.
func New(opts ...v4.SignerOption) *Signer {
	options := v4.SignerOptions{}
	for _, o := range opts {
		o(&options)
	}

	return &Signer{
		options:   options,
		keyCache:  make(map[string]*list.Element),
		keyOrder:  list.New(),
		cacheSize: defaultKeyCacheSize,
	}
}

// SignRequestInput is the input to SignRequest.
type SignRequestInput struct {
	Request     *http.Request
	Credentials credentials.Credentials
	Service     string
	Region      string
	Time        time.Time

	// PayloadHash, if set, is used directly as the payload hash instead of
	// deriving one from the request body.
	PayloadHash []byte

	// SignatureType controls whether the signature is transmitted via the
	// Authorization header (default) or query parameters.
	SignatureType v4.SignatureType
}

// SignRequest signs in.Request in-place with SigV4, using the credential
// scope and time in in.
func (s *Signer) SignRequest(in *SignRequestInput) error {
	t := v4internal.ResolveTime(in.Time)
	scope := credentialScope(t, in.Region, in.Service)

	signer := &v4internal.Signer{
		Request:     in.Request,
		PayloadHash: in.PayloadHash,
		Time:        t,
		Credentials: in.Credentials,
		Options:     s.options,

		Algorithm:       algorithm,
		CredentialScope: scope,
		SignatureType:   in.SignatureType,
		Finalizer: &finalizer{
			signer: s,
			creds:  in.Credentials,
			date:   t.Format(v4internal.ShortTimeFormat),
			region: in.Region,
			service: in.Service,
		},
	}

	return signer.Do()
}

func credentialScope(t time.Time, region, service string) string {
	return fmt.Sprintf("%s/%s/%s/aws4_request", t.Format(v4internal.ShortTimeFormat), region, service)
}

// finalizer derives the signing key (consulting/populating the Signer's
// cache) and produces the final HMAC-SHA256 signature over the
// string-to-sign.
type finalizer struct {
	signer *Signer

	creds   credentials.Credentials
	date    string
	region  string
	service string
}

func (f *finalizer) SignString(stringToSign string) (string, error) {
	key := f.signer.derivedKey(f.creds.SecretAccessKey, f.date, f.region, f.service)
	sig := hmacSHA256(key, []byte(stringToSign))
	return fmt.Sprintf("%x", sig), nil
}

// derivedKey returns the SigV4 signing key for (secret, date, region,
// service), computing and caching it via the HMAC cascade
// (kDate -> kRegion -> kService -> kSigning) on a miss.
func (s *Signer) derivedKey(secret, date, region, service string) []byte {
	cacheKey := secret + "/" + date + "/" + region + "/" + service

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.keyCache[cacheKey]; ok {
		s.keyOrder.MoveToFront(el)
		return el.Value.(cacheEntry).key
	}

	kDate := hmacSHA256([]byte("AWS4"+secret), []byte(date))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(service))
	kSigning := hmacSHA256(kService, []byte("aws4_request"))

	el := s.keyOrder.PushFront(cacheEntry{cacheKey: cacheKey, key: kSigning})
	s.keyCache[cacheKey] = el

	if s.keyOrder.Len() > s.cacheSize {
		oldest := s.keyOrder.Back()
		if oldest != nil {
			s.keyOrder.Remove(oldest)
			delete(s.keyCache, oldest.Value.(cacheEntry).cacheKey)
		}
	}

	return kSigning
}

type cacheEntry struct {
	cacheKey string
	key      []byte
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
