package usecase

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the HMAC-SHA1 of the raw request body
const SignatureHeader = "X-Hub-Signature"

const signaturePrefix = "sha1="

// ErrSignatureMismatch is returned when a signed request does not match the shared secret
var ErrSignatureMismatch = errors.New("signatures didn't match")

// SignatureResult describes how a request passed verification
type SignatureResult int

const (
	// SignatureSkipped means no secret is configured and every request is accepted
	SignatureSkipped SignatureResult = iota
	// SignatureUnsigned means a secret is configured but the request carried no signature
	SignatureUnsigned
	// SignatureValid means the signature matched
	SignatureValid
	// SignatureInvalid means the signature did not match
	SignatureInvalid
)

func (r SignatureResult) String() string {
	switch r {
	case SignatureSkipped:
		return "skipped"
	case SignatureUnsigned:
		return "unsigned"
	case SignatureValid:
		return "valid"
	case SignatureInvalid:
		return "invalid"
	}
	return "unknown"
}

// SignatureVerifier checks webhook bodies against a shared secret.
// An empty secret accepts everything; an unsigned request is accepted
// but reported as SignatureUnsigned so the caller can log it.
type SignatureVerifier struct {
	secret string
}

// NewSignatureVerifier creates a new signature verifier
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

// Enabled returns whether a secret is configured
func (v *SignatureVerifier) Enabled() bool {
	return v.secret != ""
}

// Verify checks the provided signature header value against the payload
func (v *SignatureVerifier) Verify(payload []byte, provided string) (SignatureResult, error) {
	if v.secret == "" {
		return SignatureSkipped, nil
	}
	if provided == "" {
		return SignatureUnsigned, nil
	}

	expected := Sign(payload, v.secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return SignatureInvalid, ErrSignatureMismatch
	}
	return SignatureValid, nil
}

// Sign returns the X-Hub-Signature value for payload: "sha1=" + hex(HMAC-SHA1)
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
