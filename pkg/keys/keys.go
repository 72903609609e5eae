// Package keys holds the signature primitives every payload is built on.
// Higher layers only see the Signer and Validator interfaces so the
// underlying scheme can be swapped without touching the payload taxonomy.
package keys

import (
	"bytes"
	"encoding/base64"
)

// Signature is an opaque byte string. The empty signature means unsigned.
type Signature []byte

// IsZero reports whether the signature is absent.
func (s Signature) IsZero() bool {
	return len(s) == 0
}

// Equal is byte-equality.
func (s Signature) Equal(other Signature) bool {
	return bytes.Equal(s, other)
}

// Base64 returns the base64url form, empty for the zero signature.
func (s Signature) Base64() string {
	if s.IsZero() {
		return ""
	}
	return base64.URLEncoding.EncodeToString(s)
}

// ParseSignature decodes the base64url form. The empty string decodes to the
// zero signature.
func ParseSignature(s string) (Signature, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Signature(b), nil
}

// Validator verifies a signature over a message.
type Validator interface {
	// Verify returns false for any malformed input, it never errors.
	Verify(data []byte, sig Signature) bool
}

// Signer produces a signature over a message. Signing never fails; a signer
// without key material returns the zero signature, which no validator
// accepts.
type Signer interface {
	Sign(data []byte) Signature
}
