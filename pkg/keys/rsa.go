package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

const (
	// ModulusSize is the fixed width of the big-endian modulus on the wire.
	ModulusSize = 128

	// modulusBits is the generated key size matching ModulusSize.
	modulusBits = ModulusSize * 8

	publicExponent = 65537
)

// PublicKey verifies PKCS#1 v1.5 SHA-256 signatures.
type PublicKey struct {
	key *rsa.PublicKey
}

// PrivateKey signs with PKCS#1 v1.5 SHA-256. It is also a Validator through
// its public half.
type PrivateKey struct {
	key *rsa.PrivateKey
}

// Generate creates a fresh keypair.
func Generate() (*PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, modulusBits)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// Public returns the public half.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{key: &k.key.PublicKey}
}

// Sign signs data. In-domain input never fails; the zero signature is
// returned otherwise.
func (k *PrivateKey) Sign(data []byte) Signature {
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, k.key, crypto.SHA256, digest[:])
	if err != nil {
		return nil
	}
	return Signature(sig)
}

// Verify delegates to the public key.
func (k *PrivateKey) Verify(data []byte, sig Signature) bool {
	return k.Public().Verify(data, sig)
}

// Base64 is the canonical private form: modulus ∥ private exponent, each
// big-endian at fixed width.
func (k *PrivateKey) Base64() string {
	buf := make([]byte, 2*ModulusSize)
	k.key.N.FillBytes(buf[:ModulusSize])
	k.key.D.FillBytes(buf[ModulusSize:])
	return base64.URLEncoding.EncodeToString(buf)
}

// ParsePrivateKey decodes the canonical private form.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	buf, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(buf) != 2*ModulusSize {
		return nil, fmt.Errorf("private key length %d, want %d", len(buf), 2*ModulusSize)
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).SetBytes(buf[:ModulusSize]),
			E: publicExponent,
		},
		D: new(big.Int).SetBytes(buf[ModulusSize:]),
	}

	return &PrivateKey{key: key}, nil
}

// Verify returns false on any malformed input.
func (k *PublicKey) Verify(data []byte, sig Signature) bool {
	if len(data) == 0 || sig.IsZero() {
		return false
	}
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(k.key, crypto.SHA256, digest[:], sig) == nil
}

// Base64 is the canonical public form: big-endian modulus at fixed width.
func (k *PublicKey) Base64() string {
	buf := make([]byte, ModulusSize)
	k.key.N.FillBytes(buf)
	return base64.URLEncoding.EncodeToString(buf)
}

// ParsePublicKey decodes the canonical public form.
func ParsePublicKey(s string) (*PublicKey, error) {
	buf, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(buf) != ModulusSize {
		return nil, fmt.Errorf("public key length %d, want %d", len(buf), ModulusSize)
	}

	key := &rsa.PublicKey{
		N: new(big.Int).SetBytes(buf),
		E: publicExponent,
	}

	return &PublicKey{key: key}, nil
}

// Equal compares moduli.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.key.N.Cmp(other.key.N) == 0
}
