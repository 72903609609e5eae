package payload

import (
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
)

// KeyHolder is a signed identity carrying one key. Holders constructed from
// a private key self-sign to prove possession at construction time and act
// as signers for the payloads they emit; holders carrying only the public
// half verify but never sign.
type KeyHolder interface {
	Signable
	keys.Signer
	keys.Validator

	// PublicKey returns the held key's public half.
	PublicKey() *keys.PublicKey

	// IsPrivate reports whether the holder can sign.
	IsPrivate() bool
}

// holder implements the key-carrying half of every KeyHolder variant.
type holder struct {
	signable
	key  *keys.PublicKey
	priv *keys.PrivateKey
}

func newHolder(key *keys.PrivateKey) holder {
	return holder{key: key.Public(), priv: key}
}

func (h *holder) PublicKey() *keys.PublicKey { return h.key }
func (h *holder) IsPrivate() bool            { return h.priv != nil }

// Sign signs on behalf of the holder. A public-only holder returns the zero
// signature, which no validator accepts.
func (h *holder) Sign(data []byte) keys.Signature {
	if h.priv == nil {
		return nil
	}
	return h.priv.Sign(data)
}

// Verify checks a signature under the held public key.
func (h *holder) Verify(data []byte, sig keys.Signature) bool {
	return h.key.Verify(data, sig)
}

// SameKey reports public-key equality between two holders.
func SameKey(a, b KeyHolder) bool {
	return a.PublicKey().Equal(b.PublicKey())
}

// Authority is a named identity admitted to the delegation registry.
type Authority struct {
	holder
	name string
}

// NewAuthority builds a self-signed authority holding a private key.
func NewAuthority(name string, key *keys.PrivateKey) *Authority {
	a := &Authority{holder: newHolder(key), name: name}
	Sign(a, a)
	return a
}

// NewPublicAuthority builds an unsigned authority from a public key. The
// caller attaches a signature produced elsewhere.
func NewPublicAuthority(name string, key *keys.PublicKey) *Authority {
	return &Authority{holder: holder{key: key}, name: name}
}

// Name returns the human-readable authority name.
func (a *Authority) Name() string { return a.name }

func (a *Authority) Tag() Tag { return TagAuthority }

func (a *Authority) wire(withSig bool) *object {
	o := newObject(TagAuthority)
	o.set("k", a.key.Base64())
	o.set("n", a.name)
	if withSig {
		o.set("s", a.sig.Base64())
	}
	return o
}

// Validate verifies the self-signature under the held public key.
func (a *Authority) Validate() bool {
	return verifySignature(a, a.key)
}

func decodeAuthorityPayload(raw map[string]any) (Payload, error) {
	a, err := decodeAuthority(raw)
	return a, err
}

func decodeAuthority(raw map[string]any) (*Authority, error) {
	b64, err := rawString(raw, "k")
	if err != nil {
		return nil, err
	}
	key, err := keys.ParsePublicKey(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	name, err := rawString(raw, "n")
	if err != nil {
		return nil, err
	}

	a := NewPublicAuthority(name, key)
	if err := attachRawSignature(a, raw); err != nil {
		return nil, err
	}
	return a, nil
}

// Individual is an unnamed subject identity, typically the recipient of
// credentials.
type Individual struct {
	holder
}

// NewIndividual builds a self-signed individual holding a private key.
func NewIndividual(key *keys.PrivateKey) *Individual {
	i := &Individual{holder: newHolder(key)}
	Sign(i, i)
	return i
}

// NewPublicIndividual builds an unsigned individual from a public key.
func NewPublicIndividual(key *keys.PublicKey) *Individual {
	return &Individual{holder: holder{key: key}}
}

func (i *Individual) Tag() Tag { return TagIndividual }

func (i *Individual) wire(withSig bool) *object {
	o := newObject(TagIndividual)
	o.set("k", i.key.Base64())
	if withSig {
		o.set("s", i.sig.Base64())
	}
	return o
}

// Validate verifies the self-signature under the held public key.
func (i *Individual) Validate() bool {
	return verifySignature(i, i.key)
}

func decodeIndividualPayload(raw map[string]any) (Payload, error) {
	b64, err := rawString(raw, "k")
	if err != nil {
		return nil, err
	}
	key, err := keys.ParsePublicKey(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}

	i := NewPublicIndividual(key)
	if err := attachRawSignature(i, raw); err != nil {
		return nil, err
	}
	return i, nil
}

// decodeKeyHolder dispatches an embedded key holder map on its tag.
func decodeKeyHolder(raw map[string]any) (KeyHolder, error) {
	tag, err := rawString(raw, "t")
	if err != nil {
		return nil, err
	}
	switch Tag(tag) {
	case TagAuthority:
		return decodeAuthority(raw)
	case TagIndividual:
		p, err := decodeIndividualPayload(raw)
		if err != nil {
			return nil, err
		}
		return p.(*Individual), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a key holder", model.ErrUnknownTag, tag)
	}
}
