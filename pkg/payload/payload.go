// Package payload defines the closed taxonomy of signed, self-describing
// payloads and their canonical wire encoding. Signatures are computed over
// the canonical byte form with the signature field omitted, so the per
// variant field order is pinned and must survive every decode→re-encode
// cycle bit-exactly.
package payload

import (
	"bytes"
	"fmt"
	"strings"

	"auth490/pkg/keys"
	"auth490/pkg/model"
)

// Tag is the self-describing dispatch tag carried in field "t".
type Tag string

const (
	TagAuthority          Tag = "a"
	TagIndividual         Tag = "u"
	TagAuthorityRequest   Tag = "ar"
	TagAuthorityApproval  Tag = "aa"
	TagPermissionRequest  Tag = "pr"
	TagPermissionApproval Tag = "pa"
	TagData               Tag = "d"
	TagDataTransfer       Tag = "dt"
	TagDataRequest        Tag = "dr"
	TagWallet             Tag = "w"
	TagPublicKey          Tag = "k"
	TagPrivateKey         Tag = "pk"
	TagSignature          Tag = "s"
)

// Header is the upper-case transport prefix of the tag.
func (t Tag) Header() string {
	return strings.ToUpper(string(t))
}

// Payload is any taxonomy member with a map wire form. The wire method is
// unexported to keep the set closed.
type Payload interface {
	Tag() Tag
	wire(withSig bool) *object
}

// Signable is a payload whose canonical byte form may carry a signature.
type Signable interface {
	Payload

	// Signature returns the attached signature, zero when unsigned.
	Signature() keys.Signature

	// Validate runs the combined check: the signature verifies under the
	// variant's key and every embedded signable validates too.
	Validate() bool

	attach(sig keys.Signature)
}

// signable carries the signature field shared by every signable variant.
type signable struct {
	sig keys.Signature
}

func (s *signable) Signature() keys.Signature { return s.sig }
func (s *signable) attach(sig keys.Signature) { s.sig = sig }

// Canonical returns the signed byte range: the canonical form with the
// signature field omitted.
func Canonical(s Signable) []byte {
	return s.wire(false).bytes()
}

// Wire returns the full canonical form, signature included.
func Wire(p Payload) []byte {
	return p.wire(true).bytes()
}

// Sign computes and attaches the signature over the canonical byte range.
func Sign(s Signable, signer keys.Signer) keys.Signature {
	sig := signer.Sign(Canonical(s))
	s.attach(sig)
	return sig
}

// Equal is structural equality: byte-equal full canonical forms.
func Equal(a, b Payload) bool {
	return bytes.Equal(Wire(a), Wire(b))
}

// verifySignature checks the attached signature over the canonical range.
// The zero signature never verifies.
func verifySignature(s Signable, v keys.Validator) bool {
	sig := s.Signature()
	if sig.IsZero() {
		return false
	}
	return v.Verify(Canonical(s), sig)
}

// Encode renders the transport form TAG:DIGITS suitable for QR alphanumeric
// mode.
func Encode(p Payload) string {
	return p.Tag().Header() + ":" + digitEncode(compress(Wire(p)))
}

// EncodePublicKey renders the bare-key transport form. Key bodies are the
// fixed-width base64url key text, digit-remapped but not deflated.
func EncodePublicKey(k *keys.PublicKey) string {
	return TagPublicKey.Header() + ":" + digitEncode(k.Base64())
}

// EncodePrivateKey renders the bare private key transport form.
func EncodePrivateKey(k *keys.PrivateKey) string {
	return TagPrivateKey.Header() + ":" + digitEncode(k.Base64())
}

// EncodeSignature renders a detached signature transport form.
func EncodeSignature(sig keys.Signature) string {
	return TagSignature.Header() + ":" + digitEncode(sig.Base64())
}

// EncodeItem encodes any transportable value: payloads, bare keys and
// detached signatures.
func EncodeItem(item any) (string, error) {
	switch v := item.(type) {
	case Payload:
		return Encode(v), nil
	case *keys.PublicKey:
		return EncodePublicKey(v), nil
	case *keys.PrivateKey:
		return EncodePrivateKey(v), nil
	case keys.Signature:
		return EncodeSignature(v), nil
	default:
		return "", fmt.Errorf("%w: %T has no transport form", model.ErrMalformedPayload, item)
	}
}

// decoders dispatches tag → constructor. Unknown tags fail with
// model.ErrUnknownTag.
var decoders = map[Tag]func(map[string]any) (Payload, error){
	TagAuthority:          decodeAuthorityPayload,
	TagIndividual:         decodeIndividualPayload,
	TagAuthorityRequest:   decodeAuthorityRequest,
	TagAuthorityApproval:  decodeAuthorityApproval,
	TagPermissionRequest:  decodePermissionRequest,
	TagPermissionApproval: decodePermissionApproval,
	TagData:               decodeData,
	TagDataTransfer:       decodeDataTransfer,
	TagDataRequest:        decodeDataRequest,
	TagWallet:             decodeWallet,
}

// Decode parses any transport-form string. It returns a Payload for taxonomy
// members, *keys.PublicKey / *keys.PrivateKey for the K:/PK: prefixes and a
// keys.Signature for S:.
func Decode(transport string) (any, error) {
	header, digits, ok := strings.Cut(transport, ":")
	if !ok {
		return nil, fmt.Errorf("%w: no transport header", model.ErrMalformedPayload)
	}

	body, err := digitDecode(digits)
	if err != nil {
		return nil, err
	}

	switch header {
	case TagPublicKey.Header():
		k, err := keys.ParsePublicKey(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
		}
		return k, nil
	case TagPrivateKey.Header():
		k, err := keys.ParsePrivateKey(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
		}
		return k, nil
	case TagSignature.Header():
		sig, err := keys.ParseSignature(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
		}
		return sig, nil
	}

	raw, err := decompress(body)
	if err != nil {
		return nil, err
	}

	p, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}
	if p.Tag().Header() != header {
		return nil, fmt.Errorf("%w: header %q does not match tag %q", model.ErrMalformedPayload, header, p.Tag())
	}
	return p, nil
}

// DecodePayload is Decode restricted to taxonomy payloads.
func DecodePayload(transport string) (Payload, error) {
	v, err := Decode(transport)
	if err != nil {
		return nil, err
	}
	p, ok := v.(Payload)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a payload", model.ErrMalformedPayload, v)
	}
	return p, nil
}

// decodeRaw dispatches a decoded raw map on its "t" tag.
func decodeRaw(raw map[string]any) (Payload, error) {
	tag, err := rawString(raw, "t")
	if err != nil {
		return nil, err
	}
	decode, ok := decoders[Tag(tag)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownTag, tag)
	}
	return decode(raw)
}

// attachRawSignature reads the optional "s" field onto a decoded signable.
func attachRawSignature(s Signable, raw map[string]any) error {
	b64, err := rawString(raw, "s")
	if err != nil {
		return err
	}
	if b64 == "" {
		return nil
	}
	sig, err := keys.ParseSignature(b64)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	s.attach(sig)
	return nil
}
