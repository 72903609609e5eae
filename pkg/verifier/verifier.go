// Package verifier implements the challenge-based credential presentation
// protocol over a registry's permission oracle.
package verifier

import (
	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/registry"
)

// Verifier binds a verifier identity and a session challenge to a registry.
type Verifier struct {
	registry  *registry.Registry
	identity  payload.KeyHolder
	key       *keys.PrivateKey
	challenge string

	// allowAuthorityPresenter relaxes the recipient-equality check when
	// the presenting subject is itself an admitted authority, for the
	// self-issued credential flow.
	allowAuthorityPresenter bool
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithAuthorityPresenter enables the self-issued credential flow: an
// admitted authority may present credentials issued to third parties.
func WithAuthorityPresenter() Option {
	return func(v *Verifier) {
		v.allowAuthorityPresenter = true
	}
}

// New creates a verifier for one challenge session.
func New(reg *registry.Registry, identity payload.KeyHolder, key *keys.PrivateKey, challenge string, opts ...Option) *Verifier {
	v := &Verifier{
		registry:  reg,
		identity:  identity,
		key:       key,
		challenge: challenge,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Challenge returns the session nonce.
func (v *Verifier) Challenge() string { return v.challenge }

// RequestData builds the signed challenge bearing the session nonce.
func (v *Verifier) RequestData(types ...payload.DataType) *payload.DataRequest {
	request := payload.NewDataRequest(v.identity, types, v.challenge)
	payload.Sign(request, v.key)
	return request
}

// ValidateTransfer accepts a presentation iff the challenge matches (the
// check is skipped when the verifier's challenge is empty), the
// transfer verifies cryptographically, every bundled credential comes from
// an authorized issuer and the subject presents only credentials issued to
// itself.
func (v *Verifier) ValidateTransfer(transfer *payload.DataTransfer) error {
	if v.challenge != "" && transfer.Challenge() != v.challenge {
		return model.ErrChallengeMismatch
	}
	if !transfer.Validate() {
		return model.ErrInvalidSignature
	}

	presenterIsAuthority := v.registry.IsAuthority(transfer.Provider())

	for _, data := range transfer.Datas() {
		if !v.registry.HasPermissions(data.Provider(), payload.PermissionDataCreation) {
			return model.ErrUnauthorizedIssuer
		}
		if v.allowAuthorityPresenter && presenterIsAuthority {
			continue
		}
		if !payload.SameKey(data.Recipient(), transfer.Provider()) {
			return model.ErrRecipientMismatch
		}
	}

	return nil
}
