package model

import "errors"

var (
	// ErrInvalidSignature is returned when a signature check fails or a
	// required signature is missing
	ErrInvalidSignature = errors.New("INVALID_SIGNATURE")

	// ErrUnknownTag is returned when the decoder meets a tag outside the
	// payload taxonomy
	ErrUnknownTag = errors.New("UNKNOWN_TAG")

	// ErrMalformedPayload is returned when the decoder cannot interpret
	// the input
	ErrMalformedPayload = errors.New("MALFORMED_PAYLOAD")

	// ErrUnauthorized is returned when an approver lacks the required
	// permission
	ErrUnauthorized = errors.New("UNAUTHORIZED")

	// ErrOverscopedGrant is returned when an approval grants permissions
	// outside its underlying request
	ErrOverscopedGrant = errors.New("OVERSCOPED_GRANT")

	// ErrChallengeMismatch is returned when a transfer does not answer the
	// verifier's challenge
	ErrChallengeMismatch = errors.New("CHALLENGE_MISMATCH")

	// ErrUnauthorizedIssuer is returned when a credential's provider lacks
	// the data-creation permission
	ErrUnauthorizedIssuer = errors.New("UNAUTHORIZED_ISSUER")

	// ErrRecipientMismatch is returned when a subject presents credentials
	// not issued to them
	ErrRecipientMismatch = errors.New("RECIPIENT_MISMATCH")

	// ErrUnsupportedWalletItem is returned when a disallowed variant is
	// inserted into a wallet
	ErrUnsupportedWalletItem = errors.New("UNSUPPORTED_WALLET_ITEM")

	// ErrInvalidMainAuthority is returned when a registry is bootstrapped
	// from an authority that does not validate or holds no private key
	ErrInvalidMainAuthority = errors.New("INVALID_MAIN_AUTHORITY")
)
