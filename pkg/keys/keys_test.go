package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerify(t *testing.T) {
	key, err := Generate()
	assert.NoError(t, err)

	message := []byte("attack at dawn")
	sig := key.Sign(message)
	assert.False(t, sig.IsZero())

	assert.True(t, key.Public().Verify(message, sig))
	assert.True(t, key.Verify(message, sig))
}

func TestVerifyMalformed(t *testing.T) {
	key, err := Generate()
	assert.NoError(t, err)

	other, err := Generate()
	assert.NoError(t, err)

	message := []byte("attack at dawn")
	sig := key.Sign(message)

	tts := []struct {
		name    string
		message []byte
		sig     Signature
	}{
		{
			name:    "empty signature",
			message: message,
			sig:     nil,
		},
		{
			name:    "empty message",
			message: nil,
			sig:     sig,
		},
		{
			name:    "truncated signature",
			message: message,
			sig:     sig[:len(sig)-1],
		},
		{
			name:    "flipped byte",
			message: message,
			sig:     append(Signature{sig[0] ^ 0xff}, sig[1:]...),
		},
		{
			name:    "different message",
			message: []byte("retreat at dusk"),
			sig:     sig,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, key.Public().Verify(tt.message, tt.sig))
		})
	}

	t.Run("wrong key", func(t *testing.T) {
		assert.False(t, other.Public().Verify(message, sig))
	})
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := Generate()
	assert.NoError(t, err)

	b64 := key.Public().Base64()
	parsed, err := ParsePublicKey(b64)
	assert.NoError(t, err)

	assert.True(t, parsed.Equal(key.Public()))
	assert.Equal(t, b64, parsed.Base64())

	sig := key.Sign([]byte("payload"))
	assert.True(t, parsed.Verify([]byte("payload"), sig))
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	key, err := Generate()
	assert.NoError(t, err)

	b64 := key.Base64()
	parsed, err := ParsePrivateKey(b64)
	assert.NoError(t, err)
	assert.Equal(t, b64, parsed.Base64())

	// A signature from the reconstructed key verifies under the original
	// public key.
	sig := parsed.Sign([]byte("payload"))
	assert.True(t, key.Public().Verify([]byte("payload"), sig))
}

func TestParseKeyErrors(t *testing.T) {
	tts := []struct {
		name string
		in   string
	}{
		{name: "not base64", in: "!!!"},
		{name: "wrong length", in: "QUJD"},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKey(tt.in)
			assert.Error(t, err)

			_, err = ParsePrivateKey(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestSignatureBase64(t *testing.T) {
	assert.Equal(t, "", Signature(nil).Base64())

	sig, err := ParseSignature("")
	assert.NoError(t, err)
	assert.True(t, sig.IsZero())

	round, err := ParseSignature(Signature([]byte{0x01, 0xff, 0x7f}).Base64())
	assert.NoError(t, err)
	assert.True(t, round.Equal(Signature([]byte{0x01, 0xff, 0x7f})))
}
