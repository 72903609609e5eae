package verifier

import (
	"testing"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/registry"

	"github.com/stretchr/testify/assert"
)

func genKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	key, err := keys.Generate()
	assert.NoError(t, err)
	return key
}

// setup builds the S1–S4 world: a registry with an admitted government
// holding DATA_CREATION and a subject with one NAME credential.
type world struct {
	registry      *registry.Registry
	main          *payload.Authority
	government    *payload.Authority
	governmentKey *keys.PrivateKey
	subject       *payload.Individual
	subjectKey    *keys.PrivateKey
	nameData      *payload.Data
}

func setup(t *testing.T) *world {
	t.Helper()

	main := payload.NewAuthority("Auth490", genKey(t))
	reg, err := registry.New(main)
	assert.NoError(t, err)

	governmentKey := genKey(t)
	government := payload.NewAuthority("Gov", governmentKey)

	authorityRequest := payload.NewAuthorityRequest(main, government)
	assert.NoError(t, reg.Insert(authorityRequest))
	assert.NoError(t, reg.Insert(payload.NewAuthorityApproval(main, authorityRequest)))

	permissionRequest := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	assert.NoError(t, reg.Insert(permissionRequest))
	assert.NoError(t, reg.Insert(payload.NewPermissionApproval(main, permissionRequest.Permissions(), permissionRequest)))

	subjectKey := genKey(t)
	subject := payload.NewIndividual(subjectKey)

	nameData := payload.NewData(government, subject, payload.DataTypeName, "JOHN DOE")
	assert.True(t, nameData.Validate())

	return &world{
		registry:      reg,
		main:          main,
		government:    government,
		governmentKey: governmentKey,
		subject:       subject,
		subjectKey:    subjectKey,
		nameData:      nameData,
	}
}

func TestRequestData(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	request := v.RequestData(payload.DataTypeName)
	assert.True(t, request.Validate())
	assert.Equal(t, "CHALLENGE", request.Challenge())
	assert.Equal(t, []payload.DataType{payload.DataTypeName}, request.Types())
}

func TestValidateTransferAccepts(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{w.nameData}, "CHALLENGE")
	assert.NoError(t, v.ValidateTransfer(transfer))
}

func TestValidateTransferAcceptsDecodedCopy(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{w.nameData}, "CHALLENGE")

	decoded, err := payload.DecodePayload(payload.Encode(transfer))
	assert.NoError(t, err)
	assert.NoError(t, v.ValidateTransfer(decoded.(*payload.DataTransfer)))
}

func TestChallengeMismatch(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{w.nameData}, "REPLAYED")
	assert.ErrorIs(t, v.ValidateTransfer(transfer), model.ErrChallengeMismatch)
}

func TestEmptyChallengeSkipsCheck(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "")

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{w.nameData}, "ANYTHING")
	assert.NoError(t, v.ValidateTransfer(transfer))
}

func TestInvalidTransferSignature(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	// Signed by a key that is not the presenter's.
	transfer := payload.NewDataTransfer(payload.NewPublicIndividual(w.subjectKey.Public()), []*payload.Data{w.nameData}, "CHALLENGE")
	payload.Sign(transfer, genKey(t))

	assert.ErrorIs(t, v.ValidateTransfer(transfer), model.ErrInvalidSignature)
}

func TestUnauthorizedIssuer(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	// A rogue issuer mints a credential without DATA_CREATION.
	rogue := payload.NewAuthority("Rogue", genKey(t))
	rogueData := payload.NewData(rogue, w.subject, payload.DataTypeVaccine, "PFIZER")

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{rogueData}, "CHALLENGE")
	assert.ErrorIs(t, v.ValidateTransfer(transfer), model.ErrUnauthorizedIssuer)
}

func TestRecipientMismatch(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	// Another subject presents John's credential.
	thief := payload.NewIndividual(genKey(t))
	transfer := payload.NewDataTransfer(thief, []*payload.Data{w.nameData}, "CHALLENGE")

	assert.ErrorIs(t, v.ValidateTransfer(transfer), model.ErrRecipientMismatch)
}

func TestAuthorityPresenterPolicy(t *testing.T) {
	w := setup(t)

	// The government presents a credential issued to a third party.
	transfer := payload.NewDataTransfer(w.government, []*payload.Data{w.nameData}, "CHALLENGE")

	strict := New(w.registry, w.government, w.governmentKey, "CHALLENGE")
	assert.ErrorIs(t, strict.ValidateTransfer(transfer), model.ErrRecipientMismatch)

	relaxed := New(w.registry, w.government, w.governmentKey, "CHALLENGE", WithAuthorityPresenter())
	assert.NoError(t, relaxed.ValidateTransfer(transfer))
}

func TestTamperedCredentialRejected(t *testing.T) {
	w := setup(t)
	v := New(w.registry, w.government, w.governmentKey, "CHALLENGE")

	// Re-issue with a different value under the wrong signer so the
	// credential does not validate.
	forged := payload.NewData(w.government, w.subject, payload.DataTypeName, "JANE DOE")
	payload.Sign(forged, w.subjectKey)

	transfer := payload.NewDataTransfer(w.subject, []*payload.Data{forged}, "CHALLENGE")
	assert.ErrorIs(t, v.ValidateTransfer(transfer), model.ErrInvalidSignature)
}
