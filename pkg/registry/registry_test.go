package registry

import (
	"testing"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"

	"github.com/stretchr/testify/assert"
)

func genKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	key, err := keys.Generate()
	assert.NoError(t, err)
	return key
}

func bootstrap(t *testing.T) (*Registry, *payload.Authority) {
	t.Helper()
	main := payload.NewAuthority("Auth490", genKey(t))
	reg, err := New(main)
	assert.NoError(t, err)
	return reg, main
}

func TestBootstrap(t *testing.T) {
	reg, main := bootstrap(t)

	authorities := reg.Authorities()
	assert.Len(t, authorities, 1)
	assert.True(t, payload.Equal(authorities[0], main))

	assert.True(t, reg.IsAuthority(main))
	assert.True(t, reg.HasPermissions(main, payload.AllPermissions()...))
	assert.Empty(t, reg.AuthorityRequests())
	assert.Empty(t, reg.PermissionRequests())
}

func TestNewRejectsInvalidMain(t *testing.T) {
	key := genKey(t)

	tts := []struct {
		name string
		main *payload.Authority
	}{
		{
			name: "public only",
			main: payload.NewPublicAuthority("Auth490", key.Public()),
		},
		{
			name: "nil",
			main: nil,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.main)
			assert.ErrorIs(t, err, model.ErrInvalidMainAuthority)
		})
	}
}

func TestAdmitAuthority(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	request := payload.NewAuthorityRequest(main, government)

	assert.NoError(t, reg.Insert(request))
	assert.Len(t, reg.AuthorityRequests(), 1)
	assert.False(t, reg.IsAuthority(government))

	assert.NoError(t, reg.Insert(payload.NewAuthorityApproval(main, request)))
	assert.True(t, reg.IsAuthority(government))

	// The matching pending request moved out of the pending list.
	assert.Empty(t, reg.AuthorityRequests())
	assert.Len(t, reg.AuthorityApprovals(), 2)
}

func TestGrantPermission(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	authorityRequest := payload.NewAuthorityRequest(main, government)
	assert.NoError(t, reg.Insert(authorityRequest))
	assert.NoError(t, reg.Insert(payload.NewAuthorityApproval(main, authorityRequest)))

	request := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	assert.NoError(t, reg.Insert(request))
	assert.False(t, reg.HasPermissions(government, payload.PermissionDataCreation))

	assert.NoError(t, reg.Insert(payload.NewPermissionApproval(main, request.Permissions(), request)))
	assert.True(t, reg.HasPermissions(government, payload.PermissionDataCreation))
	assert.False(t, reg.HasPermissions(government, payload.PermissionAuthorityApproval))
	assert.Empty(t, reg.PermissionRequests())
}

func TestOverscopedGrant(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	request := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	assert.NoError(t, reg.Insert(request))

	escalated := payload.NewPermissionApproval(main, []payload.PermissionType{payload.PermissionDataCreation, payload.PermissionAuthorityApproval}, request)
	assert.ErrorIs(t, reg.Insert(escalated), model.ErrOverscopedGrant)

	// The pending request stays put and nothing was granted.
	assert.Len(t, reg.PermissionRequests(), 1)
	assert.False(t, reg.HasPermissions(government, payload.PermissionDataCreation))
}

func TestUnauthorizedApprover(t *testing.T) {
	reg, main := bootstrap(t)

	// The intruder was never granted any approval permission.
	intruder := payload.NewAuthority("Intruder", genKey(t))
	government := payload.NewAuthority("Gov", genKey(t))

	authorityRequest := payload.NewAuthorityRequest(main, government)
	assert.NoError(t, reg.Insert(authorityRequest))
	assert.ErrorIs(t, reg.Insert(payload.NewAuthorityApproval(intruder, authorityRequest)), model.ErrUnauthorized)

	permissionRequest := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	assert.NoError(t, reg.Insert(permissionRequest))
	assert.ErrorIs(t, reg.Insert(payload.NewPermissionApproval(intruder, permissionRequest.Permissions(), permissionRequest)), model.ErrUnauthorized)
}

func TestInsertRejectsInvalidSignature(t *testing.T) {
	reg, main := bootstrap(t)

	// Built over a public-only requester, the request carries no
	// signature.
	government := payload.NewAuthority("Gov", genKey(t))
	unsignedRequester := payload.NewPublicAuthority("Nobody", genKey(t).Public())
	request := payload.NewAuthorityRequest(unsignedRequester, government)

	assert.ErrorIs(t, reg.Insert(request), model.ErrInvalidSignature)

	approval := payload.NewAuthorityApproval(unsignedRequester, payload.NewAuthorityRequest(main, government))
	assert.ErrorIs(t, reg.Insert(approval), model.ErrInvalidSignature)
}

func TestInsertRejectsForeignPayload(t *testing.T) {
	reg, main := bootstrap(t)

	subject := payload.NewIndividual(genKey(t))
	data := payload.NewData(main, subject, payload.DataTypeName, "JOHN DOE")

	assert.ErrorIs(t, reg.Insert(data), model.ErrMalformedPayload)
}

func TestPermissionMonotonicity(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	first := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionDataCreation})
	assert.NoError(t, reg.Insert(first))
	assert.NoError(t, reg.Insert(payload.NewPermissionApproval(main, first.Permissions(), first)))
	assert.True(t, reg.HasPermissions(government, payload.PermissionDataCreation))

	// Later grants only add; earlier answers stay true.
	second := payload.NewPermissionRequest(government, []payload.PermissionType{payload.PermissionAuthorityApproval})
	assert.NoError(t, reg.Insert(second))
	assert.NoError(t, reg.Insert(payload.NewPermissionApproval(main, second.Permissions(), second)))

	assert.True(t, reg.HasPermissions(government, payload.PermissionDataCreation))
	assert.True(t, reg.HasPermissions(government, payload.PermissionDataCreation, payload.PermissionAuthorityApproval))
}

func TestDuplicateApprovalsAccepted(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	request := payload.NewAuthorityRequest(main, government)
	assert.NoError(t, reg.Insert(request))

	assert.NoError(t, reg.Insert(payload.NewAuthorityApproval(main, request)))
	assert.NoError(t, reg.Insert(payload.NewAuthorityApproval(main, request)))

	// The registry does not deduplicate.
	assert.Len(t, reg.AuthorityApprovals(), 3)
}

func TestMatchingUsesStructuralEquality(t *testing.T) {
	reg, main := bootstrap(t)

	government := payload.NewAuthority("Gov", genKey(t))
	request := payload.NewAuthorityRequest(main, government)
	assert.NoError(t, reg.Insert(request))

	// The approval embeds a decoded copy, not the inserted pointer.
	decoded, err := payload.DecodePayload(payload.Encode(request))
	assert.NoError(t, err)

	approval := payload.NewAuthorityApproval(main, decoded.(*payload.AuthorityRequest))
	assert.NoError(t, reg.Insert(approval))
	assert.Empty(t, reg.AuthorityRequests())
}

func TestAuthorityByKey(t *testing.T) {
	reg, main := bootstrap(t)

	got, ok := reg.AuthorityByKey(main.PublicKey())
	assert.True(t, ok)
	assert.Equal(t, "Auth490", got.Name())

	_, ok = reg.AuthorityByKey(genKey(t).Public())
	assert.False(t, ok)
}
