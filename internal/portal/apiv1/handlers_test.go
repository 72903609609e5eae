package apiv1

import (
	"context"
	"testing"

	"auth490/pkg/keys"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/trace"

	"github.com/stretchr/testify/assert"
)

func mockClient(ctx context.Context, t *testing.T) *Client {
	t.Helper()

	log := logger.NewSimple("portal")

	tracer, err := trace.NewForTesting(ctx, "portal", log)
	assert.NoError(t, err)

	cfg := &model.Cfg{}
	cfg.Common.QR.Size = 64

	client, err := New(ctx, cfg, tracer, log)
	assert.NoError(t, err)

	return client
}

func TestGenerateKey(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)

	reply, err := client.GenerateKey(ctx)
	assert.NoError(t, err)
	assert.Contains(t, reply.PrivateKey, "PK:")
	assert.Contains(t, reply.PublicKey, "K:")
	assert.Contains(t, reply.QRURI, "data:image/png;base64,")

	// The minted key round-trips through the decoder.
	_, err = payload.Decode(reply.PrivateKey)
	assert.NoError(t, err)
}

func TestBuildDelegationChain(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)

	requesterKey, err := client.GenerateKey(ctx)
	assert.NoError(t, err)
	candidateKey, err := client.GenerateKey(ctx)
	assert.NoError(t, err)

	requestReply, err := client.BuildAuthorityRequest(ctx, &AuthorityRequestRequest{
		Name:         "Gov",
		Requester:    requesterKey.PrivateKey,
		AuthorityKey: candidateKey.PrivateKey,
	})
	assert.NoError(t, err)

	decoded, err := payload.DecodePayload(requestReply.Transport)
	assert.NoError(t, err)
	request := decoded.(*payload.AuthorityRequest)
	assert.True(t, request.Validate())
	assert.Equal(t, "Gov", request.Authority().Name())

	approvalReply, err := client.BuildApproval(ctx, &ApprovalRequest{
		Approver: requesterKey.PrivateKey,
		Request:  requestReply.Transport,
	})
	assert.NoError(t, err)

	decoded, err = payload.DecodePayload(approvalReply.Transport)
	assert.NoError(t, err)
	assert.True(t, decoded.(*payload.AuthorityApproval).Validate())
}

func TestBuildPermissionRequestAndApproval(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)

	requesterKey, err := client.GenerateKey(ctx)
	assert.NoError(t, err)

	requestReply, err := client.BuildPermissionRequest(ctx, &PermissionRequestRequest{
		Requester:   requesterKey.PrivateKey,
		Permissions: []int{int(payload.PermissionDataCreation)},
	})
	assert.NoError(t, err)

	approvalReply, err := client.BuildApproval(ctx, &ApprovalRequest{
		Approver: requesterKey.PrivateKey,
		Request:  requestReply.Transport,
	})
	assert.NoError(t, err)

	decoded, err := payload.DecodePayload(approvalReply.Transport)
	assert.NoError(t, err)
	approval := decoded.(*payload.PermissionApproval)
	assert.True(t, approval.Validate())
	assert.False(t, approval.Overscoped())
}

func TestCredentialAndTransferFlow(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)

	verifierKey, err := keys.Generate()
	assert.NoError(t, err)
	verifierIdentity := payload.NewIndividual(verifierKey)

	providerKey, err := client.GenerateKey(ctx)
	assert.NoError(t, err)
	subjectKey, err := client.GenerateKey(ctx)
	assert.NoError(t, err)

	// The subject asks for a NAME credential; the verifier side of this
	// exchange lives in the verifier service, so the data request is
	// built directly here.
	subjectRequest := payload.NewDataRequest(mustIndividual(t, subjectKey.PrivateKey), []payload.DataType{payload.DataTypeName}, "CHALLENGE")

	credentialReply, err := client.BuildCredential(ctx, &CredentialRequest{
		Provider: providerKey.PrivateKey,
		Request:  payload.Encode(subjectRequest),
		Type:     int(payload.DataTypeName),
		Value:    "JOHN DOE",
	})
	assert.NoError(t, err)

	decoded, err := payload.DecodePayload(credentialReply.Transport)
	assert.NoError(t, err)
	credential := decoded.(*payload.Data)
	assert.True(t, credential.Validate())
	assert.Equal(t, "JOHN DOE", credential.Value())

	// The verifier challenges the subject, who answers with a transfer.
	verifierRequest := payload.NewDataRequest(verifierIdentity, []payload.DataType{payload.DataTypeName}, "SESSION")

	transferReply, err := client.BuildTransfer(ctx, &TransferRequest{
		Provider: subjectKey.PrivateKey,
		Request:  payload.Encode(verifierRequest),
		Datas:    []string{credentialReply.Transport},
	})
	assert.NoError(t, err)

	decoded, err = payload.DecodePayload(transferReply.Transport)
	assert.NoError(t, err)
	transfer := decoded.(*payload.DataTransfer)
	assert.True(t, transfer.Validate())
	assert.Equal(t, "SESSION", transfer.Challenge())
}

func mustIndividual(t *testing.T, privateTransport string) *payload.Individual {
	t.Helper()

	v, err := payload.Decode(privateTransport)
	assert.NoError(t, err)

	key, ok := v.(*keys.PrivateKey)
	assert.True(t, ok)

	return payload.NewIndividual(key)
}

func TestWalletHandlers(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)

	keyReply, err := client.GenerateKey(ctx)
	assert.NoError(t, err)

	inserted, err := client.WalletInsert(ctx, "", &WalletInsertRequest{Data: keyReply.PrivateKey})
	assert.NoError(t, err)
	assert.Len(t, inserted.Items, 1)
	assert.Equal(t, "private_key", inserted.Items[0].Kind)
	assert.NotEmpty(t, inserted.Token)

	listed, err := client.WalletList(ctx, inserted.Token)
	assert.NoError(t, err)
	assert.Len(t, listed.Items, 1)

	removed, err := client.WalletRemove(ctx, inserted.Token, &WalletRemoveRequest{Index: 0})
	assert.NoError(t, err)
	assert.Empty(t, removed.Items)

	// Transfers are not wallet material.
	subject := payload.NewIndividual(mustKey(t))
	transfer := payload.NewDataTransfer(subject, nil, "c")
	_, err = client.WalletInsert(ctx, "", &WalletInsertRequest{Data: payload.Encode(transfer)})
	assert.ErrorIs(t, err, model.ErrUnsupportedWalletItem)
}

func mustKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	key, err := keys.Generate()
	assert.NoError(t, err)
	return key
}
