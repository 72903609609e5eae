package apiv1

import (
	"context"
	"path/filepath"
	"testing"

	registryapiv1 "auth490/internal/registry/apiv1"
	"auth490/pkg/keys"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/trace"

	"github.com/stretchr/testify/assert"
)

func mockClient(ctx context.Context, t *testing.T) (*Client, *registryapiv1.Client) {
	t.Helper()

	log := logger.NewSimple("verifier")

	tracer, err := trace.NewForTesting(ctx, "verifier", log)
	assert.NoError(t, err)

	cfg := &model.Cfg{}
	cfg.Registry.AuthorityName = "Auth490"
	cfg.Registry.KeyFile = filepath.Join(t.TempDir(), ".pk")
	cfg.Verifier.SessionTTL = 60
	cfg.Common.QR.Size = 64

	registryClient, err := registryapiv1.New(ctx, cfg, tracer, log)
	assert.NoError(t, err)

	client, err := New(ctx, registryClient, cfg, tracer, log)
	assert.NoError(t, err)
	t.Cleanup(func() { client.Close(ctx) })

	return client, registryClient
}

func TestPresentationFlow(t *testing.T) {
	ctx := context.Background()
	client, registryClient := mockClient(ctx, t)

	opened, err := client.NewPresentation(ctx, &NewPresentationRequest{Types: []int{int(payload.DataTypeName)}})
	assert.NoError(t, err)
	assert.NotEmpty(t, opened.SessionID)
	assert.NotEmpty(t, opened.Challenge)
	assert.Contains(t, opened.QRURI, "data:image/png;base64,")

	// The request decodes and carries the session challenge.
	decoded, err := payload.DecodePayload(opened.Request)
	assert.NoError(t, err)
	request := decoded.(*payload.DataRequest)
	assert.True(t, request.Validate())
	assert.Equal(t, opened.Challenge, request.Challenge())

	// The subject answers with a credential issued by the main authority.
	subjectKey, err := keys.Generate()
	assert.NoError(t, err)
	subject := payload.NewIndividual(subjectKey)

	main := registryClient.Registry().Main()
	data := payload.NewData(main, subject, payload.DataTypeName, "JOHN DOE")
	transfer := payload.NewDataTransfer(subject, []*payload.Data{data}, request.Challenge())

	reply, err := client.Verify(ctx, &VerifyRequest{
		SessionID: opened.SessionID,
		Transfer:  payload.Encode(transfer),
	})
	assert.NoError(t, err)
	assert.True(t, reply.Verified)
	assert.Len(t, reply.Disclosed, 1)
	assert.Equal(t, "NAME", reply.Disclosed[0].Type)
	assert.Equal(t, "JOHN DOE", reply.Disclosed[0].Value)
	assert.Equal(t, "Auth490", reply.Disclosed[0].Provider)

	// A session answers once.
	_, err = client.Verify(ctx, &VerifyRequest{
		SessionID: opened.SessionID,
		Transfer:  payload.Encode(transfer),
	})
	assert.ErrorIs(t, err, model.ErrChallengeMismatch)
}

func TestVerifyWrongChallenge(t *testing.T) {
	ctx := context.Background()
	client, registryClient := mockClient(ctx, t)

	opened, err := client.NewPresentation(ctx, &NewPresentationRequest{Types: []int{int(payload.DataTypeName)}})
	assert.NoError(t, err)

	subjectKey, err := keys.Generate()
	assert.NoError(t, err)
	subject := payload.NewIndividual(subjectKey)

	main := registryClient.Registry().Main()
	data := payload.NewData(main, subject, payload.DataTypeName, "JOHN DOE")
	transfer := payload.NewDataTransfer(subject, []*payload.Data{data}, "REPLAYED")

	_, err = client.Verify(ctx, &VerifyRequest{
		SessionID: opened.SessionID,
		Transfer:  payload.Encode(transfer),
	})
	assert.ErrorIs(t, err, model.ErrChallengeMismatch)
}

func TestVerifyUnknownSession(t *testing.T) {
	ctx := context.Background()
	client, _ := mockClient(ctx, t)

	_, err := client.Verify(ctx, &VerifyRequest{SessionID: "missing", Transfer: "DT:00"})
	assert.ErrorIs(t, err, model.ErrChallengeMismatch)
}

func TestVerifyRejectsNonTransfer(t *testing.T) {
	ctx := context.Background()
	client, registryClient := mockClient(ctx, t)

	opened, err := client.NewPresentation(ctx, &NewPresentationRequest{Types: []int{int(payload.DataTypeName)}})
	assert.NoError(t, err)

	main := registryClient.Registry().Main()

	_, err = client.Verify(ctx, &VerifyRequest{
		SessionID: opened.SessionID,
		Transfer:  payload.Encode(main),
	})
	assert.ErrorIs(t, err, model.ErrMalformedPayload)
}
