package apiv1

import (
	"context"
	"fmt"

	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/qr"
	"auth490/pkg/verifier"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/lithammer/shortuuid/v4"
)

// NewPresentationRequest is the request object for opening a presentation
// session
type NewPresentationRequest struct {
	// Types are the requested credential type codes
	Types []int `json:"types" validate:"required,min=1"`
}

// NewPresentationReply is the reply object for an opened session
type NewPresentationReply struct {
	SessionID string `json:"session_id"`
	Challenge string `json:"challenge"`
	Request   string `json:"request"`
	QRURI     string `json:"qr_uri"`
}

// NewPresentation opens a presentation session: a fresh challenge, a
// verifier bound to it and the signed data request for the subject
func (c *Client) NewPresentation(ctx context.Context, req *NewPresentationRequest) (*NewPresentationReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:NewPresentation")
	defer span.End()

	types := make([]payload.DataType, 0, len(req.Types))
	for _, code := range req.Types {
		types = append(types, payload.DataType(code))
	}

	var opts []verifier.Option
	if c.cfg.Verifier.AllowAuthorityPresenter {
		opts = append(opts, verifier.WithAuthorityPresenter())
	}

	challenge := shortuuid.New()
	v := verifier.New(c.registry.Registry(), c.registry.Registry().Main(), c.registry.MainKey(), challenge, opts...)

	sessionID := uuid.NewString()
	c.sessions.Set(sessionID, v, ttlcache.DefaultTTL)

	request := v.RequestData(types...)
	transport := payload.Encode(request)

	qrURI, err := qr.DataURI(transport, c.cfg.Common.QR.Size)
	if err != nil {
		return nil, err
	}

	c.log.Info("Opened presentation session", "session_id", sessionID)

	return &NewPresentationReply{
		SessionID: sessionID,
		Challenge: challenge,
		Request:   transport,
		QRURI:     qrURI,
	}, nil
}

// VerifyRequest is the request object for verifying a presentation
type VerifyRequest struct {
	SessionID string `json:"session_id" uri:"session_id" validate:"required"`

	// Transfer is the transport form of the subject's data transfer
	Transfer string `json:"transfer" validate:"required"`
}

// DisclosedData is one verified credential of a presentation
type DisclosedData struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Provider string `json:"provider"`
}

// VerifyReply is the reply object for a verified presentation
type VerifyReply struct {
	Verified  bool            `json:"verified"`
	Disclosed []DisclosedData `json:"disclosed"`
}

// Verify checks a presented transfer against its session
func (c *Client) Verify(ctx context.Context, req *VerifyRequest) (*VerifyReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:Verify")
	defer span.End()

	item := c.sessions.Get(req.SessionID)
	if item == nil {
		return nil, fmt.Errorf("%w: unknown session %q", model.ErrChallengeMismatch, req.SessionID)
	}
	v := item.Value()

	p, err := payload.DecodePayload(req.Transfer)
	if err != nil {
		return nil, err
	}
	transfer, ok := p.(*payload.DataTransfer)
	if !ok {
		return nil, fmt.Errorf("%w: expected a data transfer, got tag %q", model.ErrMalformedPayload, p.Tag())
	}

	if err := v.ValidateTransfer(transfer); err != nil {
		return nil, err
	}

	c.sessions.Delete(req.SessionID)

	reply := &VerifyReply{Verified: true}
	for _, d := range transfer.Datas() {
		disclosed := DisclosedData{Type: d.Type().String(), Value: d.Value()}
		if a, ok := d.Provider().(*payload.Authority); ok {
			disclosed.Provider = a.Name()
		}
		reply.Disclosed = append(reply.Disclosed, disclosed)
	}

	c.log.Info("Verified presentation", "session_id", req.SessionID, "credentials", len(reply.Disclosed))

	return reply, nil
}

// HealthReply is the reply object for the health endpoint
type HealthReply struct {
	Status string `json:"status"`
}

// Health answers the liveness probe
func (c *Client) Health(ctx context.Context) (*HealthReply, error) {
	return &HealthReply{Status: "STATUS_OK_verifier"}, nil
}
