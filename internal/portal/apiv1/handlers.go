package apiv1

import (
	"context"
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
)

// GenerateKeyReply carries a fresh keypair in transport form
type GenerateKeyReply struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	QRURI      string `json:"qr_uri"`
}

// GenerateKey mints a fresh private key for a wallet
func (c *Client) GenerateKey(ctx context.Context) (*GenerateKeyReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:GenerateKey")
	defer span.End()

	key, err := keys.Generate()
	if err != nil {
		return nil, err
	}

	private := payload.EncodePrivateKey(key)
	uri, err := c.qrURI(private)
	if err != nil {
		return nil, err
	}

	return &GenerateKeyReply{
		PrivateKey: private,
		PublicKey:  payload.EncodePublicKey(key.Public()),
		QRURI:      uri,
	}, nil
}

// DescribeRequest is the request object for the decode endpoint
type DescribeRequest struct {
	Data string `json:"data" validate:"required"`
}

// DescribeReply summarizes a decoded transport string
type DescribeReply struct {
	Kind  string `json:"kind"`
	Tag   string `json:"tag,omitempty"`
	Valid *bool  `json:"valid,omitempty"`
}

// Describe decodes any transport string and reports what it is
func (c *Client) Describe(ctx context.Context, req *DescribeRequest) (*DescribeReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:Describe")
	defer span.End()

	v, err := payload.Decode(req.Data)
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case payload.Signable:
		valid := t.Validate()
		return &DescribeReply{Kind: fmt.Sprintf("%T", t), Tag: string(t.Tag()), Valid: &valid}, nil
	case payload.Payload:
		return &DescribeReply{Kind: fmt.Sprintf("%T", t), Tag: string(t.Tag())}, nil
	default:
		return &DescribeReply{Kind: fmt.Sprintf("%T", t)}, nil
	}
}

// AuthorityRequestRequest is the request object for building an authority
// request
type AuthorityRequestRequest struct {
	Name string `json:"name" validate:"required"`

	// Requester signs the request; a private key in transport form
	Requester string `json:"requester" validate:"required"`

	// RequesterHolder optionally names the requesting identity
	RequesterHolder string `json:"requester_holder"`

	// AuthorityKey is the candidate's private key in transport form
	AuthorityKey string `json:"authority_key" validate:"required"`
}

// BuildAuthorityRequest builds and signs an authority admission request
func (c *Client) BuildAuthorityRequest(ctx context.Context, req *AuthorityRequestRequest) (*TransportReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:BuildAuthorityRequest")
	defer span.End()

	requester, requesterKey, err := resolveSigner(req.Requester, req.RequesterHolder)
	if err != nil {
		return nil, err
	}

	v, err := payload.Decode(req.AuthorityKey)
	if err != nil {
		return nil, err
	}
	authorityKey, ok := v.(*keys.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: authority key must be a private key, got %T", model.ErrMalformedPayload, v)
	}

	candidate := payload.NewAuthority(req.Name, authorityKey)
	request := payload.NewAuthorityRequest(requester, candidate)
	payload.Sign(request, requesterKey)

	return c.transportReply(request)
}

// PermissionRequestRequest is the request object for building a permission
// request
type PermissionRequestRequest struct {
	Requester       string `json:"requester" validate:"required"`
	RequesterHolder string `json:"requester_holder"`
	Permissions     []int  `json:"permissions" validate:"required,min=1"`
}

// BuildPermissionRequest builds and signs a permission request
func (c *Client) BuildPermissionRequest(ctx context.Context, req *PermissionRequestRequest) (*TransportReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:BuildPermissionRequest")
	defer span.End()

	requester, requesterKey, err := resolveSigner(req.Requester, req.RequesterHolder)
	if err != nil {
		return nil, err
	}

	permissions := make([]payload.PermissionType, 0, len(req.Permissions))
	for _, code := range req.Permissions {
		permissions = append(permissions, payload.PermissionType(code))
	}

	request := payload.NewPermissionRequest(requester, permissions)
	payload.Sign(request, requesterKey)

	return c.transportReply(request)
}

// ApprovalRequest is the request object for approving a pending request
type ApprovalRequest struct {
	Approver       string `json:"approver" validate:"required"`
	ApproverHolder string `json:"approver_holder"`

	// Request is the transport form of the request being approved
	Request string `json:"request" validate:"required"`
}

// BuildApproval builds the matching approval for an authority or
// permission request, granting exactly what was requested
func (c *Client) BuildApproval(ctx context.Context, req *ApprovalRequest) (*TransportReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:BuildApproval")
	defer span.End()

	approver, approverKey, err := resolveSigner(req.Approver, req.ApproverHolder)
	if err != nil {
		return nil, err
	}

	p, err := payload.DecodePayload(req.Request)
	if err != nil {
		return nil, err
	}

	switch request := p.(type) {
	case *payload.AuthorityRequest:
		approval := payload.NewAuthorityApproval(approver, request)
		payload.Sign(approval, approverKey)
		return c.transportReply(approval)
	case *payload.PermissionRequest:
		approval := payload.NewPermissionApproval(approver, request.Permissions(), request)
		payload.Sign(approval, approverKey)
		return c.transportReply(approval)
	default:
		return nil, fmt.Errorf("%w: cannot approve tag %q", model.ErrMalformedPayload, p.Tag())
	}
}

// CredentialRequest is the request object for minting a credential
type CredentialRequest struct {
	Provider       string `json:"provider" validate:"required"`
	ProviderHolder string `json:"provider_holder"`

	// Request is the data request naming the recipient
	Request string `json:"request" validate:"required"`

	Type  int    `json:"type" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// BuildCredential mints a credential for the requester of a data request
func (c *Client) BuildCredential(ctx context.Context, req *CredentialRequest) (*TransportReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:BuildCredential")
	defer span.End()

	provider, providerKey, err := resolveSigner(req.Provider, req.ProviderHolder)
	if err != nil {
		return nil, err
	}

	request, err := decodeAs[*payload.DataRequest](req.Request)
	if err != nil {
		return nil, err
	}

	data := payload.NewData(provider, request.Requester(), payload.DataType(req.Type), req.Value)
	payload.Sign(data, providerKey)

	return c.transportReply(data)
}

// TransferRequest is the request object for answering a data request
type TransferRequest struct {
	Provider       string `json:"provider" validate:"required"`
	ProviderHolder string `json:"provider_holder"`

	// Request is the data request being answered; its challenge binds the
	// transfer
	Request string `json:"request" validate:"required"`

	// Datas are the credentials to present, in transport form
	Datas []string `json:"datas" validate:"required,min=1"`
}

// BuildTransfer bundles credentials into a transfer answering a data
// request's challenge
func (c *Client) BuildTransfer(ctx context.Context, req *TransferRequest) (*TransportReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:BuildTransfer")
	defer span.End()

	provider, providerKey, err := resolveSigner(req.Provider, req.ProviderHolder)
	if err != nil {
		return nil, err
	}

	request, err := decodeAs[*payload.DataRequest](req.Request)
	if err != nil {
		return nil, err
	}

	datas := make([]*payload.Data, 0, len(req.Datas))
	for _, transport := range req.Datas {
		data, err := decodeAs[*payload.Data](transport)
		if err != nil {
			return nil, err
		}
		datas = append(datas, data)
	}

	transfer := payload.NewDataTransfer(provider, datas, request.Challenge())
	payload.Sign(transfer, providerKey)

	return c.transportReply(transfer)
}

// HealthReply is the reply object for the health endpoint
type HealthReply struct {
	Status string `json:"status"`
}

// Health answers the liveness probe
func (c *Client) Health(ctx context.Context) (*HealthReply, error) {
	return &HealthReply{Status: "STATUS_OK_portal"}, nil
}
