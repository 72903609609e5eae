package apiv1

import (
	"context"

	"auth490/pkg/payload"
)

// InsertRequest is the request object for the insert endpoint
type InsertRequest struct {
	// Payload is the transport-form string of a request or approval
	Payload string `json:"payload" validate:"required"`
}

// InsertReply is the reply object for the insert endpoint
type InsertReply struct {
	Tag    string `json:"tag"`
	Status string `json:"status"`
}

// Insert decodes a transport string and dispatches it into the registry
func (c *Client) Insert(ctx context.Context, req *InsertRequest) (*InsertReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:Insert")
	defer span.End()

	p, err := payload.DecodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	err = c.registry.Insert(p)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.log.Info("Inserted payload", "tag", string(p.Tag()))

	return &InsertReply{Tag: string(p.Tag()), Status: "accepted"}, nil
}

// AuthorityReply describes one admitted authority
type AuthorityReply struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	Transport string `json:"transport"`
}

// AuthoritiesReply is the reply object for the authorities endpoint
type AuthoritiesReply struct {
	Authorities []AuthorityReply `json:"authorities"`
}

// Authorities lists the admitted authorities, the main authority first
func (c *Client) Authorities(ctx context.Context) (*AuthoritiesReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:Authorities")
	defer span.End()

	c.mu.Lock()
	authorities := c.registry.Authorities()
	c.mu.Unlock()

	reply := &AuthoritiesReply{Authorities: make([]AuthorityReply, 0, len(authorities))}
	for _, a := range authorities {
		reply.Authorities = append(reply.Authorities, AuthorityReply{
			Name:      a.Name(),
			Key:       a.PublicKey().Base64(),
			Transport: payload.Encode(a),
		})
	}
	return reply, nil
}

// PendingReply is the reply object for the pending-requests endpoint
type PendingReply struct {
	AuthorityRequests  []string `json:"authority_requests"`
	PermissionRequests []string `json:"permission_requests"`
}

// Pending lists the pending requests in arrival order
func (c *Client) Pending(ctx context.Context) (*PendingReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:Pending")
	defer span.End()

	c.mu.Lock()
	authorityRequests := c.registry.AuthorityRequests()
	permissionRequests := c.registry.PermissionRequests()
	c.mu.Unlock()

	reply := &PendingReply{
		AuthorityRequests:  make([]string, 0, len(authorityRequests)),
		PermissionRequests: make([]string, 0, len(permissionRequests)),
	}
	for _, r := range authorityRequests {
		reply.AuthorityRequests = append(reply.AuthorityRequests, payload.Encode(r))
	}
	for _, r := range permissionRequests {
		reply.PermissionRequests = append(reply.PermissionRequests, payload.Encode(r))
	}
	return reply, nil
}

// CheckPermissionsRequest is the request object for the permission check
type CheckPermissionsRequest struct {
	// Holder is the transport form of a key holder
	Holder string `json:"holder" validate:"required"`

	// Permissions are permission type codes
	Permissions []int `json:"permissions" validate:"required,min=1"`
}

// CheckPermissionsReply is the reply object for the permission check
type CheckPermissionsReply struct {
	Allowed bool `json:"allowed"`
}

// CheckPermissions answers the permissions oracle over the transport forms
func (c *Client) CheckPermissions(ctx context.Context, req *CheckPermissionsRequest) (*CheckPermissionsReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:CheckPermissions")
	defer span.End()

	holder, err := c.ResolveHolder(req.Holder)
	if err != nil {
		return nil, err
	}

	permissions := make([]payload.PermissionType, 0, len(req.Permissions))
	for _, code := range req.Permissions {
		permissions = append(permissions, payload.PermissionType(code))
	}

	c.mu.Lock()
	allowed := c.registry.HasPermissions(holder, permissions...)
	c.mu.Unlock()

	return &CheckPermissionsReply{Allowed: allowed}, nil
}

// HealthReply is the reply object for the health endpoint
type HealthReply struct {
	Status string `json:"status"`
}

// Health answers the liveness probe
func (c *Client) Health(ctx context.Context) (*HealthReply, error) {
	return &HealthReply{Status: "STATUS_OK_" + c.cfg.Registry.AuthorityName}, nil
}
