// Package registry keeps the append-only log of delegation requests and
// approvals and answers permission queries over it. A registry is a plain
// process-local value; it is not internally synchronized, callers sharing
// one across goroutines serialize mutations themselves.
package registry

import (
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
)

// Registry holds the four ordered sequences of the delegation log. The
// first entry of both approval lists is always the main authority's
// bootstrap self-grant.
type Registry struct {
	main *payload.Authority

	authorityRequests   []*payload.AuthorityRequest
	authorityApprovals  []*payload.AuthorityApproval
	permissionRequests  []*payload.PermissionRequest
	permissionApprovals []*payload.PermissionApproval
}

// New bootstraps a registry from the main authority, which must validate
// and hold a private key. The constructor synthesizes a self-approved
// authority admission and a self-approved grant of every permission type.
func New(main *payload.Authority) (*Registry, error) {
	if main == nil || !main.IsPrivate() || !main.Validate() {
		return nil, model.ErrInvalidMainAuthority
	}

	r := &Registry{main: main}

	authorityRequest := payload.NewAuthorityRequest(main, main)
	r.authorityApprovals = append(r.authorityApprovals, payload.NewAuthorityApproval(main, authorityRequest))

	permissionRequest := payload.NewPermissionRequest(main, payload.AllPermissions())
	r.permissionApprovals = append(r.permissionApprovals, payload.NewPermissionApproval(main, payload.AllPermissions(), permissionRequest))

	return r, nil
}

// Main returns the bootstrap authority.
func (r *Registry) Main() *payload.Authority { return r.main }

// Insert dispatches a payload into the log. Requests are appended as
// pending; approvals are permission-checked, matched against their pending
// request and appended.
func (r *Registry) Insert(p payload.Payload) error {
	switch v := p.(type) {
	case *payload.AuthorityRequest:
		return r.insertAuthorityRequest(v)
	case *payload.AuthorityApproval:
		return r.insertAuthorityApproval(v)
	case *payload.PermissionRequest:
		return r.insertPermissionRequest(v)
	case *payload.PermissionApproval:
		return r.insertPermissionApproval(v)
	default:
		return fmt.Errorf("%w: registry cannot ingest tag %q", model.ErrMalformedPayload, p.Tag())
	}
}

func (r *Registry) insertAuthorityRequest(req *payload.AuthorityRequest) error {
	if !req.Validate() {
		return model.ErrInvalidSignature
	}
	r.authorityRequests = append(r.authorityRequests, req)
	return nil
}

func (r *Registry) insertAuthorityApproval(approval *payload.AuthorityApproval) error {
	if !approval.Validate() {
		return model.ErrInvalidSignature
	}
	if !r.HasPermissions(approval.Approver(), payload.PermissionAuthorityApproval) {
		return model.ErrUnauthorized
	}

	for i, pending := range r.authorityRequests {
		if payload.Equal(pending, approval.Request()) {
			r.authorityRequests = append(r.authorityRequests[:i], r.authorityRequests[i+1:]...)
			break
		}
	}
	r.authorityApprovals = append(r.authorityApprovals, approval)
	return nil
}

func (r *Registry) insertPermissionRequest(req *payload.PermissionRequest) error {
	if !req.Validate() {
		return model.ErrInvalidSignature
	}
	r.permissionRequests = append(r.permissionRequests, req)
	return nil
}

func (r *Registry) insertPermissionApproval(approval *payload.PermissionApproval) error {
	if !approval.Validate() {
		return model.ErrInvalidSignature
	}
	if !r.HasPermissions(approval.Approver(), payload.PermissionPermissionApproval) {
		return model.ErrUnauthorized
	}
	if approval.Overscoped() {
		return model.ErrOverscopedGrant
	}

	for i, pending := range r.permissionRequests {
		if payload.Equal(pending, approval.Request()) {
			r.permissionRequests = append(r.permissionRequests[:i], r.permissionRequests[i+1:]...)
			break
		}
	}
	r.permissionApprovals = append(r.permissionApprovals, approval)
	return nil
}

// Authorities returns the admitted authorities in admission order, the main
// authority first.
func (r *Registry) Authorities() []*payload.Authority {
	out := make([]*payload.Authority, 0, len(r.authorityApprovals))
	for _, approval := range r.authorityApprovals {
		out = append(out, approval.Request().Authority())
	}
	return out
}

// IsAuthority reports whether some admitted authority holds the same public
// key.
func (r *Registry) IsAuthority(holder payload.KeyHolder) bool {
	for _, authority := range r.Authorities() {
		if authority.PublicKey().Equal(holder.PublicKey()) {
			return true
		}
	}
	return false
}

// HasPermissions reports whether every named permission has been granted to
// the holder. Grants are matched by public-key equality on the embedded
// request's requester; once granted, a permission is never revoked.
func (r *Registry) HasPermissions(holder payload.KeyHolder, permissions ...payload.PermissionType) bool {
	for _, permission := range permissions {
		if !r.hasPermission(holder, permission) {
			return false
		}
	}
	return true
}

func (r *Registry) hasPermission(holder payload.KeyHolder, permission payload.PermissionType) bool {
	for _, approval := range r.permissionApprovals {
		if !payload.SameKey(approval.Request().Requester(), holder) {
			continue
		}
		if approval.Grants(permission) {
			return true
		}
	}
	return false
}

// AuthorityRequests returns the pending authority requests.
func (r *Registry) AuthorityRequests() []*payload.AuthorityRequest {
	return r.authorityRequests
}

// AuthorityApprovals returns the accepted authority approvals.
func (r *Registry) AuthorityApprovals() []*payload.AuthorityApproval {
	return r.authorityApprovals
}

// PermissionRequests returns the pending permission requests.
func (r *Registry) PermissionRequests() []*payload.PermissionRequest {
	return r.permissionRequests
}

// PermissionApprovals returns the accepted permission approvals.
func (r *Registry) PermissionApprovals() []*payload.PermissionApproval {
	return r.permissionApprovals
}

// AuthorityByKey returns the admitted authority holding the given public
// key, if any.
func (r *Registry) AuthorityByKey(key *keys.PublicKey) (*payload.Authority, bool) {
	for _, authority := range r.Authorities() {
		if authority.PublicKey().Equal(key) {
			return authority, true
		}
	}
	return nil, false
}
