package payload

import (
	"fmt"

	"auth490/pkg/model"
)

// PermissionType is a wire-stable permission code.
type PermissionType int

const (
	// PermissionAuthorityApproval allows approving authority requests.
	PermissionAuthorityApproval PermissionType = iota + 1
	// PermissionPermissionApproval allows approving permission requests.
	PermissionPermissionApproval
	// PermissionDataCreation allows minting credentials.
	PermissionDataCreation
)

func (p PermissionType) String() string {
	switch p {
	case PermissionAuthorityApproval:
		return "AUTHORITY_APPROVAL"
	case PermissionPermissionApproval:
		return "PERMISSION_APPROVAL"
	case PermissionDataCreation:
		return "DATA_CREATION"
	}
	return fmt.Sprintf("PERMISSION(%d)", int(p))
}

// AllPermissions returns every known permission type, in code order.
func AllPermissions() []PermissionType {
	return []PermissionType{
		PermissionAuthorityApproval,
		PermissionPermissionApproval,
		PermissionDataCreation,
	}
}

func parsePermissionType(code int) (PermissionType, error) {
	p := PermissionType(code)
	switch p {
	case PermissionAuthorityApproval, PermissionPermissionApproval, PermissionDataCreation:
		return p, nil
	}
	return 0, fmt.Errorf("%w: permission code %d", model.ErrMalformedPayload, code)
}

func permissionCodes(perms []PermissionType) []any {
	out := make([]any, 0, len(perms))
	for _, p := range perms {
		out = append(out, int(p))
	}
	return out
}

// PermissionRequest asks for a set of permissions. Signed by the requester.
type PermissionRequest struct {
	signable
	requester   KeyHolder
	permissions []PermissionType
}

// NewPermissionRequest builds the request. A requester holding a private key
// signs immediately.
func NewPermissionRequest(requester KeyHolder, permissions []PermissionType) *PermissionRequest {
	r := &PermissionRequest{requester: requester, permissions: permissions}
	if requester.IsPrivate() {
		Sign(r, requester)
	}
	return r
}

// Requester returns the requesting identity.
func (r *PermissionRequest) Requester() KeyHolder { return r.requester }

// Permissions returns the requested permission set.
func (r *PermissionRequest) Permissions() []PermissionType { return r.permissions }

func (r *PermissionRequest) Tag() Tag { return TagPermissionRequest }

func (r *PermissionRequest) wire(withSig bool) *object {
	o := newObject(TagPermissionRequest)
	o.set("r", r.requester.wire(true))
	o.set("d", permissionCodes(r.permissions))
	if withSig {
		o.set("s", r.sig.Base64())
	}
	return o
}

// Validate requires the requester to validate and the request signature to
// verify under the requester's key.
func (r *PermissionRequest) Validate() bool {
	return r.requester.Validate() && verifySignature(r, r.requester)
}

func decodePermissionRequest(raw map[string]any) (Payload, error) {
	rm, err := rawMap(raw, "r")
	if err != nil {
		return nil, err
	}
	requester, err := decodeKeyHolder(rm)
	if err != nil {
		return nil, err
	}

	codes, err := rawIntList(raw, "d")
	if err != nil {
		return nil, err
	}
	permissions := make([]PermissionType, 0, len(codes))
	for _, code := range codes {
		p, err := parsePermissionType(code)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}

	r := &PermissionRequest{requester: requester, permissions: permissions}
	if err := attachRawSignature(r, raw); err != nil {
		return nil, err
	}
	return r, nil
}

// PermissionApproval grants a subset of the permissions named by its
// embedded request. Signed by the approver.
type PermissionApproval struct {
	signable
	approver    KeyHolder
	permissions []PermissionType
	request     *PermissionRequest
}

// NewPermissionApproval builds the approval over the granted subset. An
// approver holding a private key signs immediately.
func NewPermissionApproval(approver KeyHolder, permissions []PermissionType, request *PermissionRequest) *PermissionApproval {
	a := &PermissionApproval{approver: approver, permissions: permissions, request: request}
	if approver.IsPrivate() {
		Sign(a, approver)
	}
	return a
}

// Approver returns the approving identity.
func (a *PermissionApproval) Approver() KeyHolder { return a.approver }

// Permissions returns the granted permission set.
func (a *PermissionApproval) Permissions() []PermissionType { return a.permissions }

// Request returns the embedded request.
func (a *PermissionApproval) Request() *PermissionRequest { return a.request }

func (a *PermissionApproval) Tag() Tag { return TagPermissionApproval }

func (a *PermissionApproval) wire(withSig bool) *object {
	o := newObject(TagPermissionApproval)
	o.set("a", a.approver.wire(true))
	o.set("p", permissionCodes(a.permissions))
	o.set("r", a.request.wire(true))
	if withSig {
		o.set("s", a.sig.Base64())
	}
	return o
}

// Validate requires the approver and the embedded request to validate and
// the approval signature to verify under the approver's key.
func (a *PermissionApproval) Validate() bool {
	return a.approver.Validate() && a.request.Validate() && verifySignature(a, a.approver)
}

// Grants reports whether the granted set contains the permission.
func (a *PermissionApproval) Grants(p PermissionType) bool {
	for _, granted := range a.permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// Overscoped reports whether the granted set escapes the requested set.
func (a *PermissionApproval) Overscoped() bool {
	requested := map[PermissionType]bool{}
	for _, p := range a.request.Permissions() {
		requested[p] = true
	}
	for _, p := range a.permissions {
		if !requested[p] {
			return true
		}
	}
	return false
}

func decodePermissionApproval(raw map[string]any) (Payload, error) {
	am, err := rawMap(raw, "a")
	if err != nil {
		return nil, err
	}
	approver, err := decodeKeyHolder(am)
	if err != nil {
		return nil, err
	}

	codes, err := rawIntList(raw, "p")
	if err != nil {
		return nil, err
	}
	permissions := make([]PermissionType, 0, len(codes))
	for _, code := range codes {
		p, err := parsePermissionType(code)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}

	rm, err := rawMap(raw, "r")
	if err != nil {
		return nil, err
	}
	request, err := decodePermissionRequest(rm)
	if err != nil {
		return nil, err
	}

	a := &PermissionApproval{approver: approver, permissions: permissions, request: request.(*PermissionRequest)}
	if err := attachRawSignature(a, raw); err != nil {
		return nil, err
	}
	return a, nil
}
