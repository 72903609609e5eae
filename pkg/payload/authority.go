package payload

// AuthorityRequest asks the registry to admit a candidate authority. It is
// signed by the requester.
type AuthorityRequest struct {
	signable
	requester KeyHolder
	authority *Authority
}

// NewAuthorityRequest builds the request. A requester holding a private key
// signs immediately; otherwise the caller attaches a signature.
func NewAuthorityRequest(requester KeyHolder, authority *Authority) *AuthorityRequest {
	r := &AuthorityRequest{requester: requester, authority: authority}
	if requester.IsPrivate() {
		Sign(r, requester)
	}
	return r
}

// Requester returns the requesting identity.
func (r *AuthorityRequest) Requester() KeyHolder { return r.requester }

// Authority returns the candidate authority.
func (r *AuthorityRequest) Authority() *Authority { return r.authority }

func (r *AuthorityRequest) Tag() Tag { return TagAuthorityRequest }

func (r *AuthorityRequest) wire(withSig bool) *object {
	o := newObject(TagAuthorityRequest)
	o.set("r", r.requester.wire(true))
	o.set("d", r.authority.wire(true))
	if withSig {
		o.set("s", r.sig.Base64())
	}
	return o
}

// Validate requires the requester and the candidate to validate and the
// request signature to verify under the requester's key.
func (r *AuthorityRequest) Validate() bool {
	return r.requester.Validate() && r.authority.Validate() && verifySignature(r, r.requester)
}

func decodeAuthorityRequest(raw map[string]any) (Payload, error) {
	rm, err := rawMap(raw, "r")
	if err != nil {
		return nil, err
	}
	requester, err := decodeKeyHolder(rm)
	if err != nil {
		return nil, err
	}

	am, err := rawMap(raw, "d")
	if err != nil {
		return nil, err
	}
	authority, err := decodeAuthority(am)
	if err != nil {
		return nil, err
	}

	r := &AuthorityRequest{requester: requester, authority: authority}
	if err := attachRawSignature(r, raw); err != nil {
		return nil, err
	}
	return r, nil
}

// AuthorityApproval admits the authority named by its embedded request. It
// is signed by the approver.
type AuthorityApproval struct {
	signable
	approver KeyHolder
	request  *AuthorityRequest
}

// NewAuthorityApproval builds the approval. An approver holding a private
// key signs immediately.
func NewAuthorityApproval(approver KeyHolder, request *AuthorityRequest) *AuthorityApproval {
	a := &AuthorityApproval{approver: approver, request: request}
	if approver.IsPrivate() {
		Sign(a, approver)
	}
	return a
}

// Approver returns the approving identity.
func (a *AuthorityApproval) Approver() KeyHolder { return a.approver }

// Request returns the embedded request.
func (a *AuthorityApproval) Request() *AuthorityRequest { return a.request }

func (a *AuthorityApproval) Tag() Tag { return TagAuthorityApproval }

func (a *AuthorityApproval) wire(withSig bool) *object {
	o := newObject(TagAuthorityApproval)
	o.set("a", a.approver.wire(true))
	o.set("r", a.request.wire(true))
	if withSig {
		o.set("s", a.sig.Base64())
	}
	return o
}

// Validate requires the approver and the embedded request to validate and
// the approval signature to verify under the approver's key.
func (a *AuthorityApproval) Validate() bool {
	return a.approver.Validate() && a.request.Validate() && verifySignature(a, a.approver)
}

func decodeAuthorityApproval(raw map[string]any) (Payload, error) {
	am, err := rawMap(raw, "a")
	if err != nil {
		return nil, err
	}
	approver, err := decodeKeyHolder(am)
	if err != nil {
		return nil, err
	}

	rm, err := rawMap(raw, "r")
	if err != nil {
		return nil, err
	}
	request, err := decodeAuthorityRequest(rm)
	if err != nil {
		return nil, err
	}

	a := &AuthorityApproval{approver: approver, request: request.(*AuthorityRequest)}
	if err := attachRawSignature(a, raw); err != nil {
		return nil, err
	}
	return a, nil
}
