package payload

import (
	"fmt"

	"auth490/pkg/model"
)

// DataType is a wire-stable credential type code.
type DataType int

const (
	// DataTypeName is a legal-name credential.
	DataTypeName DataType = iota + 1
	// DataTypeVaccine is a vaccination credential.
	DataTypeVaccine
)

func (d DataType) String() string {
	switch d {
	case DataTypeName:
		return "NAME"
	case DataTypeVaccine:
		return "VACCINE"
	}
	return fmt.Sprintf("DATA(%d)", int(d))
}

func parseDataType(code int) (DataType, error) {
	d := DataType(code)
	switch d {
	case DataTypeName, DataTypeVaccine:
		return d, nil
	}
	return 0, fmt.Errorf("%w: data type code %d", model.ErrMalformedPayload, code)
}

func dataTypeCodes(types []DataType) []any {
	out := make([]any, 0, len(types))
	for _, t := range types {
		out = append(out, int(t))
	}
	return out
}

// Data is a credential: a signed assertion by a provider about a recipient.
type Data struct {
	signable
	provider  KeyHolder
	recipient KeyHolder
	value     string
	dataType  DataType
}

// NewData builds the credential. A provider holding a private key signs
// immediately.
func NewData(provider, recipient KeyHolder, dataType DataType, value string) *Data {
	d := &Data{provider: provider, recipient: recipient, value: value, dataType: dataType}
	if provider.IsPrivate() {
		Sign(d, provider)
	}
	return d
}

// Provider returns the issuing identity.
func (d *Data) Provider() KeyHolder { return d.provider }

// Recipient returns the subject the credential is bound to.
func (d *Data) Recipient() KeyHolder { return d.recipient }

// Value returns the asserted value.
func (d *Data) Value() string { return d.value }

// Type returns the credential type.
func (d *Data) Type() DataType { return d.dataType }

func (d *Data) Tag() Tag { return TagData }

func (d *Data) wire(withSig bool) *object {
	o := newObject(TagData)
	o.set("p", d.provider.wire(true))
	o.set("r", d.recipient.wire(true))
	o.set("v", d.value)
	o.set("d", int(d.dataType))
	if withSig {
		o.set("s", d.sig.Base64())
	}
	return o
}

// Validate requires both identities to validate and the credential
// signature to verify under the provider's key. The recipient only needs a
// valid public identity.
func (d *Data) Validate() bool {
	return d.provider.Validate() && d.recipient.Validate() && verifySignature(d, d.provider)
}

func decodeData(raw map[string]any) (Payload, error) {
	pm, err := rawMap(raw, "p")
	if err != nil {
		return nil, err
	}
	provider, err := decodeKeyHolder(pm)
	if err != nil {
		return nil, err
	}

	rm, err := rawMap(raw, "r")
	if err != nil {
		return nil, err
	}
	recipient, err := decodeKeyHolder(rm)
	if err != nil {
		return nil, err
	}

	value, err := rawString(raw, "v")
	if err != nil {
		return nil, err
	}

	code, ok := raw["d"]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", model.ErrMalformedPayload, "d")
	}
	n, err := rawInt(code)
	if err != nil {
		return nil, err
	}
	dataType, err := parseDataType(n)
	if err != nil {
		return nil, err
	}

	d := &Data{provider: provider, recipient: recipient, value: value, dataType: dataType}
	if err := attachRawSignature(d, raw); err != nil {
		return nil, err
	}
	return d, nil
}

// DataTransfer bundles credentials presented by a subject under a
// challenge. The transfer's provider is the presenting subject, signing the
// bundle with its own key.
type DataTransfer struct {
	signable
	provider  KeyHolder
	datas     []*Data
	challenge string
}

// NewDataTransfer builds the transfer. A provider holding a private key
// signs immediately.
func NewDataTransfer(provider KeyHolder, datas []*Data, challenge string) *DataTransfer {
	t := &DataTransfer{provider: provider, datas: datas, challenge: challenge}
	if provider.IsPrivate() {
		Sign(t, provider)
	}
	return t
}

// Provider returns the presenting identity.
func (t *DataTransfer) Provider() KeyHolder { return t.provider }

// Datas returns the bundled credentials.
func (t *DataTransfer) Datas() []*Data { return t.datas }

// Challenge returns the nonce the transfer answers.
func (t *DataTransfer) Challenge() string { return t.challenge }

func (t *DataTransfer) Tag() Tag { return TagDataTransfer }

func (t *DataTransfer) wire(withSig bool) *object {
	o := newObject(TagDataTransfer)
	o.set("p", t.provider.wire(true))
	list := make([]any, 0, len(t.datas))
	for _, d := range t.datas {
		list = append(list, d.wire(true))
	}
	o.set("d", list)
	o.set("c", t.challenge)
	if withSig {
		o.set("s", t.sig.Base64())
	}
	return o
}

// Validate requires the presenting identity and every bundled credential to
// validate and the transfer signature to verify under the presenter's key.
func (t *DataTransfer) Validate() bool {
	if !t.provider.Validate() {
		return false
	}
	for _, d := range t.datas {
		if !d.Validate() {
			return false
		}
	}
	return verifySignature(t, t.provider)
}

func decodeDataTransfer(raw map[string]any) (Payload, error) {
	pm, err := rawMap(raw, "p")
	if err != nil {
		return nil, err
	}
	provider, err := decodeKeyHolder(pm)
	if err != nil {
		return nil, err
	}

	list, err := rawList(raw, "d")
	if err != nil {
		return nil, err
	}
	datas := make([]*Data, 0, len(list))
	for _, v := range list {
		dm, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: transfer data entry is not a map", model.ErrMalformedPayload)
		}
		d, err := decodeData(dm)
		if err != nil {
			return nil, err
		}
		datas = append(datas, d.(*Data))
	}

	challenge, err := rawString(raw, "c")
	if err != nil {
		return nil, err
	}

	t := &DataTransfer{provider: provider, datas: datas, challenge: challenge}
	if err := attachRawSignature(t, raw); err != nil {
		return nil, err
	}
	return t, nil
}

// DataRequest challenges a subject to present credentials of the named
// types. Signed by the requester (the verifier).
type DataRequest struct {
	signable
	requester KeyHolder
	types     []DataType
	challenge string
}

// NewDataRequest builds the request. A requester holding a private key
// signs immediately.
func NewDataRequest(requester KeyHolder, types []DataType, challenge string) *DataRequest {
	r := &DataRequest{requester: requester, types: types, challenge: challenge}
	if requester.IsPrivate() {
		Sign(r, requester)
	}
	return r
}

// Requester returns the challenging identity.
func (r *DataRequest) Requester() KeyHolder { return r.requester }

// Types returns the requested credential types.
func (r *DataRequest) Types() []DataType { return r.types }

// Challenge returns the session nonce.
func (r *DataRequest) Challenge() string { return r.challenge }

func (r *DataRequest) Tag() Tag { return TagDataRequest }

func (r *DataRequest) wire(withSig bool) *object {
	o := newObject(TagDataRequest)
	o.set("r", r.requester.wire(true))
	o.set("d", dataTypeCodes(r.types))
	o.set("c", r.challenge)
	if withSig {
		o.set("s", r.sig.Base64())
	}
	return o
}

// Validate requires the requester to validate and the request signature to
// verify under the requester's key.
func (r *DataRequest) Validate() bool {
	return r.requester.Validate() && verifySignature(r, r.requester)
}

func decodeDataRequest(raw map[string]any) (Payload, error) {
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
	types := make([]DataType, 0, len(codes))
	for _, code := range codes {
		d, err := parseDataType(code)
		if err != nil {
			return nil, err
		}
		types = append(types, d)
	}

	challenge, err := rawString(raw, "c")
	if err != nil {
		return nil, err
	}

	r := &DataRequest{requester: requester, types: types, challenge: challenge}
	if err := attachRawSignature(r, raw); err != nil {
		return nil, err
	}
	return r, nil
}
