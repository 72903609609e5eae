package apiv1

import (
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/qr"
)

// TransportReply carries a built payload in transport form plus its QR
// rendering
type TransportReply struct {
	Transport string `json:"transport"`
	QRURI     string `json:"qr_uri"`
}

func (c *Client) qrURI(data string) (string, error) {
	return qr.DataURI(data, c.cfg.Common.QR.Size)
}

func (c *Client) transportReply(p payload.Payload) (*TransportReply, error) {
	transport := payload.Encode(p)
	uri, err := qr.DataURI(transport, c.cfg.Common.QR.Size)
	if err != nil {
		return nil, err
	}
	return &TransportReply{Transport: transport, QRURI: uri}, nil
}

// resolveSigner decodes the signing private key and the identity presenting
// it. Without an explicit holder the signer acts as a self-signed
// individual.
func resolveSigner(signerTransport, holderTransport string) (payload.KeyHolder, *keys.PrivateKey, error) {
	v, err := payload.Decode(signerTransport)
	if err != nil {
		return nil, nil, err
	}
	key, ok := v.(*keys.PrivateKey)
	if !ok {
		return nil, nil, fmt.Errorf("%w: signer must be a private key, got %T", model.ErrMalformedPayload, v)
	}

	if holderTransport == "" {
		return payload.NewIndividual(key), key, nil
	}

	h, err := payload.Decode(holderTransport)
	if err != nil {
		return nil, nil, err
	}
	holder, ok := h.(payload.KeyHolder)
	if !ok {
		return nil, nil, fmt.Errorf("%w: holder must be an authority or individual, got %T", model.ErrMalformedPayload, h)
	}
	return holder, key, nil
}

func decodeAs[T payload.Payload](transport string) (T, error) {
	var zero T
	p, err := payload.DecodePayload(transport)
	if err != nil {
		return zero, err
	}
	v, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected tag %q", model.ErrMalformedPayload, p.Tag())
	}
	return v, nil
}
