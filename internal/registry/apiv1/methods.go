package apiv1

import (
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
	"auth490/pkg/payload"
)

// ResolveHolder maps a transport string onto a key holder. Key holder
// payloads pass through; a bare key resolves to the admitted authority
// holding it. Otherwise a private key wraps into a self-signed individual
// and a public key fails with model.ErrMalformedPayload.
func (c *Client) ResolveHolder(transport string) (payload.KeyHolder, error) {
	v, err := payload.Decode(transport)
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case payload.KeyHolder:
		return t, nil
	case *keys.PrivateKey:
		c.mu.Lock()
		authority, ok := c.registry.AuthorityByKey(t.Public())
		c.mu.Unlock()
		if ok {
			return authority, nil
		}
		return payload.NewIndividual(t), nil
	case *keys.PublicKey:
		c.mu.Lock()
		authority, ok := c.registry.AuthorityByKey(t)
		c.mu.Unlock()
		if ok {
			return authority, nil
		}
		return nil, fmt.Errorf("%w: no holder for public key", model.ErrMalformedPayload)
	default:
		return nil, fmt.Errorf("%w: %T is not a key holder", model.ErrMalformedPayload, v)
	}
}
