package payload

import (
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/model"
)

// Wallet is a client-side bag of keys and credentials. It serializes as a
// payload whose body is the list of transport forms of its contents, so it
// can itself travel as an opaque token. Signing a wallet is optional; an
// unsigned wallet is valid.
type Wallet struct {
	signable
	items []any
}

// NewWallet builds an empty wallet.
func NewWallet() *Wallet {
	return &Wallet{}
}

// Insert adds an item. Only private keys, public keys and credentials are
// accepted.
func (w *Wallet) Insert(item any) error {
	switch item.(type) {
	case *keys.PrivateKey, *keys.PublicKey, *Data:
		w.items = append(w.items, item)
		return nil
	default:
		return fmt.Errorf("%w: %T", model.ErrUnsupportedWalletItem, item)
	}
}

// Remove drops the item at position i.
func (w *Wallet) Remove(i int) error {
	if i < 0 || i >= len(w.items) {
		return fmt.Errorf("%w: wallet index %d out of range", model.ErrMalformedPayload, i)
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	return nil
}

// Items returns the wallet contents in insertion order.
func (w *Wallet) Items() []any { return w.items }

// Datas returns the held credentials.
func (w *Wallet) Datas() []*Data {
	var out []*Data
	for _, item := range w.items {
		if d, ok := item.(*Data); ok {
			out = append(out, d)
		}
	}
	return out
}

// PrivateKeys returns the held private keys.
func (w *Wallet) PrivateKeys() []*keys.PrivateKey {
	var out []*keys.PrivateKey
	for _, item := range w.items {
		if k, ok := item.(*keys.PrivateKey); ok {
			out = append(out, k)
		}
	}
	return out
}

func (w *Wallet) Tag() Tag { return TagWallet }

func (w *Wallet) wire(withSig bool) *object {
	o := newObject(TagWallet)
	list := make([]any, 0, len(w.items))
	for _, item := range w.items {
		// Insert whitelists the variants, EncodeItem cannot fail here.
		s, _ := EncodeItem(item)
		list = append(list, s)
	}
	o.set("d", list)
	if withSig {
		o.set("s", w.sig.Base64())
	}
	return o
}

// Validate accepts any wallet; the signature is optional and carried
// through untouched.
func (w *Wallet) Validate() bool { return true }

// Token renders the wallet as its opaque transport token.
func (w *Wallet) Token() string {
	return Encode(w)
}

// LoadWallet parses a wallet token. The empty token yields an empty wallet.
func LoadWallet(token string) (*Wallet, error) {
	if token == "" {
		return NewWallet(), nil
	}
	v, err := Decode(token)
	if err != nil {
		return nil, err
	}
	w, ok := v.(*Wallet)
	if !ok {
		return nil, fmt.Errorf("%w: token is a %T, not a wallet", model.ErrMalformedPayload, v)
	}
	return w, nil
}

func decodeWallet(raw map[string]any) (Payload, error) {
	list, err := rawList(raw, "d")
	if err != nil {
		return nil, err
	}

	w := NewWallet()
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: wallet entry is not a transport string", model.ErrMalformedPayload)
		}
		item, err := Decode(s)
		if err != nil {
			return nil, err
		}
		if err := w.Insert(item); err != nil {
			return nil, err
		}
	}

	if err := attachRawSignature(w, raw); err != nil {
		return nil, err
	}
	return w, nil
}
