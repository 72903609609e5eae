package apiv1

import (
	"context"
	"fmt"

	"auth490/pkg/keys"
	"auth490/pkg/payload"
)

// WalletItem describes one wallet entry
type WalletItem struct {
	Index     int    `json:"index"`
	Kind      string `json:"kind"`
	Transport string `json:"transport"`
	QRURI     string `json:"qr_uri"`
}

// WalletReply is the reply object for wallet operations. Token is the
// opaque wallet state the httpserver persists in the cookie session.
type WalletReply struct {
	Token string       `json:"-"`
	Items []WalletItem `json:"items"`
}

// WalletList describes the wallet held in the token
func (c *Client) WalletList(ctx context.Context, token string) (*WalletReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:WalletList")
	defer span.End()

	wallet, err := payload.LoadWallet(token)
	if err != nil {
		return nil, err
	}
	return c.walletReply(wallet)
}

// WalletInsertRequest is the request object for adding to the wallet
type WalletInsertRequest struct {
	// Data is the transport form of a key or credential
	Data string `json:"data" validate:"required"`
}

// WalletInsert adds an item to the wallet held in the token
func (c *Client) WalletInsert(ctx context.Context, token string, req *WalletInsertRequest) (*WalletReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:WalletInsert")
	defer span.End()

	wallet, err := payload.LoadWallet(token)
	if err != nil {
		return nil, err
	}

	item, err := payload.Decode(req.Data)
	if err != nil {
		return nil, err
	}
	if err := wallet.Insert(item); err != nil {
		return nil, err
	}

	return c.walletReply(wallet)
}

// WalletRemoveRequest is the request object for removing from the wallet
type WalletRemoveRequest struct {
	Index int `json:"index" uri:"index"`
}

// WalletRemove drops the wallet item at the given position
func (c *Client) WalletRemove(ctx context.Context, token string, req *WalletRemoveRequest) (*WalletReply, error) {
	_, span := c.tracer.Start(ctx, "apiv1:WalletRemove")
	defer span.End()

	wallet, err := payload.LoadWallet(token)
	if err != nil {
		return nil, err
	}
	if err := wallet.Remove(req.Index); err != nil {
		return nil, err
	}

	return c.walletReply(wallet)
}

func (c *Client) walletReply(wallet *payload.Wallet) (*WalletReply, error) {
	reply := &WalletReply{Token: wallet.Token()}

	for i, item := range wallet.Items() {
		transport, err := payload.EncodeItem(item)
		if err != nil {
			return nil, err
		}
		uri, err := c.qrURI(transport)
		if err != nil {
			return nil, err
		}

		var kind string
		switch v := item.(type) {
		case *keys.PrivateKey:
			kind = "private_key"
		case *keys.PublicKey:
			kind = "public_key"
		case *payload.Data:
			kind = fmt.Sprintf("credential_%s", v.Type())
		}

		reply.Items = append(reply.Items, WalletItem{
			Index:     i,
			Kind:      kind,
			Transport: transport,
			QRURI:     uri,
		})
	}

	return reply, nil
}
