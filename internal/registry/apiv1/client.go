package apiv1

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"auth490/pkg/keys"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/payload"
	"auth490/pkg/registry"
	"auth490/pkg/trace"
)

// Client holds the public api object
type Client struct {
	cfg    *model.Cfg
	log    *logger.Log
	tracer *trace.Tracer

	// mu serializes registry mutations; the core registry is not
	// internally synchronized.
	mu       sync.Mutex
	registry *registry.Registry
	mainKey  *keys.PrivateKey
}

// New creates a new instance of the public api
func New(ctx context.Context, cfg *model.Cfg, tracer *trace.Tracer, log *logger.Log) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		log:    log.New("apiv1"),
		tracer: tracer,
	}

	mainKey, err := c.loadOrGenerateKey(cfg.Registry.KeyFile)
	if err != nil {
		c.log.Error(err, "Failed to load main authority key")
		return nil, err
	}
	c.mainKey = mainKey

	main := payload.NewAuthority(cfg.Registry.AuthorityName, mainKey)
	reg, err := registry.New(main)
	if err != nil {
		return nil, err
	}
	c.registry = reg

	c.log.Info("Started", "main_authority", main.Name())

	return c, nil
}

// Registry exposes the underlying registry to sibling services sharing the
// process. Callers must not mutate it outside Insert.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// MainKey returns the main authority's private key.
func (c *Client) MainKey() *keys.PrivateKey {
	return c.mainKey
}

// loadOrGenerateKey reads the main authority key from its PK: transport
// file, generating and persisting a fresh one on first start.
func (c *Client) loadOrGenerateKey(path string) (*keys.PrivateKey, error) {
	if raw, err := os.ReadFile(filepath.Clean(path)); err == nil {
		v, err := payload.Decode(string(raw))
		if err != nil {
			return nil, err
		}
		key, ok := v.(*keys.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: key file holds a %T", model.ErrMalformedPayload, v)
		}
		c.log.Info("Loaded main authority key", "path", path)
		return key, nil
	}

	key, err := keys.Generate()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(payload.EncodePrivateKey(key)), 0600); err != nil {
		return nil, err
	}
	c.log.Info("Generated main authority key", "path", path)
	return key, nil
}
