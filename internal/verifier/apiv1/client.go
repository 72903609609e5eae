package apiv1

import (
	"context"
	"time"

	registryapiv1 "auth490/internal/registry/apiv1"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/trace"
	"auth490/pkg/verifier"

	"github.com/jellydator/ttlcache/v3"
)

// Client holds the public api object
type Client struct {
	cfg      *model.Cfg
	log      *logger.Log
	tracer   *trace.Tracer
	registry *registryapiv1.Client

	// sessions maps session id → the verifier bound to that challenge.
	sessions *ttlcache.Cache[string, *verifier.Verifier]
}

// New creates a new instance of the public api
func New(ctx context.Context, registry *registryapiv1.Client, cfg *model.Cfg, tracer *trace.Tracer, log *logger.Log) (*Client, error) {
	c := &Client{
		cfg:      cfg,
		log:      log.New("apiv1"),
		tracer:   tracer,
		registry: registry,
		sessions: ttlcache.New(
			ttlcache.WithTTL[string, *verifier.Verifier](time.Duration(cfg.Verifier.SessionTTL) * time.Second),
		),
	}

	go c.sessions.Start()

	c.log.Info("Started")

	return c, nil
}

// Close stops the session janitor
func (c *Client) Close(ctx context.Context) error {
	c.sessions.Stop()
	return nil
}
