package apiv1

import (
	"context"

	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/trace"
)

// Client holds the public api object
type Client struct {
	cfg    *model.Cfg
	log    *logger.Log
	tracer *trace.Tracer
}

// New creates a new instance of the public api
func New(ctx context.Context, cfg *model.Cfg, tracer *trace.Tracer, log *logger.Log) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		log:    log.New("apiv1"),
		tracer: tracer,
	}

	c.log.Info("Started")

	return c, nil
}
