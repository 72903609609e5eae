package httphelpers

import (
	"context"
	"encoding/json"

	"auth490/pkg/logger"

	"github.com/gin-gonic/gin"
)

// bindingHandler is the bindingHandler object for httphelpers
type bindingHandler struct {
	client *Client
	log    *logger.Log
}

// Request binds uri parameters and the JSON request body to the given struct
func (b *bindingHandler) Request(ctx context.Context, c *gin.Context, v any) error {
	_, span := b.client.tracer.Start(ctx, "httphelpers:bind:Request")
	defer span.End()

	if err := c.ShouldBindUri(v); err != nil {
		return err
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(c.Request.Body).Decode(v)
}
