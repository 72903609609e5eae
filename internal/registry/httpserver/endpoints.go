package httpserver

import (
	"context"

	"auth490/internal/registry/apiv1"

	"github.com/gin-gonic/gin"
)

func (s *Service) endpointInsert(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.InsertRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.Insert(ctx, request)
}

func (s *Service) endpointAuthorities(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.Authorities(ctx)
}

func (s *Service) endpointPending(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.Pending(ctx)
}

func (s *Service) endpointCheckPermissions(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.CheckPermissionsRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.CheckPermissions(ctx, request)
}

func (s *Service) endpointHealth(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.Health(ctx)
}
