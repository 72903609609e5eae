package httpserver

import (
	"context"

	registryapiv1 "auth490/internal/registry/apiv1"
	"auth490/internal/verifier/apiv1"

	"github.com/gin-gonic/gin"
)

func (s *Service) endpointNewPresentation(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.NewPresentationRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.NewPresentation(ctx, request)
}

func (s *Service) endpointVerify(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.VerifyRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.Verify(ctx, request)
}

func (s *Service) endpointInsert(ctx context.Context, c *gin.Context) (any, error) {
	request := &registryapiv1.InsertRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.registryAPI.Insert(ctx, request)
}

func (s *Service) endpointAuthorities(ctx context.Context, c *gin.Context) (any, error) {
	return s.registryAPI.Authorities(ctx)
}

func (s *Service) endpointHealth(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.Health(ctx)
}
