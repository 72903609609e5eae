package httpserver

import (
	"context"

	registryapiv1 "auth490/internal/registry/apiv1"
	"auth490/internal/verifier/apiv1"
)

// Apiv1 is the interface the httpserver expects from the api client
type Apiv1 interface {
	NewPresentation(ctx context.Context, req *apiv1.NewPresentationRequest) (*apiv1.NewPresentationReply, error)
	Verify(ctx context.Context, req *apiv1.VerifyRequest) (*apiv1.VerifyReply, error)
	Health(ctx context.Context) (*apiv1.HealthReply, error)
}

// RegistryApiv1 is the registry surface the verifier service also serves
type RegistryApiv1 interface {
	Insert(ctx context.Context, req *registryapiv1.InsertRequest) (*registryapiv1.InsertReply, error)
	Authorities(ctx context.Context) (*registryapiv1.AuthoritiesReply, error)
	Pending(ctx context.Context) (*registryapiv1.PendingReply, error)
	CheckPermissions(ctx context.Context, req *registryapiv1.CheckPermissionsRequest) (*registryapiv1.CheckPermissionsReply, error)
}
