package httpserver

import (
	"context"

	"auth490/internal/registry/apiv1"
)

// Apiv1 is the interface the httpserver expects from the api client
type Apiv1 interface {
	Insert(ctx context.Context, req *apiv1.InsertRequest) (*apiv1.InsertReply, error)
	Authorities(ctx context.Context) (*apiv1.AuthoritiesReply, error)
	Pending(ctx context.Context) (*apiv1.PendingReply, error)
	CheckPermissions(ctx context.Context, req *apiv1.CheckPermissionsRequest) (*apiv1.CheckPermissionsReply, error)
	Health(ctx context.Context) (*apiv1.HealthReply, error)
}
