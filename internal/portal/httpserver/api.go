package httpserver

import (
	"context"

	"auth490/internal/portal/apiv1"
)

// Apiv1 is the interface the httpserver expects from the api client
type Apiv1 interface {
	GenerateKey(ctx context.Context) (*apiv1.GenerateKeyReply, error)
	Describe(ctx context.Context, req *apiv1.DescribeRequest) (*apiv1.DescribeReply, error)
	BuildAuthorityRequest(ctx context.Context, req *apiv1.AuthorityRequestRequest) (*apiv1.TransportReply, error)
	BuildPermissionRequest(ctx context.Context, req *apiv1.PermissionRequestRequest) (*apiv1.TransportReply, error)
	BuildApproval(ctx context.Context, req *apiv1.ApprovalRequest) (*apiv1.TransportReply, error)
	BuildCredential(ctx context.Context, req *apiv1.CredentialRequest) (*apiv1.TransportReply, error)
	BuildTransfer(ctx context.Context, req *apiv1.TransferRequest) (*apiv1.TransportReply, error)
	WalletList(ctx context.Context, token string) (*apiv1.WalletReply, error)
	WalletInsert(ctx context.Context, token string, req *apiv1.WalletInsertRequest) (*apiv1.WalletReply, error)
	WalletRemove(ctx context.Context, token string, req *apiv1.WalletRemoveRequest) (*apiv1.WalletReply, error)
	Health(ctx context.Context) (*apiv1.HealthReply, error)
}
