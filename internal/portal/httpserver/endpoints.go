package httpserver

import (
	"context"

	"auth490/internal/portal/apiv1"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (s *Service) endpointGenerateKey(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.GenerateKey(ctx)
}

func (s *Service) endpointDescribe(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.DescribeRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.Describe(ctx, request)
}

func (s *Service) endpointAuthorityRequest(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.AuthorityRequestRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.BuildAuthorityRequest(ctx, request)
}

func (s *Service) endpointPermissionRequest(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.PermissionRequestRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.BuildPermissionRequest(ctx, request)
}

func (s *Service) endpointApproval(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.ApprovalRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.BuildApproval(ctx, request)
}

func (s *Service) endpointCredential(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.CredentialRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.BuildCredential(ctx, request)
}

func (s *Service) endpointTransfer(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.TransferRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}
	return s.apiv1.BuildTransfer(ctx, request)
}

// wallet endpoints keep the wallet token in the cookie session

const walletSessionKey = "wallet"

func (s *Service) walletToken(c *gin.Context) string {
	session := sessions.Default(c)
	token, _ := session.Get(walletSessionKey).(string)
	return token
}

func (s *Service) storeWalletToken(c *gin.Context, token string) error {
	session := sessions.Default(c)
	session.Set(walletSessionKey, token)
	return session.Save()
}

func (s *Service) endpointWalletList(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.WalletList(ctx, s.walletToken(c))
}

func (s *Service) endpointWalletInsert(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.WalletInsertRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}

	reply, err := s.apiv1.WalletInsert(ctx, s.walletToken(c), request)
	if err != nil {
		return nil, err
	}
	if err := s.storeWalletToken(c, reply.Token); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *Service) endpointWalletRemove(ctx context.Context, c *gin.Context) (any, error) {
	request := &apiv1.WalletRemoveRequest{}
	if err := s.httpHelpers.Binding.Request(ctx, c, request); err != nil {
		return nil, err
	}

	reply, err := s.apiv1.WalletRemove(ctx, s.walletToken(c), request)
	if err != nil {
		return nil, err
	}
	if err := s.storeWalletToken(c, reply.Token); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *Service) endpointHealth(ctx context.Context, c *gin.Context) (any, error) {
	return s.apiv1.Health(ctx)
}
