package httpserver

import (
	"context"
	"net/http"
	"time"

	"auth490/internal/portal/apiv1"
	"auth490/pkg/httphelpers"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/trace"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Service is the service object for httpserver
type Service struct {
	cfg         *model.Cfg
	log         *logger.Log
	server      *http.Server
	apiv1       Apiv1
	gin         *gin.Engine
	tracer      *trace.Tracer
	httpHelpers *httphelpers.Client
}

// New creates a new httpserver service
func New(ctx context.Context, cfg *model.Cfg, api *apiv1.Client, tracer *trace.Tracer, log *logger.Log) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		log:    log.New("httpserver"),
		apiv1:  api,
		gin:    gin.New(),
		tracer: tracer,
		server: &http.Server{
			ReadHeaderTimeout: 3 * time.Second,
		},
	}

	var err error
	s.httpHelpers, err = httphelpers.New(ctx, s.tracer, s.cfg, s.log)
	if err != nil {
		return nil, err
	}

	rgRoot, err := s.httpHelpers.Server.Default(ctx, s.server, s.gin, s.cfg.Portal.APIServer.Addr)
	if err != nil {
		return nil, err
	}

	// The wallet lives in a cookie session, like the original demo kept it
	// in a browser cookie.
	store := cookie.NewStore([]byte(s.cfg.Portal.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.Portal.APIServer.TLS.Enabled,
	})
	s.gin.Use(sessions.Sessions("auth490_wallet", store))

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "health", http.StatusOK, s.endpointHealth)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "keys", http.StatusCreated, s.endpointGenerateKey)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "decode", http.StatusOK, s.endpointDescribe)

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "authority-requests", http.StatusCreated, s.endpointAuthorityRequest)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "permission-requests", http.StatusCreated, s.endpointPermissionRequest)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "approvals", http.StatusCreated, s.endpointApproval)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "credentials", http.StatusCreated, s.endpointCredential)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "transfers", http.StatusCreated, s.endpointTransfer)

	rgWallet := rgRoot.Group("/wallet")
	s.httpHelpers.Server.RegEndpoint(ctx, rgWallet, http.MethodGet, "", http.StatusOK, s.endpointWalletList)
	s.httpHelpers.Server.RegEndpoint(ctx, rgWallet, http.MethodPost, "", http.StatusOK, s.endpointWalletInsert)
	s.httpHelpers.Server.RegEndpoint(ctx, rgWallet, http.MethodDelete, ":index", http.StatusOK, s.endpointWalletRemove)

	// Run http server
	go func() {
		if err := s.httpHelpers.Server.ListenAndServe(ctx, s.server, s.cfg.Portal.APIServer); err != nil {
			s.log.Trace("listen_error", "error", err)
		}
	}()

	s.log.Info("Started")

	return s, nil
}

// Close closing httpserver
func (s *Service) Close(ctx context.Context) error {
	s.log.Info("Stopping")
	return nil
}
