package httpserver

import (
	"context"
	"net/http"
	"time"

	"auth490/internal/registry/apiv1"
	"auth490/pkg/httphelpers"
	"auth490/pkg/logger"
	"auth490/pkg/model"
	"auth490/pkg/trace"

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

	rgRoot, err := s.httpHelpers.Server.Default(ctx, s.server, s.gin, s.cfg.Registry.APIServer.Addr)
	if err != nil {
		return nil, err
	}

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "health", http.StatusOK, s.endpointHealth)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "insert", http.StatusOK, s.endpointInsert)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "authorities", http.StatusOK, s.endpointAuthorities)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "requests", http.StatusOK, s.endpointPending)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "permissions/check", http.StatusOK, s.endpointCheckPermissions)

	// Run http server
	go func() {
		if err := s.httpHelpers.Server.ListenAndServe(ctx, s.server, s.cfg.Registry.APIServer); err != nil {
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
