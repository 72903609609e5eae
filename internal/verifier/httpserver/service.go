package httpserver

import (
	"context"
	"net/http"
	"time"

	registryapiv1 "auth490/internal/registry/apiv1"
	"auth490/internal/verifier/apiv1"
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
	registryAPI RegistryApiv1
	gin         *gin.Engine
	tracer      *trace.Tracer
	httpHelpers *httphelpers.Client
}

// New creates a new httpserver service. The verifier process owns its
// registry, so the registry surface is served alongside the presentation
// endpoints.
func New(ctx context.Context, cfg *model.Cfg, api *apiv1.Client, registryAPI *registryapiv1.Client, tracer *trace.Tracer, log *logger.Log) (*Service, error) {
	s := &Service{
		cfg:         cfg,
		log:         log.New("httpserver"),
		apiv1:       api,
		registryAPI: registryAPI,
		gin:         gin.New(),
		tracer:      tracer,
		server: &http.Server{
			ReadHeaderTimeout: 3 * time.Second,
		},
	}

	var err error
	s.httpHelpers, err = httphelpers.New(ctx, s.tracer, s.cfg, s.log)
	if err != nil {
		return nil, err
	}

	rgRoot, err := s.httpHelpers.Server.Default(ctx, s.server, s.gin, s.cfg.Verifier.APIServer.Addr)
	if err != nil {
		return nil, err
	}

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "health", http.StatusOK, s.endpointHealth)

	rgPresentations := rgRoot.Group("/presentations")
	s.httpHelpers.Server.RegEndpoint(ctx, rgPresentations, http.MethodPost, "", http.StatusCreated, s.endpointNewPresentation)
	s.httpHelpers.Server.RegEndpoint(ctx, rgPresentations, http.MethodPost, ":session_id/verify", http.StatusOK, s.endpointVerify)

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "insert", http.StatusOK, s.endpointInsert)
	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "authorities", http.StatusOK, s.endpointAuthorities)

	// Run http server
	go func() {
		if err := s.httpHelpers.Server.ListenAndServe(ctx, s.server, s.cfg.Verifier.APIServer); err != nil {
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
