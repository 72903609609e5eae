package httphelpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"auth490/pkg/helpers"
	"auth490/pkg/logger"
	"auth490/pkg/model"

	"github.com/gin-gonic/gin"
)

type serverHandler struct {
	log    *logger.Log
	client *Client
}

// ListenAndServe starts the HTTP server with TLS or without based on the APIServer.TLS configuration
func (s *serverHandler) ListenAndServe(ctx context.Context, server *http.Server, apiConfig model.APIServer) error {
	if apiConfig.TLS.Enabled {
		server.TLSConfig = s.client.TLS.Standard(ctx)

		if err := server.ListenAndServeTLS(apiConfig.TLS.CertFilePath, apiConfig.TLS.KeyFilePath); err != nil {
			s.log.Error(err, "listen_and_serve_tls")
			return err
		}
		return nil
	}

	if err := server.ListenAndServe(); err != nil {
		s.log.Error(err, "listen_and_serve")
		return err
	}

	return nil
}

// RegEndpoint registers an endpoint with the gin router
func (s *serverHandler) RegEndpoint(ctx context.Context, rg *gin.RouterGroup, method, path string, defaultStatus int, handler func(context.Context, *gin.Context) (any, error)) {
	rg.Handle(method, path, func(c *gin.Context) {
		k := fmt.Sprintf("api_endpoint %s:%s%s", method, rg.BasePath(), path)
		ctx, span := s.client.tracer.Start(ctx, k)
		defer span.End()

		res, err := handler(ctx, c)
		if err != nil {
			s.log.Debug("RegEndpoint", "err", err)
			s.client.Rendering.Content(ctx, c, StatusCode(err), gin.H{"error": helpers.NewErrorFromError(err)})
			return
		}

		s.client.Rendering.Content(ctx, c, defaultStatus, res)
	})
}

// StatusCode maps the core error kinds onto HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrUnauthorizedIssuer):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidSignature),
		errors.Is(err, model.ErrChallengeMismatch),
		errors.Is(err, model.ErrRecipientMismatch),
		errors.Is(err, model.ErrOverscopedGrant):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrUnknownTag),
		errors.Is(err, model.ErrMalformedPayload),
		errors.Is(err, model.ErrUnsupportedWalletItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SetGinProductionMode sets the gin mode to production or debug
func (s *serverHandler) SetGinProductionMode() {
	switch s.client.cfg.Common.Production {
	case true:
		gin.SetMode(gin.ReleaseMode)
	case false:
		gin.SetMode(gin.DebugMode)
	}
}

// Default sets the default server configuration
func (s *serverHandler) Default(ctx context.Context, serverHTTP *http.Server, serverGin *gin.Engine, apiAddr string) (*gin.RouterGroup, error) {
	s.SetGinProductionMode()

	serverHTTP.Handler = serverGin
	serverHTTP.Addr = apiAddr
	serverHTTP.ReadTimeout = 5 * time.Second
	serverHTTP.WriteTimeout = 30 * time.Second
	serverHTTP.IdleTimeout = 90 * time.Second
	serverHTTP.ReadHeaderTimeout = 2 * time.Second

	// Middlewares
	serverGin.Use(s.client.Middleware.RequestID(ctx))
	serverGin.Use(s.client.Middleware.Duration(ctx))
	serverGin.Use(s.client.Middleware.Logger(ctx))
	serverGin.Use(s.client.Middleware.Crash(ctx))
	serverGin.Use(s.client.Middleware.Gzip(ctx))
	problem404 := helpers.Problem404()
	serverGin.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, problem404) })

	rgRoot := serverGin.Group("/")

	return rgRoot, nil
}
