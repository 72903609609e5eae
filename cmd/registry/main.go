package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"auth490/internal/registry/apiv1"
	"auth490/internal/registry/httpserver"
	"auth490/pkg/configuration"
	"auth490/pkg/logger"
	"auth490/pkg/trace"
)

type service interface {
	Close(ctx context.Context) error
}

func main() {
	var (
		wg          = &sync.WaitGroup{}
		ctx         = context.Background()
		services    = make(map[string]service)
		serviceName = "registry"
	)

	cfg, err := configuration.New()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(serviceName, cfg.Common.Log.FolderPath, cfg.Common.Production)
	if err != nil {
		panic(err)
	}

	// main function log
	mainLog := log.New("main")

	tracer, err := trace.New(ctx, cfg, serviceName, log)
	if err != nil {
		panic(err)
	}

	apiClient, err := apiv1.New(ctx, cfg, tracer, log)
	if err != nil {
		panic(err)
	}

	httpService, err := httpserver.New(ctx, cfg, apiClient, tracer, log)
	services["httpserver"] = httpService
	if err != nil {
		panic(err)
	}

	// Handle sigterm and await termChan signal
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan // Blocks here until interrupted

	mainLog.Info("HALTING SIGNAL!")

	for name, srv := range services {
		if err := srv.Close(ctx); err != nil {
			mainLog.Trace("serviceName", name, "error", err)
		}
	}

	if err := tracer.Shutdown(ctx); err != nil {
		mainLog.Trace("tracer shutdown", "error", err)
	}

	wg.Wait() // Block here until are workers are done

	mainLog.Info("Stopped")
}
