package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/t4tarzan/seaclaw-platform/internal/api"
	"github.com/t4tarzan/seaclaw-platform/internal/cluster"
	"github.com/t4tarzan/seaclaw-platform/internal/config"
	"github.com/t4tarzan/seaclaw-platform/internal/orchestrator"
	"github.com/t4tarzan/seaclaw-platform/internal/persona"
	"github.com/t4tarzan/seaclaw-platform/internal/plantasks"
	"github.com/t4tarzan/seaclaw-platform/internal/registry"
	"github.com/t4tarzan/seaclaw-platform/internal/relay"
	"github.com/t4tarzan/seaclaw-platform/internal/swarm"
)

func main() {
	logger := log.New(os.Stdout, "seaclaw-platform ", log.LstdFlags|log.LUTC)

	cfg := config.Load()

	cl, err := cluster.New(cfg.Namespace)
	if err != nil {
		logger.Fatalf("cluster client: %v", err)
	}

	reg, err := registry.Open(filepath.Join(cfg.DataDir, "instances.json"))
	if err != nil {
		logger.Fatalf("registry: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	tasks, err := plantasks.Open(ctx, filepath.Join(cfg.DataDir, "platform_tasks.db"))
	cancel()
	if err != nil {
		logger.Fatalf("plan tracker store: %v", err)
	}
	defer tasks.Close()
	logger.Printf("platform_tasks.db ready at %s", filepath.Join(cfg.DataDir, "platform_tasks.db"))

	personas, err := persona.Load(cfg.PersonaDir)
	if err != nil {
		logger.Fatalf("persona directory: %v", err)
	}

	orch := orchestrator.New(cl, reg, personas, cfg.Namespace, cfg.SeaclawImage, cfg.GatewayURL, cfg.MaxInstances, logger)
	rl := relay.New(reg, cfg.Namespace)
	sw := swarm.New(orch, rl)

	srv := api.New(orch, rl, sw, tasks, logger, cfg.CORSOrigin)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logger.Printf("shutting down...")
	_ = httpSrv.Close()
}
