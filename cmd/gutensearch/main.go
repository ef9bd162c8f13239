// Command gutensearch serves the query API over the artifacts produced by
// buildindex. Authority scores are computed once per artifact load; SIGHUP
// reloads the artifacts without dropping in-flight requests.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/gutensearch/gutensearch/api"
	"github.com/gutensearch/gutensearch/config"
	"github.com/gutensearch/gutensearch/internal/engine"
	"github.com/gutensearch/gutensearch/internal/logging"
	"github.com/gutensearch/gutensearch/internal/metrics"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		configPath = flag.String("config", "", "Path to YAML config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		dataDir    = flag.String("data-dir", "", "Artifact directory (overrides config)")
	)
	flag.Parse()

	if *help {
		fmt.Printf("gutensearch - corpus search server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logging.ForComponent("server")

	eng := engine.New(cfg, logging.ForComponent("engine"))
	if err := eng.Load(); err != nil {
		log.WithError(err).Fatalf("loading artifacts from %s (run buildindex first)", cfg.Storage.DataDir)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observeSnapshot(m, eng)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, eng, m, logging.ForComponent("api"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-reload:
			log.Info("reload requested, loading artifacts")
			if err := eng.Load(); err != nil {
				log.WithError(err).Error("reload failed, keeping previous snapshot")
				continue
			}
			if m != nil {
				observeSnapshot(m, eng)
			}
		case err := <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Fatal("server failed")
			}
			return
		case sig := <-quit:
			log.Infof("received %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Error("shutdown did not complete cleanly")
			}
			return
		}
	}
}

func observeSnapshot(m *metrics.Metrics, eng *engine.Engine) {
	snap := eng.Current()
	m.ObserveSnapshot(snap.Documents.Len(), snap.Index.VocabularySize(), snap.Graph.NumEdges())
}
