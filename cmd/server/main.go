// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"dicesoccer/internal/api"
	"dicesoccer/internal/config"
	"dicesoccer/internal/game/dice"
	"dicesoccer/internal/network"
	"dicesoccer/internal/services/auth"
	"dicesoccer/internal/services/cluster"
	"dicesoccer/internal/services/events"
	"dicesoccer/internal/session"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "dicesoccer",
		Level: hclog.Info,
	})

	// 1. CARREGA A CONFIGURAÇÃO
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	logger.Info("configuration loaded", "addr", cfg.Addr, "grace", cfg.GracePeriod,
		"max_phases", cfg.MaxPhases, "consul", cfg.ConsulAddr, "nats", cfg.NATSURL)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg config.Config, logger hclog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. SERVIÇOS DE APOIO
	store, err := auth.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, cfg.ServiceName, logger.Named("events"))
		if err != nil {
			return err
		}
		publisher = nc
	}
	defer publisher.Close()

	// 3. LÓGICA DO JOGO
	roller, err := dice.NewPCG()
	if err != nil {
		return fmt.Errorf("seed dice: %w", err)
	}
	hub := network.NewHub(logger.Named("hub"))
	gameHandler := session.NewGameHandler(
		session.Config{GracePeriod: cfg.GracePeriod, MaxPhases: cfg.MaxPhases},
		session.Deps{
			Transport: hub,
			Scheduler: session.NewPostingScheduler(hub),
			Roller:    roller,
			Events:    publisher,
			Logger:    logger.Named("session"),
		},
	)

	// 4. HANDLERS HTTP
	health := cluster.NewHealthAggregator()
	health.AddCheck("hub", hubAlive(hub))
	health.AddCheck("auth", store.Ping)

	mux := http.NewServeMux()
	mux.Handle("/ws", network.NewServer(hub, logger.Named("network")))
	mux.HandleFunc("/register", api.CreateRegisterHandler(store, logger.Named("auth")))
	mux.HandleFunc("/login", api.CreateLoginHandler(store, logger.Named("auth")))
	mux.HandleFunc("/health", health.Handler())

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. REGISTRO NO CONSUL (opcional)
	if cfg.ConsulAddr != "" {
		deregister, err := registerService(cfg, logger.Named("cluster"))
		if err != nil {
			return err
		}
		defer func() {
			if err := deregister(); err != nil {
				logger.Warn("consul deregistration failed", "error", err)
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx, gameHandler)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func registerService(cfg config.Config, logger hclog.Logger) (func() error, error) {
	port, err := cfg.Port()
	if err != nil {
		return nil, err
	}
	client, err := cluster.NewConsulClient(cfg.ConsulAddr, logger)
	if err != nil {
		return nil, err
	}
	return cluster.Register(client, cluster.Registration{
		ServiceName: cfg.ServiceName,
		Hostname:    cfg.AdvertisedHostname,
		Port:        port,
	}, logger)
}

// hubAlive confirma que o loop do Hub ainda está processando tarefas.
func hubAlive(hub *network.Hub) cluster.CheckFunc {
	return func(ctx context.Context) error {
		done := make(chan struct{})
		if !hub.Post(func() { close(done) }) {
			return errors.New("hub stopped")
		}
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
