package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/remora-ai/remora/internal/httpapi"
	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agents over HTTP",
	Long: `Starts the HTTP server exposing agent runs, session administration,
health and Prometheus metrics. When SWEEP_MAX_AGE is set and the storage
backend supports it, idle sessions are removed on the SWEEP_CRON schedule.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	service, err := openService(cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	catalog, runner, err := buildStack(cfg, service)
	if err != nil {
		return err
	}

	metrics := httpapi.NewMetrics()
	server := httpapi.NewServer(catalog, runner, service, cfg.App.Name, httpapi.WithMetrics(metrics))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(cfg.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if sweeper, ok := service.(session.Sweeper); ok && cfg.Server.SweepMaxAge > 0 {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Server.SweepCron, func() {
			removed, err := sweeper.SweepIdle(context.Background(), cfg.App.Name, cfg.Server.SweepMaxAge)
			if err != nil {
				log.Error("session sweep failed: %v", err)
				return
			}
			metrics.ObserveSweep(removed)
			if removed > 0 {
				log.Info("session sweep removed %d idle sessions", removed)
			}
		})
		if err != nil {
			return err
		}
		scheduler.Start()
		group.Go(func() error {
			<-ctx.Done()
			<-scheduler.Stop().Done()
			return nil
		})
		log.Info("session sweep scheduled (%s, max age %s)", cfg.Server.SweepCron, cfg.Server.SweepMaxAge)
	}

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
