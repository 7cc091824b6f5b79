package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/epmodel/schedkit/api/schedules"
	"github.com/epmodel/schedkit/infra/logger"
	inframetrics "github.com/epmodel/schedkit/infra/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve schedules over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("serve")
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts, err := cfg.Run.ExpandOptions()
	if err != nil {
		return err
	}

	if cfg.Serve.MetricsAddr != "" {
		promSink, err := inframetrics.NewPromSink()
		if err != nil {
			return fmt.Errorf("prom sink: %w", err)
		}
		sink = promSink
		go func() {
			if err := inframetrics.StartPromServer(ctx, cfg.Serve.MetricsAddr); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}

	store := schedules.NewDirStore(cfg.Serve.ScheduleDir)
	mux := http.NewServeMux()
	mux.Handle("/api/schedules", schedules.NewListHandler(store))
	mux.Handle("/api/schedules/values", schedules.NewValuesHandler(store, opts, sink, log))
	mux.Handle("/api/schedules/calendar", schedules.NewCalendarHandler(store, sink, log))

	srv := &http.Server{Addr: cfg.Serve.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()
	log.Infof("serving schedules from %s on %s", cfg.Serve.ScheduleDir, cfg.Serve.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
