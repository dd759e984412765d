package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roniherschmann/go-checkid/internal/core"
	httpapi "github.com/roniherschmann/go-checkid/internal/http"
	"github.com/roniherschmann/go-checkid/internal/store"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var dsn string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the HTTP service. It provides:
- POST /api/v1/ids and /api/v1/validate
- usage stats backed by SQLite (identifiers are never stored)
- Prometheus metrics on /metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if dsn != "" {
				cfg.DBDSN = dsn
			}
			if port != 0 {
				cfg.Port = port
			}

			db, err := sql.Open("sqlite3", cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer db.Close()

			// Connection pool tuning
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)

			if err := store.Migrate(db); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}

			svc, err := core.NewService(store.NewSQLite(db), core.Options{
				Preset:        cfg.Preset,
				Length:        cfg.Length,
				MaxLength:     cfg.MaxLength,
				MaxBatch:      cfg.MaxBatch,
				AlphabetCache: cfg.AlphabetCache,
				EventBuffer:   cfg.EventBuffer,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go svc.RunEventIngester(ctx)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Port),
				Handler:           httpapi.NewRouter(cfg, svc),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Int("port", cfg.Port).Str("preset", cfg.Preset).Int("length", cfg.Length).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
				log.Info().Msg("shutdown signal")
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			}

			shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel2()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown")
			}
			log.Info().Msg("bye")
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "SQLite DSN (overrides env DB_DSN)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides env PORT)")
	return cmd
}
