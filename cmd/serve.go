package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AndrewBazen/django-schema-viewer/internal/config"
	"github.com/AndrewBazen/django-schema-viewer/internal/httpapi"
	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

// shutdownTimeout bounds how long an in-flight request gets to finish once
// SIGINT/SIGTERM arrives before the listener is torn down anyway.
const shutdownTimeout = 15 * time.Second

const defaultServeAddr = ":8080"

var (
	serveSchemaPath string
	serveDSN        string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema diagram and layout over HTTP",
	Long:  `Starts the HTTP API (api/schema/, api/model/{app}/{model}/, api/layout/, api/diagram.svg), backed either by a JSON schema file or a live Postgres database. When neither --schema nor --db is given, the schema source (and the address, if --addr is left at its default) comes from dbgraph.yaml / DBGRAPH_ environment config.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, dsn, addr := resolveServeInputs()

		loader, err := buildSchemaLoader(schemaPath, dsn)
		if err != nil {
			log.Error().Err(err).Msg("failed to configure schema source")
			os.Exit(1)
		}

		srv := httpapi.New(loader)
		log.Info().Str("addr", addr).Msg("starting server")
		if err := runServe(addr, srv.Handler()); err != nil {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	},
}

// runServe starts httpServer and blocks until SIGINT/SIGTERM, then drains
// in-flight requests (up to shutdownTimeout) before returning. The listener
// goroutine and the signal-triggered shutdown goroutine run concurrently
// under one errgroup.Group so the first one to fail stops the other.
func runServe(addr string, handler http.Handler) error {
	httpServer := &http.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// resolveServeInputs returns the flags as given when --schema or --db is
// set. Only when both are unset does it consult config.Load, taking the
// schema source from it and, if --addr is still the default, the address
// too — so `serve` works unconfigured from the flags alone, or entirely from
// dbgraph.yaml/environment in a deployed setting.
func resolveServeInputs() (schemaPath, dsn, addr string) {
	schemaPath, dsn, addr = serveSchemaPath, serveDSN, serveAddr
	if schemaPath != "" || dsn != "" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Debug().Err(err).Msg("no usable config file/environment, relying on flags only")
		return
	}

	switch cfg.Schema.Source {
	case "postgres":
		dsn = cfg.Database.DSN()
	case "json":
		schemaPath = cfg.Schema.JSONPath
	}
	if addr == defaultServeAddr {
		addr = cfg.Server.Address
	}
	return
}

// buildSchemaLoader wires up a httpapi.SchemaLoader against either a JSON
// file (re-read every request) or a Postgres database (re-introspected
// every request) — no shared layout state across requests.
func buildSchemaLoader(schemaPath, dsn string) (httpapi.SchemaLoader, error) {
	switch {
	case dsn != "":
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		return func(ctx context.Context) (*schema.Schema, error) {
			return schema.FromPostgres(ctx, pool, true)
		}, nil
	case schemaPath != "":
		return func(ctx context.Context) (*schema.Schema, error) {
			return loadSchemaFile(schemaPath)
		}, nil
	default:
		return nil, fmt.Errorf("one of --schema or --db is required")
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveSchemaPath, "schema", "", "schema JSON file to serve")
	serveCmd.Flags().StringVar(&serveDSN, "db", "", "Postgres connection string to introspect on every request")
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultServeAddr, "address to listen on")
}
