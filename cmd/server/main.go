package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"supergrid/api"
	"supergrid/business"
	"supergrid/foundation"
	"supergrid/loader"
)

const shutdownTimeout = 30 * time.Second

var (
	version = "--- set from makefile ---"

	help        = flag.Bool("help", false, "show help message")
	showVersion = flag.Bool("version", false, "show command version")
	addr        = flag.String("addr", ":8000", "HTTP network address")
	aliasesPath = flag.String("aliases", "", "node alias table (YAML), used by horizontal aggregation")
)

func main() {
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Errorw("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.SugaredLogger) error {
	// ----------------------------------------------------------------------------
	// Initialization

	aliases := business.AliasTable{}
	if *aliasesPath != "" {
		var err error
		aliases, err = loader.LoadAliases(*aliasesPath)
		if err != nil {
			return fmt.Errorf("load aliases: %w", err)
		}
		logger.Infow("loaded alias table", "path", *aliasesPath, "entries", len(aliases))
	}

	// ----------------------------------------------------------------------------
	// Server Setup

	handler := foundation.WrapMiddleware(api.All(),
		foundation.WithRequestID,
		foundation.WithLogger(logger),
		foundation.Recover(logger),
		foundation.AccessLog(logger),
		api.AliasesMiddleware(aliases),
	)

	server := &http.Server{
		Addr:    *addr,
		Handler: handler,
	}

	serverErrs := make(chan error, 1)
	go func() {
		defer close(serverErrs)

		logger.Infow("starting http server", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrs <- fmt.Errorf("server error: %w", err)
		}
	}()

	// ----------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrs:
		return fmt.Errorf("received server error: %w", err)
	case <-ctx.Done():
		logger.Infow("shutting down application")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
