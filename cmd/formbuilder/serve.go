package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/internal/auth"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/internal/service"
	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/designer"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the designer and submission HTTP API",
		Long: `Starts the HTTP API: authenticated form management and designer
sessions under /api/v1/forms, public rendering and submissions under
/api/v1/public/forms.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close(db) }()
	if err := storage.Migrate(db); err != nil {
		return err
	}

	tokens, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	renderers, err := formbuilder.NewRenderers()
	if err != nil {
		return err
	}

	repo := storage.NewRepository(db)
	forms := service.NewForms(repo, service.WithLogger(logger))
	sessions := service.NewDesigner(forms,
		service.WithSessionTTL(cfg.Designer.SessionTTL),
		service.WithSweepInterval(cfg.Designer.SweepInterval),
		service.WithElementIDs(designer.UUIDGenerator()),
		service.WithDesignerLogger(logger),
	)

	srv, err := server.New(server.Deps{
		Forms:     forms,
		Public:    service.NewPublic(repo, service.WithLogger(logger)),
		Designer:  sessions,
		Tokens:    tokens,
		Renderers: renderers,
		Logger:    logger,
		Mode:      cfg.Server.Mode,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.Strings("renderers", renderers.List()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
