package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/database"
	"github.com/deppfellow/opl-checker/internal/handler"
	"github.com/deppfellow/opl-checker/internal/lib/job"
	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/logger"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/repository"
	"github.com/deppfellow/opl-checker/internal/router"
	"github.com/deppfellow/opl-checker/internal/server"
	"github.com/deppfellow/opl-checker/internal/service"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the checker web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			loggerService, err := logger.NewLoggerService(cfg.Observability)
			if err != nil {
				return fmt.Errorf("failed to start New Relic: %w", err)
			}
			defer loggerService.Shutdown()

			log := logger.NewLoggerWithService(cfg.Observability, loggerService)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, &log, loggerService)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	langInfo, err := locale.LoadLangInfo()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	if cfg.Database != nil {
		if err := database.Migrate(ctx, log, cfg.Database); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(ctx, cfg, log, loggerService, langInfo)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)

	if srv.Job != nil {
		var runs job.CheckRunStore
		if repos.CheckRun != nil {
			runs = repos.CheckRun
		}
		if err := srv.Job.InitHandlers(cfg, log, runs); err != nil {
			return fmt.Errorf("failed to initialize job handlers: %w", err)
		}
		if err := srv.Job.Start(); err != nil {
			return fmt.Errorf("failed to start job server: %w", err)
		}
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services, middlewares)

	r, err := router.NewRouter(srv, handlers, middlewares)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		return shutdownAfterFailure(srv, log, err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownAfterFailure releases the server's resources once Start has
// returned on its own. serveErr is returned; a shutdown error is only logged.
func shutdownAfterFailure(s shutdowner, log *zerolog.Logger, serveErr error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down after the server stopped")
	}
	return serveErr
}
