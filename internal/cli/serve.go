package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi"
	"github.com/kevinseya/app-turismo-dnavarro/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	SkipMigrate bool
	NoWorker    bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the push worker",
		Long: `Run the HTTP API on APP_PORT together with the push delivery worker.

Tables are migrated at start unless --skip-migrate is given. With
NEARBY_INDEX=redis the GEO index is rebuilt from the database first.
SIGINT or SIGTERM drain in-flight requests and stop the worker.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipMigrate, "skip-migrate", false, "do not auto-migrate tables at start")
	cmd.Flags().BoolVar(&opts.NoWorker, "no-worker", false, "do not start the push worker")

	return cmd
}

func runServe(parent context.Context, opts *ServeOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, opts.RootOptions, true)
	if err != nil {
		return err
	}
	defer rt.close()
	logger := rt.logger

	if !opts.SkipMigrate {
		if err := config.Migrate(rt.db); err != nil {
			return err
		}
		logger.Info("✅ Database migrations completed")
	}

	a, err := wire(ctx, rt)
	if err != nil {
		return err
	}

	if a.geoIndex != nil {
		if err := a.reindexGeo(ctx, logger); err != nil {
			// scan fallback still answers nearby queries
			logger.Warn("⚠️ Could not rebuild GEO index", zap.Error(err))
		}
	}

	if !opts.NoWorker {
		// joined before rt.close so the worker never writes to a closed pool
		defer startBackground(ctx, a.pushWorker)()
	}

	if rt.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + rt.cfg.Port,
		Handler:           httpapi.SetupRoutes(a.useCases, rt.cfg.UploadDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type runner interface {
	Run(ctx context.Context)
}

// startBackground runs r in its own goroutine. The returned func cancels it
// and blocks until Run has returned.
func startBackground(ctx context.Context, r runner) func() {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Run(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
