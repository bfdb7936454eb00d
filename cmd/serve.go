package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/identity-service/internal/api"
	"github.com/99minutos/identity-service/internal/api/handler"
	"github.com/99minutos/identity-service/internal/core/service"
	mongodb "github.com/99minutos/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/identity-service/internal/infrastructure/db/redis"
	"github.com/99minutos/identity-service/internal/infrastructure/security"
	"github.com/99minutos/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the identity HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		log := logger.Get()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongodb.NewCredentialRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}

		readiness := map[string]handler.Pinger{"mongodb": handler.MongoPinger(db)}
		var opts []service.Option

		if cfg.Redis.Addr != "" {
			rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
			if err != nil {
				// Mongo's unique indexes still reject duplicates without the lock.
				log.Warn().Err(err).Msg("redis unavailable, identity lock disabled")
			} else {
				defer func() { _ = rdb.Close() }()
				opts = append(opts, service.WithIdentityLocker(redisdb.NewIdentityLock(rdb, 0)))
				readiness["redis"] = handler.RedisPinger(rdb)
			}
		}

		issuer := security.NewJWTIssuer(cfg.JWT.Secret)
		credentials := service.NewCredentialService(
			repo,
			security.NewBcryptHasher(),
			issuer,
			cfg.JWT.Expiration,
			logger.Component("credential-service"),
			opts...,
		)

		e := api.NewRouter(api.Dependencies{
			Credentials: credentials,
			Verifier:    issuer,
			Readiness:   readiness,
			CORSOrigins: cfg.CORS.AllowedOrigins,
			Log:         logger.Component("http"),
		})

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Msg("identity service listening")
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
