package fx

import (
	"context"
	"database/sql"

	"leetify-go/internal/config"
	"leetify-go/internal/database"
	"leetify-go/internal/logger"
	"leetify-go/internal/repository"
	"leetify-go/internal/server"
	"leetify-go/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideDatabase opens the snapshot store and closes it when the app stops.
// fx only builds it for commands that need the store.
func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	sqlDB, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := sqlDB.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			return nil
		},
	})
	return sqlDB, nil
}

func applyLogLevel(cfg *config.Config) {
	logger.ApplyLevel(cfg.LogLevel)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Invoke(applyLogLevel),
	// api client
	fx.Provide(config.NewLeetifyClient),
	// storage
	fx.Provide(ProvideDatabase),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// svc
	fx.Provide(service.NewTrackerService),
	// server
	fx.Provide(server.NewGateway),
)
