package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/trialbook_backend/config"
	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/repo/memory"
	"github.com/Alijeyrad/trialbook_backend/internal/repo/postgres"
	"github.com/Alijeyrad/trialbook_backend/internal/service/dialogue"
	"github.com/Alijeyrad/trialbook_backend/pkg/constants"
	"github.com/Alijeyrad/trialbook_backend/pkg/database"
	"github.com/Alijeyrad/trialbook_backend/pkg/email"
	"github.com/Alijeyrad/trialbook_backend/pkg/nlu"
	"github.com/Alijeyrad/trialbook_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/trialbook_backend/pkg/redis"
	"github.com/Alijeyrad/trialbook_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRepoClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideSessionStore),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideNLUResponder),
)

const startupTimeout = 15 * time.Second

func ProvideRepoClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		slog.Info("storage: using in-memory stores", "seed", cfg.Storage.Seed)
		return memory.NewClient(cfg.Storage.Seed), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	client := postgres.NewClient(pool)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return client.Close()
		},
	})
	return client, nil
}

// ProvideRedis returns a nil client when no address is configured; its
// consumers fall back to in-process storage.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	rdb, err := redispkg.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideSessionStore(cfg *config.Config, rdb *redis.Client) dialogue.SessionStore {
	ttl := time.Duration(cfg.Dialogue.SessionTTLMinutes) * time.Minute
	if cfg.Dialogue.SessionStore == config.SessionStoreRedis && rdb != nil {
		return dialogue.NewRedisStore(rdb, ttl)
	}
	return dialogue.NewMemoryStore(ttl)
}

func ProvideEmailClient(cfg *config.Config) *email.Client {
	return email.New(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

// ProvideNatsClient returns a nil connection when no URL is configured;
// booking events are then not published.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}

	nc, err := nats.Connect(cfg.Nats.URL,
		nats.Name(constants.ServiceName),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideNLUResponder(cfg *config.Config) (nlu.Responder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	return nlu.New(ctx, cfg.NLU)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Init(context.Background(), cfg.Observability, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
