package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	votingcore "evote/contexts/election/voting-core"
	"evote/contexts/election/voting-core/adapters/crypto"
	"evote/contexts/election/voting-core/adapters/memory"
	postgresadapter "evote/contexts/election/voting-core/adapters/postgres"
	"evote/internal/platform/config"
	"evote/internal/platform/db"
	"evote/internal/platform/httpserver"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	codec, err := crypto.NewAESCodec(cfg.CredentialSecret)
	if err != nil {
		return nil, err
	}

	pg, err := db.Connect(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgresadapter.EnsureSchema(ctx, pg.DB); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info("schema ensured",
			"event", "bootstrap_schema_ensured",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := votingcore.NewModule(votingcore.Dependencies{
		Events:        repo,
		Candidates:    repo,
		Accounts:      repo,
		Votes:         repo,
		PasswordCache: memory.NewPasswordCache(),
		Codec:         codec,
		Clock:         postgresadapter.SystemClock{},
		IDGen:         postgresadapter.UUIDGenerator{},
		CacheTTL:      cfg.EventPasswordCacheTTL,
		MaxAccounts:   cfg.MaxAccountsPerRequest,
		MaxPhotoBytes: cfg.MaxPhotoBytes,
		Logger:        logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), httpserver.Options{
		EnableSwagger: cfg.EnableSwagger,
		MaxBodyBytes:  maxBodyBytes(cfg.MaxPhotoBytes),
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// Migrate applies the schema and exits.
func Migrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "migrate")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := postgresadapter.EnsureSchema(ctx, pg.DB); err != nil {
		return err
	}
	logger.Info("schema migrated",
		"event", "bootstrap_schema_migrated",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(a.server.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

// maxBodyBytes leaves room for a base64 encoded photo plus the JSON envelope.
func maxBodyBytes(maxPhotoBytes int) int64 {
	if maxPhotoBytes <= 0 {
		return 0
	}
	return int64(maxPhotoBytes)*4/3 + 64<<10
}
