package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/pyramid-ladder/internal/config"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	"github.com/riskibarqy/pyramid-ladder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pyramid-ladder/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pyramid-ladder/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const seedTimeout = 15 * time.Second

// Server is the HTTP server plus the resources it owns.
type Server struct {
	*http.Server
	close func() error
}

// Close releases the database pool, if any. Call it after Shutdown.
func (s *Server) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*Server, error) {
	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()
	handler := httpapi.NewHandler(
		usecase.NewChallengeService(store, ids, logger),
		usecase.NewMatchService(store, usecase.NewStandingsUpdater(logger), ids, logger),
		usecase.NewSeasonService(store, ids, logger),
		usecase.NewStandingsService(store, logger),
		usecase.NewActivityService(store, ids, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.AdminToken, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = closeStore()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Server{Server: server, close: closeStore}, nil
}

// newStore picks postgres when DB_URL is set and the in-memory store
// otherwise.
func newStore(cfg config.Config, logger *logging.Logger) (uow.Store, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if !cfg.UsesDatabase() {
		store := memory.NewStore()
		if cfg.SeedDemo {
			if err := memory.SeedLadder(ctx, store, memory.DemoLadder(time.Now())); err != nil {
				return nil, nil, fmt.Errorf("seed demo ladder: %w", err)
			}
		}
		logger.Info("using in-memory store", "seed_demo", cfg.SeedDemo)
		return store, func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := postgres.NewStore(db)
	if cfg.SeedDemo {
		if err := postgres.BootstrapSeed(ctx, store); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("seed demo ladder: %w", err)
		}
	}
	logger.Info("using postgres store",
		"db_name", dbNameFromURL(cfg.DBURL),
		"max_open_conns", cfg.DBMaxOpenConns,
		"seed_demo", cfg.SeedDemo,
	)
	return store, db.Close, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbNameFromURL(cfg.DBURL)))

	return db, nil
}
