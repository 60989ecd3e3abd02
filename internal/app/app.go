package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mrrfc/mrr-fantasy/internal/config"
	"github.com/mrrfc/mrr-fantasy/internal/domain/league"
	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/domain/scoring"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/account"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/jobqueue"
	cacherepo "github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/cache"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/memory"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/postgres"
	"github.com/mrrfc/mrr-fantasy/internal/interfaces/httpapi"
	basecache "github.com/mrrfc/mrr-fantasy/internal/platform/cache"
	idgen "github.com/mrrfc/mrr-fantasy/internal/platform/id"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
	"github.com/mrrfc/mrr-fantasy/internal/platform/resilience"
	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

type repositories struct {
	players player.Repository
	rosters roster.Repository
	scoring scoring.Repository
	leagues league.Repository
}

// NewHTTPServer wires the full service and returns the server plus a cleanup
// that closes the database when one is in use.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if db == nil {
			return nil
		}
		return db.Close()
	}

	repos := buildRepositories(cfg, db, logger)

	generator := idgen.NewRandomGenerator()
	playerSvc := usecase.NewPlayerService(repos.players, logger)
	rosterSvc := usecase.NewRosterService(repos.rosters, repos.players, generator, logger)
	scoringSvc := usecase.NewScoringService(repos.scoring, repos.players, generator, logger)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.rosters, repos.players, generator, logger)
	recomputeSvc := usecase.NewRecomputeService(repos.scoring, repos.players, logger)

	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
		scoringSvc.SetJobPublisher(publisher)
	}

	accountClient := account.NewClient(account.ClientConfig{
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		Timeout:        cfg.AccountTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(playerSvc, rosterSvc, scoringSvc, leagueSvc, recomputeSvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// openDatabase connects to Postgres when DB_URL is set. An empty DB_URL keeps
// the service on the seeded in-memory repositories, which is what local
// development uses.
func openDatabase(cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("database disabled", "reason", "DB_URL empty, using in-memory repositories")
		return nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("database connected", "db_name", dbNameFromURL(dbURL))

	return db, nil
}

func buildRepositories(cfg config.Config, db *sqlx.DB, logger *logging.Logger) repositories {
	var repos repositories
	if db != nil {
		repos = repositories{
			players: postgres.NewPlayerRepository(db),
			rosters: postgres.NewRosterRepository(db),
			scoring: postgres.NewScoringRepository(db),
			leagues: postgres.NewLeagueRepository(db),
		}
	} else {
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		repos = repositories{
			players: playerRepo,
			rosters: memory.NewRosterRepository(),
			scoring: memory.NewScoringRepository(playerRepo),
			leagues: memory.NewLeagueRepository(),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos
}
