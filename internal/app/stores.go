package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	repocache "github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/mongodb"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Stores is one backend's set of repositories.
type Stores struct {
	Profiles     user.ProfileRepository
	Teams        team.Repository
	TeamLogs     team.LogRepository
	Roster       team.RosterRepository
	Participants participant.Repository
	Legacy       registration.Repository

	close func(context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func OpenStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stores, error) {
	var (
		stores *Stores
		err    error
	)
	switch cfg.StoreBackend {
	case config.StoreMongo:
		stores, err = openMongoStores(ctx, cfg, logger)
	case config.StorePostgres:
		stores, err = openPostgresStores(ctx, cfg, logger)
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return &Stores{
			Profiles:     memory.NewProfileRepository(),
			Teams:        memory.NewTeamRepository(),
			TeamLogs:     memory.NewTeamLogRepository(),
			Roster:       memory.NewRosterRepository(),
			Participants: memory.NewParticipantRepository(),
			Legacy:       memory.NewRegistrationRepository(),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if cfg.ProfileCacheTTL > 0 {
		stores.Profiles = repocache.NewProfileRepository(stores.Profiles, cfg.ProfileCacheTTL)
	}
	return stores, nil
}

func openMongoStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stores, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}

	logger.Info("mongo store ready", "database", cfg.MongoDatabase)
	return &Stores{
		Profiles:     mongodb.NewProfileRepository(db),
		Teams:        mongodb.NewTeamRepository(db),
		TeamLogs:     mongodb.NewTeamLogRepository(db),
		Roster:       mongodb.NewRosterRepository(db),
		Participants: mongodb.NewParticipantRepository(db),
		Legacy:       mongodb.NewRegistrationRepository(db),
		close:        client.Disconnect,
	}, nil
}

func openPostgresStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stores, error) {
	target := resolvePostgresTarget(cfg.DBURL, cfg.ServiceName)

	db, err := otelsqlx.Open("postgres", target.dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := pingDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("postgres store ready", "database", target.dbName)
	return &Stores{
		Profiles:     postgres.NewProfileRepository(db),
		Teams:        postgres.NewTeamRepository(db),
		TeamLogs:     postgres.NewTeamLogRepository(db),
		Roster:       postgres.NewRosterRepository(db),
		Participants: postgres.NewParticipantRepository(db),
		Legacy:       postgres.NewRegistrationRepository(db),
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func pingDB(ctx context.Context, db *sqlx.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
