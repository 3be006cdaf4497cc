package commands

import (
	"context"
	"fmt"

	"github.com/wonny/gdpdash/internal/api/handlers"
	"github.com/wonny/gdpdash/internal/datasetconfig"
	"github.com/wonny/gdpdash/internal/loader"
	"github.com/wonny/gdpdash/internal/quality"
	"github.com/wonny/gdpdash/internal/source"
	"github.com/wonny/gdpdash/pkg/config"
	"github.com/wonny/gdpdash/pkg/database"
	"github.com/wonny/gdpdash/pkg/logger"
)

// app holds the wiring shared by all commands
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB    // nil unless DATA_SOURCE=postgres
	mysql    *database.MySQL // nil unless DATA_SOURCE=mysql
	cache    *loader.Cache
	provider *loader.Provider
	gate     *quality.Gate
	defaults []string // nil = query.DefaultEntities
}

// logDefinition records which dataset definition is in effect
func logDefinition(log *logger.Logger, def *datasetconfig.Config, path string) {
	fields := map[string]interface{}{
		"dataset": def.Dataset.ID,
		"file":    path,
	}

	hash, err := datasetconfig.Hash(def)
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("Failed to hash dataset definition")
	} else {
		fields["hash"] = hash
	}

	log.WithFields(fields).Info("Dataset definition loaded")
}

// newApp loads config, connects the data source and builds the cached provider
func newApp(ctx context.Context) (*app, error) {
	// 1. Load config
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Dataset definition (optional)
	var defaults []string
	defPath := cfg.Data.DefinitionFile
	if datasetFile != "" {
		defPath = datasetFile
	}
	if defPath != "" {
		def, err := datasetconfig.Load(defPath)
		if err != nil {
			return nil, fmt.Errorf("load dataset definition: %w", err)
		}
		def.Apply(&cfg.Data)
		if len(def.Defaults.Entities) > 0 {
			defaults = def.Defaults.Entities
		}

		logDefinition(log, def, defPath)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		gate:     quality.NewGate(quality.Config{MinCoverage: cfg.Data.MinCoverage}),
		defaults: defaults,
	}

	// 4. Source
	var src source.Source
	switch cfg.Data.Source {
	case config.SourcePostgres:
		// 정의 파일이 source를 바꿀 수 있으므로 여기서 재확인
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for a postgres dataset")
		}
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		src = source.NewPostgresTable(db.Pool, cfg.Data.Table)
	case config.SourceMySQL:
		if cfg.Database.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required for a mysql dataset")
		}
		my, err := database.NewMySQL(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to mysql: %w", err)
		}
		a.mysql = my
		src = source.NewMySQLTable(my.DB, cfg.Data.Table)
	default:
		src = source.NewCSVFile(cfg.Data.File)
	}

	// 5. Loader + cache
	schema := loader.Schema{
		IDColumn:   cfg.Data.IDColumn,
		NameColumn: cfg.Data.NameColumn,
		MinYear:    cfg.Data.MinYear,
		MaxYear:    cfg.Data.MaxYear,
	}
	if err := schema.Validate(); err != nil {
		a.close()
		return nil, fmt.Errorf("dataset schema: %w", err)
	}

	a.cache = loader.NewCache(loader.New(schema, log), cfg.Data.CacheTTL, log)
	a.provider = loader.NewProvider(a.cache, src)

	log.WithFields(map[string]interface{}{
		"source":    src.ID(),
		"min_year":  schema.MinYear,
		"max_year":  schema.MaxYear,
		"cache_ttl": cfg.Data.CacheTTL.String(),
	}).Debug("Dataset provider ready")

	return a, nil
}

// close releases the database pool if one was opened
func (a *app) close() {
	a.db.Close()
	a.mysql.Close()
}

// healthChecker returns the database as a health dependency, nil when unused
func (a *app) healthChecker() handlers.HealthChecker {
	switch {
	case a.db != nil:
		return a.db
	case a.mysql != nil:
		return a.mysql
	default:
		return nil
	}
}
