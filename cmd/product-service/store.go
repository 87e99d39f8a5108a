package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iyhunko/antique-store-api/internal/config"
	"github.com/iyhunko/antique-store-api/internal/repository"
	"github.com/iyhunko/antique-store-api/internal/repository/gormstore"
	"github.com/iyhunko/antique-store-api/internal/repository/memory"
	"github.com/iyhunko/antique-store-api/internal/repository/sql"
)

// openStore builds the backing store selected by DB_DRIVER.
// The returned close function is safe to call once the servers have stopped.
func openStore(ctx context.Context, conf config.DB) (repository.Store, func(), error) {
	switch conf.Driver {
	case config.DriverPostgres:
		db, err := sql.StartDB(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		return sql.NewProductStore(db), func() { closeLogged(db.Close) }, nil

	case config.DriverSQLite:
		db, err := gormstore.Open(conf.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		return gormstore.NewProductStore(db), func() { closeLogged(sqlDB.Close) }, nil

	case config.DriverMemory:
		slog.Warn("Using in-memory product store; data is lost on restart")
		return memory.NewProductStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown database driver %q", config.ErrInvalidConfig, conf.Driver)
	}
}

func closeLogged(closeFn func() error) {
	if err := closeFn(); err != nil {
		slog.Error("failed to close database", slog.Any("err", err))
	}
}
