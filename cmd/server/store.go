package main

import (
	"context"
	"fmt"
	"log"

	"syntra-pos/config"
	"syntra-pos/internal/database"
	"syntra-pos/internal/store"
)

func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	var backend store.Backend

	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		fb, err := store.NewFileBackend(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		log.Printf("Using JSON file store in %s", cfg.Store.DataDir)
		backend = fb

	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		db, err := database.NewConnection(cfg.Store.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		sb, err := store.NewSQLBackend(db)
		if err != nil {
			return nil, err
		}
		backend = sb

	case config.StoreDriverRedis:
		rdb, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		backend = store.NewRedisBackend(rdb, cfg.Store.RedisPrefix)

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	return store.New(backend), nil
}
