package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mogbrew/internal/config"
	"github.com/mogbrew/internal/db"
	"github.com/mogbrew/internal/service"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type brewEnv struct {
	cfg   config.AppConfig
	loc   *time.Location
	db    *gorm.DB
	beers *service.BeerService
}

func loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.AppConfig{}, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if errorsDBPath != "" {
		cfg.ErrorsDatabasePath = errorsDBPath
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	return cfg, nil
}

func withBeers(run func(rt *brewEnv) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", cfg.Timezone, err)
	}

	gdb, err := db.Open(cfg.DatabasePath, "mogbrew.db")
	if err != nil {
		return err
	}
	gdb.Logger = logger.Default.LogMode(logger.Silent)
	defer closeDB(gdb)

	if err := db.Migrate(gdb); err != nil {
		return err
	}

	return run(&brewEnv{
		cfg:   cfg,
		loc:   loc,
		db:    gdb,
		beers: service.NewBeerService(gdb).WithLocation(loc),
	})
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
