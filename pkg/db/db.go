package db

import (
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wfstat-cloud/wfstat/pkg/env"
	"github.com/wfstat-cloud/wfstat/pkg/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connection opens a connection to the monitoring database. The
// default backend is the sqlite file written by the workflow engine;
// a postgres mirror can be selected via WFSTAT_DATABASETYPE.
func Connection() *gorm.DB {
	var (
		gdb *gorm.DB
		err error
	)

	switch env.Variables().DatabaseType {
	case "postgres":
		gdb, err = gorm.Open(
			postgres.Open(env.Variables().DatabaseDSN),
			&gorm.Config{},
		)
	case "sqlite":
		fallthrough
	default:
		gdb, err = gorm.Open(
			sqlite.Open(env.Variables().DatabaseFile),
			&gorm.Config{},
		)
	}

	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	return gdb
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
