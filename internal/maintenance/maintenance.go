// Package maintenance holds the administrative routines run against
// the monitoring database: the one-time schema migration, index
// builds, and the periodic statistics/space housekeeping.
package maintenance

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"github.com/wfstat-cloud/wfstat/pkg/log"
	"gorm.io/gorm"
)

// SchemaVersion is the version this build migrates databases to.
const SchemaVersion = 2

// ErrAlreadyMigrated is returned when Migrate finds the database at
// or above SchemaVersion. The raw column addition is not idempotent,
// so the version guard is the only thing standing between a repeat
// run and a hard engine failure.
var ErrAlreadyMigrated = errors.New("database already migrated")

type Maintenance interface {
	WithDatabase(*gorm.DB) Maintenance
	Version() (int, error)
	Migrate() error
	Reindex() error
	Analyze() error
	Vacuum() error
}

type maintenanceService struct {
	ctx context.Context
	db  *gorm.DB
}

func Service(ctx context.Context) Maintenance {
	return &maintenanceService{
		ctx: ctx,
		db:  db.Connection(),
	}
}

func (m *maintenanceService) WithDatabase(conn *gorm.DB) Maintenance {
	m.db = conn
	return m
}

// Version reports the recorded schema version. Databases created
// before versioning was introduced report 1.
func (m *maintenanceService) Version() (int, error) {
	q := m.db.WithContext(m.ctx)

	err := q.Exec(
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)",
	).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to prepare schema_version")
	}

	var version sql.NullInt64
	err = q.Raw("SELECT max(version) FROM schema_version").Scan(&version).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to read schema version")
	}

	if !version.Valid {
		return 1, nil
	}
	return int(version.Int64), nil
}

// Migrate adds the task_fail_cost column to databases created before
// the cutoff, recording the new schema version. Exactly-once: a
// second invocation returns ErrAlreadyMigrated.
func (m *maintenanceService) Migrate() error {
	version, err := m.Version()
	if err != nil {
		return err
	}

	if version >= SchemaVersion {
		return ErrAlreadyMigrated
	}

	q := m.db.WithContext(m.ctx)

	return q.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"ALTER TABLE task ADD COLUMN task_fail_cost REAL NOT NULL DEFAULT 1",
		).Error
		if err != nil {
			return errors.Wrap(err, "failed to add task_fail_cost")
		}

		err = tx.Exec(
			"INSERT INTO schema_version (version) VALUES (?)", SchemaVersion,
		).Error
		if err != nil {
			return errors.Wrap(err, "failed to record schema version")
		}

		log.Info("migrated monitoring database", "version", SchemaVersion)
		return nil
	})
}

// Reindex builds the task hash index. Safe to repeat.
func (m *maintenanceService) Reindex() error {
	err := m.db.WithContext(m.ctx).Exec(
		"CREATE INDEX IF NOT EXISTS task_hashsum_idx ON task (task_hashsum)",
	).Error
	return errors.Wrap(err, "failed to build task_hashsum index")
}

// Analyze refreshes the query planner statistics. Safe to repeat.
func (m *maintenanceService) Analyze() error {
	err := m.db.WithContext(m.ctx).Exec("ANALYZE").Error
	return errors.Wrap(err, "failed to analyze database")
}

// Vacuum reclaims unused space. Safe to repeat; must not run inside
// a transaction.
func (m *maintenanceService) Vacuum() error {
	err := m.db.WithContext(m.ctx).Exec("VACUUM").Error
	return errors.Wrap(err, "failed to vacuum database")
}
