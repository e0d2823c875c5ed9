// Package views installs the reporting views into the monitoring
// database file so downstream sqlite tooling can query them directly.
// The view cascade mirrors internal/resolve: runview feeds the task
// views, which feed the two summary phases and their union.
package views

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Names lists every view, in dependency order.
var Names = []string{
	"runview",
	"nctaskview",
	"ndtaskview",
	"taskview",
	"sumv1",
	"sumv2",
	"summary",
}

var statements = map[string]string{
	"runview": `CREATE VIEW runview AS
		SELECT row_number() OVER (ORDER BY w.time_began, w.run_id) AS runnum,
			w.run_id,
			strftime('%Y-%m-%d %H:%M:%S', w.time_began) AS began,
			strftime('%Y-%m-%d %H:%M:%S', w.time_completed) AS completed,
			time((julianday(w.time_completed) - julianday(w.time_began)) * 86400, 'unixepoch') AS elapsed
		FROM workflow w`,

	"nctaskview": `CREATE VIEW nctaskview AS
		SELECT rv.runnum, t.run_id, t.task_id,
			t.task_func_name AS function,
			t.task_fail_count AS fails,
			strftime('%Y-%m-%d %H:%M:%S', max(t.task_time_invoked)) AS invoked,
			strftime('%Y-%m-%d %H:%M:%S', t.task_time_returned) AS returned,
			time((julianday(t.task_time_returned) - julianday(t.task_time_invoked)) * 86400, 'unixepoch') AS elapsed
		FROM task t
		JOIN runview rv ON rv.run_id = t.run_id
		WHERE t.task_hashsum IS NULL AND t.task_memoize = 0
		GROUP BY t.run_id, t.task_func_name`,

	"ndtaskview": `CREATE VIEW ndtaskview AS
		SELECT rv.runnum, t.run_id, t.task_id,
			t.task_func_name AS function,
			t.task_fail_count AS fails,
			strftime('%Y-%m-%d %H:%M:%S', t.task_time_invoked) AS invoked
		FROM task t
		JOIN runview rv ON rv.run_id = t.run_id
		WHERE t.task_hashsum IS NULL AND t.task_memoize != 0`,

	"taskview": `CREATE VIEW taskview AS
		SELECT rv.runnum,
			row_number() OVER (
				ORDER BY min(t.task_time_invoked) IS NULL, min(t.task_time_invoked), t.task_hashsum
			) AS tasknum,
			t.run_id, t.task_id, t.task_hashsum,
			t.task_func_name AS function,
			max(t.task_fail_count) AS fails,
			strftime('%Y-%m-%d %H:%M:%S', min(t.task_time_invoked)) AS invoked,
			strftime('%Y-%m-%d %H:%M:%S', max(t.task_time_returned)) AS returned,
			time((julianday(max(t.task_time_returned)) - julianday(min(t.task_time_invoked))) * 86400, 'unixepoch') AS elapsed,
			t.task_depends AS depends,
			t.task_stdout AS stdout
		FROM task t
		JOIN runview rv ON rv.run_id = t.run_id
		WHERE t.task_hashsum IS NOT NULL
		GROUP BY t.run_id, t.task_hashsum`,

	"sumv1": `CREATE VIEW sumv1 AS
		SELECT tv.runnum, tv.tasknum, tv.run_id, tv.task_id, tv.function,
			s.task_status_name AS status,
			strftime('%Y-%m-%d %H:%M:%S', max(s.timestamp)) AS lastUpdate,
			tv.fails, y.try_id, y.hostname,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_launched) AS launched,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_running) AS start,
			time((julianday(y.task_try_time_running) - julianday(y.task_try_time_launched)) * 86400, 'unixepoch') AS waitTime,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_returned) AS ended,
			time((julianday(y.task_try_time_returned) - julianday(y.task_try_time_running)) * 86400, 'unixepoch') AS runTime,
			tv.depends, tv.stdout
		FROM taskview tv
		JOIN try y ON (tv.run_id = y.run_id AND tv.task_id = y.task_id)
		JOIN status s ON (y.run_id = s.run_id AND y.task_id = s.task_id AND y.try_id = s.try_id)
		WHERE s.task_status_name = 'exec_done'
		GROUP BY tv.run_id, tv.task_hashsum`,

	"sumv2": `CREATE VIEW sumv2 AS
		SELECT tv.runnum, tv.tasknum, tv.run_id, tv.task_id, tv.function,
			s.task_status_name AS status,
			strftime('%Y-%m-%d %H:%M:%S', max(s.timestamp)) AS lastUpdate,
			tv.fails, y.try_id, y.hostname,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_launched) AS launched,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_running) AS start,
			time((julianday(y.task_try_time_running) - julianday(y.task_try_time_launched)) * 86400, 'unixepoch') AS waitTime,
			strftime('%Y-%m-%d %H:%M:%S', y.task_try_time_returned) AS ended,
			time((julianday(y.task_try_time_returned) - julianday(y.task_try_time_running)) * 86400, 'unixepoch') AS runTime,
			tv.depends, tv.stdout
		FROM taskview tv
		JOIN try y ON (tv.run_id = y.run_id AND tv.task_id = y.task_id)
		JOIN status s ON (y.run_id = s.run_id AND y.task_id = s.task_id AND y.try_id = s.try_id)
		WHERE tv.tasknum NOT IN (SELECT tasknum FROM sumv1)
		GROUP BY tv.run_id, tv.task_hashsum`,

	"summary": `CREATE VIEW summary AS
		SELECT * FROM sumv1
		UNION
		SELECT * FROM sumv2
		ORDER BY tasknum`,
}

// Create installs every view. Creating a view that already exists is
// a hard failure; callers wanting redefinition must Drop first.
func Create(gdb *gorm.DB) error {
	for _, name := range Names {
		if err := gdb.Exec(statements[name]).Error; err != nil {
			return errors.Wrapf(err, "failed to create view %v", name)
		}
	}
	return nil
}

// Drop removes every view we own, ignoring ones that do not exist.
func Drop(gdb *gorm.DB) error {
	// reverse dependency order
	for i := len(Names) - 1; i >= 0; i-- {
		if err := gdb.Exec("DROP VIEW IF EXISTS " + Names[i]).Error; err != nil {
			return errors.Wrapf(err, "failed to drop view %v", Names[i])
		}
	}
	return nil
}

// Missing returns the views not present in the database schema.
func Missing(gdb *gorm.DB) ([]string, error) {
	existing := []string{}
	err := gdb.Raw(
		"SELECT name FROM sqlite_master WHERE type = 'view'",
	).Scan(&existing).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list views")
	}

	present := map[string]bool{}
	for _, name := range existing {
		present[name] = true
	}

	missing := []string{}
	for _, name := range Names {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Ensure installs the views when any are missing, dropping whichever
// of ours survive so the full set is rebuilt consistently.
func Ensure(gdb *gorm.DB) error {
	missing, err := Missing(gdb)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	if err := Drop(gdb); err != nil {
		return err
	}
	return Create(gdb)
}
