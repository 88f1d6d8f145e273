package driver

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// schema is the minimum layout both binaries rely on. Registration itself
// happens outside this system, so a pre-populated registrations table is the
// normal case and the CREATEs are no-ops.
const schema = `
CREATE TABLE IF NOT EXISTS registrations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	registration_number TEXT NOT NULL,
	staff_student_number TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	gender TEXT,
	organisational_unit TEXT NOT NULL DEFAULT '',
	list_results TEXT NOT NULL DEFAULT 'yes',
	elapsed INTEGER,
	position INTEGER,
	gender_pos INTEGER
);
CREATE TABLE IF NOT EXISTS start_time (
	start INTEGER NOT NULL
);`

// ConnectDB opens the race database and verifies it is actually reachable.
// Both the recorder and the live viewer open the same file; sqlite's
// per-transaction locking is what keeps the viewer from ever seeing a
// half-written finish.
func ConnectDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}
