package race

import (
	"database/sql"
	"time"
)

// StartTime reads the race start marker. ok is false when the race has not
// been started yet.
func StartTime(db *sql.DB) (start int64, ok bool, err error) {
	err = db.QueryRow("SELECT start FROM start_time LIMIT 1").Scan(&start)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return start, true, nil
}

// StartRace records the start marker exactly once. A second start attempt
// returns ErrAlreadyStarted and leaves the existing marker untouched.
func StartRace(db *sql.DB, now time.Time) (int64, error) {
	if _, ok, err := StartTime(db); err != nil {
		return 0, err
	} else if ok {
		return 0, ErrAlreadyStarted
	}
	start := now.Unix()
	if _, err := db.Exec("INSERT INTO start_time (start) VALUES (?)", start); err != nil {
		return 0, err
	}
	return start, nil
}
