package race

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/shaze/lennsmith/models"
)

const (
	commitAttempts = 3
	commitBackoff  = 100 * time.Millisecond
)

// Recorder validates finish events and commits them. It owns the position
// counters for its session; see Allocator for the single-writer constraint.
type Recorder struct {
	db    *sql.DB
	alloc *Allocator
	start int64 // race start epoch, 0 until started

	// Now supplies the wall clock. Tests swap it for a fixed source so
	// elapsed times are deterministic.
	Now func() time.Time
}

// NewRecorder loads the clock and the position counters from the store, so a
// restarted session resumes where the previous one stopped.
func NewRecorder(db *sql.DB) (*Recorder, error) {
	start, ok, err := StartTime(db)
	if err != nil {
		return nil, err
	}
	if !ok {
		start = 0
	}
	alloc, err := LoadAllocator(db)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db, alloc: alloc, start: start, Now: time.Now}, nil
}

// Started reports whether the race clock is set.
func (r *Recorder) Started() bool {
	return r.start != 0
}

// StartedAt returns the race start time; only meaningful once Started.
func (r *Recorder) StartedAt() time.Time {
	return time.Unix(r.start, 0)
}

// Start sets the race clock. Starting twice is ErrAlreadyStarted.
func (r *Recorder) Start() error {
	start, err := StartRace(r.db, r.Now())
	if err != nil {
		return err
	}
	r.start = start
	return nil
}

// RecordFinish resolves the identifier and commits the finish: elapsed
// seconds plus both allocated positions, written in one transaction. The
// counters advance only after the commit succeeds, so a failed write leaves
// no gap.
//
// Preconditions are checked in order and the first failure wins: clock set,
// runner resolved, runner not already finished.
func (r *Recorder) RecordFinish(identifier string) (*models.FinishRecord, error) {
	if !r.Started() {
		return nil, ErrNotStarted
	}

	runner, err := FindRunner(r.db, identifier)
	if err != nil {
		return nil, err
	}
	if runner.Finished() {
		return nil, ErrAlreadyFinished
	}

	elapsed := int(r.Now().Unix() - r.start)
	bucket := runner.Bucket()
	pos := r.alloc.PeekOverall()
	gpos := r.alloc.PeekGender(bucket)

	if err := r.commitFinish(runner.ID, elapsed, pos, gpos); err != nil {
		return nil, err
	}
	r.alloc.Advance(bucket)

	runner.Elapsed = sql.NullInt64{Int64: int64(elapsed), Valid: true}
	runner.Position = sql.NullInt64{Int64: int64(pos), Valid: true}
	runner.GenderPos = sql.NullInt64{Int64: int64(gpos), Valid: true}

	return &models.FinishRecord{
		Runner:    *runner,
		Elapsed:   elapsed,
		Position:  pos,
		GenderPos: gpos,
	}, nil
}

// commitFinish performs the atomic per-finish update. The elapsed IS NULL
// guard means a concurrent duplicate can never overwrite a committed finish.
// Transient sqlite lock contention (the live viewer reads the same file) is
// retried a bounded number of times; anything else is surfaced immediately.
func (r *Recorder) commitFinish(id, elapsed, pos, gpos int) error {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		err = r.tryCommit(id, elapsed, pos, gpos)
		if err == nil || !isBusy(err) {
			return err
		}
		log.WithError(err).WithField("attempt", attempt).Warn("store busy, retrying finish commit")
		time.Sleep(commitBackoff)
	}
	return err
}

func (r *Recorder) tryCommit(id, elapsed, pos, gpos int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE registrations
		SET elapsed = ?, position = ?, gender_pos = ?
		WHERE id = ? AND elapsed IS NULL`, elapsed, pos, gpos, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n != 1 {
		tx.Rollback()
		return ErrAlreadyFinished
	}
	return tx.Commit()
}

func isBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}
