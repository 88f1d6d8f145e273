package race_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaze/lennsmith/race"
)

func TestRecordFinish_BeforeStart(t *testing.T) {
	db := openDB(t)
	addRunner(t, db, "1", "s100", "Ada", "Lovelace", "female", "Maths")

	rec, err := race.NewRecorder(db)
	require.NoError(t, err)

	_, err = rec.RecordFinish("1")
	assert.ErrorIs(t, err, race.ErrNotStarted)

	assert.False(t, loadRunner(t, db, "1").Finished(), "rejected finish must not touch the store")
}

func TestStart_Twice(t *testing.T) {
	db := openDB(t)
	h := newHarness(t, db)

	err := h.rec.Start()
	assert.ErrorIs(t, err, race.ErrAlreadyStarted)

	start, ok, err := race.StartTime(db)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, raceStart, start, "second start must not overwrite the marker")
}

func TestRecordFinish_ElapsedFromInjectedClock(t *testing.T) {
	db := openDB(t)
	addRunner(t, db, "1", "s100", "Ada", "Lovelace", "female", "Maths")
	h := newHarness(t, db)

	rec := h.finishAt(t, "1", 754)

	assert.Equal(t, 754, rec.Elapsed)
	assert.Equal(t, 1, rec.Position)
	assert.Equal(t, 1, rec.GenderPos)
	assert.Equal(t, "Ada", rec.Runner.FirstName)
}

func TestRecordFinish_Duplicate(t *testing.T) {
	db := openDB(t)
	addRunner(t, db, "1", "s100", "Ada", "Lovelace", "female", "Maths")
	h := newHarness(t, db)

	h.finishAt(t, "1", 300)
	_, err := h.rec.RecordFinish("1")
	assert.ErrorIs(t, err, race.ErrAlreadyFinished)

	r := loadRunner(t, db, "1")
	assert.EqualValues(t, 300, r.Elapsed.Int64, "second call must leave the store unchanged")
	assert.EqualValues(t, 1, r.Position.Int64)
}

func TestRecordFinish_UnknownRunner(t *testing.T) {
	db := openDB(t)
	h := newHarness(t, db)

	_, err := h.rec.RecordFinish("999")
	assert.ErrorIs(t, err, race.ErrNotFound)
}

func TestRecordFinish_PositionsAreContiguous(t *testing.T) {
	db := openDB(t)
	addRunner(t, db, "1", "s1", "A", "A", "male", "X")
	addRunner(t, db, "2", "s2", "B", "B", "female", "X")
	addRunner(t, db, "3", "s3", "C", "C", "Male", "Y") // capitalized on the form
	addRunner(t, db, "4", "s4", "D", "D", "", "Y")     // unspecified -> other
	addRunner(t, db, "5", "s5", "E", "E", "female", "Z")
	h := newHarness(t, db)

	ids := []string{"1", "2", "3", "4", "5"}
	for i, id := range ids {
		rec := h.finishAt(t, id, 100+10*i)
		assert.Equal(t, i+1, rec.Position, "overall positions follow call order 1..k")
	}

	// Per-bucket counters: male got 1,2; female 1,2; other 1.
	assert.EqualValues(t, 1, loadRunner(t, db, "1").GenderPos.Int64)
	assert.EqualValues(t, 2, loadRunner(t, db, "3").GenderPos.Int64)
	assert.EqualValues(t, 1, loadRunner(t, db, "2").GenderPos.Int64)
	assert.EqualValues(t, 2, loadRunner(t, db, "5").GenderPos.Int64)
	assert.EqualValues(t, 1, loadRunner(t, db, "4").GenderPos.Int64)
}

func TestRecorder_RestartResumesCounters(t *testing.T) {
	db := openDB(t)
	addRunner(t, db, "1", "s1", "A", "A", "male", "X")
	addRunner(t, db, "2", "s2", "B", "B", "male", "X")
	addRunner(t, db, "3", "s3", "C", "C", "male", "X")
	h := newHarness(t, db)

	h.finishAt(t, "1", 100)
	h.finishAt(t, "2", 110)

	// Simulate a process restart: a fresh recorder over the same store.
	rec2, err := race.NewRecorder(db)
	require.NoError(t, err)
	require.True(t, rec2.Started(), "restart must pick up the existing clock")
	rec2.Now = func() time.Time { return time.Unix(raceStart+120, 0) }

	rec, err := rec2.RecordFinish("3")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Position, "resumed counter is prior max + 1")
	assert.Equal(t, 3, rec.GenderPos)
}
