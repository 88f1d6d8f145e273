package race_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shaze/lennsmith/driver"
	"github.com/shaze/lennsmith/models"
	"github.com/shaze/lennsmith/race"
)

const raceStart = int64(1_700_000_000)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := driver.ConnectDB(filepath.Join(t.TempDir(), "race.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// addRunner registers a runner. gender goes in raw, exactly as typed on the
// registration form.
func addRunner(t *testing.T, db *sql.DB, reg, staff, first, last, gender, unit string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO registrations
		(registration_number, staff_student_number, first_name, last_name, gender, organisational_unit)
		VALUES (?, ?, ?, ?, ?, ?)`, reg, staff, first, last, gender, unit)
	require.NoError(t, err)
}

// harness wires a recorder with a controllable clock against a started race.
type harness struct {
	db  *sql.DB
	rec *race.Recorder
}

func newHarness(t *testing.T, db *sql.DB) *harness {
	t.Helper()
	rec, err := race.NewRecorder(db)
	require.NoError(t, err)
	rec.Now = func() time.Time { return time.Unix(raceStart, 0) }
	require.NoError(t, rec.Start())
	return &harness{db: db, rec: rec}
}

// finishAt records a finish as if the runner crossed the line elapsed seconds
// after the start.
func (h *harness) finishAt(t *testing.T, id string, elapsed int) *models.FinishRecord {
	t.Helper()
	h.rec.Now = func() time.Time { return time.Unix(raceStart+int64(elapsed), 0) }
	rec, err := h.rec.RecordFinish(id)
	require.NoError(t, err)
	return rec
}

func loadRunner(t *testing.T, db *sql.DB, reg string) models.Runner {
	t.Helper()
	var r models.Runner
	err := db.QueryRow(`SELECT id, first_name, last_name, gender, organisational_unit,
		elapsed, position, gender_pos FROM registrations WHERE registration_number = ?`, reg).
		Scan(&r.ID, &r.FirstName, &r.LastName, &r.Gender, &r.OrganisationalUnit,
			&r.Elapsed, &r.Position, &r.GenderPos)
	require.NoError(t, err)
	r.RegistrationNumber = reg
	return r
}
