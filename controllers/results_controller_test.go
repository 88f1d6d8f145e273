package controllers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaze/lennsmith/controllers"
	"github.com/shaze/lennsmith/driver"
	"github.com/shaze/lennsmith/models"
	"github.com/shaze/lennsmith/race"
)

func newServer(t *testing.T) (*sql.DB, *httptest.Server) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "race.db")
	db, err := driver.ConnectDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rc := controllers.ResultsController{}
	router := mux.NewRouter()
	router.HandleFunc("/", rc.GetLivePage(controllers.PageData{Title: "Test Race", PollSeconds: 5}))
	router.HandleFunc("/api/top/{gender}", rc.GetTopByGender(db))
	router.HandleFunc("/api/latest", rc.GetLatestFinishers(db))
	router.HandleFunc("/api/teams/{gender}", rc.GetTeamStandings(db))
	router.HandleFunc("/api/stats", rc.GetStatistics(db))
	router.HandleFunc("/api/updated", rc.GetUpdatedAt(dbPath))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return db, srv
}

func seedFinishers(t *testing.T, db *sql.DB) {
	t.Helper()
	rec, err := race.NewRecorder(db)
	require.NoError(t, err)
	const start = int64(1_700_000_000)
	rec.Now = func() time.Time { return time.Unix(start, 0) }
	require.NoError(t, rec.Start())

	runners := []struct {
		reg, gender, unit string
		elapsed           int
	}{
		{"1", "male", "Physics", 300},
		{"2", "female", "Physics", 280},
		{"3", "male", "Chemistry", 250},
	}
	for _, r := range runners {
		_, err := db.Exec(`INSERT INTO registrations
			(registration_number, staff_student_number, first_name, last_name, gender, organisational_unit)
			VALUES (?, '', 'Runner', ?, ?, ?)`, r.reg, r.reg, r.gender, r.unit)
		require.NoError(t, err)
		rec.Now = func() time.Time { return time.Unix(start+int64(r.elapsed), 0) }
		_, err = rec.RecordFinish(r.reg)
		require.NoError(t, err)
	}
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestGetTopByGender(t *testing.T) {
	db, srv := newServer(t)
	seedFinishers(t, db)

	var top []models.RankedRunner
	resp := getJSON(t, srv.URL+"/api/top/male?limit=10", &top)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 250, top[0].Elapsed)
	assert.Equal(t, "Chemistry", top[0].OrganisationalUnit)
}

func TestGetTopByGender_InvalidBucket(t *testing.T) {
	_, srv := newServer(t)

	resp := getJSON(t, srv.URL+"/api/top/other", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/top/unknown", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLatestFinishers_Limit(t *testing.T) {
	db, srv := newServer(t)
	seedFinishers(t, db)

	var latest []models.RankedRunner
	getJSON(t, srv.URL+"/api/latest?limit=2", &latest)

	require.Len(t, latest, 2)
	assert.Equal(t, 3, latest[0].Rank, "latest finisher carries the highest arrival position")
}

func TestGetStatistics(t *testing.T) {
	db, srv := newServer(t)
	seedFinishers(t, db)

	var stats models.Statistics
	getJSON(t, srv.URL+"/api/stats", &stats)

	assert.Equal(t, 3, stats.TotalFinishers)
	assert.Equal(t, 3, stats.TotalRegistered)
	assert.Equal(t, "Physics", stats.TopUnit)
}

func TestGetTeamStandings_EmptyIsValid(t *testing.T) {
	db, srv := newServer(t)
	seedFinishers(t, db)

	var teams []models.TeamResult
	resp := getJSON(t, srv.URL+"/api/teams/female", &teams)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, teams, "no unit has four finishers yet")
}

func TestGetUpdatedAt(t *testing.T) {
	db, srv := newServer(t)
	seedFinishers(t, db)

	var updated struct {
		UpdatedAt int64 `json:"updated_at"`
	}
	getJSON(t, srv.URL+"/api/updated", &updated)
	assert.Greater(t, updated.UpdatedAt, int64(0))
}

func TestGetLivePage(t *testing.T) {
	_, srv := newServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
