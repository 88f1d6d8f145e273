package controllers

import (
	"database/sql"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/shaze/lennsmith/models"
	"github.com/shaze/lennsmith/race"
	"github.com/shaze/lennsmith/utils"
)

// ResultsController serves the read-only queries the live page polls. Every
// handler recomputes from the store, so hitting them at any frequency is safe
// while the recorder is writing.
type ResultsController struct{}

func bucketFromRequest(r *http.Request) (models.Gender, bool) {
	switch models.Gender(mux.Vars(r)["gender"]) {
	case models.Male:
		return models.Male, true
	case models.Female:
		return models.Female, true
	default:
		// Top-N and team standings only exist for the scored buckets.
		return "", false
	}
}

func limitFromRequest(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (rc ResultsController) GetTopByGender(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucket, ok := bucketFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "gender must be male or female"})
			return
		}
		results, err := race.TopByGender(db, bucket, limitFromRequest(r, 10))
		if err != nil {
			log.WithError(err).Error("top by gender query failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "failed to query results"})
			return
		}
		utils.ResponseJSON(w, results)
	}
}

func (rc ResultsController) GetLatestFinishers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := race.LatestFinishers(db, limitFromRequest(r, 6))
		if err != nil {
			log.WithError(err).Error("latest finishers query failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "failed to query results"})
			return
		}
		utils.ResponseJSON(w, results)
	}
}

func (rc ResultsController) GetTeamStandings(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucket, ok := bucketFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "gender must be male or female"})
			return
		}
		teams, err := race.TeamStandings(db, bucket)
		if err != nil {
			log.WithError(err).Error("team standings query failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "failed to query teams"})
			return
		}
		if limit := limitFromRequest(r, len(teams)); limit < len(teams) {
			teams = teams[:limit]
		}
		utils.ResponseJSON(w, teams)
	}
}

func (rc ResultsController) GetStatistics(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := race.Stats(db)
		if err != nil {
			log.WithError(err).Error("statistics query failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "failed to query statistics"})
			return
		}
		utils.ResponseJSON(w, stats)
	}
}

// GetUpdatedAt exposes the database file's modification time so the page can
// show when results last changed. An in-memory or missing file reports zero.
func (rc ResultsController) GetUpdatedAt(dbPath string) http.HandlerFunc {
	type updated struct {
		UpdatedAt int64 `json:"updated_at"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(dbPath)
		if err != nil {
			utils.ResponseJSON(w, updated{})
			return
		}
		utils.ResponseJSON(w, updated{UpdatedAt: info.ModTime().Unix()})
	}
}
