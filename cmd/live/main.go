package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/shaze/lennsmith/config"
	"github.com/shaze/lennsmith/controllers"
	"github.com/shaze/lennsmith/driver"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: live <database_file.db>")
		log.Fatalf("config: %v", err)
	}

	db, err := driver.ConnectDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("store unavailable: %v", err)
	}
	defer db.Close()

	results := controllers.ResultsController{}
	router := mux.NewRouter()

	router.HandleFunc("/", results.GetLivePage(controllers.PageData{
		Title:       cfg.RaceTitle,
		PollSeconds: cfg.PollSeconds,
	})).Methods("GET")
	router.HandleFunc("/api/top/{gender}", results.GetTopByGender(db)).Methods("GET")
	router.HandleFunc("/api/latest", results.GetLatestFinishers(db)).Methods("GET")
	router.HandleFunc("/api/teams/{gender}", results.GetTeamStandings(db)).Methods("GET")
	router.HandleFunc("/api/stats", results.GetStatistics(db)).Methods("GET")
	router.HandleFunc("/api/updated", results.GetUpdatedAt(cfg.DBPath)).Methods("GET")

	log.WithFields(log.Fields{"addr": cfg.LiveAddr, "db": cfg.DBPath}).Info("live results server started")
	log.Fatal(http.ListenAndServe(cfg.LiveAddr, router))
}
