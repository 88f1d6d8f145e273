package main

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/shaze/lennsmith/config"
	"github.com/shaze/lennsmith/driver"
	"github.com/shaze/lennsmith/race"
	"github.com/shaze/lennsmith/reports"
	"github.com/shaze/lennsmith/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: collect <database_file.db>")
		log.Fatalf("config: %v", err)
	}

	db, err := driver.ConnectDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("store unavailable: %v", err)
	}
	defer db.Close()

	recorder, err := race.NewRecorder(db)
	if err != nil {
		log.Fatalf("load race state: %v", err)
	}

	fmt.Println("Race Results Capture System")
	fmt.Println("Commands: 'start' to begin race, runner IDs to record finishes, 'stop' to generate results")
	if recorder.Started() {
		fmt.Printf("Race already started at %s\n", recorder.StartedAt().Format(time.RFC1123))
	} else {
		fmt.Println("Race not started. Type 'start' to begin the race.")
	}

	// An interrupt simply abandons any un-entered input; results files are
	// only written on an explicit stop.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		fmt.Println("\nExiting...")
		db.Close()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("\n> ")
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "":
		case strings.EqualFold(input, "start"):
			handleStart(recorder)
		case strings.EqualFold(input, "stop"):
			generateReports(db, cfg.RaceTitle)
			return
		default:
			handleFinish(recorder, input)
		}
		fmt.Print("\n> ")
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func handleStart(recorder *race.Recorder) {
	err := recorder.Start()
	if errors.Is(err, race.ErrAlreadyStarted) {
		fmt.Println("Race already started!")
		return
	}
	if err != nil {
		log.WithError(err).Error("could not record race start")
		return
	}
	fmt.Printf("Race started at %s\n", recorder.StartedAt().Format(time.RFC1123))
	fmt.Println("Enter runner IDs as they finish...")
}

func handleFinish(recorder *race.Recorder, id string) {
	rec, err := recorder.RecordFinish(id)
	switch {
	case errors.Is(err, race.ErrNotStarted):
		fmt.Println("Race hasn't started yet. Type 'start' first.")
	case errors.Is(err, race.ErrNotFound):
		fmt.Printf("Runner not found: %s\n", id)
	case errors.Is(err, race.ErrAmbiguous):
		fmt.Printf("More than one runner matches %q - enter the full registration number.\n", id)
	case errors.Is(err, race.ErrAlreadyFinished):
		fmt.Printf("Runner %q already finished!\n", id)
	case err != nil:
		log.WithError(err).WithField("id", id).Error("could not record finish")
	default:
		fmt.Printf("Position %d: %s %s - %s (Gender pos: %d)\n",
			rec.Position, rec.Runner.FirstName, rec.Runner.LastName,
			utils.FormatElapsed(rec.Elapsed), rec.GenderPos)
	}
}

func generateReports(db *sql.DB, title string) {
	gen := reports.Generator{DB: db, Title: title}

	text, err := gen.Text()
	if err != nil {
		log.Fatalf("generate results: %v", err)
	}
	fmt.Println("\n" + text)

	if err := gen.WriteFiles("."); err != nil {
		log.Fatalf("write results files: %v", err)
	}

	stats, err := race.Stats(db)
	if err != nil {
		log.Fatalf("race statistics: %v", err)
	}
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("RACE COMPLETE!")
	fmt.Println("Results saved to results.txt and results.html")
	fmt.Printf("Total finishers: %d\n", stats.TotalFinishers)
	fmt.Println(strings.Repeat("=", 50))
}
