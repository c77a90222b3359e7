package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/thcheetah777/engine/cmd/debug/models"
	"github.com/thcheetah777/engine/internal/db"
	"github.com/thcheetah777/engine/internal/rng"
	"github.com/thcheetah777/engine/internal/table"
)

func main() {
	dbPath := flag.String("db", "./rolls.db", "Path to the SQLite database")
	startView := flag.String("view", "menu", "Starting view (menu, tables, simulator, overview)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	seed := flag.Uint64("seed", 0, "Seed for simulated rolls (0 seeds from the clock)")
	flag.Parse()

	// Setup logging
	switch *logLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	// Setup file logging for debug
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal("Failed to open database", "error", err, "path", *dbPath)
	}
	defer database.Close()

	// A fresh file gets the schema so the tool can be pointed anywhere
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	r := rng.NewTimeSeeded()
	if *seed != 0 {
		r = rng.New(*seed)
	}
	tables := table.NewManager(database, r)

	app := models.NewApp(tables, *startView)
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting roll table debug tool", "db_path", *dbPath, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}
}
