package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/db"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/roster"
	"github.com/zukunftstag/workshop-server/router"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/trial"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelInfo,
	})))

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open SQLite database
	dbConn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "path", cfg.DatabasePath)

	// Load the printed roster
	teamRoster, err := roster.Load(cfg.DataDir)
	if err != nil {
		slog.Error("roster load failed", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Roster loaded", "teams", len(teamRoster.Teams()))

	// Bootstrap the well-known sessions
	if err := store.EnsureDefaultSessions(dbConn); err != nil {
		slog.Error("session bootstrap failed", "error", err)
		os.Exit(1)
	}

	// Generate (or deterministically regenerate) the secret assignment
	if err := trial.Generate(dbConn, teamRoster.Teams(), cfg.TrialSeed); err != nil {
		slog.Error("trial generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Trial assignments ready", "seed", cfg.TrialSeed)

	// Create router
	mux := router.NewRouter(dbConn, cfg, teamRoster)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
