package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/actions"
	"github.com/ayambakarnusantara/action-server/internal/catalog"
	"github.com/ayambakarnusantara/action-server/internal/config"
	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/routes"
	"github.com/ayambakarnusantara/action-server/internal/store"
)

func main() {
	// --- Environment (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Logging ---
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Sugar()

	// --- Database (retries inside, fatal when the budget runs out) ---
	db, err := database.Open(cfg.Database, zlog)
	if err != nil {
		zlog.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	// --- Wiring ---
	st := store.New(db, zlog)
	directory := catalog.NewClient(cfg.Catalog.RootURL, cfg.Catalog.Timeout, zlog)

	registry := actions.NewRegistry(actions.RegistryDeps{
		Products:  st,
		Ratings:   st,
		Orders:    st,
		Shops:     st,
		Directory: directory,
		Log:       zlog,
	})

	server := routes.NewServer(registry, db, zlog)
	router := server.SetupRouter()

	// --- Start ---
	addr := ":" + cfg.Server.Port
	zlog.Infow("Starting action server", "addr", addr, "actions", len(registry.Names()))
	if err := router.Run(addr); err != nil {
		zlog.Fatalw("Server stopped", "error", err)
	}
}
