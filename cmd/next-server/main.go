package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"project-next-backend/internal/ai"
	"project-next-backend/internal/config"
	"project-next-backend/internal/db"
	"project-next-backend/internal/dispatch"
	"project-next-backend/internal/github"
	"project-next-backend/internal/intent"
	"project-next-backend/internal/server"
	"project-next-backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	registry, err := intent.LoadRegistry(cfg.PromptsFile)
	if err != nil {
		log.Fatalf("failed to load prompt registry: %v", err)
	}

	contexts, err := newContextStore(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize context store: %v", err)
	}

	gateway := ai.NewGateway()
	dispatcher := dispatch.NewController(github.NewClient(), contexts, logger)

	s := server.NewServer(cfg, registry, gateway, dispatcher, contexts, logger)

	addr := ":" + cfg.Port
	fmt.Printf("project-next server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}

// newContextStore picks the persistence backend: postgres when DB_URL is
// set, otherwise a JSON file.
func newContextStore(cfg config.Config, logger *log.Logger) (store.ContextStore, error) {
	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(); err != nil {
			database.Close()
			return nil, err
		}
		logger.Println("database connection established")
		return store.NewDatabaseContextStore(database), nil
	}
	logger.Println("DB_URL not provided, using file-based context store")
	return store.NewFileContextStore(cfg.ContextFile), nil
}
