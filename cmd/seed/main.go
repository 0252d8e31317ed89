// Seeds the fixed project list. Run once at environment bootstrap; safe to
// re-run, existing projects are left untouched.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/measured-tracker/measured-backend/config"
	"github.com/measured-tracker/measured-backend/internal/db"
	"github.com/measured-tracker/measured-backend/internal/projects/domain"
	"github.com/measured-tracker/measured-backend/internal/projects/repository"
	"github.com/measured-tracker/measured-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(postgres.URL(&cfg.Database)); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repository.NewProjectRepository(conn)
	if err := repo.Seed(ctx, domain.SeedNames); err != nil {
		log.Fatalf("failed to seed projects: %v", err)
	}

	log.Printf("seeded %d projects: %s", len(domain.SeedNames), strings.Join(domain.SeedNames, ", "))
}
