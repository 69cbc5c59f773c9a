package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/tuition-service/internal/config"
	"github.com/ignite/tuition-service/internal/database"
	"github.com/ignite/tuition-service/internal/logger"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/ignite/tuition-service/internal/repository"
	"github.com/ignite/tuition-service/internal/service"
)

// seed creates local tuition records only, so nil upstream clients are safe:
// Create never reaches the student or payment service.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	tuitionService := service.NewTuitionService(repository.NewTuitionRepository(pool), nil, nil, log)

	fmt.Println("=== Seeding Tuition Classes ===")

	seeds := []model.Tuition{
		{Name: "Mathematics - Grade 10", Location: "Hall A", Schedule: "Mon 16:00-18:00", Fee: 2500},
		{Name: "Physics - Grade 11", Location: "Lab 2", Schedule: "Tue 16:00-18:00", Fee: 3000},
		{Name: "Chemistry - Grade 11", Location: "Lab 1", Schedule: "Wed 16:00-18:00", Fee: 3000},
		{Name: "English Literature", Location: "Room 4", Schedule: "Thu 15:00-17:00", Fee: 2000},
		{Name: "Combined Maths - A/L", Location: "Hall B", Schedule: "Sat 08:00-12:00", Fee: 4500},
	}

	created, skipped := 0, 0
	for i := range seeds {
		t := seeds[i]
		if _, err := tuitionService.Create(ctx, &t); err != nil {
			if service.AsError(err).Kind == service.KindAlreadyExists {
				skipped++
				fmt.Printf("Skipping %q: already exists\n", t.Name)
				continue
			}
			log.Fatal().Err(err).Str("name", t.Name).Msg("Failed to create tuition")
		}
		created++
		fmt.Printf("Created %q with ID: %s\n", t.Name, t.ID)
	}

	fmt.Printf("\nSeed completed! Created %d, skipped %d existing.\n", created, skipped)
}
