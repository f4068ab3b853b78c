// Retention job: the serving core never deletes vote rows, so a scheduled
// run of this command removes everything from past vote days.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/repository/postgres"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/voteday"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	zoneName := os.Getenv("NIGHTLIFE_TZ")
	if zoneName == "" {
		zoneName = voteday.DefaultZone
	}
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		log.Fatalf("Invalid NIGHTLIFE_TZ: %v", err)
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	voteRepo := postgres.NewVoteRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	today := voteday.Day(time.Now(), zone)
	log.Printf("Pruning votes older than %s...", today)

	deleted, err := voteRepo.DeleteDaysBefore(ctx, today)
	if err != nil {
		log.Fatalf("Error pruning votes: %v", err)
	}

	log.Printf("Pruned %d stale vote rows.", deleted)
}

func dbConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT"), os.Getenv("POSTGRES_DB"))
}
