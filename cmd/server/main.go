package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/handler/http"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/identity"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/oauth/google"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/oauth/hs256"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/repository/postgres"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/services"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/voteday"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	zone, err := time.LoadLocation(envOr("NIGHTLIFE_TZ", voteday.DefaultZone))
	if err != nil {
		log.Fatalf("Invalid NIGHTLIFE_TZ: %v", err)
	}

	resolver, err := newIdentityResolver()
	if err != nil {
		log.Fatal(err)
	}

	voteRepo := postgres.NewVoteRepository(db)
	voteService := services.NewVoteService(voteRepo, services.NewSystemClock(), zone)

	handler := http.NewHandler(
		http.NewVoteHandler(voteService),
		http.NewResultsHandler(voteService),
		resolver,
	)

	port := envOr("PORT", "8080")
	server := &stdhttp.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	log.Printf("Listening on :%s (vote day zone %s)", port, zone)
	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// newIdentityResolver picks the auth variant for this deployment. Declared
// device IDs are the default; token mode delegates to a verifier chosen by
// TOKEN_VERIFIER.
func newIdentityResolver() (ports.IdentityResolver, error) {
	switch mode := os.Getenv("AUTH_MODE"); mode {
	case "", "device":
		return identity.NewDeviceResolver(), nil
	case "token":
		verifier, err := newTokenVerifier()
		if err != nil {
			return nil, err
		}
		return identity.NewTokenResolver(verifier), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", mode)
	}
}

func newTokenVerifier() (ports.TokenVerifier, error) {
	switch kind := os.Getenv("TOKEN_VERIFIER"); kind {
	case "google":
		clientID := os.Getenv("GOOGLE_CLIENT_ID")
		if clientID == "" {
			return nil, errors.New("GOOGLE_CLIENT_ID required for the google verifier")
		}
		return google.NewVerifier(clientID), nil
	case "", "hs256":
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return nil, errors.New("JWT_SECRET required for the hs256 verifier")
		}
		return hs256.NewVerifier([]byte(secret)), nil
	default:
		return nil, fmt.Errorf("unknown TOKEN_VERIFIER %q", kind)
	}
}

func dbConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT"), os.Getenv("POSTGRES_DB"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
