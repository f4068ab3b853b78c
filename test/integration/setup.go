package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	apphttp "github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/handler/http"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/identity"
	pgrepo "github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/repository/postgres"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/services"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/voteday"
)

type testApp struct {
	DB        *sql.DB
	Server    *httptest.Server
	Client    *http.Client
	container testcontainers.Container
}

func setupTestApp(t *testing.T) *testApp {
	return setupTestAppWithResolver(t, identity.NewDeviceResolver())
}

func setupTestAppWithResolver(t *testing.T, resolver ports.IdentityResolver) *testApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, applyMigrations(db))

	zone, err := time.LoadLocation(voteday.DefaultZone)
	require.NoError(t, err)

	voteService := services.NewVoteService(pgrepo.NewVoteRepository(db), services.NewSystemClock(), zone)
	handler := apphttp.NewHandler(
		apphttp.NewVoteHandler(voteService),
		apphttp.NewResultsHandler(voteService),
		resolver,
	)
	server := httptest.NewServer(handler)

	return &testApp{
		DB:        db,
		Server:    server,
		Client:    server.Client(),
		container: container,
	}
}

func (a *testApp) Teardown(t *testing.T) {
	t.Helper()
	a.Server.Close()
	_ = a.DB.Close()
	if err := a.container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func newDeviceID() string {
	return uuid.New().String()
}

func submitVote(t *testing.T, app *testApp, deviceID, city string, vote bool) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]any{"city": city, "vote": vote})
	require.NoError(t, err)
	return postVote(t, app, deviceID, body)
}

func postVote(t *testing.T, app *testApp, deviceID string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest("POST", app.Server.URL+"/api/vote", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func fetchResults(t *testing.T, app *testApp, deviceID, city string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", app.Server.URL+"/api/results/"+city, nil)
	require.NoError(t, err)
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

type resultsResponse struct {
	City       string `json:"city"`
	VoteDate   string `json:"vote_date"`
	YesCount   int64  `json:"yes_count"`
	NoCount    int64  `json:"no_count"`
	TotalVotes int64  `json:"total_votes"`
	YesPercent int    `json:"yes_percent"`
	NoPercent  int    `json:"no_percent"`
	UserVoted  bool   `json:"user_voted"`
	UserVote   *bool  `json:"user_vote"`
	ResetsAt   string `json:"resets_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeResults(t *testing.T, resp *http.Response) resultsResponse {
	t.Helper()
	defer resp.Body.Close()
	var out resultsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func countVotes(t *testing.T, app *testApp) int {
	t.Helper()
	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	return count
}
