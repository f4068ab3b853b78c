package integration

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/identity"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/adapters/oauth/hs256"
)

func TestDeviceAuthRejectsBadIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for _, deviceID := range []string{"", "not-a-uuid", "f81d4fae-7dec-11d0-a765-00a0c91e6bf6"} {
		resp := submitVote(t, app, deviceID, "Boston", true)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "device id %q", deviceID)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)

		resp = fetchResults(t, app, deviceID, "Boston")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	assert.Equal(t, 0, countVotes(t, app))
}

func TestDeviceAuthAcceptsUppercaseUUID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	deviceID := strings.ToUpper(newDeviceID())
	resp := submitVote(t, app, deviceID, "Boston", true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthRequiresNoAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenModeEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	secret := "integration-secret"
	resolver := identity.NewTokenResolver(hs256.NewVerifier([]byte(secret)))
	app := setupTestAppWithResolver(t, resolver)
	defer app.Teardown(t)

	signed := signTestToken(t, secret, "user-abc")

	req, err := http.NewRequest("POST", app.Server.URL+"/api/vote",
		strings.NewReader(`{"city":"Boston","vote":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The identity is the token subject, so a second token for the same
	// subject still conflicts.
	resp = postWithToken(t, app, signTestToken(t, secret, "user-abc"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A token signed with the wrong secret fails closed.
	resp = postWithToken(t, app, signTestToken(t, "wrong-secret", "user-abc"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)

	assert.Equal(t, 1, countVotes(t, app))
}

func signTestToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func postWithToken(t *testing.T, app *testApp, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("POST", app.Server.URL+"/api/vote",
		strings.NewReader(`{"city":"Boston","vote":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}
