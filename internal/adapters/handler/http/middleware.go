package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type contextKey string

const identityKey contextKey = "identity"

func identityFrom(r *http.Request) (string, bool) {
	identity, ok := r.Context().Value(identityKey).(string)
	return identity, ok && identity != ""
}

// Authenticator resolves the caller's identity before any handler logic
// runs. Resolution failures fail closed with the UNAUTHORIZED envelope; a
// provider timeout is reported as transient instead.
func Authenticator(resolver ports.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolver.Resolve(r)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					writeError(w, http.StatusGatewayTimeout, codeNetworkError, "Identity provider timed out")
					return
				}
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid credentials")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORS allows the mobile client's in-app webview and dev builds to call the
// API cross-origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Device-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
