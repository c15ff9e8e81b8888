package auth

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agrovia/agrovia-go/httpclient"
)

const defaultLeeway = 30 * time.Second

// Static returns a provider that always yields the same token.
// An empty token means requests go out unauthenticated.
func Static(token string) httpclient.TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// FromEnv reads the token from an environment variable on every attempt,
// so externally rotated credentials are honored without a restart.
func FromEnv(name string) httpclient.TokenProvider {
	return func(context.Context) (string, error) {
		return os.Getenv(name), nil
	}
}

// RefreshFunc obtains a fresh access token, e.g. from an OAuth token endpoint.
type RefreshFunc func(ctx context.Context) (string, error)

// Refreshing returns a provider that reuses the current token until its JWT
// exp claim is within leeway of expiry, then calls refresh for a new one.
// Tokens that are not JWTs (or carry no exp) are refreshed only once and
// then reused. Safe for concurrent calls.
func Refreshing(refresh RefreshFunc, leeway time.Duration) httpclient.TokenProvider {
	if leeway <= 0 {
		leeway = defaultLeeway
	}

	var (
		mu     sync.Mutex
		token  string
		expiry time.Time
	)

	return func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if token != "" && (expiry.IsZero() || time.Until(expiry) > leeway) {
			return token, nil
		}

		fresh, err := refresh(ctx)
		if err != nil {
			return "", err
		}
		token = fresh
		expiry = expiryOf(fresh)
		return token, nil
	}
}

// expiryOf extracts the exp claim from a JWT without verifying the
// signature; verification is the server's job, the client only needs the
// expiry for refresh scheduling. Returns zero when absent or unparsable.
func expiryOf(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
