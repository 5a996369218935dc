// Package middleware provides HTTP middleware for the introspection
// server, including OIDC-based authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/authn"
	"github.com/coreos/go-oidc/v3/oidc"
)

// UserInfo holds the authenticated caller's identity. It is the value
// the authn middleware stores in the request context; retrieve it with
// authn.GetInfo.
type UserInfo struct {
	Subject string
}

// NewOIDC creates an authentication middleware that verifies incoming
// Bearer tokens against the given OIDC issuer and client ID. On
// success the caller's subject is stored in the request context as
// UserInfo.
func NewOIDC(issuer, clientID string) (*authn.Middleware, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init oidc provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	authenticate := func(ctx context.Context, r *http.Request) (any, error) {
		token, found := authn.BearerToken(r)
		if !found || token == "" {
			return nil, authn.Errorf("missing or invalid bearer token")
		}

		idToken, err := verifier.Verify(ctx, token)
		if err != nil {
			return nil, authn.Errorf("invalid token: %s", err)
		}

		return UserInfo{Subject: idToken.Subject}, nil
	}

	return authn.NewMiddleware(authenticate), nil
}
