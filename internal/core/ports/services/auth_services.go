package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for a staff member.
	GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error)
}

// AuthSvcFacade defines the staff sign-in flows.
type AuthSvcFacade interface {
	TokenSvcFacade

	// Login verifies an email and password pair and returns the staff member.
	Login(ctx context.Context, email string, password string) (*domain.Staff, error)

	// LoginWithGoogle validates a Google ID token and returns the matching
	// staff member.
	LoginWithGoogle(ctx context.Context, idTokenString string) (*domain.Staff, error)

	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// GoogleOAuthSvcFacade defines the redirect-based Google sign-in flow used
// when the frontend cannot obtain an ID token itself.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
}
