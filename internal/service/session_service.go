package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stagefront/internal/cms"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// refreshLeeway renews access tokens slightly before their exp claim
// so an admin request does not race the backend clock.
const refreshLeeway = 90 * time.Second

// SessionTokens is the JWT pair kept in the cookie session.
type SessionTokens struct {
	Access  string
	Refresh string
}

// SessionService exchanges credentials for backend tokens and keeps
// the access token fresh. Credential checks happen only on the
// backend; this layer never inspects passwords and never verifies
// token signatures.
type SessionService struct {
	api *cms.Client
}

// NewSessionService returns a new SessionService instance.
func NewSessionService(api *cms.Client) *SessionService {
	return &SessionService{api: api}
}

// LogIn trades credentials for a token pair.
func (s *SessionService) LogIn(ctx context.Context, username, password string) (SessionTokens, error) {
	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		return SessionTokens{}, err
	}
	return SessionTokens{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// Refresh returns a pair with a fresh access token when the current
// one is about to expire, the unchanged pair otherwise. The boolean
// reports whether the pair changed and must be re-stored. A rejected
// or missing refresh token surfaces as ErrNotAuthenticated.
func (s *SessionService) Refresh(ctx context.Context, tokens SessionTokens) (SessionTokens, bool, error) {
	if tokens.Access == "" {
		return SessionTokens{}, false, ErrNotAuthenticated
	}
	if !expiresSoon(tokens.Access) {
		return tokens, false, nil
	}
	if tokens.Refresh == "" {
		return SessionTokens{}, false, ErrNotAuthenticated
	}

	pair, err := s.api.Refresh(ctx, tokens.Refresh)
	if err != nil {
		if cms.IsUnauthorized(err) {
			return SessionTokens{}, false, ErrNotAuthenticated
		}
		return SessionTokens{}, false, err
	}
	return SessionTokens{Access: pair.Access, Refresh: pair.Refresh}, true, nil
}

// Client returns an API client scoped to the session's access token.
func (s *SessionService) Client(tokens SessionTokens) *cms.Client {
	return s.api.WithToken(tokens.Access)
}

// expiresSoon reads the unverified exp claim; tokens without a
// readable exp count as expiring so the refresh path decides.
func expiresSoon(access string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Until(exp.Time) < refreshLeeway
}
