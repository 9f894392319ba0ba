package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
)

type State string

const (
	StateAnonymous      State = "ANONYMOUS"
	StateAuthenticating State = "AUTHENTICATING"
	StateAuthenticated  State = "AUTHENTICATED"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrLoginInProgress    = errors.New("auth: login already in progress")
	ErrNotRemote          = errors.New("auth: no upstream session in local mode")
)

// Session mediates authentication for the whole process. In local mode it
// verifies credentials against the users collection; in remote mode it
// exchanges them with the upstream API and keeps the upstream token pair.
// Either way a successful login yields a token this service signed itself,
// which is what UI clients present on subsequent requests.
type Session struct {
	mu      sync.Mutex
	state   State
	user    *models.User
	access  string
	refresh string

	store  *store.Store
	remote *remote.Client
	jwt    *JWTManager
	cache  *Cache
	log    zerolog.Logger
}

// NewSession wires itself into the remote client as its token source, so
// every upstream request automatically carries the current access token.
func NewSession(st *store.Store, rc *remote.Client, jwtMgr *JWTManager, cache *Cache) *Session {
	s := &Session{
		state:  StateAnonymous,
		store:  st,
		remote: rc,
		jwt:    jwtMgr,
		cache:  cache,
		log:    logger.WithComponent("auth"),
	}
	if rc != nil {
		rc.SetTokenSource(s.AccessToken)
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AccessToken returns the current upstream access token, empty when logged out.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// Resume restores an upstream session from the token cache after a restart.
// Returns false when there is nothing to resume or the cached token is stale.
func (s *Session) Resume(ctx context.Context) bool {
	if s.remote == nil || s.cache == nil {
		return false
	}
	access, refresh, ok := s.cache.LoadTokens(ctx)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()

	user, err := s.remote.Me(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("cached session stale, discarding")
		s.mu.Lock()
		s.access, s.refresh = "", ""
		s.mu.Unlock()
		s.cache.Clear(ctx)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
	s.log.Info().Str("username", user.Username).Msg("session resumed from cache")
	return true
}

// Login verifies credentials and, on success, issues a signed token for the
// caller. A login that fails for any reason leaves the session anonymous.
func (s *Session) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	s.mu.Lock()
	if s.state == StateAuthenticating {
		s.mu.Unlock()
		return nil, ErrLoginInProgress
	}
	s.state = StateAuthenticating
	s.mu.Unlock()

	var (
		user            *models.User
		access, refresh string
		err             error
	)
	if s.remote != nil {
		user, access, refresh, err = s.loginRemote(ctx, username, password)
	} else {
		user, err = s.loginLocal(username, password)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateAnonymous
		s.user = nil
		s.access, s.refresh = "", ""
		return nil, err
	}

	s.user = user
	s.access, s.refresh = access, refresh
	s.state = StateAuthenticated
	if s.remote != nil && s.cache != nil {
		s.cache.StoreTokens(ctx, access, refresh)
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *Session) loginLocal(username, password string) (*models.User, error) {
	data := s.store.Snapshot()
	for _, u := range data.Users {
		if u.Username != username {
			continue
		}
		if !CheckPassword(u.Password, password) {
			return nil, ErrInvalidCredentials
		}
		out := u
		out.Password = ""
		return &out, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *Session) loginRemote(ctx context.Context, username, password string) (*models.User, string, string, error) {
	pair, err := s.remote.Token(ctx, username, password)
	if err != nil {
		return nil, "", "", err
	}

	// Expose the fresh token so the profile fetch can authenticate.
	s.mu.Lock()
	s.access, s.refresh = pair.Access, pair.Refresh
	s.mu.Unlock()

	user, err := s.remote.Me(ctx)
	if err != nil {
		return nil, "", "", err
	}
	return user, pair.Access, pair.Refresh, nil
}

// CurrentUser returns a copy of the authenticated user, nil when anonymous.
// Safe to call any number of times; it never triggers network activity.
func (s *Session) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return nil
	}
	out := *s.user
	return &out
}

// UserFromToken resolves the identity behind a token this service issued.
// The store is consulted first so role changes take effect without re-login;
// claims are the fallback for identities not present in the collection.
func (s *Session) UserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.jwt.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	data := s.store.Snapshot()
	for _, u := range data.Users {
		if u.ID == claims.UserID {
			out := u
			out.Password = ""
			return &out, nil
		}
	}
	return &models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (s *Session) Refresh(ctx context.Context) error {
	if s.remote == nil {
		return ErrNotRemote
	}
	s.mu.Lock()
	refresh := s.refresh
	s.mu.Unlock()
	if refresh == "" {
		return ErrInvalidCredentials
	}

	access, err := s.remote.RefreshToken(ctx, refresh)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.access = access
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.StoreTokens(ctx, access, refresh)
	}
	return nil
}

// Logout clears credentials first, then notifies the upstream best-effort.
// The session is anonymous as soon as this returns, upstream reachable or not.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	wasRemote := s.remote != nil && s.access != ""
	s.user = nil
	s.access, s.refresh = "", ""
	s.state = StateAnonymous
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Clear(ctx)
	}
	if wasRemote {
		s.remote.Logout(ctx)
	}
	s.log.Info().Msg("session ended")
}
