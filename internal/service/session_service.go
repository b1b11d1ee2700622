package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"social-stream/internal/domain"
	"social-stream/internal/repository"
)

const tokenIssuer = "social-stream"

// SessionService issues and checks the signed session tokens carried in the
// session cookie. Every token names a server-side row so logout can revoke it.
type SessionService interface {
	Establish(ctx context.Context, userID int64, remember bool) (*domain.Session, string, error)
	Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error)
	Invalidate(ctx context.Context, token string) error
}

// SessionConfig controls token signing and lifetimes.
type SessionConfig struct {
	SecretKey   []byte
	TTL         time.Duration
	RememberTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type sessionService struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	cfg      SessionConfig
}

func NewSessionService(sessions repository.SessionRepository, users repository.UserRepository, cfg SessionConfig) (SessionService, error) {
	if len(cfg.SecretKey) == 0 {
		return nil, errors.New("session secret key is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = 30 * 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &sessionService{sessions: sessions, users: users, cfg: cfg}, nil
}

func (s *sessionService) now() time.Time {
	return s.cfg.Now().UTC()
}

func (s *sessionService) Establish(ctx context.Context, userID int64, remember bool) (*domain.Session, string, error) {
	now := s.now()
	if _, err := s.sessions.DeleteExpired(ctx, userID, now); err != nil {
		return nil, "", fmt.Errorf("purge expired sessions: %w", err)
	}

	ttl := s.cfg.TTL
	if remember {
		ttl = s.cfg.RememberTTL
	}
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Remember:  remember,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.SecretKey)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}
	return session, token, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	claims, err := s.parse(token,
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	if strconv.FormatInt(session.UserID, 10) != claims.Subject {
		return nil, nil, ErrUnauthenticated
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			return nil, nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil, ErrUnauthenticated
	}

	user, err := lookupUserByID(ctx, s.users, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	return session, user, nil
}

// Invalidate removes the row behind token. Unknown, expired, or garbage tokens
// are not an error: the caller ends up logged out either way.
func (s *sessionService) Invalidate(ctx context.Context, token string) error {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *sessionService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.cfg.SecretKey, nil
	}, opts...); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrUnauthenticated
	}
	return &claims, nil
}
