package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/security"
)

// TokenCodec abstracts issuing and verifying the two token kinds.
type TokenCodec interface {
	IssueAccess(subject string) (string, error)
	IssueRefresh(subject string) (string, error)
	VerifyAccess(token string) (*security.Claims, error)
	VerifyRefresh(token string) (*security.Claims, error)
}

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuditSink accepts auth events for asynchronous persistence. Enqueue must
// not block; it reports false when the event was dropped.
type AuditSink interface {
	Enqueue(event domain.AuthEvent) bool
}

// AuthService implements credential verification and token pair issuance.
type AuthService struct {
	users    ports.UserRepository
	tokens   TokenCodec
	throttle LoginThrottle
	audit    AuditSink
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService returns an AuthService. A nil throttle disables login
// throttling and a nil audit sink disables the audit trail.
func NewAuthService(
	users ports.UserRepository,
	tokens TokenCodec,
	throttle LoginThrottle,
	audit AuditSink,
	log zerolog.Logger,
) *AuthService {
	if throttle == nil {
		throttle = noThrottle{}
	}
	if audit == nil {
		audit = noAudit{}
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Authenticate looks up username and compares the decrypted stored password
// with password. Unknown users and mismatches are both ErrInvalidCredentials.
// The returned user carries the decrypted password and must not leave the
// process.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error) {
	allowed, err := s.throttle.Allow(ctx, in.Username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Msg("login throttle check failed, allowing attempt")
	} else if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		s.record(in.Username, domain.AuthEventLogin, false, in.RemoteIP)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			if ferr := s.throttle.RecordFailure(ctx, in.Username); ferr != nil {
				s.log.Warn().Err(ferr).Str("username", in.Username).Msg("failed to record login failure")
			}
			s.record(in.Username, domain.AuthEventLogin, false, in.RemoteIP)
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	pair, err := s.issuePair(user.Username)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if rerr := s.throttle.Reset(ctx, user.Username); rerr != nil {
		s.log.Warn().Err(rerr).Str("username", user.Username).Msg("failed to reset login failures")
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.record(user.Username, domain.AuthEventLogin, true, in.RemoteIP)
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return pair, nil
}

// Refresh verifies a refresh token and rotates it into a brand-new pair for
// the same subject. Every verification failure collapses to ErrCredentials.
// The presented token is not revoked and stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, in ports.RefreshInput) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(in.RefreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh token rejected")
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		s.record("", domain.AuthEventRefresh, false, in.RemoteIP)
		return nil, domain.ErrCredentials
	}

	pair, err := s.issuePair(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	s.record(claims.Subject, domain.AuthEventRefresh, true, in.RemoteIP)
	return pair, nil
}

// issuePair produces both tokens or neither.
func (s *AuthService) issuePair(subject string) (*domain.TokenPair, error) {
	access, err := s.tokens.IssueAccess(subject)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(subject)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

func (s *AuthService) record(username string, kind domain.AuthEventKind, success bool, remoteIP string) {
	event := domain.AuthEvent{
		Username:   username,
		Kind:       kind,
		Success:    success,
		RemoteIP:   remoteIP,
		OccurredAt: s.now().UTC(),
	}
	if !s.audit.Enqueue(event) {
		s.log.Warn().Str("kind", string(kind)).Msg("audit event dropped")
	}
}

type noThrottle struct{}

func (noThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (noThrottle) RecordFailure(context.Context, string) error { return nil }
func (noThrottle) Reset(context.Context, string) error { return nil }

type noAudit struct{}

func (noAudit) Enqueue(domain.AuthEvent) bool { return true }
