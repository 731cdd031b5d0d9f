package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora/storefront/internal/auth"
	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/event"
	"github.com/velora/storefront/internal/repository"
	apperrors "github.com/velora/storefront/pkg/errors"
)

// MinPasswordLength is the only password rule the mocked auth flow enforces.
const MinPasswordLength = 6

const bcryptCost = 12

const defaultAvatar = "/images/avatars/placeholder.svg"

// AuthService implements the mocked authentication flow. Accounts live as
// Redis records keyed by email; login accepts any well-formed credentials and
// provisions an account on the fly when the email is unknown.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	producer *event.Producer
	logger   *slog.Logger
	latency  time.Duration
}

// NewAuthService creates a new auth service. latency is the simulated
// processing time applied to register and login.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, producer *event.Producer, logger *slog.Logger, latency time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		producer: producer,
		logger:   logger,
		latency:  latency,
	}
}

// Session is the result of a successful register or login.
type Session struct {
	User        *domain.User
	AccessToken string
}

// Register creates an account for the given email. Registering an email that
// already has an account is a conflict.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrSnapshotCorrupt) {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("user", "email", email)
	}

	user, err := s.createAccount(ctx, email, password, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return s.newSession(user)
}

// Login authenticates the given credentials. A known email must match its
// stored password; an unknown email with a valid password gets a fresh
// account provisioned on the spot, so any well-formed credentials sign in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
	case errors.Is(err, apperrors.ErrNotFound):
		user, err = s.provision(ctx, email, password)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrSnapshotCorrupt):
		s.logger.WarnContext(ctx, "discarding corrupt account record",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		user, err = s.provision(ctx, email, password)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return s.newSession(user)
}

// Logout ends a session. Tokens are stateless, so there is nothing to revoke
// server-side; the client discards its copy.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	s.logger.InfoContext(ctx, "user logged out", slog.String("user_id", userID))
}

// provision creates an account for a previously unknown email, deriving the
// display name from the email's local part.
func (s *AuthService) provision(ctx context.Context, email, password string) (*domain.User, error) {
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}

	user, err := s.createAccount(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "provisioned account for unknown email",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

func (s *AuthService) createAccount(ctx context.Context, email, password, name string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Avatar:       defaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user, nil
}

func (s *AuthService) newSession(user *domain.User) (*Session, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("generate access token: %w", err))
	}
	return &Session{User: user, AccessToken: token}, nil
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
