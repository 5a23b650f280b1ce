// Package services contains server-side business logic. UserService handles
// registration, login and profile lookup on top of the users repository, the
// password hasher and the token codec.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/users"
	"github.com/google/uuid"
)

const (
	msgInvalidRole     = "role must be 'student' or 'instructor'"
	msgMissingFields   = "email and full_name are required"
	msgInvalidPassword = "password must be between 1 and 72 bytes"
)

// dummyPassword is hashed once and compared against on unknown emails so
// that a miss costs the same as a wrong password.
const dummyPassword = "coursehub-timing-equaliser"

// TokenIssuer signs session tokens for users. *auth.Codec implements it.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// RegisterInput is a registration request. An empty Role means the default.
type RegisterInput struct {
	Email    string      `json:"email" validate:"notblank"`
	Password string      `json:"password" validate:"required,maxbytes=72"`
	FullName string      `json:"full_name" validate:"notblank"`
	Role     models.Role `json:"role" validate:"oneof=student instructor"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	users  users.Repository
	hasher auth.PasswordHasher
	tokens TokenIssuer
	logger logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(repo users.Repository, hasher auth.PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		users:  repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register validates in, stores a new user with a hashed password and
// returns a token for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Role == "" {
		in.Role = models.DefaultRole
	}
	if err := s.validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "user_id", user.ID.String(), "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID.String(), "role", string(user.Role))
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) validateRegister(in RegisterInput) error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	failed := failedFields(err)
	switch {
	case failed["role"]:
		return common.NewValidationError(msgInvalidRole)
	case failed["email"], failed["full_name"]:
		return common.NewValidationError(msgMissingFields)
	case failed["password"]:
		return common.NewValidationError(msgInvalidPassword)
	default:
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
}

// Login checks credentials. An unknown email and a wrong password both
// yield common.ErrorInvalidCredentials after one hash comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerification(password)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// unusable stored hash: deny, but make it visible to operators
		s.logger.Warn(ctx, "stored password hash could not be verified", "user_id", user.ID.String(), "error", err)
		return nil, common.ErrorInvalidCredentials
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "user_id", user.ID.String(), "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID.String())
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) burnVerification(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}

// Profile loads the user named by a verified token subject.
func (s *UserService) Profile(ctx context.Context, subject string) (*models.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "user_id", subject, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// Health reports whether the backing store answers.
func (s *UserService) Health(ctx context.Context) error {
	return s.users.Ping(ctx)
}
