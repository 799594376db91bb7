package service

import (
	"context"
	"fmt"

	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// RegisterParams carries the registration form. Role is fixed for the
// account's lifetime.
type RegisterParams struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     model.Role
	Phone    *string
}

// Register creates a new account. Registering a supervisor requires an
// already-authenticated supervisor, except for the very first account in an
// empty store (bootstrap).
func (s *UserService) Register(ctx context.Context, params RegisterParams, actor *model.User) (*model.User, error) {
	if params.Username == "" || params.FullName == "" || params.Email == "" {
		return nil, apperr.Validation("username, full name and email are required")
	}

	if len(params.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	if !params.Role.Valid() {
		return nil, apperr.Validation("unknown role %q", params.Role)
	}

	if params.Role != model.RolePlayer {
		count, err := s.userRepo.CountAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}

		bootstrap := count == 0
		if !bootstrap && (actor == nil || !actor.IsSupervisor()) {
			return nil, apperr.PermissionDenied("only supervisors can register %s accounts", params.Role)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     params.Username,
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		Phone:        params.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Authenticate checks a username/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	if user == nil {
		return nil, apperr.PermissionDenied("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.PermissionDenied("invalid username or password")
	}

	return user, nil
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, apperr.NotFound("user", id)
	}

	return user, nil
}
