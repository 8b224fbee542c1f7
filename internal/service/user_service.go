package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// UserService describes account lifecycle operations.
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email, password string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.KindValidation, "Name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewError(domain.KindValidation, "Invalid email address")
	}
	if len(password) < 8 {
		return nil, domain.NewError(domain.KindValidation, "Password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewError(domain.KindValidation, "User already exists")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, errInvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// UpdateProfile replaces a field only when the caller supplies a non-empty
// value; supplying empty keeps the stored value. A supplied password is
// re-hashed before storage.
func (s *userService) UpdateProfile(ctx context.Context, id, name, email, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(name); v != "" {
		user.Name = v
	}
	if v := normalizeEmail(email); v != "" {
		if !strings.Contains(v, "@") {
			return nil, domain.NewError(domain.KindValidation, "Invalid email address")
		}
		user.Email = v
	}
	if v := strings.TrimSpace(password); v != "" {
		if len(v) < 8 {
			return nil, domain.NewError(domain.KindValidation, "Password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(v)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login failures share one message so callers cannot probe which check
// failed.
func errInvalidCredentials() error {
	return domain.NewError(domain.KindUnauthenticated, "Invalid email or password")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
