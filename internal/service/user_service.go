package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"murim-academy/internal/auth"
	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in NewUser) (*domain.User, error)
	CreateAdmin(ctx context.Context, in NewUser) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch repository.Patch) error
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.UserStats, error)
}

// NewUser carries the registration form.
type NewUser struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// LoginResult is returned to a client that presented valid credentials.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

var (
	profileFields = fieldSet("nome_completo", "email", "telefone", "senha")
	adminFields   = fieldSet("nome_completo", "email", "telefone", "senha", "role")
)

func fieldSet(fields ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

type userService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	tokenTTL time.Duration
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, tokenTTL time.Duration) UserService {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}
	return &userService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, in NewUser) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleStudent)
}

func (s *userService) CreateAdmin(ctx context.Context, in NewUser) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleAdmin)
}

func (s *userService) create(ctx context.Context, in NewUser, role string) (*domain.User, error) {
	name, err := requireText("nome_completo", in.FullName)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("senha", "must be at least %d characters", MinPasswordLength)
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         role,
	}
	// the store maps a concurrent duplicate to ErrConflict as well
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// ensureEmailFree fails with ErrConflict when email belongs to an account other than owner.
func (s *userService) ensureEmailFree(ctx context.Context, email string, owner int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != owner:
		return fmt.Errorf("email %w", domain.ErrConflict)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: sanitizeUser(user)}, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, patch repository.Patch) error {
	return s.update(ctx, id, patch, profileFields)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	return s.update(ctx, id, patch, adminFields)
}

// update checks every field against allowed, normalizes values and swaps a new
// password for its hash before handing the patch to the store.
func (s *userService) update(ctx context.Context, id int64, patch repository.Patch, allowed map[string]struct{}) error {
	if len(patch) == 0 {
		return errNoFields()
	}

	clean := make(repository.Patch, len(patch))
	for field, value := range patch {
		if _, ok := allowed[field]; !ok {
			return domain.NewValidationError(field, "cannot be updated")
		}

		switch field {
		case "nome_completo":
			name, err := textValue(field, value)
			if err != nil {
				return err
			}
			clean[field] = name
		case "email":
			raw, err := stringValue(field, value)
			if err != nil {
				return err
			}
			email := normalizeEmail(raw)
			if err := checkEmail(email); err != nil {
				return err
			}
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return err
			}
			clean[field] = email
		case "telefone":
			phone, err := stringValue(field, value)
			if err != nil {
				return err
			}
			clean[field] = strings.TrimSpace(phone)
		case "senha":
			password, err := stringValue(field, value)
			if err != nil {
				return err
			}
			if len(password) < MinPasswordLength {
				return domain.NewValidationError(field, "must be at least %d characters", MinPasswordLength)
			}
			hash, err := s.hasher.Hash(password)
			if err != nil {
				return err
			}
			clean[field] = hash
		case "role":
			role, err := stringValue(field, value)
			if err != nil {
				return err
			}
			if !domain.ValidRole(role) {
				return domain.NewValidationError(field, "must be one of: %s, %s", domain.RoleAdmin, domain.RoleStudent)
			}
			clean[field] = role
		}
	}

	return applyPatch(ctx, "user", id, clean, s.users.Update)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	ok, err := s.users.Delete(ctx, id)
	return checkDeleted("user", id, ok, err)
}

func (s *userService) Stats(ctx context.Context) (domain.UserStats, error) {
	return s.users.Stats(ctx)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
