package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"royalcert/internal/auth"
	"royalcert/internal/models"
	"royalcert/internal/repository"

	"github.com/google/uuid"
)

const minPasswordLength = 6

type CreateUserInput struct {
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Email    string          `json:"email" validate:"required,email"`
	FullName string          `json:"full_name" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required"`
}

// UpdateUserInput is a partial update; nil fields are left alone.
type UpdateUserInput struct {
	Username *string          `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string          `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string          `json:"full_name,omitempty"`
	Role     *models.UserRole `json:"role,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
	Password *string          `json:"password,omitempty"`
}

type UserService interface {
	Create(ctx context.Context, actor *models.User, in CreateUserInput) (*models.User, error)
	List(ctx context.Context, role models.UserRole) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, actor *models.User, id string, in UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.User, id, newPassword string) error
	Delete(ctx context.Context, actor *models.User, id string) error
}

type userService struct {
	users repository.UserRepository
	audit AuditService
}

func NewUserService(users repository.UserRepository, audit AuditService) UserService {
	return &userService{users: users, audit: audit}
}

func checkPassword(p string) error {
	if len([]rune(p)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *userService) Create(ctx context.Context, actor *models.User, in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityUser, user.ID, "create",
		fmt.Sprintf("Kullanıcı oluşturuldu: %s (%s)", user.Username, user.Role))
	return user, nil
}

func (s *userService) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, ErrInvalidRole
	}
	return s.users.List(ctx, repository.UserFilter{Role: role})
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *userService) Update(ctx context.Context, actor *models.User, id string, in UpdateUserInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []string
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name != user.Username {
			other, err := s.users.GetByUsername(ctx, name)
			if err == nil && other.ID != user.ID {
				return nil, ErrUsernameTaken
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			user.Username = name
			changes = append(changes, "username")
		}
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
		changes = append(changes, "email")
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
		changes = append(changes, "full_name")
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *in.Role
		changes = append(changes, "role")
	}
	if in.IsActive != nil {
		if !*in.IsActive && sameID(user.ID, actor.ID) {
			return nil, ErrSelfDeactivate
		}
		user.IsActive = *in.IsActive
		changes = append(changes, "is_active")
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		changes = append(changes, "password")
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityUser, user.ID, "update",
		"Güncellenen alanlar: "+strings.Join(changes, ", "))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor *models.User, id, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, actor.ID, models.EntityUser, user.ID, "password_change", "Şifre değiştirildi")
	return nil
}

// sameID compares ids by uuid value, so case and brace spellings match.
func sameID(a, b string) bool {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ua == ub
}

func (s *userService) Delete(ctx context.Context, actor *models.User, id string) error {
	if sameID(id, actor.ID) {
		return ErrSelfDelete
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor.ID, models.EntityUser, id, "delete", "Kullanıcı silindi: "+user.Username)
	return nil
}
