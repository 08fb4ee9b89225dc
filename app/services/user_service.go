package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

// UserService handles self-service profile operations.
type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// ProfileUpdate carries the updatable profile fields. Nil/empty fields
// are left unchanged.
type ProfileUpdate struct {
	Email     string           `json:"email" validate:"nullable,email"`
	Username  string           `json:"username" validate:"nullable,alpha_dash,min=3,max=32"`
	FullName  string           `json:"full_name" validate:"nullable,max=100"`
	Addresses []models.Address `json:"addresses"`
}

// UpdateProfile applies the changed fields, enforcing the address
// ceiling and email/username uniqueness across other users.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if email := strings.ToLower(strings.TrimSpace(upd.Email)); email != "" && email != user.Email {
		user.Email = email
		changed = true
	}
	if username := strings.TrimSpace(upd.Username); username != "" && username != user.Username {
		user.Username = username
		changed = true
	}
	if upd.FullName != "" && upd.FullName != user.FullName {
		user.FullName = upd.FullName
		changed = true
	}
	if upd.Addresses != nil {
		if len(upd.Addresses) > models.MaxAddresses {
			return nil, ErrTooManyAddresses
		}
		user.Addresses = upd.Addresses
		changed = true
	}
	if !changed {
		return user, nil
	}

	taken, err := s.users.ExistsOther(ctx, user.Email, user.Username, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password before writing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(ctx, user)
}
