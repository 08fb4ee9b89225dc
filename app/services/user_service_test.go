package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

func seedUser(t *testing.T, users *memUsers, email, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		Email:      email,
		Username:   username,
		FullName:   "Seeded User",
		Password:   hash,
		Roles:      []models.Role{models.RoleCustomer},
		IsVerified: true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUpdateProfileFields(t *testing.T) {
	users := newMemUsers()
	svc := services.NewUserService(users)
	ctx := context.Background()
	u := seedUser(t, users, "maya@example.com", "maya", "s3cretpass")

	updated, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{
		Email:    " NEW@Example.com ",
		FullName: "Maya R.",
	})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", updated.Email)
	require.Equal(t, "Maya R.", updated.FullName)
	require.Equal(t, "maya", updated.Username)

	// No-op updates touch nothing.
	same, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{})
	require.NoError(t, err)
	require.Equal(t, updated.Email, same.Email)

	_, err = svc.UpdateProfile(ctx, "user-999", services.ProfileUpdate{Email: "x@example.com"})
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateProfileAddressCeiling(t *testing.T) {
	users := newMemUsers()
	svc := services.NewUserService(users)
	ctx := context.Background()
	u := seedUser(t, users, "maya@example.com", "maya", "s3cretpass")

	two := []models.Address{
		{Address: "12 MG Road", City: "Varanasi", ZipCode: "221001"},
		{Address: "4 Park St", City: "Kolkata", ZipCode: "700016"},
	}
	updated, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{Addresses: two})
	require.NoError(t, err)
	require.Len(t, updated.Addresses, 2)

	three := append(two, models.Address{Address: "9 Lane", City: "Pune", ZipCode: "411001"})
	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{Addresses: three})
	require.ErrorIs(t, err, services.ErrTooManyAddresses)

	// The refused update left the stored addresses alone.
	stored, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored.Addresses, 2)
}

func TestUpdateProfileUniqueness(t *testing.T) {
	users := newMemUsers()
	svc := services.NewUserService(users)
	ctx := context.Background()
	u := seedUser(t, users, "maya@example.com", "maya", "s3cretpass")
	seedUser(t, users, "ravi@example.com", "ravi", "s3cretpass")

	_, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{Email: "ravi@example.com"})
	require.ErrorIs(t, err, services.ErrDuplicate)
	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{Username: "ravi"})
	require.ErrorIs(t, err, services.ErrDuplicate)

	// Re-submitting your own values is not a collision.
	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{Email: "maya@example.com", FullName: "Maya Rao"})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	users := newMemUsers()
	svc := services.NewUserService(users)
	ctx := context.Background()
	u := seedUser(t, users, "maya@example.com", "maya", "oldpass123")

	err := svc.ChangePassword(ctx, u.ID, "wrongpass", "newpass123")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "oldpass123", "newpass123"))

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, auth.CheckPassword(stored.Password, "newpass123"))
	require.False(t, auth.CheckPassword(stored.Password, "oldpass123"))
}
