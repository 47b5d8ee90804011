package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/ovenlane/bakeops-backend/pkg/auth"
	"github.com/ovenlane/bakeops-backend/pkg/config"
	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	pkgerrors "github.com/ovenlane/bakeops-backend/pkg/errors"
	"github.com/ovenlane/bakeops-backend/pkg/security"
)

func TestServiceLoginMintsRoleClaim(t *testing.T) {
	password := "driver-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "driver@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Dana",
		LastName:     "Driver",
		Role:         enums.UserRoleDistributor,
		Status:       enums.DistributorStatusActive,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "bakeops",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleDistributor {
		t.Fatalf("expected distributor role claim, got %s", claims.Role)
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatalf("expected user payload for %s", user.ID)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsInactiveAccount(t *testing.T) {
	password := "inactive-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Ina",
		LastName:     "Active",
		Role:         enums.UserRoleManager,
		Status:       enums.DistributorStatusInactive,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "bakeops",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		FirstName:    "Ada",
		LastName:     "Admin",
		Role:         enums.UserRoleAdmin,
		Status:       enums.DistributorStatusActive,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "bakeops",
		ExpirationMinutes: 30,
	}

	svc, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "bakeops",
		ExpirationMinutes: 30,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:  stubUserRepo{err: gorm.ErrRecordNotFound},
		JWTConfig: cfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func buildTestService(user *models.User, jwtCfg config.JWTConfig) (Service, error) {
	return NewService(ServiceParams{
		UserRepo:  stubUserRepo{user: user},
		JWTConfig: jwtCfg,
	})
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}
