package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aqro/aqro/internal/config"
	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Restaurant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret"
	cfg.JWT.ExpireHours = 24
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestAuthServiceLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := models.User{
		Email:        "login@example.com",
		PasswordHash: hash,
		FirstName:    "Log",
		LastName:     "In",
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	loggedIn, token, expiresAt, err := svc.Login("login@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, loggedIn.ID)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if fresh.LastLoginAt == nil {
		t.Fatal("expected last login stamped")
	}
}

func TestAuthServiceLoginRejections(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	hash, err := svc.HashPassword("right-pass")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	disabled := models.User{
		Email:        "disabled@example.com",
		PasswordHash: hash,
		FirstName:    "Dis",
		LastName:     "Abled",
		Role:         constants.RoleStaff,
		IsActive:     false,
	}
	if err := db.Create(&disabled).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, _, _, err := svc.Login("missing@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
	if _, _, _, err := svc.Login("disabled@example.com", "right-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected disabled user rejection, got %v", err)
	}

	enabled := models.User{
		Email:        "enabled@example.com",
		PasswordHash: hash,
		FirstName:    "En",
		LastName:     "Abled",
		Role:         constants.RoleStaff,
		IsActive:     true,
	}
	if err := db.Create(&enabled).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if _, _, _, err := svc.Login("enabled@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
}

func TestAuthServiceParseRejectsForgedToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "a-different-secret"
	otherCfg.JWT.ExpireHours = 24
	other := NewAuthService(otherCfg, nil)

	token, _, err := other.GenerateJWT(&models.User{ID: 7, Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token); err == nil {
		t.Fatal("expected parse failure for token signed with another secret")
	}
}
