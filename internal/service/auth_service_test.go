package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ronnaro/ata-academica-plus/config"
	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	tr := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-at-least-16-chars",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// nil redis client: lookups go straight to the directory
	svc := NewAuthService(cfg, tr.repo, jwtMgr, nil, zap.NewNop())
	return svc, tr
}

func registerCoordinator(t *testing.T, svc AuthService) *dto.ProfileResponse {
	t.Helper()
	profile, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Carla Souza",
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
		Role:     model.RoleCoordenador,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return profile
}

// ── Register ──

func TestAuthService_Register_DefaultsToDocente(t *testing.T) {
	svc, tr := setupTestAuthService()

	profile, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Pedro Alves",
		Email:    "pedro.alves@ifpa.edu.br",
		Password: "senha-forte-123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if profile.Role != model.RoleDocente {
		t.Errorf("role should default to docente, got %s", profile.Role)
	}

	stored := tr.profile.profiles[profile.ID]
	if stored.PasswordHash == "senha-forte-123" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerCoordinator(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Outra Pessoa",
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerCoordinator(t, svc)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("token pair incomplete")
	}
	if tokens.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("wrong expires_in: %d", tokens.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerCoordinator(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-errada",
	})
	if !errors.Is(err, ErrCredentialsInvalid) {
		t.Errorf("expected ErrCredentialsInvalid, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ninguem@ifpa.edu.br",
		Password: "tanto-faz",
	})
	if !errors.Is(err, ErrCredentialsInvalid) {
		t.Errorf("unknown email must look like bad credentials, got %v", err)
	}
}

// ── Refresh ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerCoordinator(t, svc)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if fresh.AccessToken == "" {
		t.Fatal("no access token issued")
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	svc, _ := setupTestAuthService()
	registerCoordinator(t, svc)

	tokens, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
	})

	// an access token must not pass as a refresh token
	if _, err := svc.Refresh(context.Background(), tokens.AccessToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("expected ErrRefreshInvalid, got %v", err)
	}
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	svc, tr := setupTestAuthService()
	profile := registerCoordinator(t, svc)

	tokens, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "carla.souza@ifpa.edu.br",
		Password: "senha-forte-123",
	})

	tr.profile.profiles[profile.ID].Role = model.RoleDocente

	role, err := svc.ResolveRole(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("ResolveRole failed: %v", err)
	}
	if role != model.RoleDocente {
		t.Errorf("role change must be visible, got %s", role)
	}

	if _, err := svc.Refresh(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
}

// ── ResolveRole ──

func TestAuthService_ResolveRole_FromDirectoryOnly(t *testing.T) {
	svc, _ := setupTestAuthService()
	profile := registerCoordinator(t, svc)

	role, err := svc.ResolveRole(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("ResolveRole failed: %v", err)
	}
	if role != model.RoleCoordenador {
		t.Errorf("expected coordenador, got %s", role)
	}

	if _, err := svc.ResolveRole(context.Background(), "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

// ── Logout ──

func TestAuthService_Logout_NoRedisIsNoop(t *testing.T) {
	svc, _ := setupTestAuthService()
	profile := registerCoordinator(t, svc)

	if err := svc.Logout(context.Background(), profile.ID, "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout without redis must be a no-op: %v", err)
	}
}
