package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/config"
	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
	"github.com/ronnaro/ata-academica-plus/pkg/jwt"
	"github.com/ronnaro/ata-academica-plus/pkg/redis"
)

// ── auth module errors ──

var (
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrRefreshInvalid     = errors.New("refresh token invalid")
)

// AuthService owns registration, login and session token handling. The role
// carried in tokens always comes from the profiles directory; no identity is
// ever granted a role outside the lookup.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID, jti string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// ResolveRole performs the directory lookup behind the access gate,
	// consulting the session role cache first.
	ResolveRole(ctx context.Context, userID string) (string, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil; role caching and
// token revocation degrade to direct lookups.
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileResponse, error) {
	if _, err := s.repo.Profile.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleDocente
	}

	profile := &model.Profile{
		FullName:         req.FullName,
		InstitutionEmail: req.Email,
		PasswordHash:     string(hash),
		Role:             role,
	}
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		s.logger.Error("profile insert failed", zap.Error(err))
		return nil, err
	}

	return s.toProfileResponse(profile), nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	profile, err := s.repo.Profile.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialsInvalid
		}
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredentialsInvalid
	}

	if s.rdb != nil {
		if err := s.rdb.CacheRole(ctx, profile.ID, profile.Role, s.cfg.Auth.AccessTokenTTL); err != nil {
			s.logger.Warn("caching role failed", zap.String("user_id", profile.ID), zap.Error(err))
		}
	}

	return s.issueTokens(profile)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrRefreshInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, ErrRefreshInvalid
		}
	}

	// Re-read the directory so a role change takes effect on refresh.
	profile, err := s.repo.Profile.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		s.logger.Error("profile lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, err
	}

	return s.issueTokens(profile)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, userID, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.RevokeToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("revoking token failed", zap.Error(err))
	}
	if err := s.rdb.DropRole(ctx, userID); err != nil {
		s.logger.Warn("dropping cached role failed", zap.Error(err))
	}
	return nil
}

// ────────────────────── CurrentUser ──────────────────────

func (s *authService) CurrentUser(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.toProfileResponse(profile), nil
}

// ────────────────────── ResolveRole ──────────────────────

func (s *authService) ResolveRole(ctx context.Context, userID string) (string, error) {
	if s.rdb != nil {
		role, err := s.rdb.CachedRole(ctx, userID)
		if err != nil {
			s.logger.Warn("role cache read failed", zap.Error(err))
		} else if role != "" {
			return role, nil
		}
	}

	profile, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileNotFound
		}
		s.logger.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	if s.rdb != nil {
		if err := s.rdb.CacheRole(ctx, userID, profile.Role, s.cfg.Auth.AccessTokenTTL); err != nil {
			s.logger.Warn("caching role failed", zap.Error(err))
		}
	}

	return profile.Role, nil
}

// ── helpers ──

func (s *authService) issueTokens(profile *model.Profile) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(profile.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(profile.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) toProfileResponse(profile *model.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:               profile.ID,
		FullName:         profile.FullName,
		InstitutionEmail: profile.InstitutionEmail,
		Role:             profile.Role,
		CreatedAt:        profile.CreatedAt.Format(time.RFC3339),
	}
}
