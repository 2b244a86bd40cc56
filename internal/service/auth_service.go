package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"
	"quizdeck/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// ValidateToken verifies a bearer token and loads the user it references.
	// A missing, malformed or expired token, or a deleted user, yields an
	// unauthorized error.
	ValidateToken(ctx context.Context, tokenString string) (*domain.User, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo domain.UserRepository, cfg *config.Config) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret cannot be empty")
	}
	ttl := cfg.Auth.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
		tokenTTL:  ttl,
	}, nil
}

// Register creates a new user and issues a signed token. The email must be
// unused and the role must be student or faculty; the password is hashed
// before storage and never persisted in plaintext.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	appLogger := logger.Get()

	if !domain.ValidRole(req.Role) {
		return nil, domain.NewInvalidRoleError(req.Role)
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to check existing email", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateEmailError(req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := domain.NewUser(util.NewULID(), req.Name, req.Email, string(hash), domain.Role(req.Role))
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// The unique index is the source of truth; the pre-check above only
		// narrows the race window.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.NewDuplicateEmailError(req.Email)
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}

	token, err := s.createToken(user)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign token", err)
	}

	appLogger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewInvalidCredentialsError()
	}

	token, err := s.createToken(user)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign token", err)
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// ValidateToken implements AuthService.
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.NewUnauthorizedError("Please authenticate")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load token user", err)
	}
	if user == nil {
		// Token references a deleted user.
		return nil, domain.NewUnauthorizedError("Please authenticate")
	}
	return user, nil
}

func (s *authServiceImpl) createToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
