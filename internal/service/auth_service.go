package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

// RevokedTokenKeyPrefix namespaces revoked token ids in redis.
const RevokedTokenKeyPrefix = "auth:revoked:"

// AuthService handles registration, credential checks and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, actor *Actor, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	Me(ctx context.Context, userID uint) (dto.UserResponse, error)
}

type authService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	events      EventRecorder
	redis       *redis.Client
	validator   *validator.Validate
	logger      zerolog.Logger
	secret      string
	tokenTTL    time.Duration
	now         func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	events EventRecorder,
	redisClient *redis.Client,
	validate *validator.Validate,
	logger zerolog.Logger,
	secret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		users:       users,
		departments: departments,
		events:      events,
		redis:       redisClient,
		validator:   validate,
		logger:      logger.With().Str("component", "auth_service").Logger(),
		secret:      secret,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// Register creates the user and its profile atomically. The actor is nil for
// public self-registration; the audit entry then names the new user itself.
func (s *authService) Register(ctx context.Context, actor *Actor, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if payload.Password != payload.ConfirmPassword {
		return dto.UserResponse{}, fmt.Errorf("passwords do not match: %w", ErrInvalidInput)
	}

	role := models.RoleInstructor
	if trimmed := strings.ToUpper(strings.TrimSpace(payload.Role)); trimmed != "" {
		role = models.Role(trimmed)
	}
	if !role.Valid() {
		return dto.UserResponse{}, fmt.Errorf("unknown role %q: %w", payload.Role, ErrInvalidInput)
	}

	exists, err := s.users.ExistsByUsername(ctx, payload.Username)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if exists {
		return dto.UserResponse{}, fmt.Errorf("username %w", ErrConflict)
	}

	department, err := s.departments.GetByID(ctx, payload.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("department %w", ErrNotFound)
		}
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     payload.Username,
		Email:        payload.Username,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		Profile: models.Profile{
			Name:         fmt.Sprintf("%s %s", payload.FirstName, payload.LastName),
			Role:         role,
			DepartmentID: &department.ID,
		},
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	actorID := &user.ID
	if actor != nil {
		actorID = &actor.ID
	}
	if err := s.events.Record(ctx, actorID, models.EventUserCreated, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record user creation event")
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(created), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !user.IsActive {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Profile.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to update last login")
	}
	user.LastLogin = &now

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Logout revokes the presented token by storing its id in redis until the
// token would have expired anyway.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	if s.redis == nil {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return s.redis.Set(ctx, RevokedTokenKeyPrefix+jti, "1", ttl).Err()
}

func (s *authService) Me(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("user %w", ErrNotFound)
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}
