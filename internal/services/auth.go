package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/apperrors"
	"taskboard/internal/config"
	"taskboard/internal/models"
	"taskboard/internal/store"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	VerifyToken(tokenStr string) (string, error)
}

type AuthServiceImpl struct {
	store  store.UserStore
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(userStore store.UserStore, cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:  userStore,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BCryptCost,
		now:    time.Now,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.AuthResult{}, apperrors.Internal("Failed to load users").WithDetails(err.Error())
	}
	for _, u := range users {
		if u.Email == email {
			return models.AuthResult{}, apperrors.EmailTaken()
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return models.AuthResult{}, apperrors.Internal("Failed to hash password").WithDetails(err.Error())
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.AuthResult{}, apperrors.Internal("Failed to generate user ID").WithDetails(err.Error())
	}

	user := models.User{
		ID:           id.String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	users = append(users, user)
	if err := s.store.WriteAll(ctx, users); err != nil {
		return models.AuthResult{}, apperrors.Internal("Failed to save users").WithDetails(err.Error())
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{User: user.Public(), Token: token}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.AuthResult{}, apperrors.Internal("Failed to load users").WithDetails(err.Error())
	}

	// Unknown email and wrong password produce the same error so the response
	// does not reveal which accounts exist.
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return models.AuthResult{}, apperrors.InvalidCredentials()
		}
		token, err := s.signToken(u.ID)
		if err != nil {
			return models.AuthResult{}, err
		}
		return models.AuthResult{User: u.Public(), Token: token}, nil
	}
	return models.AuthResult{}, apperrors.InvalidCredentials()
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id string) (models.User, error) {
	users, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.User{}, apperrors.Internal("Failed to load users").WithDetails(err.Error())
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.UserNotFound()
}

// VerifyToken parses and validates a bearer token and returns the user ID it
// was issued for.
func (s *AuthServiceImpl) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.TokenExpired()
		}
		return "", apperrors.InvalidToken()
	}
	if !token.Valid {
		return "", apperrors.InvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.InvalidToken()
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperrors.InvalidToken()
	}
	return sub, nil
}

func (s *AuthServiceImpl) signToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": s.now().Unix(),
		"exp": s.now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("Failed to sign token").WithDetails(err.Error())
	}
	return signed, nil
}
