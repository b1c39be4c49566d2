package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"log"
	"socialnetwork/internal/config"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/session"
	"strconv"
	"time"
)

var ErrInvalidSession = errors.New("invalid or expired session")

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	StartSession(ctx context.Context, user *models.User) (string, time.Time, error)
	ResolveSession(ctx context.Context, token string) (*session.Identity, error)
	EndSession(ctx context.Context, token string) error
}

type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	store    session.Store
	cfg      *config.Config
}

// NewAuthService accepts a nil store, in which case sessions live only in the signed cookie.
func NewAuthService(userRepo repository.UserRepository, store session.Store, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username %s: %w", req.Username, repository.ErrUsernameTaken)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	// the unique constraint still catches a concurrent registration of the same name
	if err := s.userRepo.CreateUserWithProfile(ctx, user, req.Password); err != nil {
		return nil, err
	}

	log.Printf("registered user %d (%s)", user.UserID, user.Username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) StartSession(ctx context.Context, user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.Session.Duration)
	sessionID := uuid.New().String()

	claims := SessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   strconv.FormatInt(user.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.Session.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	if s.store != nil {
		if err := s.store.Save(ctx, sessionID, user.UserID, s.cfg.Session.Duration); err != nil {
			return "", time.Time{}, err
		}
	}

	return tokenString, expiresAt, nil
}

func (s *authService) parseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Session.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

func (s *authService) ResolveSession(ctx context.Context, tokenString string) (*session.Identity, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidSession, claims.Subject)
	}

	if s.store != nil {
		storedUserID, ok, err := s.store.Lookup(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if !ok || storedUserID != userID {
			return nil, ErrInvalidSession
		}
	}

	return &session.Identity{
		UserID:    userID,
		Username:  claims.Username,
		SessionID: claims.ID,
	}, nil
}

// EndSession revokes the server-side session; an unparseable token has nothing to revoke.
func (s *authService) EndSession(ctx context.Context, tokenString string) error {
	if s.store == nil || tokenString == "" {
		return nil
	}

	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil
	}

	return s.store.Delete(ctx, claims.ID)
}
