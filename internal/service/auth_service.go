package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authly/authly-rhythm/internal/config"
	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const tokenIssuer = "authly-rhythm"

var ErrInvalidToken = errors.New("invalid token")

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RhythmData returns the audio URL backing a user's reference rhythm,
// so the client can play it back during capture.
func (s *AuthService) RhythmData(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NotFound("User not found")
		}
		return "", err
	}
	return user.AudioURL, nil
}

// Register creates a new identity record. The existence check and the
// insert are separate statements; two concurrent registrations of the
// same username can race past the check, which is accepted.
func (s *AuthService) Register(ctx context.Context, username, audioURL string, keyPresses []domain.KeyPress) error {
	if username == "" || audioURL == "" {
		return domain.BadRequest("Username and audio URL are required")
	}
	if len(keyPresses) == 0 {
		return domain.BadRequest("Rhythm must contain at least one key press")
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return domain.Conflict("Username already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := &domain.User{
		Username:   username,
		AudioURL:   audioURL,
		KeyPresses: keyPresses,
	}
	return s.userRepo.Create(ctx, user)
}

// SignIn compares the submitted rhythm against the stored reference and
// issues a token on a match. The mismatch message names the expected
// key-press count as a hint to the client.
func (s *AuthService) SignIn(ctx context.Context, username string, keyPresses []domain.KeyPress) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NotFound("User not found")
		}
		return "", err
	}

	if !domain.MatchesRhythm(keyPresses, user.KeyPresses) {
		return "", domain.Unauthorized(fmt.Sprintf("Incorrect rhythm, expected %d key presses", len(user.KeyPresses)))
	}

	return s.IssueToken(username)
}

// IssueToken signs a token whose subject is the username, valid for the
// configured expiration window from now.
func (s *AuthService) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iss": tokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AuthSecret))
}

// VerifyToken validates the signature and expiration and returns the
// embedded subject. Malformed, forged and expired tokens all fail the
// same way; the subject is not re-checked against the store.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.AuthSecret), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
