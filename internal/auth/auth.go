package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/billora/billora/internal/config"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/golang-jwt/jwt/v4"
)

// Claims are the session claims carried by a JWT token
type Claims struct {
	UserID string
	Email  string
}

// Service issues and validates JWT session tokens
type Service struct {
	secret string
}

func NewService(cfg *config.Configuration) *Service {
	return &Service{secret: cfg.Auth.Secret}
}

// GenerateToken issues a signed session token for the user
func (s *Service) GenerateToken(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, ierr.NewError("token missing user id").
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	return &Claims{UserID: userID, Email: email}, nil
}
