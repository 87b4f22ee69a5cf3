package service

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/user"
	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and session introspection
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context) (*dto.UserResponse, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to process password").
			Mark(ierr.ErrSystem)
	}

	u := &user.User{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up", "user_id", u.ID)
	return s.newAuthResponse(u)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.newAuthResponse(u)
}

func (s *authService) Me(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("missing user context").
			WithHint("Authentication required").
			Mark(ierr.ErrPermissionDenied)
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *authService) newAuthResponse(u *user.User) (*dto.AuthResponse, error) {
	token, err := s.Auth.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(u),
	}, nil
}

// invalidCredentials deliberately does not reveal whether the email exists
func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Invalid email or password").
		Mark(ierr.ErrPermissionDenied)
}
