package service

import (
	"context"
	"testing"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/testutil"
	"github.com/billora/billora/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(testServiceParams(&s.BaseServiceTestSuite))
}

func (s *AuthServiceSuite) signup(name, email, password string) *dto.AuthResponse {
	resp, err := s.service.Signup(s.GetContext(), dto.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceSuite) TestSignup() {
	resp := s.signup("Priya", "priya@example.com", "s3cret-pass")

	s.NotEmpty(resp.Token)
	s.Equal("Priya", resp.User.Name)
	s.Equal("priya@example.com", resp.User.Email)

	// the token must round-trip through validation
	claims, err := s.GetAuthService().ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(resp.User.ID, claims.UserID)
	s.Equal("priya@example.com", claims.Email)
}

func (s *AuthServiceSuite) TestSignupValidation() {
	testCases := []struct {
		name    string
		request dto.SignupRequest
	}{
		{
			name:    "missing_name",
			request: dto.SignupRequest{Email: "a@example.com", Password: "s3cret-pass"},
		},
		{
			name:    "invalid_email",
			request: dto.SignupRequest{Name: "Priya", Email: "not-an-email", Password: "s3cret-pass"},
		},
		{
			name:    "short_password",
			request: dto.SignupRequest{Name: "Priya", Email: "a@example.com", Password: "12345"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Signup(s.GetContext(), tc.request)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *AuthServiceSuite) TestSignupRejectsDuplicateEmail() {
	s.signup("Priya", "priya@example.com", "s3cret-pass")

	_, err := s.service.Signup(s.GetContext(), dto.SignupRequest{
		Name:     "Another Priya",
		Email:    "priya@example.com",
		Password: "other-pass",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestLogin() {
	created := s.signup("Priya", "priya@example.com", "s3cret-pass")

	resp, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(created.User.ID, resp.User.ID)
}

func (s *AuthServiceSuite) TestLoginRejectsWrongPassword() {
	s.signup("Priya", "priya@example.com", "s3cret-pass")

	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "wrong-pass",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginRejectsUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	s.Error(err)
	// unknown email and wrong password are indistinguishable to the caller
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestMe() {
	created := s.signup("Priya", "priya@example.com", "s3cret-pass")

	ctx := testutil.SetupContextForUser(created.User.ID)
	me, err := s.service.Me(ctx)
	s.NoError(err)
	s.Equal("Priya", me.Name)
	s.Equal("priya@example.com", me.Email)
}

func (s *AuthServiceSuite) TestMeWithoutUserContext() {
	ctx := context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
	_, err := s.service.Me(ctx)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
