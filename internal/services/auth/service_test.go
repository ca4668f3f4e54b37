package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nkarpov/balda-go/internal/dependencies/mocks"
	"github.com/nkarpov/balda-go/internal/storage/memory"
	"github.com/nkarpov/balda-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Guest players

func (s *ServiceSuite) TestCreateGuestPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Anna", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
	s.Equal(s.clock.CurrentTime.Add(24*time.Hour), session.ExpiresAt)

	stored, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.True(stored.IsGuest)
}

func (s *ServiceSuite) TestGuestTokensAreUnique() {
	first, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)
	second, err := s.service.CreateGuestPlayer(s.ctx, "Boris")
	s.Require().NoError(err)

	s.NotEqual(first.Token, second.Token)
	s.NotEqual(first.PlayerID, second.PlayerID)
}

// AI players

func (s *ServiceSuite) TestCreateAIPlayer() {
	player, err := s.service.CreateAIPlayer(s.ctx, "greedy")
	s.Require().NoError(err)

	s.True(player.IsAI)
	s.Equal("greedy", player.AIStrategy)
	s.Contains(player.DisplayName, "greedy")

	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.True(stored.IsAI)
}

// Registration

func (s *ServiceSuite) TestRegisterPlayer() {
	session, err := s.service.RegisterPlayer(s.ctx, "anna", "secret123", "Anna")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.False(session.Player.IsGuest)

	rp, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "anna")
	s.Require().NoError(err)
	s.Equal(session.PlayerID, rp.PlayerID)
	s.NotEqual("secret123", rp.PasswordHash)
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "anna", "secret123", "Anna")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "anna", "other456", "Another Anna")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, err := s.service.RegisterPlayer(s.ctx, "anna", "secret123", "Anna")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "anna", "secret123")
	s.Require().NoError(err)
	s.Equal(registered.PlayerID, session.PlayerID)
	s.NotEqual(registered.Token, session.Token)
}

func (s *ServiceSuite) TestLoginRejectsWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "anna", "secret123", "Anna")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "anna", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginRejectsUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "secret123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Sessions

func (s *ServiceSuite) TestValidateSession() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	session, err := s.service.ValidateSession(created.Token)
	s.Require().NoError(err)
	s.Equal(created.PlayerID, session.PlayerID)
}

func (s *ServiceSuite) TestValidateSessionRejectsUnknownToken() {
	_, err := s.service.ValidateSession("bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	s.clock.Advance(24*time.Hour + time.Minute)

	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionValidJustBeforeExpiry() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	s.clock.Advance(24*time.Hour - time.Minute)

	_, err = s.service.ValidateSession(created.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestLogoutInvalidatesToken() {
	created, err := s.service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	s.service.Logout(created.Token)

	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCustomSessionDuration() {
	service := New(s.storage, s.clock, Config{SessionDuration: time.Hour}, testutil.NopLogger())

	created, err := service.CreateGuestPlayer(s.ctx, "Anna")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}
