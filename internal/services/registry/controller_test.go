package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kaganatalay/ciz.im/internal/dependencies/mocks"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/storage/memory"
	"github.com/kaganatalay/ciz.im/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) TestCreateSession() {
	s.random.QueueString("AB12")

	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.SessionCode("AB12"), session.Code)
	s.Empty(session.Players)
	s.False(session.RoundActive)
	s.Equal(s.clock.Now(), session.CreatedAt)

	stored, err := s.storage.GetSession(s.ctx, "AB12")
	s.Require().NoError(err)
	s.Equal(session.Code, stored.Code)
}

func (s *ControllerSuite) TestCreateSessionRetriesOnCollision() {
	s.random.QueueString("AB12")
	first, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	s.random.QueueString("AB12", "CD34")
	second, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.SessionCode("AB12"), first.Code)
	s.Equal(model.SessionCode("CD34"), second.Code)
}

func (s *ControllerSuite) TestCreateSessionExhaustsCodeSpace() {
	s.random.QueueString("AB12")
	_, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	// Every attempt collides; the mock returns "" once its queue drains,
	// so keep it full for the whole retry budget
	for i := 0; i < maxCodeAttempts; i++ {
		s.random.QueueString("AB12")
	}
	_, err = s.controller.CreateSession(s.ctx)
	s.ErrorIs(err, ErrCodeSpaceExhausted)
}

func (s *ControllerSuite) TestGetSessionUnknownCode() {
	_, err := s.controller.GetSession(s.ctx, "ZZZZ")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestGetSessionIsCaseInsensitive() {
	s.random.QueueString("AB12")
	_, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	session, err := s.controller.GetSession(s.ctx, "ab12")
	s.Require().NoError(err)
	s.Equal(model.SessionCode("AB12"), session.Code)
}

func (s *ControllerSuite) TestDeleteSession() {
	s.random.QueueString("AB12")
	_, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.DeleteSession(s.ctx, "AB12"))

	_, err = s.controller.GetSession(s.ctx, "AB12")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestDeleteSessionIsIdempotent() {
	s.NoError(s.controller.DeleteSession(s.ctx, "ZZZZ"))
}
