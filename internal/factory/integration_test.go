package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kaganatalay/ciz.im/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestWords())
}

// Test: Complete game flow from session creation to round completion
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Create a session
	s.app.MockRandom.QueueString("AB12")
	session, err := s.app.RegistryController.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.SessionCode("AB12"), session.Code)

	// Step 2: Three players join; the first becomes admin
	admin, err := s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-1", "ayse", false)
	s.Require().NoError(err)
	s.True(admin.IsAdmin)

	_, err = s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-2", "mehmet", false)
	s.Require().NoError(err)
	_, err = s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-3", "fatma", false)
	s.Require().NoError(err)

	// Step 3: Admin starts a round; word "elma", drawer "ayse"
	s.app.MockRandom.QueueIntn(0, 0)
	info, err := s.app.GameController.StartRound(s.ctx, session.Code, "conn-1")
	s.Require().NoError(err)
	s.Equal("ayse", info.DrawerUsername)
	s.Equal("elma", info.Word)

	// Step 4: A wrong guess is chat, a right guess scores
	wrong, err := s.app.GameController.ProcessGuess(s.ctx, session.Code, "conn-2", "armut")
	s.Require().NoError(err)
	s.Equal(model.GuessChat, wrong.Kind)

	right, err := s.app.GameController.ProcessGuess(s.ctx, session.Code, "conn-2", "Elma")
	s.Require().NoError(err)
	s.Equal(model.GuessCorrect, right.Kind)
	s.Equal(10, right.NewScore)
	s.False(right.RoundOver)

	// Step 5: The last guesser ends the round
	last, err := s.app.GameController.ProcessGuess(s.ctx, session.Code, "conn-3", "elma")
	s.Require().NoError(err)
	s.True(last.RoundOver)
	s.Equal("elma", last.Word)

	// Step 6: Scores persist across rounds
	s.app.MockRandom.QueueIntn(1, 1)
	_, err = s.app.GameController.StartRound(s.ctx, session.Code, "conn-1")
	s.Require().NoError(err)

	roster, err := s.app.GameController.Roster(s.ctx, session.Code)
	s.Require().NoError(err)
	scores := map[string]int{}
	for _, p := range roster {
		scores[p.Username] = p.Score
	}
	s.Equal(10, scores["mehmet"])
	s.Equal(10, scores["fatma"])
	s.Equal(0, scores["ayse"])

	// Step 7: Everyone leaves, then the session is torn down
	for _, id := range []model.ConnectionID{"conn-1", "conn-2", "conn-3"} {
		result, err := s.app.GameController.RemovePlayer(s.ctx, session.Code, id)
		s.Require().NoError(err)
		s.True(result.Removed)
	}
	s.Require().NoError(s.app.RegistryController.DeleteSession(s.ctx, session.Code))

	_, err = s.app.RegistryController.GetSession(s.ctx, session.Code)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Test: Drawer departure mid-round abandons the round for the rest
func (s *IntegrationSuite) TestDrawerDepartureFlow() {
	s.app.MockRandom.QueueString("CD34")
	session, err := s.app.RegistryController.CreateSession(s.ctx)
	s.Require().NoError(err)

	_, err = s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-1", "ayse", false)
	s.Require().NoError(err)
	_, err = s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-2", "mehmet", false)
	s.Require().NoError(err)

	s.app.MockRandom.QueueIntn(0, 1) // drawer "mehmet"
	info, err := s.app.GameController.StartRound(s.ctx, session.Code, "conn-1")
	s.Require().NoError(err)

	result, err := s.app.GameController.RemovePlayer(s.ctx, session.Code, info.DrawerID)
	s.Require().NoError(err)
	s.True(result.RoundAbandoned)

	// A fresh round can start once a second player is back
	_, err = s.app.GameController.AddPlayer(s.ctx, session.Code, "conn-3", "fatma", false)
	s.Require().NoError(err)
	s.app.MockRandom.QueueIntn(0, 0)
	_, err = s.app.GameController.StartRound(s.ctx, session.Code, "conn-1")
	s.NoError(err)
}
