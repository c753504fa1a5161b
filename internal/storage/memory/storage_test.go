package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kaganatalay/ciz.im/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newSession(code string) *model.GameSession {
	return model.NewGameSession(model.SessionCode(code), time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("AB12")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "AB12")
	s.Require().NoError(err)
	s.Equal(model.SessionCode("AB12"), retrieved.Code)
}

func (s *StorageSuite) TestGetSessionIsCaseInsensitive() {
	session := s.newSession("AB12")
	_ = s.storage.SaveSession(s.ctx, session)

	retrieved, err := s.storage.GetSession(s.ctx, "ab12")
	s.Require().NoError(err)
	s.Equal(model.SessionCode("AB12"), retrieved.Code)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "ZZZZ")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.newSession("AB12")
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, "AB12")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "AB12")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSessionIsIdempotent() {
	err := s.storage.DeleteSession(s.ctx, "AB12")
	s.NoError(err)
}

func (s *StorageSuite) TestSessionExists() {
	session := s.newSession("AB12")
	_ = s.storage.SaveSession(s.ctx, session)

	exists, err := s.storage.SessionExists(s.ctx, "ab12")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.SessionExists(s.ctx, "CD34")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestGetSessionReturnsCopy() {
	session := s.newSession("AB12")
	session.Players["conn-1"] = &model.Player{ConnectionID: "conn-1", Username: "ayse"}
	_ = s.storage.SaveSession(s.ctx, session)

	first, _ := s.storage.GetSession(s.ctx, "AB12")
	first.Players["conn-2"] = &model.Player{ConnectionID: "conn-2", Username: "mehmet"}
	first.Players["conn-1"].Score = 50
	first.GuessedPlayers["conn-1"] = true
	first.RoundActive = true

	again, _ := s.storage.GetSession(s.ctx, "AB12")
	s.Len(again.Players, 1)
	s.Equal(0, again.Players["conn-1"].Score)
	s.Empty(again.GuessedPlayers)
	s.False(again.RoundActive)
}

func (s *StorageSuite) TestSaveSessionDetachesFromCaller() {
	session := s.newSession("AB12")
	_ = s.storage.SaveSession(s.ctx, session)

	// Mutating the caller's session after save must not leak into storage
	session.Players["conn-1"] = &model.Player{ConnectionID: "conn-1", Username: "ayse"}

	retrieved, _ := s.storage.GetSession(s.ctx, "AB12")
	s.Empty(retrieved.Players)
}

func (s *StorageSuite) TestGetWordsBeforeSave() {
	_, err := s.storage.GetWords(s.ctx)
	s.ErrorIs(err, model.ErrWordsNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetWords() {
	err := s.storage.SaveWords(s.ctx, []string{"elma", "armut"})
	s.Require().NoError(err)

	words, err := s.storage.GetWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"elma", "armut"}, words)
}

func (s *StorageSuite) TestGetWordsReturnsCopy() {
	_ = s.storage.SaveWords(s.ctx, []string{"elma", "armut"})

	words, _ := s.storage.GetWords(s.ctx)
	words[0] = "mutated"

	again, _ := s.storage.GetWords(s.ctx)
	s.Equal("elma", again[0])
}
