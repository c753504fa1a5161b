package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kaganatalay/ciz.im/internal/dependencies/mocks"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/services/game"
	"github.com/kaganatalay/ciz.im/internal/services/registry"
	"github.com/kaganatalay/ciz.im/internal/services/words"
	"github.com/kaganatalay/ciz.im/internal/storage/memory"
	"github.com/kaganatalay/ciz.im/internal/testutil"
)

type GatewaySuite struct {
	suite.Suite
	random   *mocks.MockRandom
	registry *registry.Controller
	game     *game.Controller
	manager  *Manager
	gateway  *Gateway
	hub      *Hub
	code     model.SessionCode
	ctx      context.Context
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	storage := memory.New()
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	wordsService := words.New(storage, s.random, logger)
	s.Require().NoError(wordsService.LoadWords([]string{"elma", "armut"}))

	s.registry = registry.NewController(storage, clk, s.random, logger)
	s.game = game.NewController(storage, wordsService, clk, s.random, logger)
	s.manager = NewManager(logger)
	s.gateway = New(s.registry, s.game, s.manager, clk, s.random, logger)
	s.ctx = context.Background()

	s.random.QueueString("AB12")
	session, err := s.registry.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.code = session.Code
	s.hub = s.manager.GetOrCreateHub(s.code)
}

func (s *GatewaySuite) TearDownTest() {
	s.manager.RemoveHub(s.code)
}

// connect registers a hub client the way ServeWS would, without a socket
func (s *GatewaySuite) connect(id model.ConnectionID) *Client {
	client := testClient(s.hub, id)
	s.hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	return client
}

// join connects and joins, then drains the joined and roster events from
// every client so tests start from a quiet wire
func (s *GatewaySuite) join(id model.ConnectionID, username string, others ...*Client) *Client {
	client := s.connect(id)
	s.gateway.dispatch(client, inboundMessage{Type: msgJoin, Username: username})

	joined := receiveEvent(s.T(), client)
	s.Require().Equal(model.EventJoined, joined.Type)
	receiveEvent(s.T(), client) // roster
	for _, other := range others {
		receiveEvent(s.T(), other) // roster
	}
	return client
}

func (s *GatewaySuite) TestJoinBroadcastsRoster() {
	client := s.connect("conn-1")

	stop := s.gateway.dispatch(client, inboundMessage{Type: msgJoin, Username: "ayse"})
	s.False(stop)

	joined := receiveEvent(s.T(), client)
	s.Equal(model.EventJoined, joined.Type)

	roster := receiveEvent(s.T(), client)
	s.Equal(model.EventRoster, roster.Type)
}

func (s *GatewaySuite) TestJoinErrorGoesOnlyToJoiner() {
	ayse := s.join("conn-1", "ayse")
	imposter := s.connect("conn-2")

	s.gateway.dispatch(imposter, inboundMessage{Type: msgJoin, Username: "ayse"})

	event := receiveEvent(s.T(), imposter)
	s.Equal(model.EventJoinError, event.Type)
	assertNoEvent(s.T(), ayse)
}

func (s *GatewaySuite) TestStartRoundSendsWordToDrawerOnly() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)

	s.random.QueueIntn(0, 1) // word "elma", drawer "mehmet"
	s.gateway.dispatch(ayse, inboundMessage{Type: msgStartRound})

	for _, c := range []*Client{ayse, mehmet} {
		event := receiveEvent(s.T(), c)
		s.Equal(model.EventRoundStarted, event.Type)
	}

	word := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventYourWord, word.Type)
	assertNoEvent(s.T(), ayse)
}

func (s *GatewaySuite) TestStartRoundRejectionGoesToRequesterOnly() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)

	s.gateway.dispatch(mehmet, inboundMessage{Type: msgStartRound})

	event := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventError, event.Type)
	assertNoEvent(s.T(), ayse)
}

func (s *GatewaySuite) TestWrongGuessBroadcastAsChat() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	s.startRound(ayse, mehmet)

	s.gateway.dispatch(mehmet, inboundMessage{Type: msgGuess, Guess: "armut"})

	for _, c := range []*Client{ayse, mehmet} {
		event := receiveEvent(s.T(), c)
		s.Equal(model.EventChat, event.Type)
	}
}

func (s *GatewaySuite) TestCorrectGuessEndsRoundForSoleGuesser() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	s.startRound(ayse, mehmet)

	s.gateway.dispatch(mehmet, inboundMessage{Type: msgGuess, Guess: "ELMA"})

	for _, c := range []*Client{ayse, mehmet} {
		correct := receiveEvent(s.T(), c)
		s.Equal(model.EventCorrectGuess, correct.Type)
		over := receiveEvent(s.T(), c)
		s.Equal(model.EventRoundOver, over.Type)
	}
}

func (s *GatewaySuite) TestDrawRelayedFromDrawerExcludingSelf() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	s.startRound(ayse, mehmet)

	// ayse is the drawer
	s.gateway.dispatch(ayse, inboundMessage{
		Type: msgDraw,
		Data: []byte(`{"x":10,"y":20}`),
	})

	event := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventDraw, event.Type)
	assertNoEvent(s.T(), ayse)
}

func (s *GatewaySuite) TestDrawFromNonDrawerDropped() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	s.startRound(ayse, mehmet)

	s.gateway.dispatch(mehmet, inboundMessage{
		Type: msgDraw,
		Data: []byte(`{"x":10,"y":20}`),
	})

	assertNoEvent(s.T(), ayse)
	assertNoEvent(s.T(), mehmet)
}

func (s *GatewaySuite) TestLeaveRequestsTeardown() {
	client := s.join("conn-1", "ayse")

	stop := s.gateway.dispatch(client, inboundMessage{Type: msgLeave})
	s.True(stop)
}

func (s *GatewaySuite) TestDisconnectNotifiesRemaining() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)

	s.gateway.handleDisconnect(mehmet)
	s.hub.Unregister(mehmet)

	left := receiveEvent(s.T(), ayse)
	s.Equal(model.EventPlayerLeft, left.Type)
	roster := receiveEvent(s.T(), ayse)
	s.Equal(model.EventRoster, roster.Type)
}

func (s *GatewaySuite) TestDrawerDisconnectAbandonsRound() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	s.startRound(ayse, mehmet) // ayse draws

	s.gateway.handleDisconnect(ayse)
	s.hub.Unregister(ayse)

	left := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventPlayerLeft, left.Type)
	abandoned := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventRoundAbandoned, abandoned.Type)
	roster := receiveEvent(s.T(), mehmet)
	s.Equal(model.EventRoster, roster.Type)
}

func (s *GatewaySuite) TestLastPendingGuesserDisconnectEndsRound() {
	ayse := s.join("conn-1", "ayse")
	mehmet := s.join("conn-2", "mehmet", ayse)
	fatma := s.join("conn-3", "fatma", ayse, mehmet)
	s.startRound3(ayse, mehmet, fatma) // ayse draws

	s.gateway.dispatch(mehmet, inboundMessage{Type: msgGuess, Guess: "elma"})
	for _, c := range []*Client{ayse, mehmet, fatma} {
		correct := receiveEvent(s.T(), c)
		s.Require().Equal(model.EventCorrectGuess, correct.Type)
	}

	// fatma was the only uncredited guesser; her drop completes the round
	s.gateway.handleDisconnect(fatma)
	s.hub.Unregister(fatma)

	for _, c := range []*Client{ayse, mehmet} {
		left := receiveEvent(s.T(), c)
		s.Equal(model.EventPlayerLeft, left.Type)
		over := receiveEvent(s.T(), c)
		s.Equal(model.EventRoundOver, over.Type)
		roster := receiveEvent(s.T(), c)
		s.Equal(model.EventRoster, roster.Type)
	}
}

func (s *GatewaySuite) TestLastDisconnectDeletesSession() {
	client := s.join("conn-1", "ayse")

	s.gateway.handleDisconnect(client)

	_, err := s.registry.GetSession(s.ctx, s.code)
	s.ErrorIs(err, model.ErrSessionNotFound)
	s.Nil(s.manager.GetHub(s.code))
}

func (s *GatewaySuite) TestDisconnectBeforeJoinIsQuiet() {
	ayse := s.join("conn-1", "ayse")
	lurker := s.connect("conn-9")

	s.gateway.handleDisconnect(lurker)
	s.hub.Unregister(lurker)

	assertNoEvent(s.T(), ayse)
	_, err := s.registry.GetSession(s.ctx, s.code)
	s.NoError(err)
}

// startRound starts a round with ayse as drawer and drains the resulting
// events from both clients
func (s *GatewaySuite) startRound(ayse, mehmet *Client) {
	s.random.QueueIntn(0, 0) // word "elma", drawer "ayse"
	s.gateway.dispatch(ayse, inboundMessage{Type: msgStartRound})

	for _, c := range []*Client{ayse, mehmet} {
		started := receiveEvent(s.T(), c)
		s.Require().Equal(model.EventRoundStarted, started.Type)
	}
	word := receiveEvent(s.T(), ayse)
	s.Require().Equal(model.EventYourWord, word.Type)
}

// startRound3 is startRound for a three-player table
func (s *GatewaySuite) startRound3(ayse, mehmet, fatma *Client) {
	s.random.QueueIntn(0, 0) // word "elma", drawer "ayse"
	s.gateway.dispatch(ayse, inboundMessage{Type: msgStartRound})

	for _, c := range []*Client{ayse, mehmet, fatma} {
		started := receiveEvent(s.T(), c)
		s.Require().Equal(model.EventRoundStarted, started.Type)
	}
	word := receiveEvent(s.T(), ayse)
	s.Require().Equal(model.EventYourWord, word.Type)
}
