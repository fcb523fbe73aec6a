package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordrush/wordrush/internal/model"
)

// IntegrationSuite drives a full game through the wired controllers,
// using the mock clock to control round timing.
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
}

func (s *IntegrationSuite) TestNewWiresAllComponents() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.NotNil(app.Storage)
	s.NotNil(app.AuthService)
	s.NotNil(app.RoomController)
	s.NotNil(app.GameController)
	s.NotNil(app.ChatService)
	s.NotNil(app.Monitor)
	s.NotNil(app.HubManager)
	s.NotNil(app.Broadcaster)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "carrier-pigeon"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

// TestFullGame plays a two-round game end to end: a guessed round, a
// timed-out round resolved by the monitor, and the final standings.
func (s *IntegrationSuite) TestFullGame() {
	alice, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	settings := model.DefaultSettings()
	settings.TotalRounds = 2

	created, err := s.app.RoomController.CreateRoom(s.ctx, alice.Player.ID, &settings)
	s.Require().NoError(err)
	s.Len(created.Code, 6)

	joined, err := s.app.RoomController.JoinRoom(s.ctx, string(created.Code), bob.Player.ID)
	s.Require().NoError(err)
	s.Len(joined.Members, 2)

	// Round 1
	started, err := s.app.GameController.StartGame(s.ctx, created.ID, alice.Player.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusPlaying, started.Game.Status)
	s.Equal(1, started.Game.CurrentRound)

	giver := started.Game.CurrentGiver()
	s.Equal(alice.Player.ID, giver)
	guesser := bob.Player.ID

	withWord, err := s.app.GameController.SubmitWord(s.ctx, created.ID, giver, "planet")
	s.Require().NoError(err)
	s.NotEqual("planet", withWord.Game.ScrambledWord)

	// Guessed 9 seconds in; multiplier 0.8 of 100 base points
	s.app.MockClock.Advance(9 * time.Second)
	guess, room, err := s.app.GameController.SubmitGuess(s.ctx, created.ID, guesser, "PLANET")
	s.Require().NoError(err)
	s.True(guess.Correct)
	s.Equal(80, guess.Points)
	s.Equal(guesser, room.Game.RoundWinner)
	s.Equal(80, room.GetMember(guesser).Score)

	// Sudden death window for a 6-letter word is 6 seconds; once it
	// passes, the sweep advances to round 2 with the other giver
	s.app.MockClock.Advance(7 * time.Second)
	s.app.Monitor.Sweep(s.ctx)

	room, err = s.app.RoomController.GetRoom(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusPlaying, room.Game.Status)
	s.Equal(2, room.Game.CurrentRound)
	s.Equal(guesser, room.Game.CurrentGiver())

	// Round 2 times out; the giver collects consolation points and the
	// game finishes
	_, err = s.app.GameController.SubmitWord(s.ctx, created.ID, guesser, "rocket")
	s.Require().NoError(err)

	s.app.MockClock.Advance(46 * time.Second)
	s.app.Monitor.Sweep(s.ctx)

	room, err = s.app.RoomController.GetRoom(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, room.Game.Status)
	s.Equal(130, room.GetMember(guesser).Score)
	s.Equal(0, room.GetMember(giver).Score)

	// The chat log narrates the whole game
	history, err := s.app.ChatService.History(s.ctx, created.ID, 0)
	s.Require().NoError(err)
	s.NotEmpty(history)
	last := history[len(history)-1]
	s.Equal(model.MessageKindSystem, last.Kind)
	s.Contains(last.Text, "Game over!")
}

func (s *IntegrationSuite) TestSweepIsIdempotent() {
	alice, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	created, err := s.app.RoomController.CreateRoom(s.ctx, alice.Player.ID, nil)
	s.Require().NoError(err)
	_, err = s.app.RoomController.JoinRoom(s.ctx, string(created.Code), bob.Player.ID)
	s.Require().NoError(err)

	started, err := s.app.GameController.StartGame(s.ctx, created.ID, alice.Player.ID)
	s.Require().NoError(err)
	giver := started.Game.CurrentGiver()

	_, err = s.app.GameController.SubmitWord(s.ctx, created.ID, giver, "cat")
	s.Require().NoError(err)

	s.app.MockClock.Advance(46 * time.Second)
	s.app.Monitor.Sweep(s.ctx)
	s.app.Monitor.Sweep(s.ctx)

	room, err := s.app.RoomController.GetRoom(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(2, room.Game.CurrentRound)
	s.Equal(50, room.GetMember(giver).Score)
}
