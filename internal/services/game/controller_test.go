package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordrush/wordrush/internal/dependencies/lock"
	"github.com/wordrush/wordrush/internal/dependencies/mocks"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/scoring"
	"github.com/wordrush/wordrush/internal/services/scramble"
	"github.com/wordrush/wordrush/internal/storage/memory"
	"github.com/wordrush/wordrush/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	chatService *chat.Service
	controller  *Controller
	ctx         context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.chatService = chat.New(s.storage, s.clock, s.random, logger)
	s.controller = New(s.storage, s.clock, lock.New(), scramble.New(s.random), scoring.New(), s.chatService, logger)
	s.ctx = context.Background()
}

// createRoom persists a waiting room with the given players; the first
// player is host.
func (s *ControllerSuite) createRoom(settings model.Settings, playerIDs ...model.PlayerID) *model.Room {
	now := s.clock.Now()
	members := make([]model.RoomMember, len(playerIDs))
	for i, id := range playerIDs {
		player := model.Player{
			ID:          id,
			DisplayName: string(id),
			IsGuest:     true,
			CreatedAt:   now,
		}
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &player))
		members[i] = model.RoomMember{
			Player:   player,
			IsHost:   i == 0,
			JoinedAt: now,
		}
	}

	room := &model.Room{
		ID:        "room-1",
		Code:      "ABC123",
		Members:   members,
		Game:      model.GameState{Status: model.GameStatusWaiting},
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))
	return room
}

func (s *ControllerSuite) getRoom() *model.Room {
	room, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	return room
}

// StartGame tests

func (s *ControllerSuite) TestStartGameSucceeds() {
	s.createRoom(model.DefaultSettings(), "p1", "p2", "p3")

	room, err := s.controller.StartGame(s.ctx, "room-1", "p1")
	s.Require().NoError(err)

	s.Equal(model.GameStatusPlaying, room.Game.Status)
	s.Equal(1, room.Game.CurrentRound)
	s.Equal(5, room.Game.TotalRounds)
	s.Equal([]model.PlayerID{"p1", "p2", "p3"}, room.Game.Rotation)
	s.Equal(model.PlayerID("p1"), room.Game.CurrentGiver())
	s.False(room.Game.WordSet())
}

func (s *ControllerSuite) TestStartGameFailsForNonHost() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")

	_, err := s.controller.StartGame(s.ctx, "room-1", "p2")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestStartGameFailsForNonMember() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")

	_, err := s.controller.StartGame(s.ctx, "room-1", "stranger")
	s.ErrorIs(err, model.ErrNotInRoom)
}

func (s *ControllerSuite) TestStartGameFailsWithOnePlayer() {
	s.createRoom(model.DefaultSettings(), "p1")

	_, err := s.controller.StartGame(s.ctx, "room-1", "p1")
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ControllerSuite) TestStartGameFailsWhenAlreadyPlaying() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, err := s.controller.StartGame(s.ctx, "room-1", "p1")
	s.Require().NoError(err)

	_, err = s.controller.StartGame(s.ctx, "room-1", "p1")
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *ControllerSuite) TestStartGameFailsWhenFinished() {
	room := s.createRoom(model.DefaultSettings(), "p1", "p2")
	room.Game.Status = model.GameStatusFinished
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	_, err := s.controller.StartGame(s.ctx, "room-1", "p1")
	s.ErrorIs(err, model.ErrGameFinished)
}

// SubmitWord tests

func (s *ControllerSuite) TestSubmitWordSucceeds() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, err := s.controller.StartGame(s.ctx, "room-1", "p1")
	s.Require().NoError(err)

	room, err := s.controller.SubmitWord(s.ctx, "room-1", "p1", "Planet")
	s.Require().NoError(err)

	s.Equal("planet", room.Game.Word)
	s.NotEqual("planet", room.Game.ScrambledWord)
	s.Len(room.Game.ScrambledWord, 6)
	s.Equal(s.clock.Now(), room.Game.RoundStartedAt)
	s.Nil(room.Game.RoundEndsAt)
	s.False(room.Game.WordFound)
}

func (s *ControllerSuite) TestSubmitWordTrimsWhitespace() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	room, err := s.controller.SubmitWord(s.ctx, "room-1", "p1", "  cat  ")
	s.Require().NoError(err)
	s.Equal("cat", room.Game.Word)
}

func (s *ControllerSuite) TestSubmitWordFailsWhenEmpty() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	_, err := s.controller.SubmitWord(s.ctx, "room-1", "p1", "   ")
	s.ErrorIs(err, model.ErrEmptyWord)
}

func (s *ControllerSuite) TestSubmitWordFailsForNonGiver() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	_, err := s.controller.SubmitWord(s.ctx, "room-1", "p2", "cat")
	s.ErrorIs(err, model.ErrNotWordGiver)
}

func (s *ControllerSuite) TestSubmitWordFailsWhenAlreadySet() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")
	_, err := s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")
	s.Require().NoError(err)

	_, err = s.controller.SubmitWord(s.ctx, "room-1", "p1", "dog")
	s.ErrorIs(err, model.ErrWordAlreadySet)
}

func (s *ControllerSuite) TestSubmitWordFailsBeforeGameStart() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")

	_, err := s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")
	s.ErrorIs(err, model.ErrGameNotStarted)
}

// GetCurrentWord tests

func (s *ControllerSuite) TestGetCurrentWordReturnsWordToGiver() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")
	_, _ = s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")

	word, err := s.controller.GetCurrentWord(s.ctx, "room-1", "p1")
	s.Require().NoError(err)
	s.Equal("cat", word)
}

func (s *ControllerSuite) TestGetCurrentWordDeniedToGuessers() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")
	_, _ = s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")

	_, err := s.controller.GetCurrentWord(s.ctx, "room-1", "p2")
	s.ErrorIs(err, model.ErrNotWordGiver)
}

func (s *ControllerSuite) TestGetCurrentWordFailsWithoutActiveWord() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	_, err := s.controller.GetCurrentWord(s.ctx, "room-1", "p1")
	s.ErrorIs(err, model.ErrNoActiveWord)
}

// SubmitGuess tests

func (s *ControllerSuite) startRound(word string, playerIDs ...model.PlayerID) {
	s.createRoom(model.DefaultSettings(), playerIDs...)
	_, err := s.controller.StartGame(s.ctx, "room-1", playerIDs[0])
	s.Require().NoError(err)
	_, err = s.controller.SubmitWord(s.ctx, "room-1", playerIDs[0], word)
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestSubmitGuessWrongGuessRecorded() {
	s.startRound("cat", "p1", "p2")

	guess, room, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "dog")
	s.Require().NoError(err)

	s.False(guess.Correct)
	s.Equal(0, guess.Points)
	s.False(room.Game.WordFound)
	s.Len(room.Game.Guesses, 1)
	s.Equal(0, room.GetMember("p2").Score)
}

func (s *ControllerSuite) TestSubmitGuessFirstCorrectWinsRound() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(9 * time.Second)
	guess, room, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "CAT")
	s.Require().NoError(err)

	// 9s of 45s leaves 80% of the base 100 points
	s.True(guess.Correct)
	s.Equal(80, guess.Points)
	s.True(room.Game.WordFound)
	s.Equal(model.PlayerID("p2"), room.Game.RoundWinner)
	s.Equal(80, room.GetMember("p2").Score)
}

func (s *ControllerSuite) TestSubmitGuessCorrectEchoHidesWord() {
	s.startRound("cat", "p1", "p2", "p3")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "dog")
	s.Require().NoError(err)
	_, _, err = s.controller.SubmitGuess(s.ctx, "room-1", "p3", "cat")
	s.Require().NoError(err)

	// The wrong echo keeps its text; the correct echo would spell out
	// the secret word, so it is logged blank
	history, err := s.chatService.History(s.ctx, "room-1", 0)
	s.Require().NoError(err)
	s.Require().True(len(history) >= 2)

	var wrong, correct *model.ChatMessage
	for _, msg := range history {
		switch msg.Kind {
		case model.MessageKindWrong:
			wrong = msg
		case model.MessageKindCorrect:
			correct = msg
		}
	}
	s.Require().NotNil(wrong)
	s.Equal("dog", wrong.Text)
	s.Require().NotNil(correct)
	s.Empty(correct.Text)
}

func (s *ControllerSuite) TestSubmitGuessOpensSuddenDeathWindow() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(9 * time.Second)
	_, room, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)

	// 3-letter word opens the minimum 3s window
	s.Require().NotNil(room.Game.RoundEndsAt)
	s.Equal(s.clock.Now().Add(3*time.Second), *room.Game.RoundEndsAt)
}

func (s *ControllerSuite) TestSubmitGuessLateCorrectScoresNothing() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(5 * time.Second)
	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)

	s.clock.Advance(time.Second)
	guess, room, err := s.controller.SubmitGuess(s.ctx, "room-1", "p3", "cat")
	s.Require().NoError(err)

	s.True(guess.Correct)
	s.Equal(0, guess.Points)
	s.Equal(model.PlayerID("p2"), room.Game.RoundWinner)
	s.Equal(0, room.GetMember("p3").Score)
}

func (s *ControllerSuite) TestSubmitGuessRejectedAfterSuddenDeathCloses() {
	s.startRound("cat", "p1", "p2", "p3")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)

	s.clock.Advance(4 * time.Second)
	_, _, err = s.controller.SubmitGuess(s.ctx, "room-1", "p3", "cat")
	s.ErrorIs(err, model.ErrRoundOver)
}

func (s *ControllerSuite) TestSubmitGuessRejectedAfterRoundDeadline() {
	s.startRound("cat", "p1", "p2")

	s.clock.Advance(46 * time.Second)
	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.ErrorIs(err, model.ErrRoundOver)
}

func (s *ControllerSuite) TestSubmitGuessGiverCannotGuess() {
	s.startRound("cat", "p1", "p2")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p1", "cat")
	s.ErrorIs(err, model.ErrGiverCannotGuess)
}

func (s *ControllerSuite) TestSubmitGuessDuplicateRejected() {
	s.startRound("cat", "p1", "p2")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "dog")
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitGuess(s.ctx, "room-1", "p2", " DOG ")
	s.ErrorIs(err, model.ErrDuplicateGuess)
}

func (s *ControllerSuite) TestSubmitGuessSamePlayerMayRetryDifferentText() {
	s.startRound("cat", "p1", "p2")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "dog")
	s.Require().NoError(err)

	guess, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)
	s.True(guess.Correct)
}

func (s *ControllerSuite) TestSubmitGuessFailsForNonMember() {
	s.startRound("cat", "p1", "p2")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "stranger", "cat")
	s.ErrorIs(err, model.ErrNotInRoom)
}

func (s *ControllerSuite) TestSubmitGuessFailsWithoutActiveWord() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.ErrorIs(err, model.ErrNoActiveWord)
}

func (s *ControllerSuite) TestSubmitGuessFailsWhenEmpty() {
	s.startRound("cat", "p1", "p2")

	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "  ")
	s.ErrorIs(err, model.ErrEmptyGuess)
}

func (s *ControllerSuite) TestSubmitGuessCustomRoundDuration() {
	settings := model.DefaultSettings()
	settings.RoundDuration = 60 * time.Second
	s.createRoom(settings, "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")
	_, _ = s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")

	s.clock.Advance(10 * time.Second)
	guess, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)
	s.Equal(83, guess.Points)
}

// ResolveExpiredRound tests

func (s *ControllerSuite) TestResolveExpiredRoundNoopBeforeDeadline() {
	s.startRound("cat", "p1", "p2")

	s.clock.Advance(44 * time.Second)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.False(resolved)
}

func (s *ControllerSuite) TestResolveExpiredRoundNoopWithoutActiveWord() {
	s.createRoom(model.DefaultSettings(), "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")

	s.clock.Advance(time.Hour)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.False(resolved)
}

func (s *ControllerSuite) TestResolveExpiredRoundTimeoutAwardsConsolation() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(46 * time.Second)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.True(resolved)

	room := s.getRoom()
	s.Equal(scoring.ConsolationPoints, room.GetMember("p1").Score)
	s.Equal(2, room.Game.CurrentRound)
	s.Equal(model.PlayerID("p2"), room.Game.CurrentGiver())
	s.False(room.Game.WordSet())
	s.Empty(room.Game.Guesses)
}

func (s *ControllerSuite) TestResolveExpiredRoundHappensExactlyOnce() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(46 * time.Second)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.True(resolved)

	resolved, err = s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.False(resolved)

	room := s.getRoom()
	s.Equal(scoring.ConsolationPoints, room.GetMember("p1").Score)
	s.Equal(2, room.Game.CurrentRound)
}

func (s *ControllerSuite) TestResolveExpiredRoundAfterWinNoConsolation() {
	s.startRound("cat", "p1", "p2", "p3")

	s.clock.Advance(5 * time.Second)
	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)

	s.clock.Advance(4 * time.Second)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.True(resolved)

	room := s.getRoom()
	s.Equal(0, room.GetMember("p1").Score)
	s.Equal(2, room.Game.CurrentRound)
}

func (s *ControllerSuite) TestResolveExpiredRoundGiverRotatesEachRound() {
	s.startRound("cat", "p1", "p2", "p3")

	givers := []model.PlayerID{"p2", "p3", "p1"}
	for _, want := range givers {
		s.clock.Advance(time.Hour)
		resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
		s.Require().NoError(err)
		s.Require().True(resolved)

		room := s.getRoom()
		s.Equal(want, room.Game.CurrentGiver())

		_, err = s.controller.SubmitWord(s.ctx, "room-1", want, "word")
		s.Require().NoError(err)
	}
}

func (s *ControllerSuite) TestResolveExpiredRoundFinishesGameAfterLastRound() {
	settings := model.DefaultSettings()
	settings.TotalRounds = 1
	s.createRoom(settings, "p1", "p2")
	_, _ = s.controller.StartGame(s.ctx, "room-1", "p1")
	_, _ = s.controller.SubmitWord(s.ctx, "room-1", "p1", "cat")

	s.clock.Advance(5 * time.Second)
	_, _, err := s.controller.SubmitGuess(s.ctx, "room-1", "p2", "cat")
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Second)
	resolved, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)
	s.True(resolved)

	room := s.getRoom()
	s.Equal(model.GameStatusFinished, room.Game.Status)
	s.False(room.Game.WordSet())
	s.Equal(1, room.Game.CurrentRound)
	// Winner's cumulative score survives the finish
	s.Greater(room.GetMember("p2").Score, 0)
}

func (s *ControllerSuite) TestResolveExpiredRoundMissingRoom() {
	_, err := s.controller.ResolveExpiredRound(s.ctx, "missing")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// HandlePlayerLeft tests

func (s *ControllerSuite) removeMember(room *model.Room, playerID model.PlayerID) {
	for i := range room.Members {
		if room.Members[i].Player.ID == playerID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			return
		}
	}
}

func (s *ControllerSuite) TestHandlePlayerLeftGiverVoidsActiveRound() {
	s.startRound("cat", "p1", "p2", "p3")

	room := s.getRoom()
	s.removeMember(room, "p1")
	s.controller.HandlePlayerLeft(s.ctx, room, "p1")

	s.Equal(model.GameStatusPlaying, room.Game.Status)
	s.Equal(1, room.Game.CurrentRound)
	s.False(room.Game.WordSet())
	s.Equal([]model.PlayerID{"p2", "p3"}, room.Game.Rotation)
	s.Equal(model.PlayerID("p2"), room.Game.CurrentGiver())
}

func (s *ControllerSuite) TestHandlePlayerLeftGuesserKeepsRoundRunning() {
	s.startRound("cat", "p1", "p2", "p3")

	room := s.getRoom()
	s.removeMember(room, "p3")
	s.controller.HandlePlayerLeft(s.ctx, room, "p3")

	s.Equal(model.GameStatusPlaying, room.Game.Status)
	s.True(room.Game.WordSet())
	s.Equal([]model.PlayerID{"p1", "p2"}, room.Game.Rotation)
	s.Equal(model.PlayerID("p1"), room.Game.CurrentGiver())
}

func (s *ControllerSuite) TestHandlePlayerLeftBelowMinimumFinishesGame() {
	s.startRound("cat", "p1", "p2")

	room := s.getRoom()
	s.removeMember(room, "p2")
	s.controller.HandlePlayerLeft(s.ctx, room, "p2")

	s.Equal(model.GameStatusFinished, room.Game.Status)
	s.False(room.Game.WordSet())
}

func (s *ControllerSuite) TestHandlePlayerLeftBeforeGiverAdjustsIndex() {
	s.startRound("cat", "p1", "p2", "p3")

	// Advance so p2 is the giver
	s.clock.Advance(time.Hour)
	_, err := s.controller.ResolveExpiredRound(s.ctx, "room-1")
	s.Require().NoError(err)

	room := s.getRoom()
	s.Require().Equal(model.PlayerID("p2"), room.Game.CurrentGiver())

	s.removeMember(room, "p1")
	s.controller.HandlePlayerLeft(s.ctx, room, "p1")

	s.Equal([]model.PlayerID{"p2", "p3"}, room.Game.Rotation)
	s.Equal(model.PlayerID("p2"), room.Game.CurrentGiver())
}

func (s *ControllerSuite) TestHandlePlayerLeftIgnoredWhileWaiting() {
	s.createRoom(model.DefaultSettings(), "p1", "p2", "p3")

	room := s.getRoom()
	s.removeMember(room, "p3")
	s.controller.HandlePlayerLeft(s.ctx, room, "p3")

	s.Equal(model.GameStatusWaiting, room.Game.Status)
}
