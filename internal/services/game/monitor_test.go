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

type MonitorSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	monitor    *Monitor
	ctx        context.Context
}

func TestMonitorSuite(t *testing.T) {
	suite.Run(t, new(MonitorSuite))
}

func (s *MonitorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	logger := testutil.NopLogger()
	chatService := chat.New(s.storage, s.clock, rnd, logger)
	s.controller = New(s.storage, s.clock, lock.New(), scramble.New(rnd), scoring.New(), chatService, logger)
	s.monitor = NewMonitor(s.storage, s.controller, 0, logger)
	s.ctx = context.Background()
}

func (s *MonitorSuite) startPlayingRoom(id model.RoomID, word string) {
	now := s.clock.Now()
	var members []model.RoomMember
	for _, pid := range []model.PlayerID{"p1", "p2"} {
		player := model.Player{ID: pid, DisplayName: string(pid), CreatedAt: now}
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &player))
		members = append(members, model.RoomMember{
			Player:   player,
			IsHost:   pid == "p1",
			JoinedAt: now,
		})
	}

	room := &model.Room{
		ID:        id,
		Code:      model.RoomCode("CODE" + id[len(id)-2:]),
		Members:   members,
		Game:      model.GameState{Status: model.GameStatusWaiting},
		Settings:  model.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	_, err := s.controller.StartGame(s.ctx, id, "p1")
	s.Require().NoError(err)
	_, err = s.controller.SubmitWord(s.ctx, id, "p1", word)
	s.Require().NoError(err)
}

func (s *MonitorSuite) TestSweepResolvesExpiredRound() {
	s.startPlayingRoom("room-a1", "cat")

	s.clock.Advance(46 * time.Second)
	s.monitor.Sweep(s.ctx)

	room, err := s.storage.GetRoom(s.ctx, "room-a1")
	s.Require().NoError(err)
	s.Equal(2, room.Game.CurrentRound)
	s.Equal(scoring.ConsolationPoints, room.GetMember("p1").Score)
}

func (s *MonitorSuite) TestSweepLeavesLiveRoundsAlone() {
	s.startPlayingRoom("room-a1", "cat")

	s.clock.Advance(30 * time.Second)
	s.monitor.Sweep(s.ctx)

	room, err := s.storage.GetRoom(s.ctx, "room-a1")
	s.Require().NoError(err)
	s.Equal(1, room.Game.CurrentRound)
	s.True(room.Game.WordSet())
}

func (s *MonitorSuite) TestSweepHandlesMultipleRooms() {
	s.startPlayingRoom("room-a1", "cat")
	s.startPlayingRoom("room-b2", "dog")

	s.clock.Advance(time.Minute)
	s.monitor.Sweep(s.ctx)

	for _, id := range []model.RoomID{"room-a1", "room-b2"} {
		room, err := s.storage.GetRoom(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(2, room.Game.CurrentRound)
	}
}

func (s *MonitorSuite) TestSweepIsIdempotent() {
	s.startPlayingRoom("room-a1", "cat")

	s.clock.Advance(time.Minute)
	s.monitor.Sweep(s.ctx)
	s.monitor.Sweep(s.ctx)

	room, err := s.storage.GetRoom(s.ctx, "room-a1")
	s.Require().NoError(err)
	s.Equal(2, room.Game.CurrentRound)
	s.Equal(scoring.ConsolationPoints, room.GetMember("p1").Score)
}

func (s *MonitorSuite) TestSweepSkipsWaitingRooms() {
	now := s.clock.Now()
	room := &model.Room{
		ID:        "room-a1",
		Code:      "WAIT01",
		Game:      model.GameState{Status: model.GameStatusWaiting},
		Settings:  model.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	s.clock.Advance(time.Hour)
	s.monitor.Sweep(s.ctx)

	got, err := s.storage.GetRoom(s.ctx, "room-a1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusWaiting, got.Game.Status)
}

func (s *MonitorSuite) TestStartAndStop() {
	s.monitor = NewMonitor(s.storage, s.controller, time.Millisecond, testutil.NopLogger())
	s.monitor.Start(s.ctx)
	time.Sleep(10 * time.Millisecond)
	s.monitor.Stop()
}

func (s *MonitorSuite) TestStopWithoutStartIsSafe() {
	s.monitor.Stop()
}
