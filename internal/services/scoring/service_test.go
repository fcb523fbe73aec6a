package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Score tests

func (s *ServiceSuite) TestScoreIncorrectGuessIsZero() {
	points := s.service.Score(false, 5*time.Second, 45*time.Second, 100, 0.3)
	s.Equal(0, points)
}

func (s *ServiceSuite) TestScoreInstantGuessEarnsFullPoints() {
	points := s.service.Score(true, 0, 45*time.Second, 100, 0.3)
	s.Equal(100, points)
}

func (s *ServiceSuite) TestScoreScalesWithElapsedTime() {
	// 10s into a 60s round leaves 5/6 of the time: 100 * 0.8333 rounds to 83
	points := s.service.Score(true, 10*time.Second, 60*time.Second, 100, 0.3)
	s.Equal(83, points)
}

func (s *ServiceSuite) TestScoreHalfwayThroughRound() {
	points := s.service.Score(true, 30*time.Second, 60*time.Second, 100, 0.3)
	s.Equal(50, points)
}

func (s *ServiceSuite) TestScoreFlooredAtMinMultiplier() {
	// 59s of 60s would be multiplier 0.0167; the floor keeps it at 0.3
	points := s.service.Score(true, 59*time.Second, 60*time.Second, 100, 0.3)
	s.Equal(30, points)
}

func (s *ServiceSuite) TestScoreElapsedBeyondDurationStillPaysFloor() {
	points := s.service.Score(true, 90*time.Second, 60*time.Second, 100, 0.3)
	s.Equal(30, points)
}

func (s *ServiceSuite) TestScoreNegativeElapsedClampsToZero() {
	points := s.service.Score(true, -5*time.Second, 60*time.Second, 100, 0.3)
	s.Equal(100, points)
}

func (s *ServiceSuite) TestScoreZeroBasePointsIsZero() {
	points := s.service.Score(true, 0, 60*time.Second, 0, 0.3)
	s.Equal(0, points)
}

func (s *ServiceSuite) TestScoreZeroDurationIsZero() {
	points := s.service.Score(true, 0, 0, 100, 0.3)
	s.Equal(0, points)
}

func (s *ServiceSuite) TestScoreNegativeMinMultiplierTreatedAsZero() {
	points := s.service.Score(true, 2*time.Minute, 60*time.Second, 100, -1)
	s.Equal(0, points)
}

func (s *ServiceSuite) TestScoreNonIncreasingInElapsed() {
	prev := s.service.Score(true, 0, 45*time.Second, 100, 0.3)
	for elapsed := time.Second; elapsed <= 50*time.Second; elapsed += time.Second {
		points := s.service.Score(true, elapsed, 45*time.Second, 100, 0.3)
		s.LessOrEqual(points, prev)
		s.GreaterOrEqual(points, 0)
		prev = points
	}
}

// SuddenDeathWindow tests

func (s *ServiceSuite) TestSuddenDeathWindowScalesWithWordLength() {
	s.Equal(5*time.Second, s.service.SuddenDeathWindow(5))
	s.Equal(7*time.Second, s.service.SuddenDeathWindow(7))
}

func (s *ServiceSuite) TestSuddenDeathWindowFlooredForShortWords() {
	s.Equal(3*time.Second, s.service.SuddenDeathWindow(1))
	s.Equal(3*time.Second, s.service.SuddenDeathWindow(2))
	s.Equal(3*time.Second, s.service.SuddenDeathWindow(3))
}

func (s *ServiceSuite) TestSuddenDeathWindowCappedForLongWords() {
	s.Equal(10*time.Second, s.service.SuddenDeathWindow(10))
	s.Equal(10*time.Second, s.service.SuddenDeathWindow(15))
}
