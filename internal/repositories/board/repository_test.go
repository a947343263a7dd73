package board

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// repositoryContract holds the behavior every Repository must share
type repositoryContract struct {
	suite.Suite
	repo    Repository
	testNow time.Time
}

func (s *repositoryContract) newBoard(channelID string) *models.Board {
	return &models.Board{
		ID:        "board-" + channelID,
		ChannelID: channelID,
		MessageID: "message-1",
		Roster: []models.Participant{
			{ID: 1, Name: "Ana", Position: 1},
			{ID: 2, Name: "Beto", Position: 2},
		},
		History: []models.HistoryEntry{
			models.NewMoveEntry(models.ActionMoveUp, 2, 1, 2),
			models.NewSnapshotEntry(models.ActionRemove, []models.Participant{
				{ID: 1, Name: "Ana", Position: 1},
				{ID: 2, Name: "Beto", Position: 2},
				{ID: 3, Name: "Carla", Position: 5},
			}),
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *repositoryContract) TestSaveAndGetBoard() {
	board := s.newBoard("channel-1")

	err := s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: board})
	s.Require().NoError(err)

	got, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(board.ID, got.ID)
	s.Equal(board.MessageID, got.MessageID)
	s.Equal(board.Roster, got.Roster)
	s.Equal(board.History, got.History)
	s.Equal(s.testNow.Unix(), got.CreatedAt.Unix())
}

func (s *repositoryContract) TestSaveReplacesBoard() {
	board := s.newBoard("channel-1")
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: board}))

	board.ID = "board-2"
	board.Roster = []models.Participant{{ID: 1, Name: "Zoe", Position: 1}}
	board.History = nil
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: board}))

	got, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal("board-2", got.ID)
	s.Equal("Zoe", got.Roster[0].Name)
	s.Empty(got.History)
}

func (s *repositoryContract) TestReturnedBoardIsDetached() {
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: s.newBoard("channel-1")}))

	got, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	got.Roster[0].Position = 8
	got.History[1].Roster[2].Position = 1

	again, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(1, again.Roster[0].Position)
	s.Equal(5, again.History[1].Roster[2].Position)
}

func (s *repositoryContract) TestGetMissingBoard() {
	_, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{
		ChannelID: "nowhere",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrBoardNotFound)
}

func (s *repositoryContract) TestDeleteBoard() {
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: s.newBoard("channel-1")}))
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: s.newBoard("channel-2")}))

	err := s.repo.DeleteBoard(context.Background(), &DeleteBoardInput{ChannelID: "channel-1"})
	s.Require().NoError(err)

	_, err = s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-1"})
	s.ErrorIs(err, ErrBoardNotFound)

	_, err = s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-2"})
	s.NoError(err)

	err = s.repo.DeleteBoard(context.Background(), &DeleteBoardInput{ChannelID: "channel-1"})
	s.ErrorIs(err, ErrBoardNotFound)
}

func (s *repositoryContract) TestRejectsBadInput() {
	ctx := context.Background()

	s.Error(s.repo.SaveBoard(ctx, nil))
	s.Error(s.repo.SaveBoard(ctx, &SaveBoardInput{}))
	s.Error(s.repo.SaveBoard(ctx, &SaveBoardInput{Board: &models.Board{}}))

	_, err := s.repo.GetBoardByChannel(ctx, &GetBoardByChannelInput{})
	s.Error(err)
	s.Error(s.repo.DeleteBoard(ctx, nil))
}

type MemoryRepositoryTestSuite struct {
	repositoryContract
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

type RedisRepositoryTestSuite struct {
	repositoryContract
	mr     *miniredis.Miniredis
	client *redis.Client
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		TTL:         time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveSetsSessionTTL() {
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: s.newBoard("channel-1")}))

	s.True(s.mr.Exists("board:channel-1"))
	s.Equal(time.Hour, s.mr.TTL("board:channel-1"))
}

func (s *RedisRepositoryTestSuite) TestBoardExpiresWithSession() {
	s.Require().NoError(s.repo.SaveBoard(context.Background(), &SaveBoardInput{Board: s.newBoard("channel-1")}))

	s.mr.FastForward(2 * time.Hour)

	_, err := s.repo.GetBoardByChannel(context.Background(), &GetBoardByChannelInput{ChannelID: "channel-1"})
	s.ErrorIs(err, ErrBoardNotFound)
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)

	repo, err := NewRedis(&Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.Equal(DefaultTTL, repo.ttl)
}
