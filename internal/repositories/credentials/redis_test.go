package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/sportbot/internal/common/sealer"
	"github.com/KirkDiggler/sportbot/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	creds := &models.Credentials{
		UserID:    "7",
		StudentID: "4242",
		SessionID: "sess-1",
		CSRFToken: "csrf-1",
	}

	err := s.repo.Save(s.ctx, &SaveInput{Credentials: creds})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &GetInput{UserID: "7"})
	s.Require().NoError(err)
	s.Equal(creds, got)

	ids, err := s.repo.ListUserIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"7"}, ids)
}

func (s *RedisRepositoryTestSuite) TestSaveReplaces() {
	s.Require().NoError(s.repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{UserID: "7", SessionID: "old"}}))
	s.Require().NoError(s.repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{UserID: "7", SessionID: "new"}}))

	got, err := s.repo.Get(s.ctx, &GetInput{UserID: "7"})
	s.Require().NoError(err)
	s.Equal("new", got.SessionID)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, &GetInput{UserID: "missing"})
	s.ErrorIs(err, ErrCredentialsNotFound)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{UserID: "7"}}))
	s.Require().NoError(s.repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{UserID: "8"}}))

	s.Require().NoError(s.repo.Delete(s.ctx, &DeleteInput{UserID: "7"}))
	// Deleting twice is fine
	s.Require().NoError(s.repo.Delete(s.ctx, &DeleteInput{UserID: "7"}))

	_, err := s.repo.Get(s.ctx, &GetInput{UserID: "7"})
	s.ErrorIs(err, ErrCredentialsNotFound)

	ids, err := s.repo.ListUserIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"8"}, ids)
}

func (s *RedisRepositoryTestSuite) TestSealedAtRest() {
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		Sealer:      sealer.New("passphrase"),
	})
	s.Require().NoError(err)

	s.Require().NoError(repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{UserID: "9", SessionID: "very-secret"}}))

	raw, err := s.mr.Get("credentials:9")
	s.Require().NoError(err)
	s.NotContains(raw, "very-secret")

	got, err := repo.Get(s.ctx, &GetInput{UserID: "9"})
	s.Require().NoError(err)
	s.Equal("very-secret", got.SessionID)
}

func (s *RedisRepositoryTestSuite) TestInvalidInput() {
	s.Error(s.repo.Save(s.ctx, nil))
	s.Error(s.repo.Save(s.ctx, &SaveInput{Credentials: &models.Credentials{}}))
	_, err := s.repo.Get(s.ctx, &GetInput{})
	s.Error(err)
	s.Error(s.repo.Delete(s.ctx, nil))
}

func TestNewRedisValidation(t *testing.T) {
	_, err := NewRedis(nil)
	assert.Error(t, err)

	_, err = NewRedis(&Config{})
	assert.Error(t, err)
}

func TestGetPropagatesRedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")
	mock.ExpectGet("credentials:7").SetErr(errors.New("connection reset"))
	mock.ExpectSMembers("credentials_users").SetErr(errors.New("connection reset"))

	repo, err := NewRedis(&Config{RedisClient: db})
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), &GetInput{UserID: "7"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCredentialsNotFound)

	_, err = repo.ListUserIDs(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
