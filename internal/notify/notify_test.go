package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/notify/mocks"
)

type FanoutTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockNotifier *mocks.MockNotifier
	ctx          context.Context
	msg          *notify.Message
}

func (s *FanoutTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockNotifier = mocks.NewMockNotifier(s.mockCtrl)
	s.ctx = context.Background()
	s.msg = &notify.Message{Kind: notify.KindSeatAvailable, Text: "a seat opened up"}
}

func (s *FanoutTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestFanoutTestSuite(t *testing.T) {
	suite.Run(t, new(FanoutTestSuite))
}

func (s *FanoutTestSuite) TestEveryRecipientAttempted() {
	s.mockNotifier.EXPECT().Notify(s.ctx, "u1", s.msg).Return(nil)
	s.mockNotifier.EXPECT().Notify(s.ctx, "u2", s.msg).Return(errors.New("blocked DMs"))
	s.mockNotifier.EXPECT().Notify(s.ctx, "u3", s.msg).Return(nil)

	out := notify.Fanout(s.ctx, s.mockNotifier, logger.NewTestLogger(s.T()), []string{"u1", "u2", "u3"}, s.msg)

	s.Equal(3, out.Attempted)
	s.Equal(2, out.Delivered)
	s.Equal(1, out.Failed)
	s.Require().Len(out.Results, 3)
	s.Equal("u2", out.Results[1].UserID)
	s.Error(out.Results[1].Err)
}

func (s *FanoutTestSuite) TestPanicIsIsolated() {
	s.mockNotifier.EXPECT().Notify(s.ctx, "u1", s.msg).DoAndReturn(
		func(context.Context, string, *notify.Message) error {
			panic("transport exploded")
		})
	s.mockNotifier.EXPECT().Notify(s.ctx, "u2", s.msg).Return(nil)

	out := notify.Fanout(s.ctx, s.mockNotifier, logger.NewNoOpLogger(), []string{"u1", "u2"}, s.msg)

	s.Equal(1, out.Failed)
	s.Equal(1, out.Delivered)
	s.ErrorContains(out.Results[0].Err, "transport exploded")
}

func (s *FanoutTestSuite) TestNoRecipients() {
	out := notify.Fanout(s.ctx, s.mockNotifier, logger.NewNoOpLogger(), nil, s.msg)

	s.Zero(out.Attempted)
	s.Empty(out.Results)
}

func (s *FanoutTestSuite) TestSend() {
	s.mockNotifier.EXPECT().Notify(s.ctx, "u1", s.msg).Return(nil)
	s.True(notify.Send(s.ctx, s.mockNotifier, logger.NewNoOpLogger(), "u1", s.msg))

	s.mockNotifier.EXPECT().Notify(s.ctx, "u1", s.msg).Return(errors.New("gone"))
	s.False(notify.Send(s.ctx, s.mockNotifier, logger.NewNoOpLogger(), "u1", s.msg))
}

func TestTrainingActions(t *testing.T) {
	action := notify.CheckInAction(500)
	assert.Equal(t, "tid/500", action.CustomID)

	id, ok := notify.ParseTrainingAction(action.CustomID, notify.ActionPrefixCheckIn)
	assert.True(t, ok)
	assert.Equal(t, int64(500), id)

	for _, bad := range []string{"ntid/500", "tid/", "tid/abc", "tid/-1"} {
		_, ok := notify.ParseTrainingAction(bad, notify.ActionPrefixCheckIn)
		assert.False(t, ok, bad)
	}
}
