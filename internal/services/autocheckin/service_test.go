package autocheckin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/sportbot/internal/common/clock/mocks"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	uuidMocks "github.com/KirkDiggler/sportbot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
	notifyMocks "github.com/KirkDiggler/sportbot/internal/notify/mocks"
	"github.com/KirkDiggler/sportbot/internal/portal"
	portalMocks "github.com/KirkDiggler/sportbot/internal/portal/mocks"
	autocheckinRepo "github.com/KirkDiggler/sportbot/internal/repositories/autocheckin"
	autocheckinRepoMocks "github.com/KirkDiggler/sportbot/internal/repositories/autocheckin/mocks"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	semesterMocks "github.com/KirkDiggler/sportbot/internal/services/semester/mocks"
	sessionMocks "github.com/KirkDiggler/sportbot/internal/services/session/mocks"
)

type AutoCheckinServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRegistry *sessionMocks.MockRegistry
	mockPortal   *portalMocks.MockClient
	mockResolver *semesterMocks.MockResolver
	mockNotifier *notifyMocks.MockNotifier
	mockClock    *clockMocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	mr           *miniredis.Miniredis
	client       *redis.Client
	repo         autocheckinRepo.Repository
	service      Service
	ctx          context.Context

	now         time.Time
	userID      string
	userSession *models.Session
	key         models.RecurringKey
	otherKey    models.RecurringKey
}

func (s *AutoCheckinServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRegistry = sessionMocks.NewMockRegistry(s.mockCtrl)
	s.mockPortal = portalMocks.NewMockClient(s.mockCtrl)
	s.mockResolver = semesterMocks.NewMockResolver(s.mockCtrl)
	s.mockNotifier = notifyMocks.NewMockNotifier(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo, err := autocheckinRepo.NewRedis(&autocheckinRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo

	msgs, err := messaging.NewService(&messaging.ServiceConfig{Location: time.UTC, Seed: 1})
	s.Require().NoError(err)

	s.now = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	s.userID = "7"
	s.userSession = &models.Session{UserID: s.userID, SessionID: "sess", CSRFToken: "csrf", StudentID: "42"}
	s.key = models.RecurringKey{GroupID: 12, Weekday: time.Tuesday, Start: "18:00", End: "19:30"}
	s.otherKey = models.RecurringKey{GroupID: 13, Weekday: time.Friday, Start: "09:00", End: "10:30"}

	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("run-1").AnyTimes()

	svc, err := New(&Config{
		Registry:        s.mockRegistry,
		PortalClient:    s.mockPortal,
		AutoCheckinRepo: s.repo,
		Resolver:        s.mockResolver,
		Notifier:        s.mockNotifier,
		Messaging:       msgs,
		Location:        time.UTC,
		Clock:           s.mockClock,
		UUID:            s.mockUUID,
		Logger:          logger.NewTestLogger(s.T()),
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *AutoCheckinServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestAutoCheckinServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoCheckinServiceTestSuite))
}

func (s *AutoCheckinServiceTestSuite) ref(id int64, startIn time.Duration) models.TrainingRef {
	start := s.now.Add(startIn)
	return models.TrainingRef{ID: id, Start: start, End: start.Add(90 * time.Minute)}
}

func (s *AutoCheckinServiceTestSuite) detail(ref models.TrainingRef, load int, canCheckIn, checkedIn bool) *models.TrainingSlot {
	return &models.TrainingSlot{
		ID:         ref.ID,
		GroupID:    s.key.GroupID,
		GroupName:  "Volleyball",
		Start:      ref.Start,
		End:        ref.End,
		Capacity:   10,
		Load:       load,
		CanCheckIn: canCheckIn,
		CheckedIn:  checkedIn,
	}
}

func (s *AutoCheckinServiceTestSuite) store(key models.RecurringKey, refs ...models.TrainingRef) {
	s.Require().NoError(s.repo.SetKey(s.ctx, &autocheckinRepo.SetKeyInput{UserID: s.userID, Key: key, Refs: refs}))
}

func (s *AutoCheckinServiceTestSuite) stored(key models.RecurringKey) []int64 {
	refs, err := s.repo.GetKey(s.ctx, &autocheckinRepo.GetKeyInput{UserID: s.userID, Key: key})
	if errors.Is(err, autocheckinRepo.ErrKeyNotFound) {
		return nil
	}
	s.Require().NoError(err)

	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

func (s *AutoCheckinServiceTestSuite) usable() {
	s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(true).AnyTimes()
	s.mockRegistry.EXPECT().Get(s.userID).Return(s.userSession).AnyTimes()
}

func (s *AutoCheckinServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{
		Registry:        s.mockRegistry,
		PortalClient:    s.mockPortal,
		AutoCheckinRepo: s.repo,
		Resolver:        s.mockResolver,
		Notifier:        s.mockNotifier,
		Messaging:       nil,
	})
	s.ErrorIs(err, ErrNilMessaging)
}

func (s *AutoCheckinServiceTestSuite) TestBeyondLookaheadDoesNothing() {
	far := s.ref(700, 9*24*time.Hour)
	s.store(s.key, far)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(700)).
		Return(s.detail(far, 0, false, false), nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopNotYetOpen])
	s.Equal([]int64{700}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestChecksInExactlyOnce() {
	near := s.ref(701, 2*24*time.Hour)
	next := s.ref(702, 9*24*time.Hour)
	s.store(s.key, near, next)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(701)).
		Return(s.detail(near, 3, true, false), nil)
	s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(701)).Return(nil).Times(1)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg *notify.Message) error {
			s.Equal(notify.KindCheckedIn, msg.Kind)
			s.Contains(msg.Text, "Volleyball")
			return nil
		}).Times(1)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopActed])
	s.Equal([]int64{702}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestStaleEntriesDoNotBlock() {
	ended := s.ref(710, -2*24*time.Hour)
	done := s.ref(711, 24*time.Hour)
	open := s.ref(712, 3*24*time.Hour)
	s.store(s.key, ended, done, open)
	s.usable()

	gomock.InOrder(
		s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(710)).
			Return(s.detail(ended, 10, false, false), nil),
		s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(711)).
			Return(s.detail(done, 5, false, true), nil),
		s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(712)).
			Return(s.detail(open, 5, true, false), nil),
		s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(712)).Return(nil),
	)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).Return(nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopActed])
	s.Empty(s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestNoSeatKeepsEntry() {
	full := s.ref(720, 24*time.Hour)
	s.store(s.key, full)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(720)).
		Return(s.detail(full, 10, false, false), nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopNoSeat])
	s.Equal([]int64{720}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestCheckInFailureKeepsEntry() {
	near := s.ref(721, 24*time.Hour)
	s.store(s.key, near)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(721)).
		Return(s.detail(near, 1, true, false), nil)
	s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(721)).
		Return(portal.ErrUnexpectedStatus)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopCheckInFailed])
	s.Equal([]int64{721}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestVanishedSlotDeletesKey() {
	gone := s.ref(730, 24*time.Hour)
	s.store(s.key, gone)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(730)).
		Return(nil, portal.ErrTrainingNotFound)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg *notify.Message) error {
			s.Equal(notify.KindSlotVanished, msg.Kind)
			s.Contains(msg.Text, "Tuesday 18:00-19:30")
			return nil
		})

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopVanished])
	s.Nil(s.stored(s.key))

	users, err := s.repo.ListUserIDs(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *AutoCheckinServiceTestSuite) TestFetchFailureIsolatedPerKey() {
	a := s.ref(740, 24*time.Hour)
	b := s.ref(741, 9*24*time.Hour)
	s.store(s.key, a)
	s.store(s.otherKey, b)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(740)).
		Return(nil, errors.New("timeout"))
	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(741)).
		Return(s.detail(b, 0, false, false), nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopFetchFailed])
	s.Equal(1, out.Stops[StopNotYetOpen])
	s.Equal([]int64{740}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestExhaustedKeyIsRefreshed() {
	s.store(s.key)
	s.usable()

	past := s.ref(750, -7*24*time.Hour)
	future := s.ref(751, 7*24*time.Hour)
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).Return([]models.TrainingRef{past, future}, nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopExhausted])
	s.Equal([]int64{751}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestExhaustedKeyWithNothingLeftIsDeleted() {
	s.store(s.key)
	s.usable()

	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).
		Return([]models.TrainingRef{s.ref(760, -24*time.Hour)}, nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopExhausted])
	s.Nil(s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestReloginPromptIsSentOnce() {
	s.store(s.key, s.ref(770, 24*time.Hour))

	s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(false).Times(2)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg *notify.Message) error {
			s.Equal(notify.KindReloginRequired, msg.Kind)
			return nil
		}).Times(1)

	for i := 0; i < 2; i++ {
		out, err := s.service.Reconcile(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, out.Skipped)
	}
	s.Equal([]int64{770}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestReloginPromptRearmsAfterRecovery() {
	far := s.ref(771, 9*24*time.Hour)
	s.store(s.key, far)

	gomock.InOrder(
		s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(false),
		s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(true),
		s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(false),
	)
	s.mockRegistry.EXPECT().Get(s.userID).Return(s.userSession)
	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(771)).
		Return(s.detail(far, 0, false, false), nil)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).Return(nil).Times(2)

	for i := 0; i < 3; i++ {
		_, err := s.service.Reconcile(s.ctx)
		s.Require().NoError(err)
	}
}

func (s *AutoCheckinServiceTestSuite) TestOfflineSessionCannotCheckIn() {
	s.store(s.key, s.ref(780, 24*time.Hour))

	s.mockRegistry.EXPECT().EnsureUsable(gomock.Any(), s.userID).Return(true)
	s.mockRegistry.EXPECT().Get(s.userID).Return(&models.Session{UserID: s.userID, StudentID: "42"})
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).Return(nil)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Skipped)
}

func (s *AutoCheckinServiceTestSuite) TestSubscribeStoresUpcomingOnly() {
	past := s.ref(790, -24*time.Hour)
	future := s.ref(791, 6*24*time.Hour)
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).Return([]models.TrainingRef{past, future}, nil)

	out, err := s.service.Subscribe(s.ctx, &SubscribeInput{UserID: s.userID, Key: s.key})
	s.Require().NoError(err)
	s.Len(out.Refs, 1)
	s.Equal([]int64{791}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestSubscribeWithNoMatchesCreatesNothing() {
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).Return([]models.TrainingRef{}, nil)

	_, err := s.service.Subscribe(s.ctx, &SubscribeInput{UserID: s.userID, Key: s.key})
	s.ErrorIs(err, ErrNoMatchingTrainings)
	s.Nil(s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestSubscribeTrainingDerivesKey() {
	slotRef := s.ref(800, 24*time.Hour)
	slot := s.detail(slotRef, 0, true, false)
	slot.Start = time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)
	slot.End = slot.Start.Add(90 * time.Minute)

	s.mockRegistry.EXPECT().Get(s.userID).Return(s.userSession)
	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(800)).Return(slot, nil)
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).
		Return([]models.TrainingRef{{ID: 800, Start: slot.Start, End: slot.End}}, nil)

	out, err := s.service.SubscribeTraining(s.ctx, &SubscribeTrainingInput{UserID: s.userID, TrainingID: 800})
	s.Require().NoError(err)
	s.Equal(s.key, out.Key)
}

func (s *AutoCheckinServiceTestSuite) TestConsumeTwiceIsIdempotent() {
	s.store(s.key, s.ref(810, 24*time.Hour), s.ref(811, 8*24*time.Hour))

	input := &ConsumeInput{UserID: s.userID, Key: s.key, TrainingID: 810}
	s.Require().NoError(s.service.Consume(s.ctx, input))
	once := s.stored(s.key)

	s.Require().NoError(s.service.Consume(s.ctx, input))
	s.Equal(once, s.stored(s.key))
	s.Equal([]int64{811}, once)
}

func (s *AutoCheckinServiceTestSuite) TestUnsubscribeAndList() {
	s.store(s.key, s.ref(820, 24*time.Hour))
	s.store(s.otherKey, s.ref(821, 24*time.Hour))

	s.Require().NoError(s.service.Unsubscribe(s.ctx, &UnsubscribeInput{UserID: s.userID, Key: s.key}))

	out, err := s.service.List(s.ctx, &ListInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Len(out.Subscriptions, 1)
	s.Contains(out.Subscriptions, s.otherKey)
}

func (s *AutoCheckinServiceTestSuite) withMockRepo() (*autocheckinRepoMocks.MockRepository, Service) {
	mockRepo := autocheckinRepoMocks.NewMockRepository(s.mockCtrl)
	msgs, err := messaging.NewService(&messaging.ServiceConfig{Location: time.UTC, Seed: 1})
	s.Require().NoError(err)

	svc, err := New(&Config{
		Registry:        s.mockRegistry,
		PortalClient:    s.mockPortal,
		AutoCheckinRepo: mockRepo,
		Resolver:        s.mockResolver,
		Notifier:        s.mockNotifier,
		Messaging:       msgs,
		Location:        time.UTC,
		Clock:           s.mockClock,
		UUID:            s.mockUUID,
	})
	s.Require().NoError(err)

	return mockRepo, svc
}

func (s *AutoCheckinServiceTestSuite) TestListFailureFailsTheTick() {
	mockRepo, svc := s.withMockRepo()
	mockRepo.EXPECT().ListUserIDs(gomock.Any()).Return(nil, errors.New("redis down"))

	_, err := svc.Reconcile(s.ctx)
	s.Error(err)
}

func (s *AutoCheckinServiceTestSuite) TestConsumeFailureAfterCheckIn() {
	mockRepo, svc := s.withMockRepo()
	near := s.ref(800, 24*time.Hour)
	s.usable()

	mockRepo.EXPECT().ListUserIDs(gomock.Any()).Return([]string{s.userID}, nil)
	mockRepo.EXPECT().GetKeys(gomock.Any(), &autocheckinRepo.GetKeysInput{UserID: s.userID}).
		Return(&autocheckinRepo.GetKeysOutput{
			Subscriptions: map[models.RecurringKey][]models.TrainingRef{s.key: {near}},
		}, nil)
	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(800)).
		Return(s.detail(near, 0, true, false), nil)
	s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(800)).Return(nil)
	mockRepo.EXPECT().RemoveTraining(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	out, err := svc.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopStoreFailed])
}

func (s *AutoCheckinServiceTestSuite) TestConsumedOccurrenceIsNeverRefilled() {
	last := s.ref(900, 2*24*time.Hour)
	later := s.ref(901, 9*24*time.Hour)
	s.store(s.key, last)
	s.usable()

	// Tick 1 checks in to the only listed occurrence
	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(900)).
		Return(s.detail(last, 3, true, false), nil).Times(1)
	s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(900)).Return(nil).Times(1)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).Return(nil).Times(1)

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopActed])
	s.Empty(s.stored(s.key))

	// The user cancels by hand; the index still lists 900 next to a new occurrence
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).Return([]models.TrainingRef{last, later}, nil).Times(1)

	out, err = s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopExhausted])
	s.Equal([]int64{901}, s.stored(s.key))

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(901)).
		Return(s.detail(later, 0, false, false), nil).Times(1)

	out, err = s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopNotYetOpen])
	s.Equal([]int64{901}, s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestConsumedLastOccurrenceExhaustsKey() {
	last := s.ref(910, 2*24*time.Hour)
	s.store(s.key, last)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(910)).
		Return(s.detail(last, 3, true, false), nil).Times(1)
	s.mockPortal.EXPECT().CheckIn(gomock.Any(), s.userSession, int64(910)).Return(nil).Times(1)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), s.userID, gomock.Any()).Return(nil).Times(1)
	s.mockResolver.EXPECT().Resolve(gomock.Any(), s.key).Return([]models.TrainingRef{last}, nil).Times(1)

	for i := 0; i < 3; i++ {
		_, err := s.service.Reconcile(s.ctx)
		s.Require().NoError(err)
	}

	s.Nil(s.stored(s.key))
}

func (s *AutoCheckinServiceTestSuite) TestThrottledFetchKeepsKey() {
	near := s.ref(920, 24*time.Hour)
	s.store(s.key, near)
	s.usable()

	s.mockPortal.EXPECT().FetchDetail(gomock.Any(), s.userSession, int64(920)).
		Return(nil, fmt.Errorf("%w: %d", portal.ErrUnexpectedStatus, 429))

	out, err := s.service.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Stops[StopFetchFailed])
	s.Zero(out.Stops[StopVanished])
	s.Equal([]int64{920}, s.stored(s.key))
}
