package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/portal"
	portalMocks "github.com/KirkDiggler/sportbot/internal/portal/mocks"
	credentialsRepo "github.com/KirkDiggler/sportbot/internal/repositories/credentials"
	credentialsMocks "github.com/KirkDiggler/sportbot/internal/repositories/credentials/mocks"
)

type RegistryTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockPortal *portalMocks.MockClient
	mockCreds  *credentialsMocks.MockRepository
	registry   Registry
	ctx        context.Context

	testUserID    string
	serviceUserID string
	storedCreds   *models.Credentials
}

func (s *RegistryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPortal = portalMocks.NewMockClient(s.mockCtrl)
	s.mockCreds = credentialsMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.testUserID = "user-7"
	s.serviceUserID = "admin-1"
	s.storedCreds = &models.Credentials{
		UserID:    s.testUserID,
		StudentID: "4242",
		SessionID: "sess-7",
		CSRFToken: "csrf-7",
	}

	reg, err := New(&Config{
		PortalClient:    s.mockPortal,
		CredentialsRepo: s.mockCreds,
		ServiceAccount: ServiceAccount{
			UserID:   s.serviceUserID,
			Email:    "bot@example.com",
			Password: "hunter2",
		},
		Logger: logger.NewTestLogger(s.T()),
	})
	s.Require().NoError(err)
	s.registry = reg
}

func (s *RegistryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{CredentialsRepo: s.mockCreds})
	s.ErrorIs(err, ErrNilPortalClient)

	_, err = New(&Config{PortalClient: s.mockPortal})
	s.ErrorIs(err, ErrNilCredentialsRepo)
}

func (s *RegistryTestSuite) TestEnsureUsableRehydratesFromCredentials() {
	s.mockCreds.EXPECT().
		Get(s.ctx, &credentialsRepo.GetInput{UserID: s.testUserID}).
		Return(s.storedCreds, nil)
	s.mockPortal.EXPECT().
		ProbeValid(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *models.Session) (bool, error) {
			s.Equal("sess-7", sess.SessionID)
			return true, nil
		})

	s.True(s.registry.EnsureUsable(s.ctx, s.testUserID))
	s.True(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestEnsureUsableUnregisteredUser() {
	s.mockCreds.EXPECT().
		Get(s.ctx, &credentialsRepo.GetInput{UserID: s.testUserID}).
		Return(nil, credentialsRepo.ErrCredentialsNotFound)

	s.False(s.registry.EnsureUsable(s.ctx, s.testUserID))
	s.False(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestEnsureUsableStoreErrorFailsClosed() {
	s.mockCreds.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.New("connection refused"))

	s.False(s.registry.EnsureUsable(s.ctx, s.testUserID))
}

func (s *RegistryTestSuite) TestOfflineSessionSkipsProbe() {
	s.registry.Set(s.testUserID, &models.Session{UserID: s.testUserID, StudentID: "4242"})

	// No ProbeValid expectation: a call would fail the test
	s.True(s.registry.EnsureUsable(s.ctx, s.testUserID))
}

func (s *RegistryTestSuite) TestExpiredSessionStaysCached() {
	cached := s.storedCreds.ToSession()
	s.registry.Set(s.testUserID, cached)

	s.mockPortal.EXPECT().ProbeValid(s.ctx, cached).Return(false, nil)

	s.False(s.registry.EnsureUsable(s.ctx, s.testUserID))
	s.Same(cached, s.registry.Get(s.testUserID))
}

func (s *RegistryTestSuite) TestProbeErrorIsUnusable() {
	cached := s.storedCreds.ToSession()
	s.registry.Set(s.testUserID, cached)

	s.mockPortal.EXPECT().ProbeValid(s.ctx, cached).Return(false, errors.New("timeout"))

	s.False(s.registry.EnsureUsable(s.ctx, s.testUserID))
	s.True(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestServiceSessionLogsInWhenMissing() {
	fresh := &models.Session{SessionID: "svc", CSRFToken: "c", StudentID: "1"}
	s.mockPortal.EXPECT().Login(s.ctx, "bot@example.com", "hunter2").Return(fresh, nil)

	got, err := s.registry.ServiceSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.serviceUserID, got.UserID)
	s.Same(got, s.registry.Get(s.serviceUserID))
}

func (s *RegistryTestSuite) TestServiceSessionReusesValidSession() {
	cached := &models.Session{UserID: s.serviceUserID, SessionID: "svc"}
	s.registry.Set(s.serviceUserID, cached)
	s.mockPortal.EXPECT().ProbeValid(s.ctx, cached).Return(true, nil)

	got, err := s.registry.ServiceSession(s.ctx)
	s.Require().NoError(err)
	s.Same(cached, got)
}

func (s *RegistryTestSuite) TestServiceAccountSelfHeals() {
	stale := &models.Session{UserID: s.serviceUserID, SessionID: "old"}
	fresh := &models.Session{SessionID: "new"}
	s.registry.Set(s.serviceUserID, stale)

	gomock.InOrder(
		s.mockPortal.EXPECT().ProbeValid(s.ctx, stale).Return(false, nil),
		s.mockPortal.EXPECT().Login(s.ctx, "bot@example.com", "hunter2").Return(fresh, nil),
	)

	s.True(s.registry.EnsureUsable(s.ctx, s.serviceUserID))
	s.Equal("new", s.registry.Get(s.serviceUserID).SessionID)
}

func (s *RegistryTestSuite) TestServiceSessionLoginFailure() {
	s.mockPortal.EXPECT().Login(s.ctx, gomock.Any(), gomock.Any()).Return(nil, portal.ErrServerUnavailable)

	_, err := s.registry.ServiceSession(s.ctx)
	s.ErrorIs(err, ErrServiceUnavailable)
	s.False(s.registry.Has(s.serviceUserID))
}

func (s *RegistryTestSuite) TestServiceSessionNotConfigured() {
	reg, err := New(&Config{PortalClient: s.mockPortal, CredentialsRepo: s.mockCreds})
	s.Require().NoError(err)

	_, err = reg.ServiceSession(s.ctx)
	s.ErrorIs(err, ErrNoServiceAccount)
}

func (s *RegistryTestSuite) TestLoginPersistsThenCaches() {
	fresh := &models.Session{SessionID: "sess-7", CSRFToken: "csrf-7", StudentID: "4242"}
	gomock.InOrder(
		s.mockPortal.EXPECT().Login(s.ctx, "me@uni.ru", "pw").Return(fresh, nil),
		s.mockCreds.EXPECT().Save(s.ctx, &credentialsRepo.SaveInput{Credentials: s.storedCreds}).Return(nil),
	)

	got, err := s.registry.Login(s.ctx, s.testUserID, "me@uni.ru", "pw")
	s.Require().NoError(err)
	s.Equal(s.testUserID, got.UserID)
	s.Same(got, s.registry.Get(s.testUserID))
}

func (s *RegistryTestSuite) TestLoginInvalidCredentialsCreatesNothing() {
	s.mockPortal.EXPECT().Login(s.ctx, "me@uni.ru", "bad").Return(nil, portal.ErrInvalidCredentials)

	_, err := s.registry.Login(s.ctx, s.testUserID, "me@uni.ru", "bad")
	s.ErrorIs(err, portal.ErrInvalidCredentials)
	s.False(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestLoginSaveFailureDoesNotCache() {
	s.mockPortal.EXPECT().Login(s.ctx, gomock.Any(), gomock.Any()).Return(&models.Session{SessionID: "x"}, nil)
	s.mockCreds.EXPECT().Save(s.ctx, gomock.Any()).Return(errors.New("READONLY"))

	_, err := s.registry.Login(s.ctx, s.testUserID, "me@uni.ru", "pw")
	s.Error(err)
	s.False(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestLogout() {
	s.registry.Set(s.testUserID, s.storedCreds.ToSession())
	s.mockCreds.EXPECT().Delete(s.ctx, &credentialsRepo.DeleteInput{UserID: s.testUserID}).Return(nil)

	s.Require().NoError(s.registry.Logout(s.ctx, s.testUserID))
	s.False(s.registry.Has(s.testUserID))
}

func (s *RegistryTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.registry.Set(s.testUserID, &models.Session{UserID: s.testUserID})
		}()
		go func() {
			defer wg.Done()
			_ = s.registry.Get(s.testUserID)
		}()
	}
	wg.Wait()

	s.True(s.registry.Has(s.testUserID))
}
