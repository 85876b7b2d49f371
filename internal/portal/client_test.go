package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/sportbot/internal/models"
)

const profileCard = `<html><body>
<div class="card card-body"><h5>Student</h5><script>
    const student = "4242";
    init(student);
</script></div>
<div id="semester-hours"><table>
<tr><th>Start</th><th>End</th></tr>
<tr><td>Jan 13, 2025</td><td>May 31, 2025</td></tr>
</table></div>
</body></html>`

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	mux      *http.ServeMux
	client   *httpClient
	loc      *time.Location
	session  *models.Session
	requests []*http.Request
	ctx      context.Context
}

func (s *ClientTestSuite) SetupTest() {
	loc, err := time.LoadLocation("Europe/Moscow")
	s.Require().NoError(err)
	s.loc = loc

	s.requests = nil
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests = append(s.requests, r)
		s.mux.ServeHTTP(w, r)
	}))

	client, err := New(&Config{
		BaseURL:  s.server.URL + "/",
		Location: loc,
		Timeout:  5 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client

	s.session = &models.Session{
		UserID:    "7",
		SessionID: "sess-1",
		CSRFToken: "csrf-1",
		StudentID: "4242",
	}
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) lastRequest() *http.Request {
	s.Require().NotEmpty(s.requests)
	return s.requests[len(s.requests)-1]
}

func (s *ClientTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Location: s.loc})
	s.ErrorIs(err, ErrEmptyBaseURL)

	_, err = New(&Config{BaseURL: "http://x"})
	s.ErrorIs(err, ErrNilLocation)
}

func (s *ClientTestSuite) TestPing() {
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.NoError(s.client.Ping(s.ctx))
}

func (s *ClientTestSuite) TestPingDown() {
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	s.ErrorIs(s.client.Ping(s.ctx), ErrServerUnavailable)
}

func (s *ClientTestSuite) TestLogin() {
	s.mux.HandleFunc("/oauth2/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><form id="options" action="/adfs/ls?client=sport"></form></body></html>`)
	})
	s.mux.HandleFunc("/adfs/ls", func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseForm())
		if r.PostForm.Get("Password") != "secret" {
			fmt.Fprint(w, `<html><body><div id="error">Incorrect user ID or password</div></body></html>`)
			return
		}
		s.Equal("student@example.com", r.PostForm.Get("UserName"))
		s.Equal("FormsAuthenication", r.PostForm.Get("AuthMethod"))
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "fresh-session", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "fresh-csrf", Path: "/"})
		http.Redirect(w, r, "/profile/", http.StatusFound)
	})
	s.mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileCard)
	})

	session, err := s.client.Login(s.ctx, "student@example.com", "secret")
	s.Require().NoError(err)
	s.Equal("fresh-session", session.SessionID)
	s.Equal("fresh-csrf", session.CSRFToken)
	s.Equal("4242", session.StudentID)
	s.False(session.IsOffline())

	_, err = s.client.Login(s.ctx, "student@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ClientTestSuite) TestLoginServerDown() {
	s.mux.HandleFunc("/oauth2/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.client.Login(s.ctx, "a", "b")
	s.ErrorIs(err, ErrServerUnavailable)
}

func (s *ClientTestSuite) TestLoginAuthServerError() {
	s.mux.HandleFunc("/oauth2/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<form id="options" action="/adfs/ls"></form>`)
	})
	s.mux.HandleFunc("/adfs/ls", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.client.Login(s.ctx, "a", "b")
	s.ErrorIs(err, ErrAuthServerError)
}

func (s *ClientTestSuite) TestProbeValid() {
	s.mux.HandleFunc("/api/calendar/trainings", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sessionid")
		if err != nil || cookie.Value != "sess-1" {
			http.Redirect(w, r, "/oauth2/login", http.StatusFound)
			return
		}
		s.Equal("2022-01-01T00:00:00", r.URL.Query().Get("start"))
		s.Equal("2022-01-01T00:00:01", r.URL.Query().Get("end"))
		s.Equal("Europe/Moscow", r.URL.Query().Get("timeZone"))
		fmt.Fprint(w, `[]`)
	})

	ok, err := s.client.ProbeValid(s.ctx, s.session)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.client.ProbeValid(s.ctx, &models.Session{UserID: "7", SessionID: "stale"})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ClientTestSuite) TestFetchRange() {
	s.mux.HandleFunc("/api/calendar/trainings", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("2025-03-03T00:00:00", r.URL.Query().Get("start"))
		s.Equal("2025-03-09T23:59:59", r.URL.Query().Get("end"))
		fmt.Fprint(w, `[
			{"title": "Volleyball", "start": "2025-03-04T18:00:00+03:00", "end": "2025-03-04T19:30:00+03:00",
			 "extendedProps": {"id": 500, "group_id": 12, "can_check_in": true, "checked_in": false}},
			{"title": "Swimming", "start": "2025-03-05T09:00:00", "end": "2025-03-05T10:30:00",
			 "extendedProps": {"id": 501, "group_id": 13, "can_check_in": false, "checked_in": true}}
		]`)
	})

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, s.loc)
	to := time.Date(2025, 3, 9, 0, 0, 0, 0, s.loc)
	slots, err := s.client.FetchRange(s.ctx, s.session, from, to)
	s.Require().NoError(err)
	s.Require().Len(slots, 2)

	s.Equal(int64(500), slots[0].ID)
	s.Equal(int64(12), slots[0].GroupID)
	s.Equal("Volleyball", slots[0].GroupName)
	s.True(slots[0].CanCheckIn)
	s.True(slots[0].Start.Equal(time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)))

	s.Equal(int64(501), slots[1].ID)
	s.True(slots[1].CheckedIn)
	s.True(slots[1].Start.Equal(time.Date(2025, 3, 5, 9, 0, 0, 0, s.loc)))

	cookie, err := s.lastRequest().Cookie("student_id")
	s.Require().NoError(err)
	s.Equal("4242", cookie.Value)
}

func (s *ClientTestSuite) TestFetchDetail() {
	s.mux.HandleFunc("/api/training/500", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"training": {"id": 500, "start": "2025-03-04T18:00:00+03:00", "end": "2025-03-04T19:30:00+03:00",
			"load": 9, "group": {"id": 12, "name": "Volleyball", "capacity": 10}},
			"can_check_in": true, "checked_in": false}`)
	})

	slot, err := s.client.FetchDetail(s.ctx, s.session, 500)
	s.Require().NoError(err)
	s.Equal(int64(500), slot.ID)
	s.Equal(10, slot.Capacity)
	s.Equal(9, slot.Load)
	s.Equal(1, slot.FreeSeats())
	s.Equal("Volleyball", slot.GroupName)
	s.True(slot.CanCheckIn)
}

func (s *ClientTestSuite) TestFetchDetailVanished() {
	s.mux.HandleFunc("/api/training/501", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Not found."}`)
	})
	s.mux.HandleFunc("/api/training/502", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detail": "Group was removed"}`)
	})

	_, err := s.client.FetchDetail(s.ctx, s.session, 501)
	s.ErrorIs(err, ErrTrainingNotFound)

	_, err = s.client.FetchDetail(s.ctx, s.session, 502)
	s.ErrorIs(err, ErrTrainingNotFound)
}

func (s *ClientTestSuite) TestFetchDetailServerError() {
	s.mux.HandleFunc("/api/training/503", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `<html>oops</html>`)
	})

	_, err := s.client.FetchDetail(s.ctx, s.session, 503)
	s.ErrorIs(err, ErrUnexpectedStatus)
	s.False(errors.Is(err, ErrTrainingNotFound))
}

func (s *ClientTestSuite) TestFetchDetailThrottledOrForbiddenIsNotVanished() {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusTooManyRequests, `{"detail": "Request was throttled. Expected available in 30 seconds."}`},
		{http.StatusForbidden, `{"detail": "Authentication credentials were not provided."}`},
		{http.StatusUnauthorized, `{"detail": "Invalid token."}`},
	}

	for i, tt := range tests {
		id := int64(600 + i)
		status, body := tt.status, tt.body
		s.mux.HandleFunc(fmt.Sprintf("/api/training/%d", id), func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			fmt.Fprint(w, body)
		})

		_, err := s.client.FetchDetail(s.ctx, s.session, id)
		s.ErrorIs(err, ErrUnexpectedStatus, "status %d", status)
		s.False(errors.Is(err, ErrTrainingNotFound), "status %d", status)
	}
}

func (s *ClientTestSuite) TestCheckInAndCancel() {
	var actions []string
	handler := func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("csrf-1", r.Header.Get("X-CSRFToken"))
		s.True(strings.HasSuffix(r.Header.Get("Referer"), "/profile/"))
		actions = append(actions, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}
	s.mux.HandleFunc("/api/training/500/check_in", handler)
	s.mux.HandleFunc("/api/training/500/cancel_check_in", handler)

	s.Require().NoError(s.client.CheckIn(s.ctx, s.session, 500))
	s.Require().NoError(s.client.CancelCheckIn(s.ctx, s.session, 500))
	s.Equal([]string{"/api/training/500/check_in", "/api/training/500/cancel_check_in"}, actions)
}

func (s *ClientTestSuite) TestCheckInRejected() {
	s.mux.HandleFunc("/api/training/500/check_in", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	s.ErrorIs(s.client.CheckIn(s.ctx, s.session, 500), ErrUnexpectedStatus)
	s.ErrorIs(s.client.CheckIn(s.ctx, &models.Session{UserID: "7"}, 500), ErrOfflineSession)
}

func (s *ClientTestSuite) TestFetchStatistics() {
	s.mux.HandleFunc("/api/attendance/4242/negative_hours", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"final_hours": 14.5}`)
	})
	s.mux.HandleFunc("/api/attendance/4242/better_than", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `63.2`)
	})

	stats, err := s.client.FetchStatistics(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(14.5, stats.Hours)
	s.Equal(63.2, stats.BetterThan)
}

func (s *ClientTestSuite) TestFetchSemester() {
	s.mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileCard)
	})

	from, to, err := s.client.FetchSemester(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(time.Date(2025, 1, 13, 0, 0, 0, 0, s.loc), from)
	s.Equal(time.Date(2025, 5, 31, 0, 0, 0, 0, s.loc), to)
}

func (s *ClientTestSuite) TestParseProfileDate() {
	day, err := parseProfileDate(" Sept. 1, 2025 ", s.loc)
	s.Require().NoError(err)
	s.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, s.loc), day)

	_, err = parseProfileDate("soon", s.loc)
	s.ErrorIs(err, ErrMalformedResponse)
}
