package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/sportbot/internal/models"
)

const (
	calendarPath = "/api/calendar/trainings"
	trainingPath = "/api/training/"
	profilePath  = "/profile/"

	dayStartSuffix = "T00:00:00"
	dayEndSuffix   = "T23:59:59"
	dateLayout     = "2006-01-02"

	// maxBodySize caps how much of a response is read
	maxBodySize = 4 << 20
)

// probeWindow is a fixed one-second calendar window. Any authenticated
// session gets 200 for it, everything else is redirected or rejected.
var probeWindow = [2]string{"2022-01-01T00:00:00", "2022-01-01T00:00:01"}

// httpClient implements Client over the portal's JSON API
type httpClient struct {
	baseURL   string
	location  *time.Location
	timeout   time.Duration
	transport http.RoundTripper
	api       *http.Client
}

// New creates a new portal client
func New(cfg *Config) (*httpClient, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	if cfg.Location == nil {
		return nil, ErrNilLocation
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &httpClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		location:  cfg.Location,
		timeout:   cfg.Timeout,
		transport: transport,
		api: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			// An expired session is redirected to the login page; treat the
			// redirect itself as the answer.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Ping checks that the portal answers at all
func (c *httpClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	// Follow redirects here: the landing page may bounce to /profile
	client := &http.Client{Timeout: c.timeout, Transport: c.transport}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	}

	return nil
}

// ProbeValid issues a minimal authenticated calendar query
func (c *httpClient) ProbeValid(ctx context.Context, session *models.Session) (bool, error) {
	if session == nil {
		return false, nil
	}

	resp, err := c.get(ctx, session, calendarPath, c.calendarQuery(probeWindow[0], probeWindow[1]))
	if err != nil {
		return false, err
	}
	defer drain(resp)

	return resp.StatusCode == http.StatusOK, nil
}

// FetchDay returns the trainings of one calendar day in the portal timezone
func (c *httpClient) FetchDay(ctx context.Context, session *models.Session, day time.Time) ([]*models.TrainingSlot, error) {
	return c.FetchRange(ctx, session, day, day)
}

// FetchRange returns the trainings between from and to, both inclusive days
func (c *httpClient) FetchRange(ctx context.Context, session *models.Session, from, to time.Time) ([]*models.TrainingSlot, error) {
	start := from.In(c.location).Format(dateLayout) + dayStartSuffix
	end := to.In(c.location).Format(dateLayout) + dayEndSuffix

	var entries []calendarEntry
	if err := c.getJSON(ctx, session, calendarPath, c.calendarQuery(start, end), &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}

	slots := make([]*models.TrainingSlot, 0, len(entries))
	for _, entry := range entries {
		startAt, err := c.parseTime(entry.Start)
		if err != nil {
			return nil, err
		}
		endAt, err := c.parseTime(entry.End)
		if err != nil {
			return nil, err
		}

		slots = append(slots, &models.TrainingSlot{
			ID:         entry.ExtendedProps.ID,
			GroupID:    entry.ExtendedProps.GroupID,
			GroupName:  entry.Title,
			Start:      startAt,
			End:        endAt,
			CheckedIn:  entry.ExtendedProps.CheckedIn,
			CanCheckIn: entry.ExtendedProps.CanCheckIn,
		})
	}

	return slots, nil
}

// FetchDetail returns the live state of one training
func (c *httpClient) FetchDetail(ctx context.Context, session *models.Session, trainingID int64) (*models.TrainingSlot, error) {
	resp, err := c.get(ctx, session, trainingPath+strconv.FormatInt(trainingID, 10), nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	// Throttling and auth failures share the {"detail": ...} body with
	// missing trainings, so only the status decides
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrTrainingNotFound
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var detail trainingDetail
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// A 200 carrying {"detail": "..."} is a training or group that is gone
	if detail.Detail != nil {
		return nil, ErrTrainingNotFound
	}
	if detail.Training == nil {
		return nil, fmt.Errorf("%w: training %d has no body", ErrMalformedResponse, trainingID)
	}

	startAt, err := c.parseTime(detail.Training.Start)
	if err != nil {
		return nil, err
	}
	endAt, err := c.parseTime(detail.Training.End)
	if err != nil {
		return nil, err
	}

	return &models.TrainingSlot{
		ID:         detail.Training.ID,
		GroupID:    detail.Training.Group.ID,
		GroupName:  detail.Training.Group.Name,
		Start:      startAt,
		End:        endAt,
		Capacity:   detail.Training.Group.Capacity,
		Load:       detail.Training.Load,
		CheckedIn:  detail.CheckedIn,
		CanCheckIn: detail.CanCheckIn,
	}, nil
}

// CheckIn books a seat on the training
func (c *httpClient) CheckIn(ctx context.Context, session *models.Session, trainingID int64) error {
	return c.postAction(ctx, session, trainingID, "check_in")
}

// CancelCheckIn releases a seat on the training
func (c *httpClient) CancelCheckIn(ctx context.Context, session *models.Session, trainingID int64) error {
	return c.postAction(ctx, session, trainingID, "cancel_check_in")
}

// FetchStatistics returns the student's sport hours and percentile
func (c *httpClient) FetchStatistics(ctx context.Context, session *models.Session) (*models.Statistics, error) {
	if session == nil || session.StudentID == "" {
		return nil, ErrOfflineSession
	}

	base := "/api/attendance/" + url.PathEscape(session.StudentID)

	var hours negativeHours
	if err := c.getJSON(ctx, session, base+"/negative_hours", nil, &hours); err != nil {
		return nil, fmt.Errorf("failed to fetch hours: %w", err)
	}

	var betterThan float64
	if err := c.getJSON(ctx, session, base+"/better_than", nil, &betterThan); err != nil {
		return nil, fmt.Errorf("failed to fetch percentile: %w", err)
	}

	return &models.Statistics{
		Hours:      hours.FinalHours,
		BetterThan: betterThan,
	}, nil
}

// FetchSemester reads the semester bounds off the profile page
func (c *httpClient) FetchSemester(ctx context.Context, session *models.Session) (time.Time, time.Time, error) {
	resp, err := c.get(ctx, session, profilePath, nil)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return parseSemesterBounds(io.LimitReader(resp.Body, maxBodySize), c.location)
}

func (c *httpClient) postAction(ctx context.Context, session *models.Session, trainingID int64, action string) error {
	if session == nil || session.IsOffline() {
		return ErrOfflineSession
	}

	endpoint := c.baseURL + trainingPath + strconv.FormatInt(trainingID, 10) + "/" + action
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req, session)
	req.Header.Set("Referer", c.baseURL+profilePath)
	req.Header.Set("X-CSRFToken", session.CSRFToken)

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s training %d: %w", action, trainingID, err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrTrainingNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, action, resp.StatusCode)
	}

	return nil
}

func (c *httpClient) calendarQuery(start, end string) url.Values {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("timeZone", c.location.String())
	return q
}

func (c *httpClient) get(ctx context.Context, session *models.Session, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req, session)
	req.Header.Set("Accept", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	return resp, nil
}

func (c *httpClient) getJSON(ctx context.Context, session *models.Session, path string, query url.Values, out interface{}) error {
	resp, err := c.get(ctx, session, path, query)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// authorize attaches the session cookies. Offline sessions browse anonymously.
func (c *httpClient) authorize(req *http.Request, session *models.Session) {
	if session == nil {
		return
	}
	if session.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: session.SessionID})
	}
	if session.CSRFToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: session.CSRFToken})
	}
	if session.StudentID != "" {
		req.AddCookie(&http.Cookie{Name: "student_id", Value: session.StudentID})
	}
}

// parseTime accepts RFC 3339 timestamps and zone-less ones in the portal timezone
func (c *httpClient) parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, c.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrMalformedResponse, value)
	}
	return t, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
}
