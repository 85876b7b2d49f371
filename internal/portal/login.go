package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/KirkDiggler/sportbot/internal/models"
)

const (
	loginPath       = "/oauth2/login"
	loginFormID     = "options"
	loginErrorID    = "error"

	// The identity provider accepts the form with this exact value
	loginAuthMethod = "FormsAuthenication"
)

// Login walks the portal's OAuth form flow with a throwaway cookie jar and
// keeps only the cookies the API needs.
func (c *httpClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	client := &http.Client{Jar: jar, Timeout: c.timeout, Transport: c.transport}

	// Step 1: the login page carries the identity provider form
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+loginPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("%w: login page returned %d", ErrServerUnavailable, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	formURL := resp.Request.URL
	drain(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthServerError, err)
	}

	form := findElement(doc, func(n *html.Node) bool {
		return n.Data == "form" && attr(n, "id") == loginFormID
	})
	if form == nil {
		return nil, fmt.Errorf("%w: login form not found", ErrAuthServerError)
	}
	action, err := formURL.Parse(attr(form, "action"))
	if err != nil {
		return nil, fmt.Errorf("%w: bad form action: %v", ErrAuthServerError, err)
	}

	// Step 2: post the credentials; the provider redirects back to the portal
	body := url.Values{}
	body.Set("UserName", email)
	body.Set("Password", password)
	body.Set("AuthMethod", loginAuthMethod)

	req, err = http.NewRequestWithContext(ctx, http.MethodPost, action.String(), strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthServerError, err)
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("%w: sign-in returned %d", ErrAuthServerError, resp.StatusCode)
	}

	doc, err = html.Parse(io.LimitReader(resp.Body, maxBodySize))
	drain(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthServerError, err)
	}

	if findElement(doc, func(n *html.Node) bool { return n.Data == "div" && attr(n, "id") == loginErrorID }) != nil {
		return nil, ErrInvalidCredentials
	}

	studentID, err := extractStudentID(doc)
	if err != nil {
		return nil, err
	}

	// Step 3: lift the portal cookies out of the jar
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	session := &models.Session{StudentID: studentID}
	for _, cookie := range jar.Cookies(base) {
		switch cookie.Name {
		case "sessionid":
			session.SessionID = cookie.Value
		case "csrftoken":
			session.CSRFToken = cookie.Value
		}
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("%w: no session cookie after sign-in", ErrAuthServerError)
	}

	return session, nil
}

// extractStudentID reads the id embedded in the profile card script:
// the second script line holds it as the first double-quoted literal.
func extractStudentID(doc *html.Node) (string, error) {
	card := findElement(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "card-body")
	})
	if card == nil {
		return "", fmt.Errorf("%w: profile card not found", ErrAuthServerError)
	}

	script := findElement(card, func(n *html.Node) bool { return n.Data == "script" })
	if script == nil {
		return "", fmt.Errorf("%w: profile script not found", ErrAuthServerError)
	}

	lines := strings.Split(textContent(script), "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf("%w: unexpected profile script", ErrAuthServerError)
	}
	parts := strings.Split(lines[1], `"`)
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: student id not found", ErrAuthServerError)
	}

	return parts[1], nil
}

// parseSemesterBounds reads the first two cells of the second row of the
// semester hours table, formatted like "Jan 15, 2024".
func parseSemesterBounds(r io.Reader, loc *time.Location) (time.Time, time.Time, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	table := findElement(doc, func(n *html.Node) bool {
		return n.Data == "div" && attr(n, "id") == "semester-hours"
	})
	if table == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: semester table not found", ErrMalformedResponse)
	}

	rows := findAll(table, func(n *html.Node) bool { return n.Data == "tr" })
	if len(rows) < 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: semester row not found", ErrMalformedResponse)
	}
	cells := findAll(rows[1], func(n *html.Node) bool { return n.Data == "td" })
	if len(cells) < 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: semester cells not found", ErrMalformedResponse)
	}

	var bounds [2]time.Time
	for i := range bounds {
		day, err := parseProfileDate(textContent(cells[i]), loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		bounds[i] = day
	}

	return bounds[0], bounds[1], nil
}

func parseProfileDate(text string, loc *time.Location) (time.Time, error) {
	cleaned := strings.NewReplacer(",", "", ".", "").Replace(text)
	fields := strings.Fields(cleaned)
	if len(fields) != 3 || len(fields[0]) < 3 {
		return time.Time{}, fmt.Errorf("%w: semester date %q", ErrMalformedResponse, text)
	}

	// "Sept" and "September" both reduce to the three letter abbreviation
	value := fields[0][:3] + " " + fields[1] + " " + fields[2]
	day, err := time.ParseInLocation("Jan 2 2006", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: semester date %q", ErrMalformedResponse, text)
	}
	return day, nil
}

func findElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
