package web

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	authservice "github.com/goserg/campusevents/auth/service"
	authsqlite "github.com/goserg/campusevents/auth/storage/sqlite"
	"github.com/goserg/campusevents/auth/users"
	"github.com/goserg/campusevents/internal/config"
	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/notify"
	"github.com/goserg/campusevents/internal/service"
	"github.com/goserg/campusevents/internal/storage"
	"github.com/goserg/campusevents/internal/storage/sqlite"
	"github.com/goserg/campusevents/internal/uploads"
	"github.com/goserg/campusevents/internal/web/webpath"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookie = "session_id"

type ServerSuite struct {
	suite.Suite
	db     *sql.DB
	server *Server
	auth   *authservice.Service
	events *service.EventService
	admin  users.User
	member users.User
	// session is replayed on every request, like a browser keeps its cookie.
	session *http.Cookie
}

func TestServer(t *testing.T) {
	suite.Run(t, &ServerSuite{})
}

func (s *ServerSuite) SetupTest() {
	ctx := context.Background()
	db, err := storage.Open(storage.MemorySource(uuid.NewString()))
	s.Require().NoError(err)
	s.db = db
	s.session = nil

	l := logrus.New()
	l.SetOutput(io.Discard)

	s.auth, err = authservice.New(ctx, authservice.Config{
		Token:      "test-secret",
		Expiration: "1h",
		BcryptCost: bcrypt.MinCost,
	}, authsqlite.New(db, l), l)
	s.Require().NoError(err)

	store, err := uploads.NewLocal(s.T().TempDir())
	s.Require().NoError(err)
	s.events = service.New(sqlite.New(db, l), store, notify.Nop{}, l)

	s.server, err = New(config.Server{
		Host:          "localhost",
		Port:          "0",
		LoginAttempts: 100,
		LoginWindow:   "1m",
	}, s.events, s.auth, store, session.New(), l)
	s.Require().NoError(err)

	s.Require().NoError(s.auth.EnsureAdmin(ctx, "root", "root@example.com", "rootpass"))
	s.admin, err = s.auth.Login(ctx, "root", "rootpass")
	s.Require().NoError(err)
	s.member, err = s.auth.SignUp(ctx, "alice", "alice@example.com", "alicepass")
	s.Require().NoError(err)
}

func (s *ServerSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *ServerSuite) do(req *http.Request, as users.User) *http.Response {
	if as.IsAuthenticated() {
		cookie, err := s.auth.GenerateJWTCookie(as.ID)
		s.Require().NoError(err)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	if s.session != nil {
		req.AddCookie(s.session)
	}
	resp, err := s.server.app.Test(req, -1)
	s.Require().NoError(err)
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			s.session = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return resp
}

// follow loads the redirect target and returns the rendered page.
func (s *ServerSuite) follow(resp *http.Response, as users.User) string {
	s.Require().Equal(http.StatusFound, resp.StatusCode)
	next := s.get(resp.Header.Get("Location"), as)
	s.Require().Equal(http.StatusOK, next.StatusCode)
	return s.body(next)
}

func (s *ServerSuite) get(path string, as users.User) *http.Response {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil), as)
}

func (s *ServerSuite) post(path string, form url.Values, as users.User) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, as)
}

func (s *ServerSuite) body(resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

func (s *ServerSuite) createEvent(title string, capacity int) int64 {
	id, err := s.events.CreateEvent(context.Background(), s.admin.ID, domain.EventDetails{
		Title:    title,
		Date:     time.Now().AddDate(0, 0, 7).Format(domain.DateLayout),
		Time:     "18:00:00",
		Location: "Main hall",
		Capacity: capacity,
	}, domain.EventPublished, nil)
	s.Require().NoError(err)
	return id
}

func (s *ServerSuite) TestHomeListsUpcomingEvents() {
	s.createEvent("Robotics meetup", 10)
	resp := s.get(webpath.Home, users.User{})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.body(resp), "Robotics meetup")
}

func (s *ServerSuite) TestEventPage() {
	id := s.createEvent("Chess night", 2)
	resp := s.get(webpath.WithID(webpath.Event, id), users.User{})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.body(resp), "Chess night")

	resp = s.get(webpath.WithID(webpath.Event, id+100), users.User{})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.Home, resp.Header.Get("Location"))
}

func (s *ServerSuite) TestAccessRules() {
	tests := []struct {
		name     string
		path     string
		as       users.User
		status   int
		location string
	}{
		{name: "guest to admin", path: webpath.AdminDashboard, status: http.StatusFound, location: webpath.Home},
		{name: "member to admin", path: webpath.AdminRequests, as: s.member, status: http.StatusFound, location: webpath.Home},
		{name: "admin to admin", path: webpath.AdminDashboard, as: s.admin, status: http.StatusOK},
		{
			name: "guest to member page", path: webpath.MyRequests, status: http.StatusFound,
			location: webpath.Login + "?next=" + url.QueryEscape(webpath.MyRequests),
		},
		{name: "member to member page", path: webpath.MyRegistrations, as: s.member, status: http.StatusOK},
		{name: "guest to public page", path: webpath.Login, status: http.StatusOK},
		{name: "member to login", path: webpath.Login, as: s.member, status: http.StatusFound, location: webpath.Home},
		{name: "guest to upper case admin", path: "/ADMIN/dashboard", status: http.StatusFound, location: webpath.Home},
		{name: "guest to mixed case admin", path: "/Admin/requests", status: http.StatusFound, location: webpath.Home},
		{name: "member to mixed case admin", path: "/Admin/requests", as: s.member, status: http.StatusFound, location: webpath.Home},
		{
			name: "guest to mixed case member page", path: "/MY-requests", status: http.StatusFound,
			location: webpath.Login + "?next=" + url.QueryEscape("/MY-requests"),
		},
		{name: "admin to upper case admin", path: "/ADMIN/dashboard", as: s.admin, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp := s.get(tt.path, tt.as)
			s.Equal(tt.status, resp.StatusCode)
			if tt.location != "" {
				s.Equal(tt.location, resp.Header.Get("Location"))
			}
		})
	}
}

func (s *ServerSuite) TestMixedCaseAdminDeleteIsDenied() {
	id := s.createEvent("Science fair", 10)
	for _, as := range []users.User{{}, s.member} {
		resp := s.post("/Admin/events/"+strconv.FormatInt(id, 10)+"/delete", url.Values{}, as)
		s.Equal(http.StatusFound, resp.StatusCode)
		s.Equal(webpath.Home, resp.Header.Get("Location"))
	}
	_, _, err := s.events.EventDetails(context.Background(), id, uuid.Nil)
	s.NoError(err)
}

func (s *ServerSuite) TestDeniedAccessShowsNotice() {
	resp := s.get(webpath.AdminDashboard, s.member)
	s.Contains(s.follow(resp, s.member), "You need to be an admin to access this page.")

	resp = s.get(webpath.MyRequests, users.User{})
	s.Contains(s.follow(resp, users.User{}), "Please log in to access this page.")
}

func (s *ServerSuite) TestRegistrationNotices() {
	ctx := context.Background()
	full := s.createEvent("Tiny workshop", 1)
	s.Require().NoError(s.events.Register(ctx, full, s.admin.ID))
	resp := s.post(webpath.WithID(webpath.EventRegister, full), url.Values{}, s.member)
	s.Contains(s.follow(resp, s.member), "Event is full")

	open := s.createEvent("Big lecture", 50)
	resp = s.post(webpath.WithID(webpath.EventRegister, open), url.Values{}, s.member)
	s.Contains(s.follow(resp, s.member), "Successfully registered for the event!")
	resp = s.post(webpath.WithID(webpath.EventRegister, open), url.Values{}, s.member)
	page := s.follow(resp, s.member)
	s.Contains(page, "You are already registered for this event")
	s.NotContains(page, "Successfully registered for the event!")
}

func (s *ServerSuite) TestReviewNotices() {
	ctx := context.Background()
	id, err := s.events.SubmitRequest(ctx, s.member.ID, domain.EventDetails{
		Title:    "Poetry slam",
		Date:     time.Now().AddDate(0, 0, 10).Format(domain.DateLayout),
		Time:     "20:00:00",
		Location: "Cafe",
		Capacity: 30,
	}, nil)
	s.Require().NoError(err)
	review := webpath.WithID(webpath.AdminReviewRequest, id)

	resp := s.post(review, url.Values{"action": {"postpone"}}, s.admin)
	s.Contains(s.follow(resp, s.admin), "Invalid action")

	resp = s.post(review, url.Values{"action": {"reject"}}, s.admin)
	s.Contains(s.follow(resp, s.admin), "Request has been rejected")

	resp = s.post(review, url.Values{"action": {"approve"}}, s.admin)
	s.Contains(s.follow(resp, s.admin), "Request has already been reviewed")
}

func (s *ServerSuite) TestAdminPagesRender() {
	id := s.createEvent("Career fair", 3)
	s.Require().NoError(s.events.Register(context.Background(), id, s.member.ID))
	for _, path := range []string{
		webpath.AdminDashboard,
		webpath.AdminEvents,
		webpath.AdminNewEvent,
		webpath.AdminRequests,
		webpath.WithID(webpath.AdminEditEvent, id),
		webpath.WithID(webpath.AdminEventRegistrations, id),
	} {
		resp := s.get(path, s.admin)
		s.Equal(http.StatusOK, resp.StatusCode, path)
	}
}

func (s *ServerSuite) TestGuestCannotRegister() {
	id := s.createEvent("Hackathon", 5)
	resp := s.post(webpath.WithID(webpath.EventRegister, id), url.Values{}, users.User{})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.Login, resp.Header.Get("Location"))
}

func (s *ServerSuite) TestRegisterAndCancel() {
	ctx := context.Background()
	id := s.createEvent("Hackathon", 5)

	resp := s.post(webpath.WithID(webpath.EventRegister, id), url.Values{}, s.member)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.WithID(webpath.Event, id), resp.Header.Get("Location"))
	_, registered, err := s.events.EventDetails(ctx, id, s.member.ID)
	s.Require().NoError(err)
	s.True(registered)

	resp = s.get(webpath.MyRegistrations, s.member)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.body(resp), "Hackathon")

	resp = s.post(webpath.WithID(webpath.EventCancel, id), url.Values{}, s.member)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.MyRegistrations, resp.Header.Get("Location"))
	_, registered, err = s.events.EventDetails(ctx, id, s.member.ID)
	s.Require().NoError(err)
	s.False(registered)
}

func (s *ServerSuite) TestRequestAndApprove() {
	ctx := context.Background()
	resp := s.post(webpath.RequestEvent, url.Values{
		"title":    {"Film club"},
		"date":     {time.Now().AddDate(0, 1, 0).Format(domain.DateLayout)},
		"time":     {"19:30"},
		"location": {"Auditorium"},
		"capacity": {"40"},
	}, s.member)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.MyRequests, resp.Header.Get("Location"))

	requests, err := s.events.MyRequests(ctx, s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(requests, 1)

	review := webpath.WithID(webpath.AdminReviewRequest, requests[0].ID)
	resp = s.post(review, url.Values{"action": {"approve"}}, s.member)
	s.Equal(webpath.Home, resp.Header.Get("Location"))

	resp = s.post(review, url.Values{"action": {"approve"}, "admin_remarks": {"enjoy"}}, s.admin)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.AdminRequests, resp.Header.Get("Location"))

	events, err := s.events.Upcoming(ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("Film club", events[0].Title)
	s.Equal(s.member.ID, events[0].CreatedBy)
}

func (s *ServerSuite) TestRequestValidation() {
	resp := s.post(webpath.RequestEvent, url.Values{"title": {"No date"}}, s.member)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.Contains(s.body(resp), "Date is required")
}

func (s *ServerSuite) TestAdminCreateEvent() {
	resp := s.post(webpath.AdminNewEvent, url.Values{
		"title":    {"Open day"},
		"date":     {time.Now().AddDate(0, 0, 3).Format(domain.DateLayout)},
		"time":     {"10:00"},
		"location": {"Campus"},
		"capacity": {"100"},
		"status":   {"draft"},
	}, s.admin)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.AdminEvents, resp.Header.Get("Location"))

	all, err := s.events.AllEvents(context.Background())
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(domain.EventDraft, all[0].Status)
}

func (s *ServerSuite) TestLogin() {
	resp := s.post(webpath.Login, url.Values{"username": {"alice"}, "password": {"wrong"}}, users.User{})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Contains(s.body(resp), "Invalid username or password")

	resp = s.post(webpath.Login, url.Values{
		"username": {"alice"},
		"password": {"alicepass"},
		"next":     {webpath.MyRequests},
	}, users.User{})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.MyRequests, resp.Header.Get("Location"))
	var token string
	for _, c := range resp.Cookies() {
		if c.Name == authservice.CookieName {
			token = c.Value
		}
	}
	s.Require().NotEmpty(token)
	user, err := s.auth.Authenticate(context.Background(), token)
	s.Require().NoError(err)
	s.Equal(s.member.ID, user.ID)
}

func (s *ServerSuite) TestSignup() {
	resp := s.post(webpath.Register, url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"bobpass"},
		"confirm_password": {"bobpass"},
	}, users.User{})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(webpath.Login, resp.Header.Get("Location"))

	resp = s.post(webpath.Register, url.Values{
		"username":         {"bob"},
		"email":            {"other@example.com"},
		"password":         {"bobpass"},
		"confirm_password": {"bobpass"},
	}, users.User{})
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.Contains(s.body(resp), "Username or email already exists")

	resp = s.post(webpath.Register, url.Values{
		"username":         {"carol"},
		"email":            {"carol@example.com"},
		"password":         {"carolpass"},
		"confirm_password": {"different"},
	}, users.User{})
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.Contains(s.body(resp), "Passwords do not match")
}

func (s *ServerSuite) TestInvalidTokenIsGuest() {
	req := httptest.NewRequest(http.MethodGet, webpath.Home, nil)
	req.AddCookie(&http.Cookie{Name: authservice.CookieName, Value: "garbage"})
	resp := s.do(req, users.User{})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.body(resp), "Log in")
}

func (s *ServerSuite) TestNotFound() {
	resp := s.get("/no-such-page", users.User{})
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(s.body(resp), "Page not found")
}

func (s *ServerSuite) TestStaticStylesheet() {
	resp := s.get(webpath.Static+"/style.css", users.User{})
	s.Equal(http.StatusOK, resp.StatusCode)
}
