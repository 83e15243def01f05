package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	embedded "github.com/goserg/campusevents"
	authservice "github.com/goserg/campusevents/auth/service"
	"github.com/goserg/campusevents/auth/users"
	"github.com/goserg/campusevents/internal/config"
	"github.com/goserg/campusevents/internal/service"
	"github.com/goserg/campusevents/internal/uploads"
	"github.com/goserg/campusevents/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

const layout = "layouts/main"

type Server struct {
	auth     *authservice.Service
	events   *service.EventService
	sessions *session.Store
	app      *fiber.App
	cfg      config.Server
	log      *logrus.Entry
}

func New(
	cfg config.Server,
	events *service.EventService,
	authService *authservice.Service,
	store uploads.Store,
	sessions *session.Store,
	l *logrus.Logger,
) (*Server, error) {
	server := Server{
		auth:     authService,
		events:   events,
		sessions: sessions,
		cfg:      cfg,
		log: l.WithFields(map[string]interface{}{
			"from": "web",
		}),
	}

	viewsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(viewsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatTime", formatTime)
	engine.AddFunc("FormatDateTime", formatDateTime)
	engine.AddFunc("Markdown", markdown)
	engine.AddFunc("PathID", webpath.WithID)

	app := fiber.New(fiber.Config{
		Views:         engine,
		ErrorHandler:  server.handleError,
		BodyLimit:     uploads.MaxSize,
		CaseSensitive: true,
	})
	app.Use(recover.New())
	app.Use(server.logRequests)

	publicFS, err := fs.Sub(embedded.Public, "public")
	if err != nil {
		return nil, err
	}
	app.Use(webpath.Static, filesystem.New(filesystem.Config{
		Root: http.FS(publicFS),
	}))
	if local, ok := store.(*uploads.Local); ok {
		app.Static(webpath.Uploads, local.Dir())
	}

	app.Use(server.authenticate)

	loginWindow, err := time.ParseDuration(cfg.LoginWindow)
	if err != nil {
		return nil, err
	}
	loginLimiter := limiter.New(limiter.Config{
		Max:        cfg.LoginAttempts,
		Expiration: loginWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		SkipSuccessfulRequests: true,
		LimitReached: func(c *fiber.Ctx) error {
			server.flash(c, noticeError, "Too many login attempts. Please try again later.")
			return c.Redirect(webpath.Login)
		},
	})

	app.Get(webpath.Home, server.handleHome)
	app.Get(webpath.Event, server.handleEvent)
	app.Post(webpath.EventRegister, server.handleRegister)
	app.Post(webpath.EventCancel, server.handleCancel)
	app.Get(webpath.RequestEvent, server.handleRequestEventGet)
	app.Post(webpath.RequestEvent, server.handleRequestEventPost)
	app.Get(webpath.MyRequests, server.handleMyRequests)
	app.Get(webpath.MyRegistrations, server.handleMyRegistrations)

	app.Get(webpath.Login, server.handleLoginGet)
	app.Post(webpath.Login, loginLimiter, server.handleLoginPost)
	app.Get(webpath.Register, server.handleSignupGet)
	app.Post(webpath.Register, server.handleSignupPost)
	app.Get(webpath.Logout, server.handleLogout)

	app.Get(webpath.Admin, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.AdminDashboard)
	})
	app.Get(webpath.AdminDashboard, server.handleDashboard)
	app.Get(webpath.AdminEvents, server.handleAdminEvents)
	app.Get(webpath.AdminNewEvent, server.handleNewEventGet)
	app.Post(webpath.AdminNewEvent, server.handleNewEventPost)
	app.Get(webpath.AdminEditEvent, server.handleEditEventGet)
	app.Post(webpath.AdminEditEvent, server.handleEditEventPost)
	app.Post(webpath.AdminDeleteEvent, server.handleDeleteEvent)
	app.Get(webpath.AdminEventRegistrations, server.handleEventRegistrations)
	app.Get(webpath.AdminRequests, server.handleAdminRequests)
	app.Post(webpath.AdminReviewRequest, server.handleReviewRequest)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + s.cfg.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

const userKey = "user"

func currentUser(ctx *fiber.Ctx) users.User {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return user
}

// page starts the template data for a full page, consuming pending notices.
func (s *Server) page(ctx *fiber.Ctx, title string) data {
	return newData(title).
		WithUser(currentUser(ctx)).
		WithNotices(s.takeFlashes(ctx))
}

func (s *Server) logRequests(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()
	entry := s.log.WithFields(map[string]interface{}{
		"method":  ctx.Method(),
		"path":    ctx.Path(),
		"status":  ctx.Response().StatusCode(),
		"latency": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Info("request failed")
		return err
	}
	entry.Debug("request")
	return nil
}

// authenticate resolves the visitor and applies the access rules before any
// handler runs. Denied visitors are redirected with a notice.
func (s *Server) authenticate(ctx *fiber.Ctx) error {
	user, err := s.auth.Authenticate(ctx.Context(), ctx.Cookies(authservice.CookieName))
	if err != nil {
		s.log.WithError(err).Debug("dropping invalid token")
		ctx.Cookie(s.auth.LogoutCookie())
		user = users.User{}
	}
	ctx.Context().SetUserValue(userKey, user)

	err = s.auth.Authorize(user, ctx.Method(), ctx.Path())
	if err == nil {
		return ctx.Next()
	}
	var accessErr *authservice.AccessError
	if !errors.As(err, &accessErr) {
		return err
	}
	s.log.WithFields(map[string]interface{}{
		"rule": accessErr.Rule,
		"path": ctx.Path(),
		"role": user.EffectiveRole(),
	}).Info("access denied")
	if accessErr.Notice != "" {
		s.flash(ctx, noticeError, accessErr.Notice)
	}
	target := accessErr.Redirect
	if target == "" {
		target = webpath.Home
	}
	if target == webpath.Login && ctx.Method() == fiber.MethodGet {
		target += "?next=" + url.QueryEscape(ctx.OriginalURL())
	}
	return ctx.Redirect(target)
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	title := "Something went wrong"
	switch {
	case code == fiber.StatusNotFound:
		title = "Page not found"
	case code >= fiber.StatusInternalServerError:
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	ctx.Status(code)
	renderErr := ctx.Render("error", newData(title).
		WithUser(currentUser(ctx)).
		With("Code", code), layout)
	if renderErr != nil {
		s.log.WithError(renderErr).Error("failed to render error page")
		return ctx.SendString(title)
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

func formatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

// markdown renders event descriptions. Raw HTML in the source is dropped.
func markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
