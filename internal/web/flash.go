package web

import (
	"fmt"
	"time"

	"github.com/goserg/campusevents/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/postgres/v3"
)

const (
	noticeSuccess = "success"
	noticeError   = "error"
)

type notice struct {
	Kind string
	Text string
}

// NewSessionStore builds the session store flash notices are kept in.
func NewSessionStore(cfg config.Session, secure bool) (*session.Store, error) {
	expiration, err := time.ParseDuration(cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("session expiration: %w", err)
	}
	sessionCfg := session.Config{
		Expiration:     expiration,
		KeyLookup:      "cookie:session_id",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	switch cfg.Backend {
	case "memory", "":
	case "postgres":
		sessionCfg.Storage = postgres.New(postgres.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			Table:    cfg.Postgres.Table,
			Reset:    false,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
	return session.New(sessionCfg), nil
}

func flashKey(kind string) string {
	return "flash_" + kind
}

// flash queues a notice for the next rendered page.
func (s *Server) flash(ctx *fiber.Ctx, kind string, text string) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		s.log.WithError(err).Warn("session unavailable, dropping notice")
		return
	}
	texts, _ := sess.Get(flashKey(kind)).([]string)
	sess.Set(flashKey(kind), append(texts, text))
	if err := sess.Save(); err != nil {
		s.log.WithError(err).Warn("failed to save notice")
	}
}

// takeFlashes returns and forgets the queued notices.
func (s *Server) takeFlashes(ctx *fiber.Ctx) []notice {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		s.log.WithError(err).Warn("session unavailable")
		return nil
	}
	var notices []notice
	for _, kind := range []string{noticeSuccess, noticeError} {
		texts, ok := sess.Get(flashKey(kind)).([]string)
		if !ok {
			continue
		}
		for _, text := range texts {
			notices = append(notices, notice{Kind: kind, Text: text})
		}
		sess.Delete(flashKey(kind))
	}
	if len(notices) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		s.log.WithError(err).Warn("failed to clear notices")
	}
	return notices
}
