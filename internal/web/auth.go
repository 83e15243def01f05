package web

import (
	"errors"

	authservice "github.com/goserg/campusevents/auth/service"
	"github.com/goserg/campusevents/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleLoginGet(ctx *fiber.Ctx) error {
	if currentUser(ctx).IsAuthenticated() {
		return ctx.Redirect(webpath.Home)
	}
	form := loginForm{Next: safeNext(ctx.Query("next"))}
	return ctx.Render("auth/login", s.page(ctx, "Log in").
		With("Form", form), layout)
}

func (s *Server) handleLoginPost(ctx *fiber.Ctx) error {
	if currentUser(ctx).IsAuthenticated() {
		return ctx.Redirect(webpath.Home)
	}
	form := parseLoginForm(ctx)
	form.Next = safeNext(form.Next)
	err := validateForm(form)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).Render("auth/login", s.page(ctx, "Log in").
			With("Form", form).
			WithErrors(err), layout)
	}
	user, err := s.auth.Login(ctx.Context(), form.Username, form.Password)
	if errors.Is(err, authservice.ErrInvalidCredentials) {
		s.log.WithField("username", form.Username).Info("failed login")
		form.Password = ""
		return ctx.Status(fiber.StatusUnauthorized).Render("auth/login", s.page(ctx, "Log in").
			With("Form", form).
			WithNotices([]notice{{Kind: noticeError, Text: "Invalid username or password"}}), layout)
	}
	if err != nil {
		return err
	}
	cookie, err := s.auth.GenerateJWTCookie(user.ID)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	s.flash(ctx, noticeSuccess, "Logged in successfully!")
	if form.Next != "" {
		return ctx.Redirect(form.Next)
	}
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleSignupGet(ctx *fiber.Ctx) error {
	if currentUser(ctx).IsAuthenticated() {
		return ctx.Redirect(webpath.Home)
	}
	return ctx.Render("auth/register", s.page(ctx, "Register").
		With("Form", signupForm{}), layout)
}

func (s *Server) handleSignupPost(ctx *fiber.Ctx) error {
	if currentUser(ctx).IsAuthenticated() {
		return ctx.Redirect(webpath.Home)
	}
	form := parseSignupForm(ctx)
	err := validateForm(form)
	if err == nil {
		_, err = s.auth.SignUp(ctx.Context(), form.Username, form.Email, form.Password)
		if err == nil {
			s.flash(ctx, noticeSuccess, "Registration successful! Please login.")
			return ctx.Redirect(webpath.Login)
		}
		if !errors.Is(err, authservice.ErrUserExists) {
			return err
		}
		err = errors.New("Username or email already exists")
	}
	form.Password, form.ConfirmPassword = "", ""
	return ctx.Status(fiber.StatusUnprocessableEntity).Render("auth/register", s.page(ctx, "Register").
		With("Form", form).
		WithErrors(err), layout)
}

func (s *Server) handleLogout(ctx *fiber.Ctx) error {
	ctx.Cookie(s.auth.LogoutCookie())
	s.flash(ctx, noticeSuccess, "Logged out successfully!")
	return ctx.Redirect(webpath.Home)
}
