package web

import (
	"errors"
	"mime/multipart"

	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/service"
	"github.com/goserg/campusevents/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
)

func idParam(ctx *fiber.Ctx) (int64, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}

func (s *Server) handleHome(ctx *fiber.Ctx) error {
	events, err := s.events.Upcoming(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("index", s.page(ctx, "Upcoming events").
		With("Events", events), layout)
}

func (s *Server) handleEvent(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	event, registered, err := s.events.EventDetails(ctx.Context(), id, currentUser(ctx).ID)
	if errors.Is(err, domain.ErrNotFound) {
		s.flash(ctx, noticeError, "Event not found")
		return ctx.Redirect(webpath.Home)
	}
	if err != nil {
		return err
	}
	return ctx.Render("event", s.page(ctx, event.Title).
		With("Event", event).
		With("Registered", registered), layout)
}

func (s *Server) handleRegister(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	eventPage := webpath.WithID(webpath.Event, id)
	err = s.events.Register(ctx.Context(), id, currentUser(ctx).ID)
	switch {
	case err == nil:
		s.flash(ctx, noticeSuccess, "Successfully registered for the event!")
	case errors.Is(err, domain.ErrNotFound):
		s.flash(ctx, noticeError, "Event not found")
		return ctx.Redirect(webpath.Home)
	case errors.Is(err, domain.ErrFull):
		s.flash(ctx, noticeError, "Event is full")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		s.flash(ctx, noticeError, "You are already registered for this event")
	default:
		s.flash(ctx, noticeError, "An error occurred while registering. Please try again.")
	}
	return ctx.Redirect(eventPage)
}

func (s *Server) handleCancel(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	err = s.events.Cancel(ctx.Context(), id, currentUser(ctx).ID)
	switch {
	case err == nil:
		s.flash(ctx, noticeSuccess, "Your registration has been cancelled successfully.")
	case errors.Is(err, domain.ErrNotRegistered):
		s.flash(ctx, noticeError, "You are not registered for this event.")
	default:
		s.flash(ctx, noticeError, "An error occurred while cancelling your registration.")
	}
	return ctx.Redirect(webpath.MyRegistrations)
}

func (s *Server) handleRequestEventGet(ctx *fiber.Ctx) error {
	return ctx.Render("request_event", s.page(ctx, "Request an event").
		With("Form", eventForm{}), layout)
}

func (s *Server) handleRequestEventPost(ctx *fiber.Ctx) error {
	form := parseEventForm(ctx)
	details, err := form.details()
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).Render("request_event",
			s.page(ctx, "Request an event").
				With("Form", form).
				WithErrors(err), layout)
	}
	image, closeImage, err := formImage(ctx)
	if err != nil {
		return err
	}
	defer closeImage()
	_, err = s.events.SubmitRequest(ctx.Context(), currentUser(ctx).ID, details, image)
	if err != nil {
		return err
	}
	s.flash(ctx, noticeSuccess, "Event request submitted successfully!")
	return ctx.Redirect(webpath.MyRequests)
}

// formImage opens the optional "image" upload. A form without a file yields nil.
func formImage(ctx *fiber.Ctx) (*service.Image, func(), error) {
	header, err := ctx.FormFile("image")
	if err != nil || header.Filename == "" {
		return nil, func() {}, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return imageOf(header, file), func() { _ = file.Close() }, nil
}

func imageOf(header *multipart.FileHeader, file multipart.File) *service.Image {
	return &service.Image{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Content:     file,
	}
}

func (s *Server) handleMyRequests(ctx *fiber.Ctx) error {
	requests, err := s.events.MyRequests(ctx.Context(), currentUser(ctx).ID)
	if err != nil {
		return err
	}
	return ctx.Render("my_requests", s.page(ctx, "My event requests").
		With("Requests", requests), layout)
}

func (s *Server) handleMyRegistrations(ctx *fiber.Ctx) error {
	registrations, err := s.events.MyRegistrations(ctx.Context(), currentUser(ctx).ID)
	if err != nil {
		return err
	}
	return ctx.Render("my_registrations", s.page(ctx, "My registrations").
		With("Registrations", registrations), layout)
}
