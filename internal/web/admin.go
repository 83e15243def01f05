package web

import (
	"errors"

	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleDashboard(ctx *fiber.Ctx) error {
	dashboard, err := s.events.Dashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("admin/dashboard", s.page(ctx, "Admin dashboard").
		With("Stats", dashboard.Stats).
		With("Upcoming", dashboard.Upcoming), layout)
}

func (s *Server) handleAdminEvents(ctx *fiber.Ctx) error {
	events, err := s.events.AllEvents(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("admin/events", s.page(ctx, "Manage events").
		With("Events", events), layout)
}

func (s *Server) renderEventForm(ctx *fiber.Ctx, status int, title string, action string, form eventForm, err error) error {
	return ctx.Status(status).Render("admin/event_form", s.page(ctx, title).
		With("Form", form).
		With("Action", action).
		WithErrors(err), layout)
}

func (s *Server) handleNewEventGet(ctx *fiber.Ctx) error {
	form := eventForm{Status: string(domain.EventPublished)}
	return s.renderEventForm(ctx, fiber.StatusOK, "New event", webpath.AdminNewEvent, form, nil)
}

func (s *Server) handleNewEventPost(ctx *fiber.Ctx) error {
	form := parseEventForm(ctx)
	details, err := form.details()
	if err != nil {
		return s.renderEventForm(ctx, fiber.StatusUnprocessableEntity, "New event", webpath.AdminNewEvent, form, err)
	}
	image, closeImage, err := formImage(ctx)
	if err != nil {
		return err
	}
	defer closeImage()
	_, err = s.events.CreateEvent(ctx.Context(), currentUser(ctx).ID, details, form.status(), image)
	if err != nil {
		return err
	}
	s.flash(ctx, noticeSuccess, "Event created successfully!")
	return ctx.Redirect(webpath.AdminEvents)
}

func (s *Server) handleEditEventGet(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	event, details, err := s.events.EditableEvent(ctx.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		s.flash(ctx, noticeError, "Event not found")
		return ctx.Redirect(webpath.AdminEvents)
	}
	if err != nil {
		return err
	}
	form := eventFormFromDetails(details, event.Status)
	return s.renderEventForm(ctx, fiber.StatusOK, "Edit event", webpath.WithID(webpath.AdminEditEvent, id), form, nil)
}

func (s *Server) handleEditEventPost(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	action := webpath.WithID(webpath.AdminEditEvent, id)
	form := parseEventForm(ctx)
	details, err := form.details()
	if err != nil {
		return s.renderEventForm(ctx, fiber.StatusUnprocessableEntity, "Edit event", action, form, err)
	}
	err = s.events.UpdateEvent(ctx.Context(), id, details, form.status())
	switch {
	case err == nil:
		s.flash(ctx, noticeSuccess, "Event updated successfully!")
	case errors.Is(err, domain.ErrNotFound):
		s.flash(ctx, noticeError, "Event not found")
	default:
		return err
	}
	return ctx.Redirect(webpath.AdminEvents)
}

func (s *Server) handleDeleteEvent(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	err = s.events.DeleteEvent(ctx.Context(), id)
	switch {
	case err == nil:
		s.flash(ctx, noticeSuccess, "Event has been deleted successfully.")
	case errors.Is(err, domain.ErrNotFound):
		s.flash(ctx, noticeError, "Event not found")
	default:
		s.flash(ctx, noticeError, "Error deleting event. Please try again.")
	}
	return ctx.Redirect(webpath.AdminEvents)
}

func (s *Server) handleEventRegistrations(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	event, registrants, err := s.events.EventRegistrations(ctx.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		s.flash(ctx, noticeError, "Event not found")
		return ctx.Redirect(webpath.AdminEvents)
	}
	if err != nil {
		return err
	}
	return ctx.Render("admin/registrations", s.page(ctx, "Registrations: "+event.Title).
		With("Event", event).
		With("Registrants", registrants), layout)
}

func (s *Server) handleAdminRequests(ctx *fiber.Ctx) error {
	requests, err := s.events.AllRequests(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("admin/requests", s.page(ctx, "Event requests").
		With("Requests", requests), layout)
}

func (s *Server) handleReviewRequest(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	form := parseReviewForm(ctx)
	err = s.events.Review(ctx.Context(), id, form.Action, form.Remarks)
	switch {
	case err == nil:
		s.flash(ctx, noticeSuccess, "Request has been "+string(domain.ReviewAction(form.Action).Status()))
	case errors.Is(err, domain.ErrInvalidAction):
		s.flash(ctx, noticeError, "Invalid action")
	case errors.Is(err, domain.ErrNotFound):
		s.flash(ctx, noticeError, "Request not found")
	case errors.Is(err, domain.ErrAlreadyReviewed):
		s.flash(ctx, noticeError, "Request has already been reviewed")
	default:
		return err
	}
	return ctx.Redirect(webpath.AdminRequests)
}
