package webpath

import (
	"strconv"
	"strings"
)

const (
	Home            = "/"
	Event           = "/event/:id"
	EventRegister   = Event + "/register"
	EventCancel     = Event + "/cancel"
	RequestEvent    = "/request-event"
	MyRequests      = "/my-requests"
	MyRegistrations = "/my-registrations"

	Login    = "/login"
	Register = "/register"
	Logout   = "/logout"

	Admin                   = "/admin"
	AdminDashboard          = Admin + "/dashboard"
	AdminEvents             = Admin + "/events"
	AdminNewEvent           = AdminEvents + "/new"
	AdminEditEvent          = AdminEvents + "/:id/edit"
	AdminDeleteEvent        = AdminEvents + "/:id/delete"
	AdminEventRegistrations = AdminEvents + "/:id/registrations"
	AdminRequests           = Admin + "/requests"
	AdminReviewRequest      = AdminRequests + "/:id/review"

	Uploads = "/uploads"
	Static  = "/static"
)

func Path() map[string]string {
	return map[string]string{
		"Home":                    Home,
		"Event":                   Event,
		"EventRegister":           EventRegister,
		"EventCancel":             EventCancel,
		"RequestEvent":            RequestEvent,
		"MyRequests":              MyRequests,
		"MyRegistrations":         MyRegistrations,
		"Login":                   Login,
		"Register":                Register,
		"Logout":                  Logout,
		"Admin":                   Admin,
		"AdminDashboard":          AdminDashboard,
		"AdminEvents":             AdminEvents,
		"AdminNewEvent":           AdminNewEvent,
		"AdminEditEvent":          AdminEditEvent,
		"AdminDeleteEvent":        AdminDeleteEvent,
		"AdminEventRegistrations": AdminEventRegistrations,
		"AdminRequests":           AdminRequests,
		"AdminReviewRequest":      AdminReviewRequest,
		"Static":                  Static,
	}
}

// WithID fills the :id parameter of a route.
func WithID(route string, id int64) string {
	return strings.Replace(route, ":id", strconv.FormatInt(id, 10), 1)
}
