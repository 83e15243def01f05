package web

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goserg/campusevents/internal/domain"

	"github.com/go-playground/validator/v10"
)

// formValues is satisfied by *fiber.Ctx.
type formValues interface {
	FormValue(key string, defaultValue ...string) string
}

var nameRegexp = regexp.MustCompile(`^[A-Za-z]\w+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return nameRegexp.MatchString(fl.Field().String())
	})
	return v
}

// validateForm turns validation failures into one readable error per field.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var errs error
	for _, fe := range fieldErrs {
		errs = errors.Join(errs, errors.New(fieldMessage(fe)))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "number":
		return fmt.Sprintf("%s must be a whole number", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a valid value in %s format", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "username":
		return fmt.Sprintf("%s must start with a latin letter and contain only letters, digits and underscores", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

type eventForm struct {
	Title       string `label:"Title" validate:"required,max=200"`
	Description string `label:"Description" validate:"max=10000"`
	Date        string `label:"Date" validate:"required,datetime=2006-01-02"`
	Time        string `label:"Time" validate:"required,datetime=15:04:05"`
	Location    string `label:"Location" validate:"required,max=200"`
	Capacity    string `label:"Capacity" validate:"required,number,max=9"`
	Status      string `label:"Status" validate:"omitempty,oneof=published draft cancelled"`
}

func parseEventForm(form formValues) eventForm {
	return eventForm{
		Title:       strings.TrimSpace(form.FormValue("title")),
		Description: strings.TrimSpace(form.FormValue("description")),
		Date:        strings.TrimSpace(form.FormValue("date")),
		Time:        canonicalTime(strings.TrimSpace(form.FormValue("time"))),
		Location:    strings.TrimSpace(form.FormValue("location")),
		Capacity:    strings.TrimSpace(form.FormValue("capacity")),
		Status:      form.FormValue("status"),
	}
}

// canonicalTime accepts the "HH:MM" a time input sends.
func canonicalTime(s string) string {
	if len(s) == len("15:04") {
		return s + ":00"
	}
	return s
}

func (f eventForm) details() (domain.EventDetails, error) {
	if err := validateForm(f); err != nil {
		return domain.EventDetails{}, err
	}
	capacity, err := strconv.Atoi(f.Capacity)
	if err != nil {
		return domain.EventDetails{}, errors.New("Capacity must be a whole number")
	}
	return domain.EventDetails{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Time:        f.Time,
		Location:    f.Location,
		Capacity:    capacity,
	}, nil
}

func (f eventForm) status() domain.EventStatus {
	if f.Status == "" {
		return domain.EventPublished
	}
	return domain.EventStatus(f.Status)
}

func eventFormFromDetails(d domain.EventDetails, status domain.EventStatus) eventForm {
	return eventForm{
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Time:        d.Time,
		Location:    d.Location,
		Capacity:    strconv.Itoa(d.Capacity),
		Status:      string(status),
	}
}

type signupForm struct {
	Username        string `label:"Username" validate:"required,min=3,max=32,username"`
	Email           string `label:"Email" validate:"required,email,max=254"`
	Password        string `label:"Password" validate:"required,min=6,max=72"`
	ConfirmPassword string `label:"Password confirmation" validate:"required,eqfield=Password"`
}

func parseSignupForm(form formValues) signupForm {
	return signupForm{
		Username:        strings.TrimSpace(form.FormValue("username")),
		Email:           strings.TrimSpace(form.FormValue("email")),
		Password:        form.FormValue("password"),
		ConfirmPassword: form.FormValue("confirm_password"),
	}
}

type loginForm struct {
	Username string `label:"Username" validate:"required"`
	Password string `label:"Password" validate:"required"`
	Next     string
}

func parseLoginForm(form formValues) loginForm {
	return loginForm{
		Username: strings.TrimSpace(form.FormValue("username")),
		Password: form.FormValue("password"),
		Next:     form.FormValue("next"),
	}
}

type reviewForm struct {
	Action  string
	Remarks string
}

func parseReviewForm(form formValues) reviewForm {
	return reviewForm{
		Action:  form.FormValue("action"),
		Remarks: strings.TrimSpace(form.FormValue("admin_remarks")),
	}
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, `\`) {
		return ""
	}
	return next
}
