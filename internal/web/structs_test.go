package web

import (
	"testing"

	"github.com/goserg/campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForm map[string]string

func (f fakeForm) FormValue(key string, defaultValue ...string) string {
	if v, ok := f[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func validEventForm() fakeForm {
	return fakeForm{
		"title":       " Hackathon ",
		"description": "Bring a laptop",
		"date":        "2024-05-01",
		"time":        "18:30",
		"location":    "Main hall",
		"capacity":    "20",
	}
}

func TestEventForm_Details(t *testing.T) {
	form := parseEventForm(validEventForm())
	details, err := form.details()
	require.NoError(t, err)
	assert.Equal(t, domain.EventDetails{
		Title:       "Hackathon",
		Description: "Bring a laptop",
		Date:        "2024-05-01",
		Time:        "18:30:00",
		Location:    "Main hall",
		Capacity:    20,
	}, details)
	assert.Equal(t, domain.EventPublished, form.status())
}

func TestEventForm_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "missing title", key: "title", value: "  ", want: "Title is required"},
		{name: "bad date", key: "date", value: "2024-13-01", want: "Date must be a valid value in 2006-01-02 format"},
		{name: "bad time", key: "time", value: "25:00", want: "Time must be a valid value in 15:04:05 format"},
		{name: "negative capacity", key: "capacity", value: "-1", want: "Capacity must be a whole number"},
		{name: "text capacity", key: "capacity", value: "many", want: "Capacity must be a whole number"},
		{name: "missing capacity", key: "capacity", value: "", want: "Capacity is required"},
		{name: "unknown status", key: "status", value: "archived", want: "Status must be one of: published, draft, cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validEventForm()
			values[tt.key] = tt.value
			_, err := parseEventForm(values).details()
			require.Error(t, err)
			assert.Equal(t, []string{tt.want}, newData("").WithErrors(err).Errors)
		})
	}
}

func TestEventForm_CollectsAllErrors(t *testing.T) {
	_, err := parseEventForm(fakeForm{"date": "2024-05-01", "time": "10:00:00", "capacity": "5"}).details()
	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		"Title is required",
		"Location is required",
	}, newData("").WithErrors(err).Errors)
}

func TestEventFormFromDetails(t *testing.T) {
	form := eventFormFromDetails(domain.EventDetails{
		Title:    "Talk",
		Date:     "2024-05-01",
		Time:     "09:00:00",
		Location: "Room 1",
		Capacity: 0,
	}, domain.EventDraft)
	assert.Equal(t, "0", form.Capacity)
	assert.Equal(t, domain.EventDraft, form.status())
	_, err := form.details()
	assert.NoError(t, err)
}

func TestSignupForm(t *testing.T) {
	valid := func() fakeForm {
		return fakeForm{
			"username":         "alice_01",
			"email":            "alice@example.com",
			"password":         "secret1",
			"confirm_password": "secret1",
		}
	}
	tests := []struct {
		name  string
		key   string
		value string
		want  []string
	}{
		{name: "valid"},
		{
			name: "password mismatch", key: "confirm_password", value: "secret2",
			want: []string{"Passwords do not match"},
		},
		{
			name: "username starts with digit", key: "username", value: "1alice",
			want: []string{"Username must start with a latin letter and contain only letters, digits and underscores"},
		},
		{
			name: "short username", key: "username", value: "al",
			want: []string{"Username must be at least 3 characters long"},
		},
		{
			name: "bad email", key: "email", value: "alice",
			want: []string{"Email must be a valid email address"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := valid()
			if tt.key != "" {
				values[tt.key] = tt.value
			}
			err := validateForm(parseSignupForm(values))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, newData("").WithErrors(err).Errors)
		})
	}
}

func TestLoginForm(t *testing.T) {
	err := validateForm(parseLoginForm(fakeForm{}))
	assert.ElementsMatch(t, []string{
		"Username is required",
		"Password is required",
	}, newData("").WithErrors(err).Errors)

	form := parseLoginForm(fakeForm{"username": " bob ", "password": "pw", "next": "/my-requests"})
	assert.NoError(t, validateForm(form))
	assert.Equal(t, "bob", form.Username)
	assert.Equal(t, "/my-requests", form.Next)
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{next: "/my-requests", want: "/my-requests"},
		{next: "/event/3?x=1", want: "/event/3?x=1"},
		{next: "", want: ""},
		{next: "https://evil.example.com", want: ""},
		{next: "//evil.example.com", want: ""},
		{next: `/\evil.example.com`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, safeNext(tt.next))
		})
	}
}

func TestMarkdown(t *testing.T) {
	out := string(markdown("**bold** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}
