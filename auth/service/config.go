package service

type Config struct {
	Token          string `toml:"token"`
	Expiration     string `toml:"expiration"`
	PasswordPepper string `toml:"password_pepper"`
	BcryptCost     int    `toml:"bcrypt_cost"`
	SecureCookie   bool   `toml:"secure_cookie"`
	Admin          Admin  `toml:"admin"`
	Rules          []Rule `toml:"rules"`
}

// Admin is the account ensured at startup. Nothing is seeded when Password is empty.
type Admin struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Rule grants access to paths matching Path for the listed methods and roles.
// "*" in Method or Allow matches anything, guests included. Denied visitors are
// sent to Redirect with Notice as a flash message.
type Rule struct {
	Name     string   `toml:"name"`
	Path     string   `toml:"path"`
	Method   []string `toml:"method"`
	Allow    []string `toml:"allow"`
	Order    int      `toml:"order"`
	Redirect string   `toml:"redirect"`
	Notice   string   `toml:"notice"`
}

func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "admin",
			Path:     `^/admin(/.*)?$`,
			Method:   []string{"*"},
			Allow:    []string{"admin"},
			Order:    10,
			Redirect: "/",
			Notice:   "You need to be an admin to access this page.",
		},
		{
			Name:     "members",
			Path:     `^/(event/\d+/(register|cancel)|request-event|my-requests|my-registrations|logout)/?$`,
			Method:   []string{"*"},
			Allow:    []string{"member", "admin"},
			Order:    20,
			Redirect: "/login",
			Notice:   "Please log in to access this page.",
		},
		{
			Name:   "public",
			Path:   `.*`,
			Method: []string{"*"},
			Allow:  []string{"*"},
			Order:  100,
		},
	}
}
