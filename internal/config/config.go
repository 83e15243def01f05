package config

import (
	"errors"
	"io/fs"
	"os"

	authservice "github.com/goserg/campusevents/auth/service"
	"github.com/goserg/campusevents/internal/notify"
	"github.com/goserg/campusevents/internal/uploads"

	"github.com/BurntSushi/toml"
)

type Server struct {
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	Debug      bool   `toml:"debug_mode"`
	SqliteFile string `toml:"sqlite_file"`
	LogLevel   string `toml:"log_level"`
	// LoginAttempts per LoginWindow and remote address.
	LoginAttempts int    `toml:"login_attempts"`
	LoginWindow   string `toml:"login_window"`
}

type Session struct {
	Backend    string          `toml:"backend"`
	Expiration string          `toml:"expiration"`
	Postgres   PostgresSession `toml:"postgres"`
}

type PostgresSession struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Database string `toml:"database"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Table    string `toml:"table"`
}

type Config struct {
	Server  Server             `toml:"server"`
	Auth    authservice.Config `toml:"auth"`
	Session Session            `toml:"session"`
	Uploads uploads.Config     `toml:"uploads"`
	Notify  notify.Config      `toml:"notify"`
}

func Default() Config {
	return Config{
		Server: Server{
			Host:          "0.0.0.0",
			Port:          "3000",
			SqliteFile:    "campusevents.sqlite",
			LogLevel:      "info",
			LoginAttempts: 10,
			LoginWindow:   "15m",
		},
		Auth: authservice.Config{
			Expiration: "24h",
			Admin: authservice.Admin{
				Name:  "admin",
				Email: "admin@college.edu",
			},
		},
		Session: Session{
			Backend:    "memory",
			Expiration: "24h",
			Postgres: PostgresSession{
				Host:  "localhost",
				Port:  5432,
				Table: "campusevents_sessions",
			},
		},
		Uploads: uploads.Config{
			Backend:   uploads.BackendLocal,
			LocalPath: "uploads",
		},
	}
}

// New reads the TOML file at path over the defaults. A missing file keeps
// the defaults. Secrets may be overridden from the environment.
func New(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	if token := os.Getenv("CAMPUSEVENTS_JWT_SECRET"); token != "" {
		cfg.Auth.Token = token
	}
	if password := os.Getenv("CAMPUSEVENTS_ADMIN_PASSWORD"); password != "" {
		cfg.Auth.Admin.Password = password
	}
	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		cfg.Notify.TelegramToken = token
	}
	if cfg.Auth.Token == "" {
		return Config{}, errors.New("auth token must be set in config or CAMPUSEVENTS_JWT_SECRET")
	}
	return cfg, nil
}
