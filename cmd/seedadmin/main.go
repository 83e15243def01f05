package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	authservice "github.com/goserg/campusevents/auth/service"
	authsqlite "github.com/goserg/campusevents/auth/storage/sqlite"
	"github.com/goserg/campusevents/internal/config"
	"github.com/goserg/campusevents/internal/logger"
	"github.com/goserg/campusevents/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		name       string
		email      string
		password   string
	)
	flag.StringVar(&configPath, "server-config", "configs/server.toml", "path to server config")
	flag.StringVar(&name, "name", "", "admin username (defaults to the configured one)")
	flag.StringVar(&email, "email", "", "admin email (defaults to the configured one)")
	flag.StringVar(&password, "password", "", "admin password (defaults to CAMPUSEVENTS_ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.New(configPath)
	if err != nil {
		return err
	}
	if name == "" {
		name = cfg.Auth.Admin.Name
	}
	if email == "" {
		email = cfg.Auth.Admin.Email
	}
	if password == "" {
		password = cfg.Auth.Admin.Password
	}
	if password == "" {
		return errors.New("admin password is required")
	}
	l := logger.New(cfg.Server.LogLevel)

	db, err := storage.Open(storage.FileSource(cfg.Server.SqliteFile))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	// Seeding happens below, not in the constructor.
	cfg.Auth.Admin.Password = ""
	authService, err := authservice.New(ctx, cfg.Auth, authsqlite.New(db, l), l)
	if err != nil {
		return err
	}
	if err := authService.EnsureAdmin(ctx, name, email, password); err != nil {
		return err
	}
	l.WithField("admin", name).Info("admin account ready")
	return nil
}
