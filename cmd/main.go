package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	authservice "github.com/goserg/campusevents/auth/service"
	authsqlite "github.com/goserg/campusevents/auth/storage/sqlite"
	"github.com/goserg/campusevents/internal/config"
	"github.com/goserg/campusevents/internal/logger"
	"github.com/goserg/campusevents/internal/notify"
	"github.com/goserg/campusevents/internal/service"
	"github.com/goserg/campusevents/internal/storage"
	"github.com/goserg/campusevents/internal/storage/sqlite"
	"github.com/goserg/campusevents/internal/uploads"
	"github.com/goserg/campusevents/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "server-config", "configs/server.toml", "path to server config")
	flag.Parse()

	cfg, err := config.New(configPath)
	if err != nil {
		return err
	}
	l := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(storage.FileSource(cfg.Server.SqliteFile))
	if err != nil {
		return err
	}
	defer db.Close()

	authService, err := authservice.New(ctx, cfg.Auth, authsqlite.New(db, l), l)
	if err != nil {
		return err
	}
	store, err := uploads.New(ctx, cfg.Uploads)
	if err != nil {
		return err
	}
	notifier, err := notify.New(cfg.Notify, l)
	if err != nil {
		return err
	}
	eventService := service.New(sqlite.New(db, l), store, notifier, l)

	sessions, err := web.NewSessionStore(cfg.Session, cfg.Auth.SecureCookie)
	if err != nil {
		return err
	}
	server, err := web.New(cfg.Server, eventService, authService, store, sessions, l)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()
	l.WithField("addr", cfg.Server.Host+":"+cfg.Server.Port).Info("server started")

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}
	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
