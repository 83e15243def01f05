package migrate

import (
	"database/sql"
	"errors"

	embedded "github.com/goserg/campusevents"

	gomigrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Up applies every embedded migration that has not run yet.
func Up(db *sql.DB) error {
	sourceDriver, err := iofs.New(embedded.Migrations, "migrations")
	if err != nil {
		return err
	}
	databaseDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := gomigrate.NewWithInstance("iofs",
		sourceDriver,
		"campusevents", databaseDriver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		return err
	}
	return nil
}
