package storage

import (
	"database/sql"
	"net/url"

	"github.com/goserg/campusevents/internal/migrate"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the sqlite database and brings its schema up to date.
// The returned handle is shared by every storage of the process.
func Open(source string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	err = migrate.Up(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func FileSource(file string) string {
	return buildSource(file, false)
}

// MemorySource names a private in-memory database, used by tests.
func MemorySource(name string) string {
	return buildSource(name, true)
}

func buildSource(name string, memory bool) string {
	v := make(url.Values)
	v.Set("cache", "shared")
	v.Set("_foreign_keys", "on")
	if memory {
		v.Set("mode", "memory")
	}
	return "file:" + name + "?" + v.Encode()
}
