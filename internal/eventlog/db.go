package eventlog

import (
	"os"
	"path/filepath"
	"time"

	// sqlite3 registers the database driver xorm opens below.
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/xorm"

	"github.com/gorewood/driftwood/internal/output"
)

// DB is the sqlite-backed event log of one repository.
type DB struct {
	engine *xorm.Engine
}

// Path returns the event database location inside a git directory.
func Path(gitDir string) string {
	return filepath.Join(gitDir, "driftwood", "db.sqlite3")
}

// Exists reports whether the event database has been created. Hook runs use
// this to stay silent in repositories that never ran init.
func Exists(gitDir string) bool {
	_, err := os.Stat(Path(gitDir))
	return err == nil
}

// Open opens the event database for a git directory, creating it on first
// use. The busy timeout covers hook appends racing a navigation command.
func Open(gitDir string) (*DB, error) {
	path := Path(gitDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("creating event log directory", err)
	}

	engine, err := xorm.NewEngine("sqlite3", "file:"+path+"?_busy_timeout=500")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("opening event log", err)
	}
	if err := engine.Sync2(new(Event)); err != nil {
		_ = engine.Close()
		return nil, output.NewSystemErrorWithCause("preparing event log schema", err)
	}

	return &DB{engine: engine}, nil
}

// Close releases the underlying database handle.
func (db *DB) Close() error {
	return db.engine.Close()
}

// Append writes one event to the log. A zero Timestamp is filled with the
// current time.
func (db *DB) Append(ev *Event) error {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	if _, err := db.engine.Insert(ev); err != nil {
		return output.NewSystemErrorWithCause("appending event", err)
	}
	return nil
}

// Events returns every recorded event in append order.
func (db *DB) Events() ([]*Event, error) {
	var events []*Event
	if err := db.engine.Asc("i_d").Find(&events); err != nil {
		return nil, output.NewSystemErrorWithCause("reading event log", err)
	}
	return events, nil
}

// Count returns the number of recorded events.
func (db *DB) Count() (int64, error) {
	n, err := db.engine.Count(new(Event))
	if err != nil {
		return 0, output.NewSystemErrorWithCause("counting events", err)
	}
	return n, nil
}
