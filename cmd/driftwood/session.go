package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/config"
	"github.com/gorewood/driftwood/internal/dag"
	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/output"
	"github.com/gorewood/driftwood/internal/smartlog"
)

// session bundles the read-only state a navigation command works from: the
// repository handle, the event database, and the graph snapshot built from
// one replay of the log. A command opens it once, so event-log appends from
// hooks in other processes cannot shift the graph mid-operation.
type session struct {
	repo *git.Repo
	db   *eventlog.DB
	snap *dag.Snapshot
}

func openSession() (*session, error) {
	repo, err := git.OpenRepo()
	if err != nil {
		return nil, err
	}

	// A repository that never ran init has no log; navigate the plain
	// graph rather than creating the database as a side effect.
	if !eventlog.Exists(repo.GitDir()) {
		snap, err := dag.Build(repo, eventlog.Replay(nil))
		if err != nil {
			return nil, err
		}
		return &session{repo: repo, snap: snap}, nil
	}

	db, err := eventlog.Open(repo.GitDir())
	if err != nil {
		return nil, err
	}
	events, err := db.Events()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	snap, err := dag.Build(repo, eventlog.Replay(events))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &session{repo: repo, db: db, snap: snap}, nil
}

func (s *session) close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// loadSettings reads the user config file, falling back to zero settings
// when it is missing or malformed. A broken config file must not block
// navigation; the commands that care take flags anyway.
func loadSettings(printer *output.Printer) *config.Settings {
	settings, err := config.Load(config.Dir())
	if err != nil {
		printer.Warn("ignoring config: %v", err)
		return &config.Settings{}
	}
	return settings
}

// parseCount reads the optional positional step count, defaulting to 1.
func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, output.NewUserError("invalid commit count " + strconv.Quote(args[0]))
	}
	if n < 0 {
		return 0, output.NewUserError("commit count cannot be negative")
	}
	return n, nil
}

// refreshView opens a fresh snapshot and prints the smartlog. Navigation
// commands call this after a successful checkout; the checkout itself moved
// HEAD and appended events, so the working snapshot is already stale.
func refreshView(cmd *cobra.Command, printer *output.Printer, settings *config.Settings) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	lines := smartlog.Render(smartlog.BuildGraph(sess.snap), smartlog.Options{
		ASCII: settings.Smartlog.ASCII,
		Color: useColor(cmd),
	})
	for _, line := range lines {
		printer.Println(line)
	}
	return nil
}
