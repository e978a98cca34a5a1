// Package logging owns the server's slog pipeline: JSON lines on stdout
// from boot, joined by an asynchronous database sink once the store is up.
package logging

import (
	"log/slog"
	"os"

	"gorm.io/gorm"
)

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Setup installs the stdout JSON logger. Called first thing in main, before
// the database exists.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// AttachDB upgrades the default logger to fan out to stdout and a database
// sink that batches ERROR records into system_logs. The returned handler
// must be stopped on shutdown so its buffer flushes.
func AttachDB(db *gorm.DB) *DBHandler {
	dbh := NewDBHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), dbh)))
	return dbh
}
