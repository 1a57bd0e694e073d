// Package store holds the meeting store implementations. None of them ever
// sees chat content.
package store

import (
	"fmt"

	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/core"
)

const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Open builds the store selected by cfg.Driver.
func Open(cfg config.StoreConfig) (core.MeetingStore, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverBadger:
		return OpenBadger(cfg.BadgerPath)
	case DriverPostgres:
		return OpenPostgres(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
