package matching

import (
	"database/sql"
	"errors"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"
)

// Logger provides minimal logging required by the matching module.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Deps groups external dependencies needed by the matching module.
// FCM may be nil; assignment pushes then rely on the websocket hub alone.
type Deps struct {
	DB     *sql.DB
	RDB    *redis.Client
	FCM    *messaging.Client
	Logger Logger
	Config MatchConfig
	module *moduleState
}

// Validate ensures required dependencies are provided.
func (d *Deps) Validate() error {
	if d.DB == nil {
		return errors.New("matching deps: DB is required")
	}
	if d.RDB == nil {
		return errors.New("matching deps: RDB is required")
	}
	if d.Logger == nil {
		return errors.New("matching deps: Logger is required")
	}
	return nil
}
