package sqlite

import (
	"io"
	"time"

	"log/slog"

	"github.com/garnizeh/crm/internal/db"
	"github.com/garnizeh/crm/pkg/repository"
	"github.com/google/uuid"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.PersonRepo = (*SQLiteRepo)(nil)
var _ repository.ClientRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

func newID() string {
	return uuid.NewString()
}

// nullable maps empty strings to NULL so optional columns stay NULL instead
// of accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
