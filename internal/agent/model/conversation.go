package model

import (
	"context"

	"github.com/studio101-core/server/internal/chatlog"
)

// HistoryReader loads the logged messages of a session, oldest first.
type HistoryReader interface {
	History(ctx context.Context, sessionID string) ([]chatlog.Record, error)
}
