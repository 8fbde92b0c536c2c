package ports

import (
	"context"

	"github.com/tablero-app/tablero/internal/domain"
)

// HistoryRecorder appends one task-history entry per user-visible mutation.
// Recording is best-effort relative to the mutation it documents: callers
// ignore the returned error, and implementations must never fail the primary
// mutation. History is only ever read back by the task history view.
type HistoryRecorder interface {
	Record(ctx context.Context, entry *domain.TaskHistory) error
}
