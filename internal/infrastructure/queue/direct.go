package queue

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

// DirectRecorder writes history entries synchronously. Used when Redis/Asynq
// is not configured.
type DirectRecorder struct {
	histories ports.HistoryRepository
}

func NewDirectRecorder(histories ports.HistoryRepository) *DirectRecorder {
	return &DirectRecorder{histories: histories}
}

func (r *DirectRecorder) Record(ctx context.Context, entry *domain.TaskHistory) error {
	return r.histories.Create(ctx, entry)
}

var _ ports.HistoryRecorder = (*DirectRecorder)(nil)
