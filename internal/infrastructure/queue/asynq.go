package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

const TypeRecordHistory = "history:record"

// historyPayload is the JSON body of a history:record task.
type historyPayload struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// AsynqRecorder implements ports.HistoryRecorder by enqueueing the entry for
// a background worker. The write happens off the request path.
type AsynqRecorder struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqRecorder(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *AsynqRecorder {
	return &AsynqRecorder{client: asynq.NewClient(redisOpt), log: log}
}

func (q *AsynqRecorder) Close() error {
	return q.client.Close()
}

func (q *AsynqRecorder) Record(ctx context.Context, entry *domain.TaskHistory) error {
	payload, _ := json.Marshal(historyPayload{
		ID:        entry.ID,
		TaskID:    entry.TaskID.UUID,
		UserID:    entry.UserID.UUID,
		Action:    string(entry.Action),
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	})
	task := asynq.NewTask(TypeRecordHistory, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("task_id", entry.TaskID.String()).Msg("enqueue history record failed")
		return err
	}
	return nil
}

var _ ports.HistoryRecorder = (*AsynqRecorder)(nil)
