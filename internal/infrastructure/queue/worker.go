package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
)

// Worker runs Asynq task handlers. Call Run() to start.
type Worker struct {
	srv       *asynq.Server
	mux       *asynq.ServeMux
	histories ports.HistoryRepository
	log       zerolog.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, histories ports.HistoryRepository, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, histories: histories, log: log}
	mux.HandleFunc(TypeRecordHistory, w.handleRecordHistory)
	return w
}

func (w *Worker) handleRecordHistory(ctx context.Context, t *asynq.Task) error {
	var p historyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("history task payload invalid")
		return err
	}
	entry := &domain.TaskHistory{
		ID:        p.ID,
		TaskID:    domain.NewTaskID(p.TaskID),
		UserID:    domain.NewUserID(p.UserID),
		Action:    domain.HistoryAction(p.Action),
		Details:   p.Details,
		CreatedAt: p.CreatedAt,
	}
	if err := w.histories.Create(ctx, entry); err != nil {
		w.log.Error().Err(err).Str("task_id", entry.TaskID.String()).Msg("history record write failed")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
