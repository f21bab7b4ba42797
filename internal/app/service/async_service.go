package service

import (
	"context"

	"calendar-bot/pkg/workerpool"

	"github.com/rs/zerolog"
)

type AsyncService struct {
	Pool *workerpool.WorkerPool
	Log  zerolog.Logger
}

func NewAsyncService(pool *workerpool.WorkerPool, log zerolog.Logger) *AsyncService {
	return &AsyncService{Pool: pool, Log: log.With().Str("component", "async").Logger()}
}

// SubmitAsync выполняет fn в пуле и ждёт результата
func (a *AsyncService) SubmitAsync(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Go ставит fn в очередь без ожидания: при полной очереди задача
// отбрасывается. Ошибки только логируются.
func (a *AsyncService) Go(name string, fn func(context.Context) error) {
	err := a.Pool.TrySubmit(workerpool.Task{Fn: func(ctx context.Context) (any, error) {
		if err := fn(ctx); err != nil {
			a.Log.Warn().Err(err).Str("task", name).Msg("async task failed")
		}
		return nil, nil
	}})
	if err != nil {
		a.Log.Warn().Err(err).Str("task", name).Msg("async task rejected")
	}
}
