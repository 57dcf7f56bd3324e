package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// RefreshEnqueuer queues refresh tasks on demand, for the manual API
// trigger.
type RefreshEnqueuer struct {
	client *asynq.Client
}

func NewRefreshEnqueuer(client *asynq.Client) *RefreshEnqueuer {
	return &RefreshEnqueuer{client: client}
}

// EnqueueRefresh queues one refresh task and returns its task ID.
func (e *RefreshEnqueuer) EnqueueRefresh(ctx context.Context) (string, error) {
	info, err := e.client.EnqueueContext(ctx, asynq.NewTask(TaskRefresh, nil))
	if err != nil {
		return "", fmt.Errorf("asynq.EnqueueContext: %w", err)
	}

	return info.ID, nil
}
