package server

import (
	"context"
	"fmt"
	"net/http"

	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/pkg/httpx/reply"
	"uk_numcheck/pkg/rest"
)

type datasetService interface {
	Dataset() (entity.Meta, error)
}

type refreshEnqueuer interface {
	EnqueueRefresh(ctx context.Context) (string, error)
}

// DatasetServer exposes rule set metadata and the manual refresh trigger.
type DatasetServer struct {
	datasetService  datasetService
	refreshEnqueuer refreshEnqueuer
}

func NewDatasetServer(datasetService datasetService, refreshEnqueuer refreshEnqueuer) DatasetServer {
	return DatasetServer{
		datasetService:  datasetService,
		refreshEnqueuer: refreshEnqueuer,
	}
}

func (s DatasetServer) getV1Dataset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	meta, err := s.datasetService.Dataset()
	if err != nil {
		return fmt.Errorf("datasetService.Dataset: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDataset(meta))

	return nil
}

func (s DatasetServer) postV1DatasetRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	taskID, err := s.refreshEnqueuer.EnqueueRefresh(ctx)
	if err != nil {
		return fmt.Errorf("refreshEnqueuer.EnqueueRefresh: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.RefreshAccepted{TaskID: taskID})

	return nil
}
