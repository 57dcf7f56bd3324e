package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/pkg/errcodes"
	"uk_numcheck/pkg/httpx/reply"
	"uk_numcheck/pkg/httpx/req"
	"uk_numcheck/pkg/rest"
)

type checkService interface {
	Check(ctx context.Context, raw string) (entity.ValidationReport, error)
	CheckBatch(ctx context.Context, raws []string) ([]entity.ValidationReport, error)
}

// CheckServer handles the number validation endpoints.
type CheckServer struct {
	checkService checkService
}

func NewCheckServer(checkService checkService) CheckServer {
	return CheckServer{
		checkService: checkService,
	}
}

func (s CheckServer) getV1Validate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	number := r.URL.Query().Get("number")
	if number == "" {
		return failure.NewInvalidArgumentError(
			"missing number query parameter",
			failure.WithCode(errcodes.InvalidNumber),
			failure.WithDescription("The number query parameter is required"),
		)
	}

	report, err := s.checkService.Check(ctx, number)
	if err != nil {
		return fmt.Errorf("checkService.Check: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTValidationReport(report))

	return nil
}

func (s CheckServer) postV1ValidateBatch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BatchValidateRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	reports, err := s.checkService.CheckBatch(ctx, request.Numbers)
	if err != nil {
		return fmt.Errorf("checkService.CheckBatch: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTValidationReports(reports))

	return nil
}
