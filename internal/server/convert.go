package server

import (
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/pkg/lox"
	"uk_numcheck/pkg/rest"
)

func newRESTValidationReport(report entity.ValidationReport) rest.ValidationReport {
	return rest.ValidationReport{
		Number:    report.Number,
		Canonical: report.Canonical,
		Result: rest.ValidationResult{
			Class:    string(report.Classification.Outcome),
			Provider: report.Classification.Provider,
		},
	}
}

func newRESTValidationReports(reports []entity.ValidationReport) []rest.ValidationReport {
	return lox.Map(reports, newRESTValidationReport)
}

func newRESTDataset(meta entity.Meta) rest.Dataset {
	return rest.Dataset{
		ID:        meta.ID.String(),
		Source:    meta.Source,
		ETag:      meta.ETag,
		FetchedAt: meta.FetchedAt,
		RuleCount: meta.RuleCount,
		Policy:    meta.Policy,
	}
}
