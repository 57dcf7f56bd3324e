// Package worker runs the dataset refresh: download the allocation files,
// parse them, archive a snapshot and publish the new rule set.
package worker

import (
	jsoniter "github.com/json-iterator/go"

	"uk_numcheck/pkg/contextx"
)

// TaskRefresh is the asynq task type for a dataset refresh. Both the
// scheduler and the manual API trigger enqueue it.
const TaskRefresh = "numbering:refresh"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
