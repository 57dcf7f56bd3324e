// Package ofcom downloads and parses the published UK numbering-plan
// allocation files.
package ofcom

import (
	"uk_numcheck/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
