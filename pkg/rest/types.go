// This file mirrors the public API schema; with an openapi spec it would be
// generated as types.gen.go.
package rest

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ValidationResult is the classification of one number.
type ValidationResult struct {
	// Class is NUMBER_VALID, NUMBER_INVALID or NUMBER_TOO_SHORT.
	Class string `json:"class"`

	// Provider is the communications provider holding the matched
	// allocation, when a live rule resolved the number.
	Provider string `json:"provider,omitempty"`
}

// ValidationReport echoes the submitted number together with its canonical
// national form and classification.
type ValidationReport struct {
	Number    string           `json:"number"`
	Canonical string           `json:"canonical,omitempty"`
	Result    ValidationResult `json:"result"`
}

// BatchValidateRequest is wire-compatible with a bare JSON array of number
// strings while still passing struct validation on size.
type BatchValidateRequest struct {
	Numbers []string `validate:"required,min=1,max=100"`
}

func (b *BatchValidateRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.Numbers) //nolint:wrapcheck
}

// Dataset describes the rule set answering validations right now.
type Dataset struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	ETag      string    `json:"etag,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	RuleCount int       `json:"rule_count"`
	Policy    string    `json:"policy"`
}

// RefreshAccepted acknowledges an enqueued dataset refresh.
type RefreshAccepted struct {
	TaskID string `json:"task_id"`
}

// Error is the error envelope.
type Error struct {
	// Code is the machine-readable error code.
	Code ErrorCode `json:"code"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// ErrorCode is the machine-readable error code.
type ErrorCode string
