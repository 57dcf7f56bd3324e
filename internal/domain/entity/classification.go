package entity

// Outcome is the classification of a number against the numbering plan.
type Outcome string

const (
	// NumberValid - the number is fully formed and diallable under a live
	// allocation.
	NumberValid Outcome = "NUMBER_VALID"
	// NumberInvalid - no allocation can ever match the number.
	NumberInvalid Outcome = "NUMBER_INVALID"
	// NumberTooShort - the number is a strict prefix of at least one
	// potentially diallable allocation; more digits could make it valid.
	NumberTooShort Outcome = "NUMBER_TOO_SHORT"
)

// Classification is the result of classifying a single canonical number.
// Provider is set only when a specific live rule resolved the outcome.
type Classification struct {
	Outcome  Outcome `json:"class"`
	Provider string  `json:"provider,omitempty"`
}

// ValidationReport pairs a classification with the number it was produced
// for, in both the shape the caller sent and the canonical national form.
// Canonical is empty when normalization rejected the input.
type ValidationReport struct {
	Number         string         `json:"number"`
	Canonical      string         `json:"canonical,omitempty"`
	Classification Classification `json:"result"`
}
