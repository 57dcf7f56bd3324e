package entity

// AllocationRule is one record of the numbering-plan allocation table: every
// number whose digits extend Prefix must be exactly TotalLength digits long to
// be diallable under this rule.
//
// Rules are immutable once loaded. The rule set is an ordered sequence; order
// carries no meaning beyond tie-breaking during classification.
type AllocationRule struct {
	Prefix      string `json:"prefix"`
	TotalLength int    `json:"totalLength"`
	Status      string `json:"status"`
	Provider    string `json:"provider,omitempty"`
}
