package numplan

import (
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/value"
)

// Classifier binds a built index to a status policy. It is immutable: build
// one per rule-set load and share it freely between goroutines. Swapping in
// a refreshed rule set means building a new Classifier and publishing it
// atomically, never mutating an old one.
type Classifier struct {
	index  *Index
	policy StatusPolicy
}

func NewClassifier(index *Index, policy StatusPolicy) *Classifier {
	return &Classifier{
		index:  index,
		policy: policy,
	}
}

func (c *Classifier) Policy() StatusPolicy {
	return c.policy
}

// Classify resolves a canonical national number against the allocation
// table. The function is total: every input, including the empty string and
// digits no allocation covers, maps to exactly one outcome.
//
// Matched rules are filtered through the status policy, then tried in three
// tiers: a live rule whose prefix is the whole number wins outright; then a
// live rule still expecting more digits; then a live rule whose required
// length the number has reached. Within a tier the first rule in walk order
// wins. If no live rule resolves the number but allocations exist deeper
// down the branch, the number is too short rather than invalid - a live
// allocation may still be reachable past the dead prefixes that matched.
func (c *Classifier) Classify(n value.NationalNumber) entity.Classification {
	national := n.String()
	if national == "" {
		return entity.Classification{Outcome: entity.NumberInvalid}
	}

	matched, end, complete := c.index.walk(national)

	var live []entity.AllocationRule

	for _, rule := range matched {
		if !c.policy.Dead(rule.Status) {
			live = append(live, rule)
		}
	}

	for _, rule := range live {
		if rule.Prefix == national {
			return entity.Classification{Outcome: entity.NumberValid, Provider: rule.Provider}
		}
	}

	for _, rule := range live {
		if rule.TotalLength > len(national) {
			return entity.Classification{Outcome: entity.NumberTooShort, Provider: rule.Provider}
		}
	}

	for _, rule := range live {
		if rule.TotalLength == len(national) {
			return entity.Classification{Outcome: entity.NumberValid, Provider: rule.Provider}
		}
	}

	if complete && anyRuleBelow(end) {
		return entity.Classification{Outcome: entity.NumberTooShort}
	}

	return entity.Classification{Outcome: entity.NumberInvalid}
}
