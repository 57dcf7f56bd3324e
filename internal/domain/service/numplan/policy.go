package numplan

import (
	"fmt"
	"strings"
)

// StatusPolicy names the allocation statuses that do not count towards
// diallability. Matching is case-insensitive; exact markers must equal the
// whole status, contains markers match anywhere inside it. The split
// matters: "free" has to stay exact so that statuses merely mentioning the
// word (Freephone designations and the like) remain live.
//
// The dead set has changed across upstream dataset revisions, so the policy
// is an explicit value rather than a hard-coded check: classifications can
// be audited against whichever revision produced them.
type StatusPolicy struct {
	name         string
	deadExact    []string
	deadContains []string
}

// CurrentStatusPolicy reflects the present upstream semantics: unallocated
// blocks ("Free", "Free for allocation") and unavailable/withdrawn blocks
// are dead; everything else - Allocated, Allocated(Closed Range), Protected,
// Reserved, Quarantined, Designated - is live.
func CurrentStatusPolicy() StatusPolicy {
	return StatusPolicy{
		name:         "current",
		deadExact:    []string{"free", "free for allocation"},
		deadContains: []string{"unavailable", "withdrawn"},
	}
}

// LegacyStatusPolicy reproduces the earlier dataset revision, where free
// blocks still counted as diallable and closed ranges did not.
func LegacyStatusPolicy() StatusPolicy {
	return StatusPolicy{
		name:         "legacy",
		deadContains: []string{"unavailable", "closed", "withdrawn"},
	}
}

// StatusPolicyByName resolves a configured policy name.
func StatusPolicyByName(name string) (StatusPolicy, error) {
	switch strings.ToLower(name) {
	case "", "current":
		return CurrentStatusPolicy(), nil
	case "legacy":
		return LegacyStatusPolicy(), nil
	default:
		return StatusPolicy{}, fmt.Errorf("unknown status policy %q", name)
	}
}

func (p StatusPolicy) Name() string {
	return p.name
}

// Dead reports whether status excludes a rule from diallability.
func (p StatusPolicy) Dead(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))

	for _, marker := range p.deadExact {
		if status == marker {
			return true
		}
	}

	for _, marker := range p.deadContains {
		if strings.Contains(status, marker) {
			return true
		}
	}

	return false
}
