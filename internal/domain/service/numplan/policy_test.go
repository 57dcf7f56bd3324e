package numplan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"uk_numcheck/internal/domain/service/numplan"
)

func TestStatusPolicyDead(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		status     string
		deadUnder  []string
		aliveUnder []string
	}{
		{
			name:       "Bare free block",
			status:     "Free",
			deadUnder:  []string{"current"},
			aliveUnder: []string{"legacy"},
		},
		{
			name:       "Free for allocation",
			status:     "Free for allocation",
			deadUnder:  []string{"current"},
			aliveUnder: []string{"legacy"},
		},
		{
			name:       "Freephone keeps the free prefix alive",
			status:     "Freephone Service",
			aliveUnder: []string{"current", "legacy"},
		},
		{
			name:      "Unavailable anywhere in the status",
			status:    "Designated(Unavailable)",
			deadUnder: []string{"current", "legacy"},
		},
		{
			name:      "Withdrawn block",
			status:    "Withdrawn",
			deadUnder: []string{"current", "legacy"},
		},
		{
			name:       "Closed range only counted dead historically",
			status:     "Allocated(Closed Range)",
			deadUnder:  []string{"legacy"},
			aliveUnder: []string{"current"},
		},
		{
			name:       "Plain allocation",
			status:     "Allocated",
			aliveUnder: []string{"current", "legacy"},
		},
		{
			name:       "Case and padding are ignored",
			status:     "  FREE FOR ALLOCATION  ",
			deadUnder:  []string{"current"},
			aliveUnder: []string{"legacy"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			for _, name := range tc.deadUnder {
				policy, err := numplan.StatusPolicyByName(name)
				rq.NoError(err)
				rq.True(policy.Dead(tc.status), "policy %s status %q", name, tc.status)
			}
			for _, name := range tc.aliveUnder {
				policy, err := numplan.StatusPolicyByName(name)
				rq.NoError(err)
				rq.False(policy.Dead(tc.status), "policy %s status %q", name, tc.status)
			}
		})
	}
}

func TestStatusPolicyByName(t *testing.T) {
	rq := require.New(t)

	policy, err := numplan.StatusPolicyByName("")
	rq.NoError(err)
	rq.Equal(numplan.CurrentStatusPolicy().Name(), policy.Name())

	policy, err = numplan.StatusPolicyByName("current")
	rq.NoError(err)
	rq.Equal("current", policy.Name())

	policy, err = numplan.StatusPolicyByName("legacy")
	rq.NoError(err)
	rq.Equal("legacy", policy.Name())

	_, err = numplan.StatusPolicyByName("strict")
	rq.Error(err)
}
