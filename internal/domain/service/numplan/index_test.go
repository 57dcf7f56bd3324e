package numplan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"uk_numcheck/internal/domain/entity"
)

func TestWalkCollectsShortestPrefixFirst(t *testing.T) {
	rq := require.New(t)

	index := BuildIndex([]entity.AllocationRule{
		{Prefix: "01514", TotalLength: 11, Status: "Allocated", Provider: "Deep"},
		{Prefix: "0151", TotalLength: 11, Status: "Allocated", Provider: "ShallowB"},
		{Prefix: "0151", TotalLength: 10, Status: "Allocated", Provider: "ShallowA"},
	})

	matched, _, complete := index.walk("01514960000")

	rq.False(complete)
	rq.Len(matched, 3)
	rq.Equal("ShallowB", matched[0].Provider)
	rq.Equal("ShallowA", matched[1].Provider)
	rq.Equal("Deep", matched[2].Provider)
}

func TestWalkCompleteness(t *testing.T) {
	rq := require.New(t)

	index := BuildIndex([]entity.AllocationRule{
		{Prefix: "0151496", TotalLength: 11, Status: "Allocated"},
	})

	matched, end, complete := index.walk("0151")
	rq.True(complete)
	rq.Empty(matched)
	rq.True(anyRuleBelow(end))

	matched, end, complete = index.walk("0151496")
	rq.True(complete)
	rq.Len(matched, 1)
	rq.False(anyRuleBelow(end))

	matched, _, complete = index.walk("0152")
	rq.False(complete)
	rq.Empty(matched)
}

func TestWalkEmptyIndex(t *testing.T) {
	rq := require.New(t)

	index := BuildIndex(nil)

	matched, end, complete := index.walk("0151")

	rq.False(complete)
	rq.Empty(matched)
	rq.False(anyRuleBelow(end))
}

func TestAnyRuleBelowIsStrict(t *testing.T) {
	rq := require.New(t)

	index := BuildIndex([]entity.AllocationRule{
		{Prefix: "0800", TotalLength: 11, Status: "Free for allocation"},
	})

	// Rules at the end node itself do not count, only deeper ones.
	_, end, complete := index.walk("0800")
	rq.True(complete)
	rq.False(anyRuleBelow(end))

	_, end, complete = index.walk("08")
	rq.True(complete)
	rq.True(anyRuleBelow(end))
}
