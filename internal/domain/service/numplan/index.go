package numplan

import (
	"uk_numcheck/internal/domain/entity"
)

// Index is a digit-keyed prefix trie over the allocation table. It is built
// once per rule-set load and never mutated afterwards, so any number of
// classifications may read it concurrently without coordination.
type Index struct {
	root *node
}

type node struct {
	children map[byte]*node
	rules    []entity.AllocationRule
}

// BuildIndex compiles an ordered rule set into a prefix trie. Each rule is
// attached to the node its prefix terminates at; a node accumulates every
// rule sharing that prefix, in input order, which is the tie-break order the
// classifier relies on. The index stores what it is given: rule validation
// is the loader's job, not repeated here.
func BuildIndex(rules []entity.AllocationRule) *Index {
	root := &node{}

	for _, rule := range rules {
		n := root

		for i := 0; i < len(rule.Prefix); i++ {
			digit := rule.Prefix[i]

			if n.children == nil {
				n.children = make(map[byte]*node)
			}

			child := n.children[digit]
			if child == nil {
				child = &node{}
				n.children[digit] = child
			}

			n = child
		}

		n.rules = append(n.rules, rule)
	}

	return &Index{root: root}
}

// walk follows national one digit at a time, collecting every rule whose
// prefix is an initial substring of it: shortest prefix first, insertion
// order within a node. It returns the node the walk ended on and whether
// every digit of national was consumed before the trie ran out of branches.
func (x *Index) walk(national string) (matched []entity.AllocationRule, end *node, complete bool) {
	n := x.root

	for i := 0; i < len(national); i++ {
		child := n.children[national[i]]
		if child == nil {
			return matched, n, false
		}

		n = child
		matched = append(matched, n.rules...)
	}

	return matched, n, true
}

// anyRuleBelow reports whether any rule, live or dead, terminates strictly
// below n. Paths are bounded by prefix length (well under 20 digits), so
// plain recursion is fine.
func anyRuleBelow(n *node) bool {
	for _, child := range n.children {
		if len(child.rules) > 0 || anyRuleBelow(child) {
			return true
		}
	}

	return false
}
