package pathfind

// DefaultNodeBudget bounds a single search when the caller supplies none.
// Board degree is at most 4 and boards are small, so real searches stay far
// below this; the bound exists to cut off pathological dictionaries.
const DefaultNodeBudget = 500_000

// Budget is a hard cap on search nodes, threaded through the backtracking
// search so callers can bound total work. A nil *Budget means unlimited.
type Budget struct {
	remaining int
}

// NewBudget creates a budget allowing up to the given number of search nodes
func NewBudget(nodes int) *Budget {
	return &Budget{remaining: nodes}
}

// Spend consumes one node from the budget. It returns false once the budget
// is exhausted, which callers treat as "stop searching".
func (b *Budget) Spend() bool {
	if b == nil {
		return true
	}
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Exhausted reports whether the budget has run out
func (b *Budget) Exhausted() bool {
	return b != nil && b.remaining <= 0
}
