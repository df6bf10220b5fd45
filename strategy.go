package dtlearn

import "fmt"

// DefaultMinInstances is the instance count floor used by DefaultStoppingStrategy
const DefaultMinInstances = 10

// StoppingStrategy holds the configuration for when a node
// must become a leaf instead of being split.
//
// Regardless of the strategy, nodes whose instances all share
// the same class and nodes where no feature provides a positive
// information gain are leaves.
type StoppingStrategy struct {
	// MinInstances is the minimum number of training instances
	// a node must have to be split. Nodes with fewer instances
	// are leaves.
	MinInstances int
	// MaxDepth limits the depth of the tree: nodes at this depth
	// are leaves. 0 means no limit.
	MaxDepth int
}

// DefaultStoppingStrategy returns a StoppingStrategy with
// DefaultMinInstances and no depth limit.
func DefaultStoppingStrategy() StoppingStrategy {
	return StoppingStrategy{MinInstances: DefaultMinInstances}
}

// Validate returns an error if the strategy cannot be used to grow a tree
func (s StoppingStrategy) Validate() error {
	if s.MinInstances < 1 {
		return fmt.Errorf("minimum instances to split must be positive, got %d", s.MinInstances)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("maximum depth cannot be negative, got %d", s.MaxDepth)
	}
	return nil
}

// stops tells whether a node with the given class counts at the given
// depth must be a leaf before looking at any split.
func (s StoppingStrategy) stops(a, b, depth int) bool {
	if a+b < s.MinInstances {
		return true
	}
	if a == 0 || b == 0 {
		return true
	}
	return s.MaxDepth > 0 && depth >= s.MaxDepth
}
