package tree

/*
SplitKind tells how an internal node divides the instances reaching it
among its children.
*/
type SplitKind int

const (
	// NominalSplit nodes have one child per available value of the split feature
	NominalSplit SplitKind = iota
	// ThresholdSplit nodes have two children: values at most the threshold and values above it
	ThresholdSplit
)

func (k SplitKind) String() string {
	if k == ThresholdSplit {
		return "numeric"
	}
	return "nominal"
}

// LeafName is the feature name reported by leaf nodes
const LeafName = "leaf"

/*
Node is a node of the tree. Nodes are created while growing a tree and are
not modified afterwards: each is owned by its parent through Children.
*/
type Node struct {
	// Leaf tells whether the node is terminal
	Leaf bool
	// Feature is the index of the feature the node splits on. Only valid
	// for internal nodes.
	Feature int
	// FeatureName is the name of the split feature, or LeafName for leaves
	FeatureName string
	// Kind is the kind of split. Only valid for internal nodes.
	Kind SplitKind
	// Threshold splits the instances of ThresholdSplit nodes
	Threshold float64
	// Prediction is the majority class of the training instances that
	// reached the node. It is defined for internal nodes too.
	Prediction string
	// Counts holds the number of training instances of the first and the
	// second class values that reached the node
	Counts [2]int
	// Depth is 0 for the root and the parent's plus one otherwise
	Depth int
	// Branch is the condition on the edge from the parent to this node,
	// like "= sunny" or "<= 2.500000". Empty for the root.
	Branch string
	// Children holds the nodes directly under this one in split order.
	// For ThresholdSplit nodes the first child takes values at most the
	// threshold and the second the rest.
	Children []*Node
}

/*
Weight returns the number of training instances that reached the node
*/
func (n *Node) Weight() int {
	return n.Counts[0] + n.Counts[1]
}
