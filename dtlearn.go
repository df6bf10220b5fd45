/*
Package dtlearn grows binary classification decision trees from labeled
datasets choosing at every node the split with the most information gain,
ID3 style, over discrete and continuous features.
*/
package dtlearn

import (
	"context"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/tree"
	"github.com/rs/zerolog"
)

// Grow takes a context, a dataset and a stopping strategy and
// returns the tree grown from the dataset to predict its label.
// It returns an error if the strategy is not valid, the context
// is cancelled while growing, or the dataset has features of
// unknown types.
func Grow(ctx context.Context, s *dataset.Dataset, ss StoppingStrategy) (*tree.Tree, error) {
	if err := ss.Validate(); err != nil {
		return nil, err
	}
	root, err := BuildSubtree(ctx, s, nil, ss)
	if err != nil {
		return nil, err
	}
	return tree.New(root, s.Features()), nil
}

// BuildSubtree takes a context, the dataset of instances reaching a
// node, the parent of the node (nil for the root) and a stopping
// strategy and returns the node developed into a subtree.
//
// The parent is only used to set the depth of the node and to
// resolve its prediction when both classes are equally frequent;
// it is neither modified nor referenced by the returned node.
func BuildSubtree(ctx context.Context, s *dataset.Dataset, parent *tree.Node, ss StoppingStrategy) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := &tree.Node{FeatureName: tree.LeafName}
	if parent != nil {
		n.Depth = parent.Depth + 1
	}
	n.Counts[0], n.Counts[1] = s.ClassCounts()
	n.Prediction = majority(n.Counts, s.ClassValues(), parent)
	p, err := selectPartition(s, n, ss)
	if err != nil {
		return nil, err
	}
	if p == nil {
		n.Leaf = true
		return n, nil
	}
	f := s.Features()[p.Feature]
	n.Feature = p.Feature
	n.FeatureName = f.Name()
	n.Kind = p.Kind
	n.Threshold = p.Threshold
	zerolog.Ctx(ctx).Debug().
		Str("feature", f.Name()).
		Str("kind", p.Kind.String()).
		Float64("gain", p.InformationGain).
		Int("depth", n.Depth).
		Int("instances", s.Count()).
		Msg("splitting node")
	n.Children = make([]*tree.Node, 0, len(p.Subsets))
	for i, subset := range p.Subsets {
		child, err := BuildSubtree(ctx, subset, n, ss)
		if err != nil {
			return nil, err
		}
		child.Branch = p.Criteria[i].String()
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// selectPartition returns the partition to split the node with,
// or nil if the node must be a leaf.
func selectPartition(s *dataset.Dataset, n *tree.Node, ss StoppingStrategy) (*Partition, error) {
	if ss.stops(n.Counts[0], n.Counts[1], n.Depth) {
		return nil, nil
	}
	evaluations, err := evaluate(s)
	if err != nil {
		return nil, err
	}
	gains := make([]float64, len(evaluations))
	for i, e := range evaluations {
		gains[i] = e.gain
	}
	best := ChooseSplitAttribute(gains)
	if best < 0 || gains[best] <= 0 {
		return nil, nil
	}
	if s.Features()[best].Kind() == feature.Numeric {
		return NewContinuousPartition(s, best, evaluations[best].threshold)
	}
	return NewDiscretePartition(s, best)
}

// majority returns the most frequent class value given the class
// counts. Ties go to the parent's prediction, or to the first class
// value for the root.
func majority(counts [2]int, classes [2]string, parent *tree.Node) string {
	switch {
	case counts[0] > counts[1]:
		return classes[0]
	case counts[0] < counts[1]:
		return classes[1]
	case parent != nil:
		return parent.Prediction
	}
	return classes[0]
}
