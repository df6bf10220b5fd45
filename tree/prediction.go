package tree

import (
	"fmt"

	"github.com/pbanos/dtlearn/feature"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrUnseenValue is the error wrapped by the Predict method of a tree when
an instance takes a value for a nominal feature that is not one of its
available values, so no branch can be chosen.
*/
const ErrUnseenValue = PredictionError("value not among the available values of the feature")

/*
ErrInvalidValue is the error wrapped by the Predict method of a tree when
an instance value does not have the type its feature expects.
*/
const ErrInvalidValue = PredictionError("invalid value for the feature")

/*
ErrMalformedTree is the error wrapped when a tree node does not have the
children its split requires.
*/
const ErrMalformedTree = PredictionError("malformed tree")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Predict takes an instance and returns the class predicted for it by the tree
or an error if the prediction could not be made.
*/
func (t *Tree) Predict(s feature.Sample) (string, error) {
	n, err := t.Leaf(s)
	if err != nil {
		return "", err
	}
	return n.Prediction, nil
}

/*
Confidence takes an instance and returns the Laplace corrected probability
of the first class value at the leaf the instance reaches: (a+1)/(a+b+2)
where a and b are the training counts of both classes at the leaf.
*/
func (t *Tree) Confidence(s feature.Sample) (float64, error) {
	n, err := t.Leaf(s)
	if err != nil {
		return 0, err
	}
	return float64(n.Counts[0]+1) / float64(n.Weight()+2), nil
}

// Leaf returns the leaf the given instance reaches when traversing the tree
func (t *Tree) Leaf(s feature.Sample) (*Node, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for !n.Leaf {
		next, err := t.childFor(n, s)
		if err != nil {
			return nil, err
		}
		n = next
	}
	return n, nil
}

func (t *Tree) childFor(n *Node, s feature.Sample) (*Node, error) {
	if n.Feature < 0 || n.Feature >= len(t.Features) {
		return nil, fmt.Errorf("%w: node splits on unknown feature index %d", ErrMalformedTree, n.Feature)
	}
	f := t.Features[n.Feature]
	v := s.Value(n.Feature)
	switch n.Kind {
	case ThresholdSplit:
		if len(n.Children) != 2 {
			return nil, fmt.Errorf("%w: numeric split on %s has %d children", ErrMalformedTree, f.Name(), len(n.Children))
		}
		fv, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: feature %s expects float64 value, got %T value", ErrInvalidValue, f.Name(), v)
		}
		if fv <= n.Threshold {
			return n.Children[0], nil
		}
		return n.Children[1], nil
	case NominalSplit:
		df, ok := f.(*feature.DiscreteFeature)
		if !ok {
			return nil, fmt.Errorf("%w: nominal split on non discrete feature %s", ErrMalformedTree, f.Name())
		}
		sv, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: feature %s expects string value, got %T value", ErrInvalidValue, f.Name(), v)
		}
		i := df.IndexOf(sv)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s for feature %s", ErrUnseenValue, sv, f.Name())
		}
		if i >= len(n.Children) {
			return nil, fmt.Errorf("%w: nominal split on %s has %d children", ErrMalformedTree, f.Name(), len(n.Children))
		}
		return n.Children[i], nil
	}
	return nil, fmt.Errorf("%w: unknown split kind %v", ErrMalformedTree, n.Kind)
}
