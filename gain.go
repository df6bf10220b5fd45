package dtlearn

import (
	"fmt"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
)

// evaluation holds the information gain of splitting a dataset on a feature
// and, for continuous features, the threshold achieving it.
type evaluation struct {
	gain      float64
	threshold float64
}

/*
InformationGain takes a dataset and returns the information gain of
splitting it on each of its features (the label excluded), indexed by
feature position.

Discrete features are split on all their available values. Continuous
features are split on the threshold returned by BestNumericThreshold; when
there is no candidate threshold their gain is 0. All gains are 0 for an
empty dataset.
*/
func InformationGain(s *dataset.Dataset) ([]float64, error) {
	evaluations, err := evaluate(s)
	if err != nil {
		return nil, err
	}
	gains := make([]float64, len(evaluations))
	for i, e := range evaluations {
		gains[i] = e.gain
	}
	return gains, nil
}

func evaluate(s *dataset.Dataset) ([]evaluation, error) {
	attributes := s.Attributes()
	evaluations := make([]evaluation, len(attributes))
	if s.Count() == 0 {
		return evaluations, nil
	}
	prior := s.Entropy()
	for i, f := range attributes {
		switch f := f.(type) {
		default:
			return nil, fmt.Errorf("unknown feature type %T for feature %v", f, f.Name())
		case *feature.DiscreteFeature:
			p, err := NewDiscretePartition(s, i)
			if err != nil {
				return nil, err
			}
			evaluations[i].gain = p.InformationGain
		case *feature.ContinuousFeature:
			entropy, threshold, err := BestNumericThreshold(s, i)
			if err == ErrNoThreshold {
				continue
			}
			if err != nil {
				return nil, err
			}
			evaluations[i] = evaluation{prior - entropy, threshold}
		}
	}
	return evaluations, nil
}

/*
ChooseSplitAttribute takes the information gains of a set of features and
returns the index of the maximum one. Ties are resolved to the lowest index.
It returns -1 for an empty slice.
*/
func ChooseSplitAttribute(gains []float64) int {
	best := -1
	for i, g := range gains {
		if best < 0 || g > gains[best] {
			best = i
		}
	}
	return best
}
