package dtlearn

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/tree"
)

/*
ErrNoThreshold is returned by BestNumericThreshold when the instances take
fewer than two distinct values for the feature, so there is no candidate
threshold to split them.
*/
var ErrNoThreshold = errors.New("no candidate threshold")

/*
Partition represents a partition of a dataset according to a feature into
disjoint subsets whose union is the dataset, each with the criterion that
selects it, and the information gain of the split.
*/
type Partition struct {
	Feature         int
	Kind            tree.SplitKind
	Threshold       float64
	Criteria        []feature.Criterion
	Subsets         []*dataset.Dataset
	InformationGain float64
}

/*
NewDiscretePartition takes a dataset and the index of a discrete feature
and returns the partition of the dataset with one subset per available
value of the feature, in declaration order. Values no instance takes
produce empty subsets.
*/
func NewDiscretePartition(s *dataset.Dataset, index int) (*Partition, error) {
	f, ok := s.Features()[index].(*feature.DiscreteFeature)
	if !ok {
		return nil, fmt.Errorf("feature %s at %d is not discrete", s.Features()[index].Name(), index)
	}
	availableValues := f.AvailableValues()
	criteria := make([]feature.Criterion, 0, len(availableValues))
	for _, value := range availableValues {
		criteria = append(criteria, feature.NewDiscreteCriterion(f, index, value))
	}
	p := &Partition{Feature: index, Kind: tree.NominalSplit, Criteria: criteria}
	return p, p.split(s)
}

/*
NewContinuousPartition takes a dataset, the index of a continuous feature
and a threshold and returns the partition of the dataset in instances with
values at most the threshold and instances with values above it.
*/
func NewContinuousPartition(s *dataset.Dataset, index int, threshold float64) (*Partition, error) {
	f, ok := s.Features()[index].(*feature.ContinuousFeature)
	if !ok {
		return nil, fmt.Errorf("feature %s at %d is not continuous", s.Features()[index].Name(), index)
	}
	p := &Partition{
		Feature:   index,
		Kind:      tree.ThresholdSplit,
		Threshold: threshold,
		Criteria: []feature.Criterion{
			feature.NewThresholdCriterion(f, index, threshold, false),
			feature.NewThresholdCriterion(f, index, threshold, true),
		},
	}
	return p, p.split(s)
}

func (p *Partition) split(s *dataset.Dataset) error {
	p.Subsets = make([]*dataset.Dataset, 0, len(p.Criteria))
	for _, c := range p.Criteria {
		ss, err := s.SubsetWith(c)
		if err != nil {
			return err
		}
		p.Subsets = append(p.Subsets, ss)
	}
	p.InformationGain = s.Entropy() - dataset.SplitEntropy(p.Subsets, s.Count(), s.ClassValues())
	return nil
}

/*
BestNumericThreshold takes a dataset and the index of a continuous feature
and returns the minimum split entropy achievable with a threshold on the
feature and that threshold.

Candidate thresholds are the midpoints between adjacent distinct values of
the feature, evaluated in ascending order; on ties the lowest threshold
wins. ErrNoThreshold is returned when there are no candidates.
*/
func BestNumericThreshold(s *dataset.Dataset, index int) (float64, float64, error) {
	values, err := s.NumericValues(index)
	if err != nil {
		return 0, 0, err
	}
	classes := s.ClassValues()
	points := make([]valuedLabel, len(values))
	var totalA int
	for i, instance := range s.Instances() {
		points[i] = valuedLabel{values[i], instance.Label() == classes[0]}
		if points[i].first {
			totalA++
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].value < points[j].value })
	total := len(points)
	var (
		found                bool
		minEntropy, best     float64
		lastThreshold        float64
		leftCount, leftA, at int
	)
	for i := 1; i < total; i++ {
		if points[i].value == points[i-1].value {
			continue
		}
		threshold := (points[i-1].value + points[i].value) / 2.0
		if found && threshold == lastThreshold {
			continue
		}
		lastThreshold = threshold
		for at < total && points[at].value <= threshold {
			if points[at].first {
				leftA++
			}
			leftCount++
			at++
		}
		e := weightedEntropy(leftA, leftCount, total) + weightedEntropy(totalA-leftA, total-leftCount, total)
		if !found || e < minEntropy {
			found = true
			minEntropy = e
			best = threshold
		}
	}
	if !found {
		return 0, 0, ErrNoThreshold
	}
	return minEntropy, best, nil
}

type valuedLabel struct {
	value float64
	first bool
}

func weightedEntropy(a, n, total int) float64 {
	if n == 0 {
		return 0
	}
	return float64(n) / float64(total) * dataset.CountEntropy(a, n-a)
}
