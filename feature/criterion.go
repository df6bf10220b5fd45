package feature

import (
	"fmt"
)

/*
Criterion represents a constraint on a feature, the condition on the edge
that leads from a split node to one of its children.

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the given sample satisfies the criterion.

Its Feature method returns the feature on which the criterion is applied.

Its String method returns the branch label for the criterion, that is the
condition without the feature name, like "= sunny" or "<= 2.500000".
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(sample Sample) (bool, error)
	String() string
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its Value method returns the value at the given feature position.
*/
type Sample interface {
	Value(index int) interface{}
}

/*
ThresholdCriterion represents a constraint on a continuous feature: its
value is either at most the threshold or above it.
*/
type ThresholdCriterion interface {
	Criterion
	Threshold() float64
	Above() bool
}

/*
DiscreteCriterion represents a constraint on a discrete feature, a
value it must take.

Its Value method returns the value to which the feature is constrained as
a string.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type thresholdCriterion struct {
	feature   *ContinuousFeature
	index     int
	threshold float64
	above     bool
}

type discreteCriterion struct {
	feature *DiscreteFeature
	index   int
	value   string
}

/*
NewThresholdCriterion takes a ContinuousFeature, its position in samples,
a threshold and whether the criterion selects values above the threshold
(true) or values at most the threshold (false), and returns the
ThresholdCriterion.
*/
func NewThresholdCriterion(feature *ContinuousFeature, index int, threshold float64, above bool) ThresholdCriterion {
	return &thresholdCriterion{feature, index, threshold, above}
}

/*
NewDiscreteCriterion takes a DiscreteFeature, its position in samples and
one of its values and returns a DiscreteCriterion satisfied by samples that
take that value.
*/
func NewDiscreteCriterion(feature *DiscreteFeature, index int, value string) DiscreteCriterion {
	return &discreteCriterion{feature, index, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (tc *thresholdCriterion) Feature() Feature {
	return tc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. It returns an error if the sample value for the
feature is not a float64.
*/
func (tc *thresholdCriterion) SatisfiedBy(sample Sample) (bool, error) {
	val := sample.Value(tc.index)
	floatVal, ok := val.(float64)
	if !ok {
		return false, fmt.Errorf("feature %s expects float64 value, got %T value", tc.feature.Name(), val)
	}
	if tc.above {
		return floatVal > tc.threshold, nil
	}
	return floatVal <= tc.threshold, nil
}

func (tc *thresholdCriterion) Threshold() float64 {
	return tc.threshold
}

func (tc *thresholdCriterion) Above() bool {
	return tc.above
}

func (tc *thresholdCriterion) String() string {
	if tc.above {
		return fmt.Sprintf("> %.6f", tc.threshold)
	}
	return fmt.Sprintf("<= %.6f", tc.threshold)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dc *discreteCriterion) Feature() Feature {
	return dc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. It returns an error if the sample value for the
feature is not a string.
*/
func (dc *discreteCriterion) SatisfiedBy(sample Sample) (bool, error) {
	val := sample.Value(dc.index)
	stringVal, ok := val.(string)
	if !ok {
		return false, fmt.Errorf("feature %s expects string value, got %T value", dc.feature.Name(), val)
	}
	return dc.value == stringVal, nil
}

func (dc *discreteCriterion) Value() string {
	return dc.value
}

func (dc *discreteCriterion) String() string {
	return fmt.Sprintf("= %s", dc.value)
}
