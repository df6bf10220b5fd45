package dataset

import (
	"fmt"

	"github.com/pbanos/dtlearn/feature"
)

/*
Dataset represents an ordered collection of instances sharing the same
features. The last feature is the label, a discrete feature with exactly
two available values, the class values.

Subsetting a dataset never copies instances: subsets hold references to
the same instances as the dataset they were obtained from.
*/
type Dataset struct {
	features  []feature.Feature
	label     *feature.DiscreteFeature
	instances []Instance
}

/*
New takes a slice of features and a slice of instances and returns a
dataset with them or an error if the features do not end with a binary
discrete label, or any instance does not have a valid value for every
feature.
*/
func New(features []feature.Feature, instances []Instance) (*Dataset, error) {
	d, err := Empty(features)
	if err != nil {
		return nil, err
	}
	for i, instance := range instances {
		if err = d.validate(instance); err != nil {
			return nil, fmt.Errorf("instance %d: %v", i, err)
		}
	}
	d.instances = instances
	return d, nil
}

/*
Empty takes a slice of features and returns a dataset without instances for
them, or an error if the features do not end with a binary discrete label.
*/
func Empty(features []feature.Feature) (*Dataset, error) {
	if len(features) < 2 {
		return nil, fmt.Errorf("dataset needs at least one feature and a label, got %d features", len(features))
	}
	last := features[len(features)-1]
	label, ok := last.(*feature.DiscreteFeature)
	if !ok {
		return nil, fmt.Errorf("label %s must be a discrete feature, got %T", last.Name(), last)
	}
	if len(label.AvailableValues()) != 2 {
		return nil, fmt.Errorf("label %s must have exactly 2 values, got %v", label.Name(), label.AvailableValues())
	}
	return &Dataset{features: features, label: label}, nil
}

/*
Add validates the given instance against the features of the dataset and
appends it to it, returning an error if it is not valid.
*/
func (d *Dataset) Add(instance Instance) error {
	if err := d.validate(instance); err != nil {
		return err
	}
	d.instances = append(d.instances, instance)
	return nil
}

func (d *Dataset) validate(instance Instance) error {
	if len(instance) != len(d.features) {
		return fmt.Errorf("expected %d values, got %d", len(d.features), len(instance))
	}
	for i, f := range d.features {
		if _, err := f.Valid(instance[i]); err != nil {
			return err
		}
	}
	return nil
}

// Features returns all the features of the dataset, label included
func (d *Dataset) Features() []feature.Feature {
	return d.features
}

// Attributes returns the features of the dataset without the label
func (d *Dataset) Attributes() []feature.Feature {
	return d.features[:len(d.features)-1]
}

// Label returns the class feature of the dataset
func (d *Dataset) Label() *feature.DiscreteFeature {
	return d.label
}

// ClassValues returns the two values the label can take, in declaration order
func (d *Dataset) ClassValues() [2]string {
	avs := d.label.AvailableValues()
	return [2]string{avs[0], avs[1]}
}

// Instances returns the instances in the dataset
func (d *Dataset) Instances() []Instance {
	return d.instances
}

// Count returns the number of instances in the dataset
func (d *Dataset) Count() int {
	return len(d.instances)
}

// Labels returns the class labels of the instances in order
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.instances))
	for i, instance := range d.instances {
		labels[i] = instance.Label()
	}
	return labels
}

/*
ClassCounts returns the number of instances of the first and the
second class values.
*/
func (d *Dataset) ClassCounts() (int, int) {
	return d.countClasses(d.ClassValues())
}

func (d *Dataset) countClasses(classes [2]string) (int, int) {
	var a int
	for _, instance := range d.instances {
		if instance.Label() == classes[0] {
			a++
		}
	}
	return a, len(d.instances) - a
}

// Entropy returns the binary entropy in bits of the instance labels
func (d *Dataset) Entropy() float64 {
	return CountEntropy(d.ClassCounts())
}

/*
NumericValues returns the values of the instances for the continuous
feature at the given index, or an error if the feature at index is not
a continuous one.
*/
func (d *Dataset) NumericValues(index int) ([]float64, error) {
	if index < 0 || index >= len(d.features) {
		return nil, fmt.Errorf("no feature at index %d", index)
	}
	if d.features[index].Kind() != feature.Numeric {
		return nil, fmt.Errorf("feature %s is not numeric", d.features[index].Name())
	}
	values := make([]float64, len(d.instances))
	for i, instance := range d.instances {
		values[i], _ = instance[index].(float64)
	}
	return values, nil
}

/*
SubsetWith takes a feature.Criterion and returns a subset that only
contains instances that satisfy it, in the same order.
*/
func (d *Dataset) SubsetWith(fc feature.Criterion) (*Dataset, error) {
	var instances []Instance
	for _, instance := range d.instances {
		ok, err := fc.SatisfiedBy(instance)
		if err != nil {
			return nil, err
		}
		if ok {
			instances = append(instances, instance)
		}
	}
	return d.withInstances(instances), nil
}

/*
Subset returns a dataset with the instances at the given positions,
in the order of the given slice.
*/
func (d *Dataset) Subset(indexes []int) *Dataset {
	instances := make([]Instance, len(indexes))
	for i, idx := range indexes {
		instances[i] = d.instances[idx]
	}
	return d.withInstances(instances)
}

func (d *Dataset) withInstances(instances []Instance) *Dataset {
	return &Dataset{features: d.features, label: d.label, instances: instances}
}
