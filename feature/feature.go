package feature

import "fmt"

/*
Kind tells nominal features apart from numeric ones.
*/
type Kind int

const (
	// Nominal features take a value among a finite, ordered set of strings
	Nominal Kind = iota
	// Numeric features take float64 values
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Nominal:
		return "nominal"
	case Numeric:
		return "numeric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Feature represents a property that can be observed on an instance
*/
type Feature interface {
	Name() string
	Kind() Kind
	Valid(interface{}) (bool, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set. The order of the available values is
significant: it is the order of the branches of a split on the feature.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature with the given names and available values.
The slice is copied.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	values := make([]string, len(availableValues))
	copy(values, availableValues)
	return &DiscreteFeature{name, values}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

// Kind returns Nominal
func (df *DiscreteFeature) Kind() Kind {
	return Nominal
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is included in the available values of the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("discrete feature %s expects string value, got %T value", df.Name(), value)
	}
	if df.IndexOf(vs) < 0 {
		return false, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), vs)
	}
	return true, nil
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

/*
IndexOf returns the position of the given value among the available values
of the feature, or -1 if it is not one of them.
*/
func (df *DiscreteFeature) IndexOf(value string) int {
	for i, av := range df.availableValues {
		if av == value {
			return i
		}
	}
	return -1
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

// Kind returns Numeric
func (cf *ContinuousFeature) Kind() Kind {
	return Numeric
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is a float64 it returns true and nil, otherwise it returns
false and an error describing the reason.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	_, ok := value.(float64)
	if !ok {
		return false, fmt.Errorf("continuous feature %s expects float64 value, got %T value", cf.Name(), value)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
