package dataset

import (
	"fmt"
	"strings"
)

/*
Instance is one labeled row: an ordered tuple of values, one per feature
of the dataset it belongs to, the last being the class label. Nominal
values are strings and numeric values are float64s.

Instances are never modified once loaded; datasets only share references
to them.
*/
type Instance []interface{}

// Value returns the value at the given feature position
func (i Instance) Value(index int) interface{} {
	return i[index]
}

// Label returns the class value of the instance
func (i Instance) Label() string {
	if len(i) == 0 {
		return ""
	}
	l, _ := i[len(i)-1].(string)
	return l
}

func (i Instance) String() string {
	values := make([]string, len(i))
	for j, v := range i {
		values[j] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("[%s]", strings.Join(values, ","))
}
