package json

import (
	"fmt"

	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/tree"
)

type jsonFeature struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
}

type jsonNode struct {
	Leaf       bool        `json:"leaf,omitempty"`
	Feature    int         `json:"f"`
	Kind       string      `json:"kind,omitempty"`
	Threshold  float64     `json:"t,omitempty"`
	Prediction string      `json:"pred"`
	Counts     [2]int      `json:"counts"`
	Branch     string      `json:"branch,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

func encodeFeature(f feature.Feature) (*jsonFeature, error) {
	switch f := f.(type) {
	case *feature.DiscreteFeature:
		return &jsonFeature{Name: f.Name(), Kind: feature.Nominal.String(), Values: f.AvailableValues()}, nil
	case *feature.ContinuousFeature:
		return &jsonFeature{Name: f.Name(), Kind: feature.Numeric.String()}, nil
	}
	return nil, fmt.Errorf("unknown feature type %T for feature %v", f, f)
}

func decodeFeature(jf *jsonFeature) (feature.Feature, error) {
	if jf.Name == "" {
		return nil, fmt.Errorf("feature with no name")
	}
	switch jf.Kind {
	case feature.Nominal.String():
		if len(jf.Values) == 0 {
			return nil, fmt.Errorf("nominal feature %s with no values", jf.Name)
		}
		return feature.NewDiscreteFeature(jf.Name, jf.Values), nil
	case feature.Numeric.String():
		return feature.NewContinuousFeature(jf.Name), nil
	}
	return nil, fmt.Errorf("feature %s has unknown kind %q", jf.Name, jf.Kind)
}

func encodeNode(n *tree.Node) *jsonNode {
	jn := &jsonNode{
		Leaf:       n.Leaf,
		Prediction: n.Prediction,
		Counts:     n.Counts,
		Branch:     n.Branch,
	}
	if !n.Leaf {
		jn.Feature = n.Feature
		jn.Kind = n.Kind.String()
		jn.Threshold = n.Threshold
		jn.Children = make([]*jsonNode, 0, len(n.Children))
		for _, c := range n.Children {
			jn.Children = append(jn.Children, encodeNode(c))
		}
	}
	return jn
}

// decodeNode rebuilds the node at the given depth checking its split
// against the features
func decodeNode(jn *jsonNode, depth int, features []feature.Feature) (*tree.Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("missing node at depth %d", depth)
	}
	n := &tree.Node{
		Leaf:        jn.Leaf,
		FeatureName: tree.LeafName,
		Prediction:  jn.Prediction,
		Counts:      jn.Counts,
		Depth:       depth,
		Branch:      jn.Branch,
	}
	if jn.Leaf {
		if len(jn.Children) > 0 {
			return nil, fmt.Errorf("leaf at depth %d with %d children", depth, len(jn.Children))
		}
		return n, nil
	}
	// the label is never split on
	if jn.Feature < 0 || jn.Feature >= len(features)-1 {
		return nil, fmt.Errorf("node at depth %d splits on unknown feature index %d", depth, jn.Feature)
	}
	f := features[jn.Feature]
	n.Feature = jn.Feature
	n.FeatureName = f.Name()
	var expected int
	switch jn.Kind {
	case tree.NominalSplit.String():
		df, ok := f.(*feature.DiscreteFeature)
		if !ok {
			return nil, fmt.Errorf("nominal split on numeric feature %s", f.Name())
		}
		n.Kind = tree.NominalSplit
		expected = len(df.AvailableValues())
	case tree.ThresholdSplit.String():
		if _, ok := f.(*feature.ContinuousFeature); !ok {
			return nil, fmt.Errorf("numeric split on nominal feature %s", f.Name())
		}
		n.Kind = tree.ThresholdSplit
		n.Threshold = jn.Threshold
		expected = 2
	default:
		return nil, fmt.Errorf("node at depth %d has unknown split kind %q", depth, jn.Kind)
	}
	if len(jn.Children) != expected {
		return nil, fmt.Errorf("%s split on %s with %d children, expected %d", jn.Kind, f.Name(), len(jn.Children), expected)
	}
	n.Children = make([]*tree.Node, 0, expected)
	for _, jc := range jn.Children {
		c, err := decodeNode(jc, depth+1, features)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
