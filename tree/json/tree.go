/*
Package json encodes trained trees as JSON documents and decodes them back.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/tree"
)

type jsonTree struct {
	Label    string         `json:"label"`
	Features []*jsonFeature `json:"features"`
	Root     *jsonNode      `json:"root"`
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "label": a string with the name of the feature the tree predicts
* "features": an array with the features of the tree in order, each an
  object with a "name", a "kind" ("nominal" or "numeric") and, for nominal
  features, the "values" they can take
* "root": the root node, with its children nested under "children"
An error is returned if the tree cannot be serialized or written
onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	b, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree unmarshalled from its
contents, or an error if they cannot be read or do not describe a valid
tree as written by WriteJSONTree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.NewDecoder(r).Decode(jt); err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt)
}

// Marshal returns the JSON encoding of the tree
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("cannot marshal empty tree")
	}
	jt := &jsonTree{Label: t.Label().Name()}
	for _, f := range t.Features {
		jf, err := encodeFeature(f)
		if err != nil {
			return nil, err
		}
		jt.Features = append(jt.Features, jf)
	}
	jt.Root = encodeNode(t.Root)
	return json.Marshal(jt)
}

// Unmarshal parses the JSON encoded tree in data
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.Unmarshal(data, jt); err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt)
}

func decodeTree(jt *jsonTree) (*tree.Tree, error) {
	if len(jt.Features) < 2 {
		return nil, fmt.Errorf("tree needs at least one feature and a label, got %d features", len(jt.Features))
	}
	features := make([]feature.Feature, 0, len(jt.Features))
	for _, jf := range jt.Features {
		if jf == nil {
			return nil, fmt.Errorf("missing feature")
		}
		f, err := decodeFeature(jf)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	label, ok := features[len(features)-1].(*feature.DiscreteFeature)
	if !ok || label.Name() != jt.Label {
		return nil, fmt.Errorf("label %q is not the last nominal feature", jt.Label)
	}
	if len(label.AvailableValues()) != 2 {
		return nil, fmt.Errorf("label %s must take exactly 2 values, got %d", label.Name(), len(label.AvailableValues()))
	}
	root, err := decodeNode(jt.Root, 0, features)
	if err != nil {
		return nil, err
	}
	return tree.New(root, features), nil
}
