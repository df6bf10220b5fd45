package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
)

// Tree represents a decision tree. It is composed of its root node and
// the features of the instances it classifies, the last of them being
// the label it predicts.
type Tree struct {
	Root     *Node
	Features []feature.Feature
}

// New takes the root Node and a slice of features and returns a tree.
func New(root *Node, features []feature.Feature) *Tree {
	return &Tree{root, features}
}

// Label returns the feature the tree predicts
func (t *Tree) Label() feature.Feature {
	return t.Features[len(t.Features)-1]
}

/*
Test takes a dataset and returns three values:
 * the prediction success rate of the tree over the dataset
 * the number of instances that could not be predicted because
   ErrUnseenValue or ErrInvalidValue errors
 * an error if a prediction failed for any other reason. If this
   is not nil, the other values will be 0.0 and 0 respectively
*/
func (t *Tree) Test(d *dataset.Dataset) (float64, int, error) {
	if t == nil || d.Count() == 0 {
		return 0.0, 0, nil
	}
	var result float64
	var errCount int
	for _, instance := range d.Instances() {
		p, err := t.Predict(instance)
		if err != nil {
			if errors.Is(err, ErrUnseenValue) || errors.Is(err, ErrInvalidValue) {
				errCount++
				continue
			}
			return 0.0, 0, err
		}
		if p == instance.Label() {
			result += 1.0
		}
	}
	return result / float64(d.Count()), errCount, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	if t.Root == nil {
		return nil
	}
	return traverse(ctx, t.Root, bottomup, f)
}

func traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, sn := range n.Children {
		if err = traverse(ctx, sn, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

/*
Render returns the lines of the textual representation of the tree. Each
edge of the tree is a line: the feature of the parent node, the branch of
the child and the class counts of the child, followed by the prediction
when the child is a leaf. Lines are indented with one "|\t" per depth
level of the parent and appear in pre-order.
*/
func Render(t *Tree) []string {
	var lines []string
	if t == nil || t.Root == nil {
		return lines
	}
	return renderNode(t.Root, lines)
}

func renderNode(n *Node, lines []string) []string {
	indent := strings.Repeat("|\t", n.Depth)
	for _, child := range n.Children {
		line := fmt.Sprintf("%s%s %s [%d %d]", indent, n.FeatureName, child.Branch, child.Counts[0], child.Counts[1])
		if child.Leaf {
			line = fmt.Sprintf("%s: %s", line, child.Prediction)
		}
		lines = append(lines, line)
		lines = renderNode(child, lines)
	}
	return lines
}

func (t *Tree) String() string {
	lines := Render(t)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
