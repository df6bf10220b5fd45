package evaluate

import (
	"fmt"
	"sort"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/tree"
)

// Point is a point of a ROC curve
type Point struct {
	FPR float64
	TPR float64
}

/*
Confidences returns the confidence of the tree in the first class value for
every instance of the dataset, and their labels.
*/
func Confidences(t *tree.Tree, d *dataset.Dataset) ([]float64, []string, error) {
	confidences := make([]float64, 0, d.Count())
	for i, instance := range d.Instances() {
		c, err := t.Confidence(instance)
		if err != nil {
			return nil, nil, fmt.Errorf("instance %d: %v", i+1, err)
		}
		confidences = append(confidences, c)
	}
	return confidences, d.Labels(), nil
}

/*
ROC takes the confidences of a classifier that instances belong to the
positive class, the actual labels of the instances and the positive class,
and returns the points of the ROC curve.

Instances are ranked by decreasing confidence. The cutoffs are 1, the
highest confidence, the confidences on both sides of every change of label
along the ranking, and 0. Every cutoff yields the point with the rates of
positive and negative instances whose confidence is at least the cutoff, so
the curve goes from (0, 0) to (1, 1).

An error is returned if the slices differ in length or the labels do not
include both positive and negative instances.
*/
func ROC(confidences []float64, labels []string, positive string) ([]Point, error) {
	if len(confidences) != len(labels) {
		return nil, fmt.Errorf("got %d confidences for %d labels", len(confidences), len(labels))
	}
	ranked := make([]scored, len(labels))
	var positives int
	for i := range labels {
		ranked[i] = scored{confidences[i], labels[i] == positive}
		if ranked[i].positive {
			positives++
		}
	}
	negatives := len(ranked) - positives
	if positives == 0 || negatives == 0 {
		return nil, fmt.Errorf("ROC needs positive and negative instances, got %d and %d", positives, negatives)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].confidence > ranked[j].confidence })

	cutoffs := []float64{1, ranked[0].confidence}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].positive != ranked[i-1].positive {
			cutoffs = append(cutoffs, ranked[i-1].confidence, ranked[i].confidence)
		}
	}
	cutoffs = append(cutoffs, 0)

	points := make([]Point, 0, len(cutoffs))
	for _, cutoff := range cutoffs {
		var tp, fp int
		for _, r := range ranked {
			if r.confidence < cutoff {
				break
			}
			if r.positive {
				tp++
			} else {
				fp++
			}
		}
		points = append(points, Point{
			FPR: float64(fp) / float64(negatives),
			TPR: float64(tp) / float64(positives),
		})
	}
	return points, nil
}

type scored struct {
	confidence float64
	positive   bool
}
