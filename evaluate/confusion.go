/*
Package evaluate measures how well grown trees classify test datasets:
confusion matrices, ROC curves and learning curves, and plots of the latter
two.
*/
package evaluate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

/*
ConfusionMatrix counts the predictions made for instances of two classes.
Rows are the actual class and columns the predicted one, both in the order
of the class values.
*/
type ConfusionMatrix struct {
	classes [2]string
	counts  [2][2]int
}

// NewConfusionMatrix returns an empty confusion matrix for the given class values
func NewConfusionMatrix(classes [2]string) *ConfusionMatrix {
	return &ConfusionMatrix{classes: classes}
}

// Add counts a prediction. It returns an error if either class is unknown.
func (cm *ConfusionMatrix) Add(actual, predicted string) error {
	a, err := cm.index(actual)
	if err != nil {
		return err
	}
	p, err := cm.index(predicted)
	if err != nil {
		return err
	}
	cm.counts[a][p]++
	return nil
}

// Count returns the number of instances of the actual class predicted
// as the predicted class
func (cm *ConfusionMatrix) Count(actual, predicted string) int {
	a, err := cm.index(actual)
	if err != nil {
		return 0
	}
	p, err := cm.index(predicted)
	if err != nil {
		return 0
	}
	return cm.counts[a][p]
}

// Total returns the number of predictions counted
func (cm *ConfusionMatrix) Total() int {
	return cm.counts[0][0] + cm.counts[0][1] + cm.counts[1][0] + cm.counts[1][1]
}

// Correct returns the number of right predictions
func (cm *ConfusionMatrix) Correct() int {
	return cm.counts[0][0] + cm.counts[1][1]
}

// Accuracy returns the rate of right predictions, 0 when there are none
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(total)
}

// Render writes the matrix as a table onto w
func (cm *ConfusionMatrix) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"actual \\ predicted", cm.classes[0], cm.classes[1]})
	for i, c := range cm.classes {
		table.Append([]string{c, strconv.Itoa(cm.counts[i][0]), strconv.Itoa(cm.counts[i][1])})
	}
	table.SetFooter([]string{"accuracy", fmt.Sprintf("%.4f", cm.Accuracy()), ""})
	table.Render()
}

func (cm *ConfusionMatrix) index(class string) (int, error) {
	for i, c := range cm.classes {
		if c == class {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown class %s", class)
}
