package evaluate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/dtlearn"
	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionMatrix(t *testing.T) {
	cm := NewConfusionMatrix([2]string{"+", "-"})
	for _, p := range [][2]string{{"+", "+"}, {"+", "+"}, {"+", "-"}, {"-", "-"}} {
		require.NoError(t, cm.Add(p[0], p[1]))
	}
	assert.Error(t, cm.Add("?", "+"))
	assert.Error(t, cm.Add("+", "?"))

	assert.Equal(t, 2, cm.Count("+", "+"))
	assert.Equal(t, 1, cm.Count("+", "-"))
	assert.Equal(t, 0, cm.Count("-", "+"))
	assert.Equal(t, 1, cm.Count("-", "-"))
	assert.Equal(t, 4, cm.Total())
	assert.Equal(t, 3, cm.Correct())
	assert.Equal(t, 0.75, cm.Accuracy())

	buf := &bytes.Buffer{}
	cm.Render(buf)
	assert.Contains(t, buf.String(), "actual \\ predicted")
	assert.Contains(t, buf.String(), "0.7500")

	assert.Equal(t, 0.0, NewConfusionMatrix([2]string{"a", "b"}).Accuracy())
}

func TestROC(t *testing.T) {
	points, err := ROC([]float64{0.7, 0.9, 0.6, 0.8}, []string{"-", "+", "+", "+"}, "+")
	require.NoError(t, err)
	assert.Equal(t, []Point{
		{0, 0},
		{0, 1.0 / 3},
		{0, 2.0 / 3},
		{1, 2.0 / 3},
		{1, 2.0 / 3},
		{1, 1},
		{1, 1},
	}, points)
}

func TestROCErrors(t *testing.T) {
	_, err := ROC([]float64{0.5}, []string{"+", "-"}, "+")
	assert.Error(t, err)
	_, err = ROC([]float64{0.5, 0.6}, []string{"+", "+"}, "+")
	assert.Error(t, err)
	_, err = ROC(nil, nil, "+")
	assert.Error(t, err)
}

// line labels instances with x below 20 as "+"
func line(t *testing.T) *dataset.Dataset {
	d, err := dataset.Empty([]feature.Feature{
		feature.NewContinuousFeature("x"),
		feature.NewDiscreteFeature("class", []string{"+", "-"}),
	})
	require.NoError(t, err)
	for x := 0; x < 40; x++ {
		label := "-"
		if x < 20 {
			label = "+"
		}
		require.NoError(t, d.Add(dataset.Instance{float64(x), label}))
	}
	return d
}

func TestConfidences(t *testing.T) {
	d := line(t)
	tr, err := dtlearn.Grow(context.Background(), d, dtlearn.StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	confidences, labels, err := Confidences(tr, d)
	require.NoError(t, err)
	require.Len(t, confidences, 40)
	assert.InDelta(t, 21.0/22.0, confidences[0], 1e-12)
	assert.InDelta(t, 1.0/22.0, confidences[39], 1e-12)
	assert.Equal(t, d.Labels(), labels)

	points, err := ROC(confidences, labels, "+")
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, points[0])
	assert.Equal(t, Point{0, 1}, points[1])
	assert.Equal(t, Point{1, 1}, points[len(points)-1])
}

func TestLearningCurve(t *testing.T) {
	d := line(t)
	cc := CurveConfig{
		Percentages: []int{50, 100},
		Draws:       3,
		Strategy:    dtlearn.StoppingStrategy{MinInstances: 1},
		Seed:        7,
	}
	points, err := LearningCurve(context.Background(), d, d, cc)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 20, points[0].Size)
	assert.Len(t, points[0].Accuracies, 3)
	assert.LessOrEqual(t, points[0].Min, points[0].Mean)
	assert.LessOrEqual(t, points[0].Mean, points[0].Max)

	assert.Equal(t, 40, points[1].Size)
	assert.Equal(t, []float64{1}, points[1].Accuracies)
	assert.Equal(t, 1.0, points[1].Mean)
}

func TestLearningCurveValidates(t *testing.T) {
	d := line(t)
	for name, cc := range map[string]CurveConfig{
		"no percentages": {Draws: 1, Strategy: dtlearn.DefaultStoppingStrategy()},
		"percentage":     {Percentages: []int{120}, Draws: 1, Strategy: dtlearn.DefaultStoppingStrategy()},
		"draws":          {Percentages: []int{50}, Strategy: dtlearn.DefaultStoppingStrategy()},
		"strategy":       {Percentages: []int{50}, Draws: 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LearningCurve(context.Background(), d, d, cc)
			assert.Error(t, err)
		})
	}
	assert.NoError(t, DefaultCurveConfig().Validate())
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	roc := filepath.Join(dir, "roc.png")
	require.NoError(t, PlotROC([]Point{{0, 0}, {0.2, 0.7}, {1, 1}}, roc))
	info, err := os.Stat(roc)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	curve := filepath.Join(dir, "curve.png")
	require.NoError(t, PlotLearningCurve([]CurvePoint{
		{Percent: 50, Mean: 0.8, Min: 0.7, Max: 0.9},
		{Percent: 100, Mean: 0.95, Min: 0.95, Max: 0.95},
	}, curve))
	_, err = os.Stat(curve)
	assert.NoError(t, err)
}
