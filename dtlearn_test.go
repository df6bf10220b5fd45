package dtlearn

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classFeature() *feature.DiscreteFeature {
	return feature.NewDiscreteFeature("class", []string{"+", "-"})
}

func weather(t *testing.T, outlooks []string, instances ...dataset.Instance) *dataset.Dataset {
	d, err := dataset.New([]feature.Feature{
		feature.NewDiscreteFeature("A", outlooks),
		feature.NewDiscreteFeature("B", []string{"hot", "cold"}),
		classFeature(),
	}, instances)
	require.NoError(t, err)
	return d
}

func numeric(t *testing.T, values []float64, labels []string) *dataset.Dataset {
	require.Equal(t, len(values), len(labels))
	instances := make([]dataset.Instance, len(values))
	for i := range values {
		instances[i] = dataset.Instance{values[i], labels[i]}
	}
	d, err := dataset.New([]feature.Feature{feature.NewContinuousFeature("x"), classFeature()}, instances)
	require.NoError(t, err)
	return d
}

func mixed(t *testing.T, n int) *dataset.Dataset {
	outlooks := []string{"sunny", "overcast", "rain"}
	d, err := dataset.Empty([]feature.Feature{
		feature.NewDiscreteFeature("outlook", outlooks),
		feature.NewContinuousFeature("temperature"),
		feature.NewContinuousFeature("humidity"),
		classFeature(),
	})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		outlook := outlooks[i%3]
		temperature := float64((i * 7) % 11)
		humidity := float64((i * 13) % 17)
		label := "-"
		if (temperature > 5) != (outlook == "rain") || humidity < 3 {
			label = "+"
		}
		require.NoError(t, d.Add(dataset.Instance{outlook, temperature, humidity, label}))
	}
	return d
}

func TestInformationGainPicksSeparatingAttribute(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"},
		dataset.Instance{"sunny", "hot", "-"},
		dataset.Instance{"sunny", "cold", "-"},
		dataset.Instance{"rain", "hot", "+"},
		dataset.Instance{"rain", "cold", "+"},
	)
	gains, err := InformationGain(d)
	require.NoError(t, err)
	require.Len(t, gains, 2)
	assert.InDelta(t, 1.0, gains[0], 1e-12)
	assert.InDelta(t, 0.0, gains[1], 1e-12)
	assert.Equal(t, 0, ChooseSplitAttribute(gains))

	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	require.False(t, tr.Root.Leaf)
	assert.Equal(t, "A", tr.Root.FeatureName)
	assert.Equal(t, tree.NominalSplit, tr.Root.Kind)
	require.Len(t, tr.Root.Children, 2)

	p, err := tr.Predict(dataset.Instance{"rain", "hot", "+"})
	require.NoError(t, err)
	assert.Equal(t, "+", p)
	p, err = tr.Predict(dataset.Instance{"sunny", "hot", "+"})
	require.NoError(t, err)
	assert.Equal(t, "-", p)

	assert.Equal(t, []string{
		"A = sunny [0 2]: -",
		"A = rain [2 0]: +",
	}, tree.Render(tr))
}

func TestPureDatasetIsLeafAboveSizeThreshold(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"},
		dataset.Instance{"sunny", "hot", "+"},
		dataset.Instance{"sunny", "cold", "+"},
		dataset.Instance{"rain", "hot", "+"},
		dataset.Instance{"rain", "cold", "+"},
		dataset.Instance{"rain", "cold", "+"},
	)
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 10})
	require.NoError(t, err)
	assert.True(t, tr.Root.Leaf)
	assert.Equal(t, "+", tr.Root.Prediction)
	assert.Equal(t, [2]int{5, 0}, tr.Root.Counts)
	assert.Equal(t, tree.LeafName, tr.Root.FeatureName)
	assert.Empty(t, tr.Root.Children)
	assert.Empty(t, tree.Render(tr))

	tr, err = Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.True(t, tr.Root.Leaf)
}

func TestBestNumericThreshold(t *testing.T) {
	d := numeric(t, []float64{1, 2, 3, 4}, []string{"-", "-", "+", "+"})
	entropy, threshold, err := BestNumericThreshold(d, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, threshold)
	assert.Equal(t, 0.0, entropy)
}

func TestBestNumericThresholdUnsortedWithDuplicates(t *testing.T) {
	d := numeric(t, []float64{4, 1, 3, 1, 2, 4}, []string{"+", "-", "+", "-", "-", "+"})
	entropy, threshold, err := BestNumericThreshold(d, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, threshold)
	assert.Equal(t, 0.0, entropy)
}

func TestBestNumericThresholdTiesPickLowest(t *testing.T) {
	d := numeric(t, []float64{1, 2, 3, 4, 5, 6}, []string{"-", "-", "+", "+", "-", "-"})
	_, threshold, err := BestNumericThreshold(d, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, threshold)
}

func TestBestNumericThresholdWithoutCandidates(t *testing.T) {
	d := numeric(t, []float64{3, 3, 3}, []string{"-", "+", "+"})
	_, _, err := BestNumericThreshold(d, 0)
	assert.Equal(t, ErrNoThreshold, err)

	gains, err := InformationGain(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, gains)

	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.True(t, tr.Root.Leaf)
	assert.Equal(t, "+", tr.Root.Prediction)

	_, _, err = BestNumericThreshold(weather(t, []string{"sunny"}), 0)
	assert.Error(t, err)
}

func TestNumericFeatureIsReused(t *testing.T) {
	d := numeric(t, []float64{1, 2, 3, 4, 5, 6}, []string{"-", "-", "+", "+", "-", "-"})
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"x <= 2.500000 [0 2]: -",
		"x > 2.500000 [2 2]",
		"|\tx <= 4.500000 [2 0]: +",
		"|\tx > 4.500000 [0 2]: -",
	}, tree.Render(tr))
	assert.Equal(t, "x <= 2.500000 [0 2]: -\nx > 2.500000 [2 2]\n|\tx <= 4.500000 [2 0]: +\n|\tx > 4.500000 [0 2]: -\n", tr.String())

	for _, tc := range []struct {
		x        float64
		expected string
	}{
		{0, "-"}, {2.5, "-"}, {2.6, "+"}, {4.5, "+"}, {10, "-"},
	} {
		p, err := tr.Predict(dataset.Instance{tc.x, "+"})
		require.NoError(t, err)
		assert.Equal(t, tc.expected, p, "x=%v", tc.x)
	}
}

func TestZeroGainStops(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"},
		dataset.Instance{"sunny", "hot", "+"},
		dataset.Instance{"sunny", "cold", "-"},
		dataset.Instance{"rain", "hot", "+"},
		dataset.Instance{"rain", "cold", "-"},
		dataset.Instance{"sunny", "hot", "-"},
		dataset.Instance{"sunny", "cold", "+"},
		dataset.Instance{"rain", "hot", "-"},
		dataset.Instance{"rain", "cold", "+"},
	)
	gains, err := InformationGain(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, gains)

	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.True(t, tr.Root.Leaf)
}

func TestRootTieBreakIsFirstClass(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"},
		dataset.Instance{"sunny", "hot", "-"},
		dataset.Instance{"rain", "cold", "+"},
		dataset.Instance{"sunny", "cold", "+"},
		dataset.Instance{"rain", "hot", "-"},
	)
	for i := 0; i < 10; i++ {
		tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 10})
		require.NoError(t, err)
		assert.True(t, tr.Root.Leaf)
		assert.Equal(t, "+", tr.Root.Prediction)
		assert.Equal(t, [2]int{2, 2}, tr.Root.Counts)
	}
}

func TestEmptyBranchInheritsParentPrediction(t *testing.T) {
	d := weather(t, []string{"sunny", "overcast", "rain"},
		dataset.Instance{"sunny", "hot", "-"},
		dataset.Instance{"sunny", "cold", "-"},
		dataset.Instance{"sunny", "cold", "-"},
		dataset.Instance{"rain", "hot", "+"},
		dataset.Instance{"rain", "cold", "+"},
	)
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	require.Len(t, tr.Root.Children, 3)
	overcast := tr.Root.Children[1]
	assert.True(t, overcast.Leaf)
	assert.Equal(t, [2]int{0, 0}, overcast.Counts)
	assert.Equal(t, "-", tr.Root.Prediction)
	assert.Equal(t, tr.Root.Prediction, overcast.Prediction)
	assert.Equal(t, "= overcast", overcast.Branch)
	assert.Equal(t, 1, overcast.Depth)

	assert.Equal(t, []string{
		"A = sunny [0 3]: -",
		"A = overcast [0 0]: -",
		"A = rain [2 0]: +",
	}, tree.Render(tr))
}

func TestEmptyDatasetIsLeaf(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"})
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.True(t, tr.Root.Leaf)
	assert.Equal(t, "+", tr.Root.Prediction)

	gains, err := InformationGain(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, gains)
}

func TestUnseenValueFailsPrediction(t *testing.T) {
	d := weather(t, []string{"sunny", "rain"},
		dataset.Instance{"sunny", "hot", "-"},
		dataset.Instance{"rain", "hot", "+"},
	)
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	_, err = tr.Predict(dataset.Instance{"snow", "hot", "+"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrUnseenValue))

	_, err = tr.Predict(dataset.Instance{1.0, "hot", "+"})
	assert.True(t, errors.Is(err, tree.ErrInvalidValue))
}

func TestTreeInvariants(t *testing.T) {
	d := mixed(t, 60)
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	require.False(t, tr.Root.Leaf)
	assert.Equal(t, d.Count(), tr.Root.Weight())

	err = tr.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
		if n.Leaf {
			assert.Empty(t, n.Children)
			return nil
		}
		switch n.Kind {
		case tree.ThresholdSplit:
			assert.Len(t, n.Children, 2)
		case tree.NominalSplit:
			f := tr.Features[n.Feature].(*feature.DiscreteFeature)
			assert.Len(t, n.Children, len(f.AvailableValues()))
		}
		var counts [2]int
		for _, c := range n.Children {
			assert.Equal(t, n.Depth+1, c.Depth)
			counts[0] += c.Counts[0]
			counts[1] += c.Counts[1]
		}
		assert.Equal(t, n.Counts, counts)
		return nil
	})
	require.NoError(t, err)

	for _, instance := range d.Instances() {
		leaf, err := tr.Leaf(instance)
		require.NoError(t, err)
		if leaf.Counts[0] == 0 || leaf.Counts[1] == 0 {
			p, err := tr.Predict(instance)
			require.NoError(t, err)
			assert.Equal(t, instance.Label(), p, "instance %v", instance)
		}
	}
}

func TestMinInstancesLimitsGrowth(t *testing.T) {
	d := mixed(t, 60)
	ctx := context.Background()
	shallow, err := Grow(ctx, d, StoppingStrategy{MinInstances: 30})
	require.NoError(t, err)
	deep, err := Grow(ctx, d, StoppingStrategy{MinInstances: 1})
	require.NoError(t, err)
	assert.Less(t, len(tree.Render(shallow)), len(tree.Render(deep)))

	err = shallow.Traverse(ctx, false, func(_ context.Context, n *tree.Node) error {
		if !n.Leaf {
			assert.GreaterOrEqual(t, n.Weight(), 30)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMaxDepth(t *testing.T) {
	d := numeric(t, []float64{1, 2, 3, 4, 5, 6}, []string{"-", "-", "+", "+", "-", "-"})
	tr, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 1, MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"x <= 2.500000 [0 2]: -",
		"x > 2.500000 [2 2]: -",
	}, tree.Render(tr))
}

func TestGrowErrors(t *testing.T) {
	d := mixed(t, 10)
	_, err := Grow(context.Background(), d, StoppingStrategy{MinInstances: 0})
	assert.Error(t, err)
	_, err = Grow(context.Background(), d, StoppingStrategy{MinInstances: 1, MaxDepth: -1})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Grow(ctx, d, StoppingStrategy{MinInstances: 1})
	assert.Equal(t, context.Canceled, err)
}

func TestChooseSplitAttribute(t *testing.T) {
	assert.Equal(t, -1, ChooseSplitAttribute(nil))
	assert.Equal(t, 1, ChooseSplitAttribute([]float64{0.1, 0.5, 0.5, 0.2}))
	assert.Equal(t, 0, ChooseSplitAttribute([]float64{0, 0, 0}))
	assert.Equal(t, 2, ChooseSplitAttribute([]float64{-1, -0.5, 0.3}))
}

func TestPartitionsAreDisjointAndComplete(t *testing.T) {
	d := mixed(t, 30)
	p, err := NewDiscretePartition(d, 0)
	require.NoError(t, err)
	require.Len(t, p.Subsets, 3)
	var total int
	for i, s := range p.Subsets {
		total += s.Count()
		for _, instance := range s.Instances() {
			assert.Equal(t, d.Features()[0].(*feature.DiscreteFeature).AvailableValues()[i], instance[0])
		}
	}
	assert.Equal(t, d.Count(), total)

	p, err = NewContinuousPartition(d, 1, 5)
	require.NoError(t, err)
	require.Len(t, p.Subsets, 2)
	assert.Equal(t, d.Count(), p.Subsets[0].Count()+p.Subsets[1].Count())
	assert.Equal(t, "<= 5.000000", p.Criteria[0].String())
	assert.Equal(t, "> 5.000000", p.Criteria[1].String())

	_, err = NewDiscretePartition(d, 1)
	assert.Error(t, err)
	_, err = NewContinuousPartition(d, 0, 1)
	assert.Error(t, err)
}
