package evaluate

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pbanos/dtlearn"
	"github.com/pbanos/dtlearn/dataset"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CurveConfig holds the configuration of a learning curve
type CurveConfig struct {
	// Percentages of the training dataset to grow trees from
	Percentages []int
	// Draws is the number of random subsets drawn for every
	// percentage below 100. A single tree is grown at 100.
	Draws int
	// Strategy is used to grow every tree
	Strategy dtlearn.StoppingStrategy
	// Seed of the random subset draws
	Seed int64
}

// DefaultCurveConfig returns a CurveConfig drawing 10 subsets of 5%,
// 10%, 20% and 50% of the training dataset and growing with the default
// stopping strategy
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		Percentages: []int{5, 10, 20, 50, 100},
		Draws:       10,
		Strategy:    dtlearn.DefaultStoppingStrategy(),
		Seed:        1,
	}
}

// Validate returns an error if the configuration cannot be used
func (cc CurveConfig) Validate() error {
	if len(cc.Percentages) == 0 {
		return fmt.Errorf("no training percentages")
	}
	for _, p := range cc.Percentages {
		if p <= 0 || p > 100 {
			return fmt.Errorf("training percentage %d out of (0, 100]", p)
		}
	}
	if cc.Draws < 1 {
		return fmt.Errorf("draws must be positive, got %d", cc.Draws)
	}
	return cc.Strategy.Validate()
}

// CurvePoint is the test accuracy for a training percentage
type CurvePoint struct {
	Percent    int
	Size       int
	Accuracies []float64
	Mean       float64
	Min        float64
	Max        float64
}

/*
LearningCurve takes a context, a training and a test dataset and a
configuration and returns a point for every configured percentage with the
accuracies on the test dataset of the trees grown from random subsets of the
training dataset with that percentage of its instances.

Instances that cannot be predicted count as misclassified.
*/
func LearningCurve(ctx context.Context, train, test *dataset.Dataset, cc CurveConfig) ([]CurvePoint, error) {
	if err := cc.Validate(); err != nil {
		return nil, err
	}
	if test.Count() == 0 {
		return nil, fmt.Errorf("empty test dataset")
	}
	rnd := rand.New(rand.NewSource(cc.Seed))
	logger := zerolog.Ctx(ctx)
	points := make([]CurvePoint, 0, len(cc.Percentages))
	for _, percent := range cc.Percentages {
		size := train.Count() * percent / 100
		draws := cc.Draws
		if percent == 100 {
			draws = 1
		}
		cp := CurvePoint{Percent: percent, Size: size, Accuracies: make([]float64, 0, draws)}
		for i := 0; i < draws; i++ {
			subset := train.Subset(rnd.Perm(train.Count())[:size])
			t, err := dtlearn.Grow(ctx, subset, cc.Strategy)
			if err != nil {
				return nil, fmt.Errorf("growing tree from %d%% of the training dataset: %v", percent, err)
			}
			accuracy, _, err := t.Test(test)
			if err != nil {
				return nil, fmt.Errorf("testing tree grown from %d%% of the training dataset: %v", percent, err)
			}
			cp.Accuracies = append(cp.Accuracies, accuracy)
		}
		cp.Mean = stat.Mean(cp.Accuracies, nil)
		cp.Min = floats.Min(cp.Accuracies)
		cp.Max = floats.Max(cp.Accuracies)
		logger.Debug().
			Int("percent", percent).
			Int("size", size).
			Float64("mean", cp.Mean).
			Float64("min", cp.Min).
			Float64("max", cp.Max).
			Msg("learning curve point")
		points = append(points, cp)
	}
	return points, nil
}
