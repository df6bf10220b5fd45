package main

import (
	"fmt"

	"github.com/pbanos/dtlearn/evaluate"
	"github.com/spf13/cobra"
)

type curveCmdConfig struct {
	*rootCmdConfig
	inputConfig
	growConfig
	dataInput   string
	testInput   string
	output      string
	percentages []int
	draws       int
	seed        int64
}

func curveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &curveCmdConfig{rootCmdConfig: rootConfig}
	defaults := evaluate.DefaultCurveConfig()
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Plot the learning curve of trees",
		Long: `Grow trees from random subsets of increasing size of a training set and plot
the accuracy they reach on a test set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			trainingSet, err := config.readDataset(ctx, config.rootCmdConfig, config.dataInput)
			if err != nil {
				config.fail(2, fmt.Errorf("reading training set: %v", err))
			}
			testSet, err := config.readDataset(ctx, config.rootCmdConfig, config.testInput)
			if err != nil {
				config.fail(2, fmt.Errorf("reading test set: %v", err))
			}
			points, err := evaluate.LearningCurve(ctx, trainingSet, testSet, config.curveConfig())
			if err != nil {
				config.fail(3, err)
			}
			for _, p := range points {
				fmt.Printf("%d%% (%d instances): mean %.4f min %.4f max %.4f\n", p.Percent, p.Size, p.Mean, p.Min, p.Max)
			}
			if err = evaluate.PlotLearningCurve(points, config.output); err != nil {
				config.fail(4, err)
			}
			config.logger.Info().Str("path", config.output).Msg("learning curve plotted")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input "+inputHelp+" with data to grow the trees (required)")
	cmd.PersistentFlags().StringVarP(&(config.testInput), "test", "t", "", "path to an input "+inputHelp+" with data to test the trees (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "curve.png", "path to the image file the plot is saved to")
	cmd.PersistentFlags().IntSliceVar(&(config.percentages), "percentages", defaults.Percentages, "percentages of the training set to grow trees from")
	cmd.PersistentFlags().IntVar(&(config.draws), "draws", defaults.Draws, "number of random subsets drawn for every percentage below 100")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", defaults.Seed, "seed of the random subset draws")
	config.inputConfig.addFlags(cmd)
	config.growConfig.addFlags(cmd)
	return cmd
}

func (ccc *curveCmdConfig) curveConfig() evaluate.CurveConfig {
	return evaluate.CurveConfig{
		Percentages: ccc.percentages,
		Draws:       ccc.draws,
		Strategy:    ccc.strategy(),
		Seed:        ccc.seed,
	}
}

func (ccc *curveCmdConfig) Validate() error {
	if err := requireFile("input", ccc.dataInput); err != nil {
		return err
	}
	if err := requireFile("test", ccc.testInput); err != nil {
		return err
	}
	if err := requireFile("output", ccc.output); err != nil {
		return err
	}
	return ccc.curveConfig().Validate()
}
