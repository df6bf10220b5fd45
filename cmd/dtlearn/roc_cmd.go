package main

import (
	"fmt"

	"github.com/pbanos/dtlearn/evaluate"
	"github.com/spf13/cobra"
)

type rocCmdConfig struct {
	*rootCmdConfig
	inputConfig
	growConfig
	dataInput string
	testInput string
	output    string
}

func rocCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &rocCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "roc",
		Short: "Plot the ROC curve of a tree",
		Long:  `Grow a tree from a training set and plot its ROC curve over a test set, the first class value being the positive one`,
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
			t, err := grow(ctx, config.rootCmdConfig, trainingSet, &config.growConfig)
			if err != nil {
				config.fail(3, err)
			}
			if err = checkFeatures(t, testSet); err != nil {
				config.fail(4, err)
			}
			confidences, labels, err := evaluate.Confidences(t, testSet)
			if err != nil {
				config.fail(5, err)
			}
			positive := testSet.ClassValues()[0]
			points, err := evaluate.ROC(confidences, labels, positive)
			if err != nil {
				config.fail(5, err)
			}
			for _, p := range points {
				fmt.Printf("%f %f\n", p.FPR, p.TPR)
			}
			if err = evaluate.PlotROC(points, config.output); err != nil {
				config.fail(6, err)
			}
			config.logger.Info().Str("path", config.output).Str("positive", positive).Msg("ROC curve plotted")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input "+inputHelp+" with data to grow the tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.testInput), "test", "t", "", "path to an input "+inputHelp+" with data to test the tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "roc.png", "path to the image file the plot is saved to")
	config.inputConfig.addFlags(cmd)
	config.growConfig.addFlags(cmd)
	return cmd
}

func (rcc *rocCmdConfig) Validate() error {
	if err := requireFile("input", rcc.dataInput); err != nil {
		return err
	}
	if err := requireFile("test", rcc.testInput); err != nil {
		return err
	}
	if err := requireFile("output", rcc.output); err != nil {
		return err
	}
	return rcc.growConfig.Validate()
}
