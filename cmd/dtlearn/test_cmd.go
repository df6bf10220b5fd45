package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/evaluate"
	"github.com/pbanos/dtlearn/tree"
	"github.com/pbanos/dtlearn/tree/json"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	growConfig
	dataInput string
	testInput string
	treeInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long: `Grow a tree from a training set (or read a grown one) and test it against a test set,
printing the tree, the prediction for every test instance and the confusion matrix`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			t, err := config.growOrLoad(ctx)
			if err != nil {
				config.fail(2, err)
			}
			testSet, err := config.readDataset(ctx, config.rootCmdConfig, config.testInput)
			if err != nil {
				config.fail(3, fmt.Errorf("reading test set: %v", err))
			}
			if err = checkFeatures(t, testSet); err != nil {
				config.fail(4, err)
			}
			config.Logf("Testing tree against test set with %d instances...", testSet.Count())
			fmt.Print(t)
			if err = report(os.Stdout, t, testSet); err != nil {
				config.fail(5, fmt.Errorf("testing tree: %v", err))
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input "+inputHelp+" with data to grow the tree")
	cmd.PersistentFlags().StringVarP(&(config.testInput), "test", "t", "", "path to an input "+inputHelp+" with data to test the tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "j", "", "path to a JSON file with a grown tree to test instead of growing one")
	config.inputConfig.addFlags(cmd)
	config.growConfig.addFlags(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if err := requireFile("test", tcc.testInput); err != nil {
		return err
	}
	if tcc.treeInput == "" {
		if err := requireFile("input", tcc.dataInput); err != nil {
			return err
		}
	}
	return tcc.growConfig.Validate()
}

func (tcc *testCmdConfig) growOrLoad(ctx context.Context) (*tree.Tree, error) {
	if tcc.treeInput != "" {
		return loadTree(tcc.treeInput)
	}
	trainingSet, err := tcc.readDataset(ctx, tcc.rootCmdConfig, tcc.dataInput)
	if err != nil {
		return nil, fmt.Errorf("reading training set: %v", err)
	}
	return grow(ctx, tcc.rootCmdConfig, trainingSet, &tcc.growConfig)
}

// report writes a line with the actual and predicted class of every
// instance, the number of correct predictions and the confusion matrix.
// Instances the tree cannot predict are reported with a ? prediction and
// count as misclassified.
func report(w io.Writer, t *tree.Tree, d *dataset.Dataset) error {
	label := t.Label().Name()
	cm := evaluate.NewConfusionMatrix(d.ClassValues())
	for i, instance := range d.Instances() {
		p, err := t.Predict(instance)
		if errors.Is(err, tree.ErrUnseenValue) || errors.Is(err, tree.ErrInvalidValue) {
			fmt.Fprintf(w, "%d: Actual: %s Predicted: ?\n", i+1, instance.Label())
			continue
		}
		if err != nil {
			return fmt.Errorf("predicting %s for instance %d: %v", label, i+1, err)
		}
		fmt.Fprintf(w, "%d: Actual: %s Predicted: %s\n", i+1, instance.Label(), p)
		if err = cm.Add(instance.Label(), p); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Number of correctly classified: %d Total number of test instances: %d\n", cm.Correct(), d.Count())
	cm.Render(w)
	return nil
}

func loadTree(path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", path, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", path, err)
	}
	return t, err
}
