package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "dtlearn",
		Short: "dtlearn is a tool to grow binary classification trees",
		Long:  `A tool to grow ID3 decision trees from your data, test them, and evaluate them with ROC and learning curves`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.teardown()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug messages on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.profile), "profile", "", "path to a directory where a CPU profile of the command will be written")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		treeCmd(config),
		rocCmd(config),
		curveCmd(config),
	)
	return rootCmd
}
