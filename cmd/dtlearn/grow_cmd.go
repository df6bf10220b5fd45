package main

import (
	"fmt"
	"os"

	"github.com/pbanos/dtlearn/tree"
	"github.com/pbanos/dtlearn/tree/json"
	"github.com/pbanos/dtlearn/tree/redisstore"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	growConfig
	dataInput   string
	output      string
	redisAddr   string
	redisPrefix string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict its class feature and print it.`,
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
			t, err := grow(ctx, config.rootCmdConfig, trainingSet, &config.growConfig)
			if err != nil {
				config.fail(3, err)
			}
			fmt.Print(t)
			if config.output != "" {
				if err = writeTree(config.output, t); err != nil {
					config.fail(4, err)
				}
				config.logger.Info().Str("path", config.output).Msg("tree written")
			}
			if config.redisAddr != "" {
				rc := redis.NewClient(&redis.Options{Addr: config.redisAddr})
				defer rc.Close()
				id, err := redisstore.New(rc, config.redisPrefix).Save(ctx, t)
				if err != nil {
					config.fail(5, err)
				}
				config.logger.Info().Str("id", id).Str("addr", config.redisAddr).Msg("tree saved to redis")
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input "+inputHelp+" with data to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to save the generated tree to")
	cmd.PersistentFlags().StringVar(&(config.redisPrefix), "redis-prefix", "dtlearn", "prefix of the redis keys trees are saved under")
	config.inputConfig.addFlags(cmd)
	config.growConfig.addFlags(cmd)
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.redisAddr != "" && gcc.redisPrefix == "" {
		return fmt.Errorf("redis-prefix flag cannot be empty")
	}
	return gcc.growConfig.Validate()
}

func writeTree(path string, t *tree.Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err = json.WriteJSONTree(t, f); err != nil {
		return fmt.Errorf("writing tree to %s: %v", path, err)
	}
	return nil
}
