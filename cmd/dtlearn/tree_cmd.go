package main

import (
	"fmt"

	"github.com/pbanos/dtlearn/tree"
	"github.com/pbanos/dtlearn/tree/redisstore"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput   string
	redisAddr   string
	redisPrefix string
	id          string
	delete      bool
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a grown tree",
		Long:  `Print a tree stored in a JSON file or in redis, optionally deleting it from redis`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			var t *tree.Tree
			if config.treeInput != "" {
				t, err = loadTree(config.treeInput)
				if err != nil {
					config.fail(2, err)
				}
				fmt.Print(t)
				return
			}
			ctx := config.Context()
			rc := redis.NewClient(&redis.Options{Addr: config.redisAddr})
			defer rc.Close()
			store := redisstore.New(rc, config.redisPrefix)
			defer store.Close(ctx)
			t, err = store.Load(ctx, config.id)
			if err != nil {
				config.fail(3, err)
			}
			fmt.Print(t)
			if config.delete {
				if err = store.Delete(ctx, config.id); err != nil {
					config.fail(4, err)
				}
				config.logger.Info().Str("id", config.id).Msg("tree deleted from redis")
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with the tree")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to load the tree from")
	cmd.PersistentFlags().StringVar(&(config.redisPrefix), "redis-prefix", "dtlearn", "prefix of the redis keys trees are saved under")
	cmd.PersistentFlags().StringVar(&(config.id), "id", "", "id of the tree in redis")
	cmd.PersistentFlags().BoolVar(&(config.delete), "delete", false, "delete the tree from redis after printing it")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" && tcc.redisAddr == "" {
		return fmt.Errorf("either tree or redis flag must be set")
	}
	if tcc.treeInput != "" && tcc.redisAddr != "" {
		return fmt.Errorf("cannot set both tree and redis flags at the same time")
	}
	if tcc.redisAddr != "" && tcc.id == "" {
		return fmt.Errorf("required id flag was not set")
	}
	if tcc.delete && tcc.redisAddr == "" {
		return fmt.Errorf("delete flag requires the redis flag")
	}
	return nil
}
