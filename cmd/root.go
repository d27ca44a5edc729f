package cmd

import (
	"fmt"
	"os"

	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/rhanlin/graphql-demo/internal/config"
	"github.com/rhanlin/graphql-demo/internal/graph"
	"github.com/rhanlin/graphql-demo/internal/search"
	"github.com/rhanlin/graphql-demo/internal/store"
	"github.com/rhanlin/graphql-demo/internal/ui"
)

var (
	core       store.Store
	cfg        *config.Config
	configPath string
	seedPath   string
)

var rootCmd = &cobra.Command{
	Use:   "graphql-demo",
	Short: "A small GraphQL API over users and posts",
	Long: `graphql-demo serves a GraphQL API over an in-memory dataset of users
and posts. It shows how schema fields bind to resolvers: relationships
(author, friends, like-givers), unit-converted fields (height, weight) and
mutations (addPost, likePost).

Data lives in memory only; every restart begins again from the seed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file, it must not require one
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if seedPath != "" {
			cfg.Data.Seed = seedPath
		}

		core, err = store.Open(cfg.Data.Seed)
		if err != nil {
			return fmt.Errorf("loading seed: %w", err)
		}
		if _, ok := core.UserByID(cfg.Data.MeID); !ok {
			return fmt.Errorf("data.me_id %d does not match any user", cfg.Data.MeID)
		}

		return nil
	},
}

// newExecutableSchema builds the search index over the current posts and
// parses the schema against a resolver backed by core.
func newExecutableSchema(opts ...graphql.SchemaOpt) (*graphql.Schema, func(), error) {
	c := cfg
	if c == nil {
		c = config.Default()
	}

	idx, err := search.NewIndex()
	if err != nil {
		return nil, nil, fmt.Errorf("creating search index: %w", err)
	}
	if err := idx.IndexPosts(core.Posts()); err != nil {
		idx.Close()
		return nil, nil, fmt.Errorf("indexing posts: %w", err)
	}

	resolver := &graph.Resolver{
		Store:       core,
		Index:       idx,
		MeID:        c.Data.MeID,
		SearchLimit: c.Search.Limit,
	}
	if c.GraphQL.MaxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(c.GraphQL.MaxDepth))
	}

	schema, err := graph.NewSchema(resolver, opts...)
	if err != nil {
		idx.Close()
		return nil, nil, fmt.Errorf("parsing schema: %w", err)
	}

	return schema, func() { idx.Close() }, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "YAML seed file (overrides data.seed; default built-in sample data)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		os.Exit(1)
	}
}
