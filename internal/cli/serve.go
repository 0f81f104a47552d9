package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/internal/server"
	"github.com/RomainClaret/pubgraph/pkg/cache"
	"github.com/RomainClaret/pubgraph/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisDB   int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Exposes the pipeline over HTTP: POST /api/graph builds a graph from
publication records, POST /api/layout adds coordinates, POST /api/filter
runs the full pipeline with a filter spec, and GET /api/topics lists the
topic taxonomy.

By default results are cached on the local filesystem. With --redis the
cache is shared through a Redis instance instead, which lets multiple
replicas serve the same workload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, redisAddr, redisDB, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr, redisAddr string, redisDB int, noCache bool) error {
	ctx := cmd.Context()

	var (
		cc  cache.Cache
		err error
	)
	switch {
	case noCache:
		cc = cache.NewNullCache()
	case redisAddr != "":
		cc, err = cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr, DB: redisDB})
		if err != nil {
			return fmt.Errorf("connect to redis %s: %w", redisAddr, err)
		}
		c.Logger.Info("Using Redis cache", "addr", redisAddr, "db", redisDB)
	default:
		cc, err = newCache(false)
		if err != nil {
			return fmt.Errorf("initialize cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	c.Logger.Info("Starting server", "addr", addr)
	printInfo("Serving on %s (ctrl+c to stop)", addr)

	return srv.Serve(ctx, addr)
}
