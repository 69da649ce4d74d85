package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dagrapport/internal/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached model answers",
	Long: `Cached answers contain generated reports about children. They live in
memory unless cache.dir is set; these commands act on that directory.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, dir, err := diskCache()
		if err != nil || c == nil {
			return err
		}
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cache cleared: %s\n", dir)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cached answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, dir, err := diskCache()
		if err != nil || c == nil {
			return err
		}
		kept, err := c.Prune()
		if err != nil {
			return fmt.Errorf("prune cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d answer(s) kept in %s\n", kept, dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePruneCmd)
}

// diskCache returns nil when no cache directory is configured
func diskCache() (*cache.DiskCache, string, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.Cache.Dir == "" {
		logger.Warn("no cache.dir configured; answers are only kept in memory")
		return nil, "", nil
	}
	return cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.TTL), cfg.Cache.Dir, nil
}
