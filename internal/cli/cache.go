package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and graphs",
		Long: `Remove all cached layouts and graphs of the file backend.

Redis entries expire on their own and are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.CacheConfig()
			switch strings.ToLower(cfg.Backend) {
			case cache.BackendRedis:
				printWarning("Redis entries expire on their own; nothing to clear locally")
				return nil
			case cache.BackendNone:
				printInfo("Cache is disabled")
				return nil
			}

			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			store, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached entries are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.CacheConfig()
			if strings.ToLower(cfg.Backend) == cache.BackendFile || cfg.Backend == "" {
				dir, err := c.fileCacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Describe(cfg))
			return nil
		},
	}
}

// fileCacheDir is the configured file cache directory, or the XDG default.
func (c *CLI) fileCacheDir() (string, error) {
	if dir := c.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}
