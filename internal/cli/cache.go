package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ekistations/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		Long:  `Clear removes cached responses from the configured backend: Redis when cache.redis_url is set, otherwise the cache directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(c.configPath, loggerFromContext(ctx))
			if err != nil {
				return err
			}

			if cfg.Cache.RedisURL != "" {
				rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
				if err != nil {
					return err
				}
				defer rc.Close()
				count, err := rc.Clear(ctx)
				if err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Redis: %s", cfg.Cache.RedisURL)
				return nil
			}

			dir, err := resolveCacheDir(cfg.Cache)
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear %s: %w", dir, err)
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
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Cache)
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}
