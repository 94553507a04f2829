package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refcheck/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local lookup cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache database location",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := cache.DefaultPath()
		if err != nil {
			exitWithError(ExitError, "resolving cache path: %v", err)
		}
		if humanOutput {
			outputHuman("%s\n", path)
			return
		}
		outputJSON(map[string]string{"path": path})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := cache.DefaultPath()
		if err != nil {
			exitWithError(ExitError, "resolving cache path: %v", err)
		}
		db, err := cache.Open(path)
		if err != nil {
			exitWithError(ExitError, "opening cache: %v", err)
		}
		defer db.Close()

		n, err := db.Purge()
		if err != nil {
			exitWithError(ExitError, "purging cache: %v", err)
		}
		if humanOutput {
			outputHuman("Purged %d expired entries.\n", n)
			return
		}
		outputJSON(map[string]int64{"purged": n})
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
