package cmd

import (
	"danmu-hub/cmd/flags"
	_ "danmu-hub/internal/platform"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "danmu-hub",
	Short: "danmu-hub aggregates danmaku from video platforms",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "config path")
}
