package cmd

import (
	"danmu-hub/internal/config"
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/service"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "search media from all platforms",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		Init()
		keyword := args[0]
		if keyword == "" {
			return fmt.Errorf("keyword is empty")
		}

		cache := danmaku.NewAnimeCache(config.GetConfig().CacheCapacity)
		BindCache(cache)
		svc := service.New(cache)

		result := svc.SearchAnime(keyword)
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(result.Animes)
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(searchCmd())
}
