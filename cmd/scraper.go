package cmd

import (
	"danmu-hub/cmd/flags"
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/utils"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func scraperCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "scrape danmaku from episode url",
		Args:  cobra.ExactArgs(1),
	}

	platform := flags.FProperty[string]{Flag: "platform", Register: &flags.PlatformCompletion{}, Options: danmaku.GetPlatforms()}
	cmd.Flags().StringVar(&platform.Value, platform.Flag, "", `danmaku platform:
`+strings.Join(platform.Options, "\n"))
	platform.RegisterCompletion(cmd)
	var output string
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, default stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		Init()
		locator := args[0]
		if locator == "" {
			return fmt.Errorf("url is empty")
		}

		var p = danmaku.GetProvider(danmaku.Platform(platform.Value))
		if p == nil {
			return fmt.Errorf("unsupported platform: %s", platform.Value)
		}

		logger := utils.GetComponentLogger("scrape-cmd")
		start := time.Now()
		raw := p.EpisodeDanmu(locator)
		data := p.FormatComments(raw)
		logger.Info("scrape cmd done", "size", len(data), "cost_ms", time.Since(start).Milliseconds())

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer utils.SafeClose(f)
			out = f
		}
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		return encoder.Encode(data)
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(scraperCmd())
}
