package cmd

import (
	"danmu-hub/cmd/flags"
	"danmu-hub/internal/config"
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/utils"
	"fmt"
	"os"
)

func Init() {
	// init config
	config.Init(flags.ConfigPath, flags.Debug)
	// init logger
	utils.InitLogger(flags.Debug)
	// initializers
	for _, init := range danmaku.GetInitializers() {
		if i, ok := init.(danmaku.Initializer); ok {
			if err := i.Init(); err != nil {
				_, _ = fmt.Fprintf(os.Stdout, "initialize info: %v\n", err)
			}
		}
	}
}

// BindCache 把聚合缓存交给需要反查剧集的平台适配器
func BindCache(cache *danmaku.AnimeCache) {
	for _, p := range danmaku.GetProviders() {
		if ca, ok := p.(danmaku.CacheAware); ok {
			ca.AttachCache(cache)
		}
	}
}

func InitServer(cache *danmaku.AnimeCache) {
	BindCache(cache)
	for _, init := range danmaku.GetInitializers() {
		if i, ok := init.(danmaku.ServerInitializer); ok {
			if err := i.ServerInit(); err != nil {
				_, _ = fmt.Fprintf(os.Stdout, "server initialize info: %v\n", err)
			}
		}
	}
}
