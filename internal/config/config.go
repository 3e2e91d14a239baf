package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	Version  = "dev"
	Debug    = false
	ConfPath = ""
)

var hubConfig *HubConfig

// Init 加载配置 查找顺序: 显式指定 -> ~/.config/danmu-hub/config.yaml -> 可执行文件目录
// 找不到配置文件时使用默认配置运行
func Init(path string, debug bool) {
	Debug = debug
	var file []byte
	if path != "" {
		file, _ = os.ReadFile(path)
		ConfPath = path
	}
	if file == nil {
		file = loadDefaultConfig()
	}

	hubConfig = defaultConfig()
	if file != nil {
		if err := yaml.Unmarshal(file, hubConfig); err != nil {
			panic(err.Error())
		}
	}
}

func GetConfig() *HubConfig {
	if hubConfig == nil {
		Init("", Debug)
	}
	return hubConfig
}

func loadDefaultConfig() []byte {
	home, _ := os.UserHomeDir()
	if home != "" {
		cfgPath := filepath.Join(home, ".config", "danmu-hub", "config.yaml")
		file, _ := os.ReadFile(cfgPath)
		if file != nil {
			ConfPath = cfgPath
			return file
		}
	}
	execPath, _ := os.Executable()
	if execPath != "" {
		cfgPath := filepath.Join(filepath.Dir(execPath), "config.yaml")
		file, _ := os.ReadFile(cfgPath)
		if file != nil {
			ConfPath = cfgPath
			return file
		}
	}
	return nil
}

func defaultConfig() *HubConfig {
	c := &HubConfig{
		CacheCapacity: defaultCacheCapacity,
		Platforms: map[string]*PlatformConfig{
			"sohu":    {Priority: 1},
			"tencent": {Priority: 2},
		},
	}
	c.Server.Port = defaultPort
	return c
}

type HubConfig struct {
	// 聚合缓存最大条目数 超过则淘汰最早插入的条目
	CacheCapacity int    `yaml:"cache-capacity"`
	UA            string `yaml:"ua"`
	Server        struct {
		Port    int   `yaml:"port"`
		Timeout int64 `yaml:"timeout"` // in seconds
	} `yaml:"server"`
	Platforms map[string]*PlatformConfig `yaml:"platforms"`
}

type PlatformConfig struct {
	// 负数表示禁用该平台 结果按优先级排序
	Priority  int    `yaml:"priority"`
	MaxWorker int    `yaml:"max-worker"`
	Timeout   int64  `yaml:"timeout"` // in seconds
	Cookie    string `yaml:"cookie"`
}

func (c *HubConfig) GetPlatformConfig(name string) *PlatformConfig {
	if c.Platforms == nil {
		return nil
	}
	return c.Platforms[name]
}

const (
	defaultCacheCapacity = 100
	defaultPort          = 8089
)
