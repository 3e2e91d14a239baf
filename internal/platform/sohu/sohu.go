package sohu

import (
	"danmu-hub/internal/danmaku"
	"strings"
	"sync"
)

func init() {
	danmaku.RegisterInitializer(&client{})
}

type client struct {
	common *danmaku.PlatformClient
	// 聚合缓存 数字locator反查播放地址用
	cache *danmaku.AnimeCache
	// 搜索结果内联的剧集列表 aid作key 生命周期内不淘汰
	inline     map[string][]*danmaku.Episode
	inlineLock sync.Mutex

	normalizer *danmaku.Normalizer

	// 接口地址可替换 方便测试指向本地服务
	searchAPI   string
	playlistAPI string
	danmuAPI    string
	pageHost    string
}

func (c *client) Init() error {
	common, err := danmaku.InitPlatformClient(danmaku.Sohu)
	if err != nil {
		return err
	}
	c.common = common
	c.inline = make(map[string][]*danmaku.Episode, 32)
	c.normalizer = danmaku.NewNormalizer(danmaku.Sohu)
	c.searchAPI = defaultSearchAPI
	c.playlistAPI = defaultPlaylistAPI
	c.danmuAPI = defaultDanmuAPI
	c.pageHost = defaultPageHost
	danmaku.RegisterProvider(c)
	return nil
}

func (c *client) Platform() danmaku.Platform {
	return danmaku.Sohu
}

func (c *client) AttachCache(cache *danmaku.AnimeCache) {
	c.cache = cache
}

func (c *client) FormatComments(raw []danmaku.RawComment) []*danmaku.StandardComment {
	return c.normalizer.Normalize(raw)
}

const (
	defaultSearchAPI   = "https://so.tv.sohu.com/mts"
	defaultPlaylistAPI = "https://pl.hd.sohu.com/videolist"
	defaultDanmuAPI    = "https://api.danmu.tv.sohu.com/dmh5/dmListAll"
	defaultPageHost    = "tv.sohu.com"

	playlistAPIKey = "f351515304020cad28c92f70f002261c"

	// data_type 剧集类内容
	serialDataType = 2
)

// 分类同义词表 未命中任何分类的条目直接丢弃
var categorySynonyms = []struct {
	mediaType danmaku.MediaType
	words     []string
}{
	{danmaku.TVSeries, []string{"电视剧", "连续剧", "剧集"}},
	{danmaku.Movie, []string{"电影", "影片"}},
	{danmaku.Anime, []string{"动漫", "动画"}},
	{danmaku.Documentary, []string{"纪录片", "记录片"}},
	{danmaku.Variety, []string{"综艺"}},
}

func mapCategory(label string) (danmaku.MediaType, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "", false
	}
	for _, s := range categorySynonyms {
		for _, w := range s.words {
			if strings.Contains(label, strings.ToLower(w)) {
				return s.mediaType, true
			}
		}
	}
	return "", false
}
