package danmaku

type Platform string

const (
	Sohu    Platform = "sohu"
	Tencent Platform = "tencent"
)

type MediaType string

const (
	Movie       MediaType = "movie"
	TVSeries    MediaType = "tvseries"
	Anime       MediaType = "anime"
	Documentary MediaType = "documentary"
	Variety     MediaType = "variety"
)

// SearchResult 平台搜索返回的一条媒体信息
type SearchResult struct {
	Platform     Platform
	MediaId      string // 平台实际id
	Title        string // 已去除高亮标记
	Type         MediaType
	Year         int // 0表示未知
	Cover        string
	PageUrl      string // 媒体详情页 剧集无播放地址时兜底
	EpisodeCount int
	// 部分平台搜索结果内联了剧集列表 避免二次请求
	Episodes []*Episode
}

// Episode 一条可播放的剧集
type Episode struct {
	Id          string // 平台实际的剧集id
	Title       string // 缺失时使用 第N集
	CompositeId string // {episodeId}:{mediaId}
	Url         string // 播放页地址 http已升级为https
}

// RawComment 平台原始弹幕记录 字段名因平台而异
type RawComment map[string]any

// StandardComment 规范化后的弹幕
type StandardComment struct {
	Timepoint float64 // 视频内偏移 秒
	Mode      int     // 1滚动 4底部 5顶部
	FontSize  int     // 固定25
	Color     int     // 24位RGB
	SentAt    int64   // 发送时间 unix秒
	UserId    string
	Content   string
	Platform  Platform
}

const WhiteColor = 16777215

const (
	NormalMode = 1
	BottomMode = 4
	TopMode    = 5
)

const DefaultFontSize = 25

// Provider 平台适配器契约 所有方法都不向上抛错
// 上游失败统一降级为空结果加日志 调用方只需判断结果是否为空
type Provider interface {
	Platform() Platform
	// Search 关键词搜索 返回已解析成功的媒体列表
	Search(keyword string) []*SearchResult
	// Episodes 获取剧集列表 优先使用搜索时内联缓存的数据
	Episodes(mediaId string) []*Episode
	// EpisodeDanmu 获取一集的全部弹幕 locator是播放页URL或内部剧集id
	EpisodeDanmu(locator string) []RawComment
	// FormatComments 平台原始弹幕转换为规范格式 字段别名集各平台不同
	FormatComments(raw []RawComment) []*StandardComment
}

type Initializer interface {
	Init() error
}

type ServerInitializer interface {
	ServerInit() error
}

// CacheAware 需要通过聚合缓存反查剧集定位信息的平台实现该接口
type CacheAware interface {
	AttachCache(cache *AnimeCache)
}

type manager struct {
	providers    []Provider
	initializers []interface{}
}

var adapter = &manager{
	providers:    []Provider{},
	initializers: []interface{}{},
}

func RegisterProvider(p Provider) {
	adapter.providers = append(adapter.providers, p)
}

func RegisterInitializer(i interface{}) {
	adapter.initializers = append(adapter.initializers, i)
}

func GetInitializers() []interface{} {
	return adapter.initializers
}

func GetProvider(platform Platform) Provider {
	for _, v := range adapter.providers {
		if v.Platform() == platform {
			return v
		}
	}
	return nil
}

func GetProviders() []Provider {
	return adapter.providers
}

func GetPlatforms() []string {
	var result []string
	for _, v := range adapter.providers {
		result = append(result, string(v.Platform()))
	}
	return result
}
