package danmaku

import (
	"fmt"
	"sync"
)

// AnimeEntry 聚合后的一条媒体信息 跨平台共享同一结构
type AnimeEntry struct {
	AnimeId   int64  // EncodeMediaID(MediaId)
	MediaId   string // 平台实际id
	Title     string // {title}({year})【{type}】from {platform}
	Type      MediaType
	Cover     string
	Year      int
	StartDate string // year为0时使用哨兵日期
	Episodes  []*EpisodeLink
	Platform  Platform
	Favorite  bool // 创建即收藏 下游播放器才会展示
	Rating    int
}

func (e *AnimeEntry) EpisodeCount() int {
	return len(e.Episodes)
}

// EpisodeLink AnimeEntry中的一条剧集链接
type EpisodeLink struct {
	Index     string // 1起的序号
	Url       string // 播放页地址 缺失时为媒体详情页
	Title     string // 【platform】 前缀
	EpisodeId int64  // ComposeEpisodeID(AnimeId, index)
}

// NewAnimeEntry 组装展示标题和剧集链接 episodes为空时返回nil
func NewAnimeEntry(item *SearchResult, episodes []*Episode) *AnimeEntry {
	if item == nil || len(episodes) == 0 {
		return nil
	}
	animeId := EncodeMediaID(item.MediaId)
	entry := &AnimeEntry{
		AnimeId:   animeId,
		MediaId:   item.MediaId,
		Title:     fmt.Sprintf("%s(%d)【%s】from %s", item.Title, item.Year, item.Type, item.Platform),
		Type:      item.Type,
		Cover:     item.Cover,
		Year:      item.Year,
		StartDate: startDate(item.Year),
		Platform:  item.Platform,
		Favorite:  true,
	}
	entry.Episodes = make([]*EpisodeLink, 0, len(episodes))
	for i, ep := range episodes {
		url := ep.Url
		if url == "" {
			url = item.PageUrl
		}
		entry.Episodes = append(entry.Episodes, &EpisodeLink{
			Index:     fmt.Sprintf("%d", i+1),
			Url:       url,
			Title:     fmt.Sprintf("【%s】 %s", item.Platform, ep.Title),
			EpisodeId: ComposeEpisodeID(animeId, i+1),
		})
	}
	return entry
}

func startDate(year int) string {
	if year <= 0 {
		return "1970-01-01T00:00:00Z"
	}
	return fmt.Sprintf("%d-01-01T00:00:00Z", year)
}

// AnimeCache 进程级聚合缓存 容量固定 超出时淘汰最早插入的条目
// 只按插入顺序淘汰 不按访问时间 条目没有过期时间
type AnimeCache struct {
	lock     sync.RWMutex
	capacity int
	entries  map[int64]*AnimeEntry
	order    []int64 // 插入顺序
}

func NewAnimeCache(capacity int) *AnimeCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &AnimeCache{
		capacity: capacity,
		entries:  make(map[int64]*AnimeEntry, capacity),
		order:    make([]int64, 0, capacity),
	}
}

// Insert 写入并在超出容量时淘汰最旧条目 两步在同一临界区内完成
// 相同AnimeId重复插入视为更新 插入位置刷新到队尾
func (c *AnimeCache) Insert(entry *AnimeEntry) {
	if entry == nil || len(entry.Episodes) == 0 {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.entries[entry.AnimeId]; ok {
		for i, id := range c.order {
			if id == entry.AnimeId {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	c.entries[entry.AnimeId] = entry
	c.order = append(c.order, entry.AnimeId)

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// FindByEpisodeID 扫描所有条目的剧集链接 返回首个匹配
func (c *AnimeCache) FindByEpisodeID(episodeId int64) (*AnimeEntry, *EpisodeLink, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	for _, id := range c.order {
		entry := c.entries[id]
		for _, link := range entry.Episodes {
			if link.EpisodeId == episodeId {
				return entry, link, true
			}
		}
	}
	return nil, nil, false
}

func (c *AnimeCache) FindByAnimeID(animeId int64) (*AnimeEntry, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	entry, ok := c.entries[animeId]
	return entry, ok
}

func (c *AnimeCache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.entries)
}

// Entries 按插入顺序返回快照
func (c *AnimeCache) Entries() []*AnimeEntry {
	c.lock.RLock()
	defer c.lock.RUnlock()
	result := make([]*AnimeEntry, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.entries[id])
	}
	return result
}
