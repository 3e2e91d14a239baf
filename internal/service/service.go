package service

import (
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/utils"
	"log/slog"
	"strconv"
	"sync"
)

// Service 把平台适配器 聚合编排和共享缓存拼成对外的查询语义
// 搜索和弹幕查询成对使用 搜索时写入缓存 弹幕查询用剧集id反查
type Service struct {
	cache  *danmaku.AnimeCache
	agg    *danmaku.Aggregator
	logger *slog.Logger
}

func New(cache *danmaku.AnimeCache) *Service {
	return &Service{
		cache:  cache,
		agg:    danmaku.NewAggregator(cache),
		logger: utils.GetComponentLogger("service"),
	}
}

// SearchAnime 所有平台并发搜索 每个平台的结果各自走聚合编排后按年份合并
func (s *Service) SearchAnime(keyword string) *SearchAnimeResult {
	result := &SearchAnimeResult{
		Success: true,
		Animes:  make([]AnimeResult, 0, 10),
	}
	if keyword == "" {
		return result
	}

	var merged []*danmaku.AnimeEntry
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}
	providers := danmaku.GetProviders()
	wg.Add(len(providers))
	for _, p := range providers {
		go func(p danmaku.Provider) {
			defer wg.Done()
			items := p.Search(keyword)
			s.logger.Debug("provider search done", "platform", p.Platform(), "size", len(items))
			created := s.agg.HandleProviderResults(p, items, keyword)
			lock.Lock()
			merged = danmaku.MergeByYear(merged, created)
			lock.Unlock()
		}(p)
	}
	wg.Wait()

	for _, entry := range merged {
		result.Animes = append(result.Animes, toAnimeResult(entry))
	}
	return result
}

// Bangumi 按内部媒体id返回剧集列表 搜索后缓存未命中说明条目已被淘汰
func (s *Service) Bangumi(animeId int64) *BangumiResult {
	result := &BangumiResult{Success: true}
	entry, ok := s.cache.FindByAnimeID(animeId)
	if !ok {
		s.logger.Warn("anime not cached", "animeId", animeId)
		return result
	}

	bangumi := toAnimeResult(entry)
	bangumi.Episodes = make([]EpisodeResult, 0, len(entry.Episodes))
	for _, link := range entry.Episodes {
		bangumi.Episodes = append(bangumi.Episodes, EpisodeResult{
			EpisodeId:     link.EpisodeId,
			EpisodeTitle:  link.Title,
			EpisodeNumber: link.Index,
		})
	}
	result.Bangumi = &bangumi
	return result
}

// Comments 剧集id反查缓存拿到平台和播放地址 再由对应平台适配器抓取并规范化
func (s *Service) Comments(episodeId int64) *CommentResult {
	comment := &CommentResult{Comments: make([]*Comment, 0)}

	entry, link, ok := s.cache.FindByEpisodeID(episodeId)
	if !ok {
		s.logger.Warn("episode id not cached", "episodeId", episodeId)
		return comment
	}
	provider := danmaku.GetProvider(entry.Platform)
	if provider == nil {
		s.logger.Error("platform not registered", "platform", entry.Platform)
		return comment
	}

	raw := provider.EpisodeDanmu(link.Url)
	data := provider.FormatComments(raw)
	s.logger.Info("comments fetched", "platform", entry.Platform, "episodeId", episodeId, "size", len(data))

	for _, d := range data {
		comment.Comments = append(comment.Comments, &Comment{
			CID: d.SentAt,
			M:   d.Content,
			P:   dandanAttribute(d),
		})
	}
	comment.Count = int64(len(comment.Comments))
	return comment
}

// dandanAttribute p属性 出现时间,模式,颜色,用户ID
func dandanAttribute(d *danmaku.StandardComment) string {
	return strconv.FormatFloat(d.Timepoint, 'f', 2, 64) + "," +
		strconv.Itoa(d.Mode) + "," +
		strconv.Itoa(d.Color) + "," +
		d.UserId
}

func toAnimeResult(entry *danmaku.AnimeEntry) AnimeResult {
	return AnimeResult{
		AnimeId:      entry.AnimeId,
		BangumiId:    entry.MediaId,
		AnimeTitle:   entry.Title,
		Type:         string(entry.Type),
		TypeDesc:     string(entry.Type) + " [" + string(entry.Platform) + "]",
		ImageUrl:     entry.Cover,
		StartDate:    entry.StartDate,
		EpisodeCount: entry.EpisodeCount(),
		Rating:       entry.Rating,
		Favorite:     entry.Favorite,
	}
}
