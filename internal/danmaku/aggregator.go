package danmaku

import (
	"danmu-hub/internal/utils"
	"log/slog"
	"sort"
	"sync"
)

// Aggregator 聚合编排 过滤搜索结果 拉取剧集 写入共享缓存
type Aggregator struct {
	cache   *AnimeCache
	matcher *TitleMatcher
	logger  *slog.Logger
}

func NewAggregator(cache *AnimeCache) *Aggregator {
	return &Aggregator{
		cache:   cache,
		matcher: NewTitleMatcher(),
		logger:  utils.GetComponentLogger("aggregator"),
	}
}

func (a *Aggregator) Cache() *AnimeCache {
	return a.cache
}

// HandleProviderResults 对一个平台的搜索结果做标题过滤 并发拉取剧集并入缓存
// 单个条目失败不影响其他条目 没有可解析剧集的条目不入缓存也不返回
func (a *Aggregator) HandleProviderResults(p Provider, results []*SearchResult, queryTitle string) []*AnimeEntry {
	if p == nil || results == nil {
		a.logger.Error("invalid provider results", "query", queryTitle)
		return nil
	}

	matched := make([]*SearchResult, 0, len(results))
	for _, item := range results {
		if item == nil {
			continue
		}
		match := a.matcher.Match(item.Title, queryTitle)
		a.logger.Debug("title matched", "candidate", item.Title, "query", queryTitle, "match", match)
		if match {
			matched = append(matched, item)
		}
	}

	var entries []*AnimeEntry
	// 过滤后的条目数量很小 直接全量并发
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}
	wg.Add(len(matched))
	for _, item := range matched {
		go func(item *SearchResult) {
			defer wg.Done()
			episodes := p.Episodes(item.MediaId)
			entry := NewAnimeEntry(item, episodes)
			if entry == nil {
				a.logger.Warn("no resolvable episodes", "platform", item.Platform, "mediaId", item.MediaId)
				return
			}
			a.cache.Insert(entry)
			lock.Lock()
			entries = append(entries, entry)
			lock.Unlock()
		}(item)
	}
	wg.Wait()

	return entries
}

// MergeByYear 新条目合入已按年份有序的累积列表 保持原有方向 稳定排序
func MergeByYear(existing, created []*AnimeEntry) []*AnimeEntry {
	merged := make([]*AnimeEntry, 0, len(existing)+len(created))
	merged = append(merged, existing...)
	merged = append(merged, created...)

	descending := false
	if len(existing) > 1 {
		descending = existing[0].Year > existing[len(existing)-1].Year
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if descending {
			return merged[i].Year > merged[j].Year
		}
		return merged[i].Year < merged[j].Year
	})
	return merged
}
