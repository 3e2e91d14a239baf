package sohu

import (
	"danmu-hub/internal/danmaku"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// 标题里命中的搜索词上游用这对标记包裹
var highlightReplacer = strings.NewReplacer("<<<", "", ">>>", "")

func (c *client) Search(keyword string) []*danmaku.SearchResult {
	params := url.Values{
		"key": {keyword},
		"pg":  {"1"},
		"pz":  {"20"},
	}
	req, err := http.NewRequest(http.MethodGet, c.searchAPI+"?"+params.Encode(), nil)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	// 不带来源头会被风控拦截
	req.Header.Set("Referer", "https://tv.sohu.com/")
	req.Header.Set("Origin", "https://tv.sohu.com")

	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Error("search request error", "keyword", keyword, "error", err.Error())
		return nil
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Error("search read body error", "keyword", keyword, "error", err.Error())
		return nil
	}

	var searchResult SearchResult
	if err := json.Unmarshal(body, &searchResult); err != nil {
		c.common.Logger.Error("search decode error", "keyword", keyword, "error", err.Error())
		return nil
	}

	var result []*danmaku.SearchResult
	for _, item := range searchResult.Data.Items {
		if item.DataType != serialDataType {
			continue
		}
		aid := item.Aid.String()
		title := strings.TrimSpace(highlightReplacer.Replace(item.Title))
		if aid == "" || title == "" {
			continue
		}

		category, year := parseMeta(item.Meta)
		mediaType, ok := mapCategory(category)
		if !ok {
			c.common.Logger.Debug("unmapped category skipped", "title", title, "category", category)
			continue
		}

		sr := &danmaku.SearchResult{
			Platform:     danmaku.Sohu,
			MediaId:      aid,
			Title:        title,
			Type:         mediaType,
			Year:         year,
			Cover:        item.Cover,
			PageUrl:      item.PageUrl,
			EpisodeCount: item.TotalCount,
		}

		// 搜索结果内联了剧集时直接缓存 省一次videolist请求
		if len(item.Videos) > 0 {
			eps := c.episodesFromVideos(aid, item.Videos)
			c.inlineLock.Lock()
			c.inline[aid] = eps
			c.inlineLock.Unlock()
			sr.Episodes = eps
		}

		result = append(result, sr)
	}

	return result
}

// parseMeta 元信息首条按竖线切分 第一段是分类 末段是年份则一并取出
func parseMeta(meta []string) (category string, year int) {
	if len(meta) == 0 {
		return "", 0
	}
	segments := strings.Split(meta[0], "|")
	category = strings.TrimSpace(segments[0])
	if len(segments) > 1 {
		last := strings.TrimSpace(segments[len(segments)-1])
		if y, err := strconv.Atoi(last); err == nil && y > 1900 {
			year = y
		}
	}
	return category, year
}
