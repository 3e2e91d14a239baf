package sohu

import (
	"context"
	"danmu-hub/internal/danmaku"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// 视频时长上限 按60秒窗口切分
	maxDurationSeconds = 7200
	segmentSeconds     = 60
	// 每批并发请求数 批间串行 防止触发上游限流
	segmentBatch   = 6
	segmentTimeout = 10 * time.Second
	// 连续空窗口达到该数量且窗口起点已过开场安静期则提前终止
	emptyWindowLimit    = 3
	quietOpeningSeconds = 600
)

var (
	vidRegex = regexp.MustCompile(`var\s+vid\s*=\s*"?(\d+)"?`)
	aidRegex = regexp.MustCompile(`var\s+playlistId\s*=\s*"?(\d+)"?`)
)

// EpisodeDanmu locator是播放页URL或内部剧集id
// URL走页面脚本提取vid/aid 数字id走聚合缓存反查后递归 两者都失败则返回空
func (c *client) EpisodeDanmu(locator string) []danmaku.RawComment {
	if locator == "" {
		c.common.Logger.Error("empty danmu locator")
		return nil
	}
	if episodeId, err := strconv.ParseInt(locator, 10, 64); err == nil {
		return c.danmuByEpisodeID(episodeId)
	}

	vid, aid, ok := c.resolvePage(locator)
	if !ok {
		return nil
	}
	return c.fetchSegments(vid, aid)
}

func (c *client) danmuByEpisodeID(episodeId int64) []danmaku.RawComment {
	if c.cache == nil {
		c.common.Logger.Error("anime cache not attached", "episodeId", episodeId)
		return nil
	}
	_, link, ok := c.cache.FindByEpisodeID(episodeId)
	if !ok || link.Url == "" {
		c.common.Logger.Error("episode id not resolvable", "episodeId", episodeId)
		return nil
	}
	return c.EpisodeDanmu(link.Url)
}

// resolvePage 播放页内嵌初始化脚本带有 var vid / var playlistId
// 任一提取失败都判定整次调用失败 没有备选途径
func (c *client) resolvePage(pageUrl string) (vid, aid string, ok bool) {
	u, err := url.Parse(pageUrl)
	if err != nil || !strings.HasSuffix(u.Host, c.pageHost) {
		c.common.Logger.Error("locator is not a sohu page", "locator", pageUrl)
		return "", "", false
	}

	req, err := http.NewRequest(http.MethodGet, pageUrl, nil)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return "", "", false
	}
	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Error("page request error", "url", pageUrl, "error", err.Error())
		return "", "", false
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Error("page read error", "url", pageUrl, "error", err.Error())
		return "", "", false
	}

	vidMatches := vidRegex.FindSubmatch(body)
	aidMatches := aidRegex.FindSubmatch(body)
	if len(vidMatches) < 2 || len(aidMatches) < 2 {
		c.common.Logger.Error("vid/playlistId not found in page", "url", pageUrl)
		return "", "", false
	}
	return string(vidMatches[1]), string(aidMatches[1]), true
}

// fetchSegments 时长上限切成60秒窗口 每批6个窗口并发拉取 批间串行
// 单窗口失败按空窗口处理 连续3个空窗口且已过10分钟则停止后续批次
// 批内结果按窗口起点排序后追加 最终顺序与网络完成顺序无关
func (c *client) fetchSegments(vid, aid string) []danmaku.RawComment {
	var result []danmaku.RawComment
	emptyStreak := 0
	windows := maxDurationSeconds / segmentSeconds

	for base := 0; base < windows; base += segmentBatch {
		count := segmentBatch
		if base+count > windows {
			count = windows - base
		}

		batch := make([][]danmaku.RawComment, count)
		wg := sync.WaitGroup{}
		wg.Add(count)
		for i := 0; i < count; i++ {
			go func(i int) {
				defer wg.Done()
				begin := (base + i) * segmentSeconds
				data, err := c.fetchWindow(vid, aid, begin, begin+segmentSeconds)
				if err != nil {
					c.common.Logger.Warn("segment fetch error", "vid", vid, "begin", begin, "error", err.Error())
					return
				}
				batch[i] = data
			}(i)
		}
		wg.Wait()

		stop := false
		// 下标序即窗口起点升序
		for i := 0; i < count; i++ {
			begin := (base + i) * segmentSeconds
			if len(batch[i]) == 0 {
				emptyStreak++
				if emptyStreak >= emptyWindowLimit && begin >= quietOpeningSeconds {
					c.common.Logger.Debug("early termination", "vid", vid, "begin", begin, "collected", len(result))
					stop = true
					break
				}
				continue
			}
			emptyStreak = 0
			result = append(result, batch[i]...)
		}
		if stop {
			break
		}
	}

	return result
}

func (c *client) fetchWindow(vid, aid string, begin, end int) ([]danmaku.RawComment, error) {
	params := url.Values{
		"act":          {"dmlist_v2"},
		"request_from": {"h5_js"},
		"vid":          {vid},
		"aid":          {aid},
		"time_begin":   {strconv.Itoa(begin)},
		"time_end":     {strconv.Itoa(end)},
	}
	req, err := http.NewRequest(http.MethodGet, c.danmuAPI+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), segmentTimeout)
	defer cancel()

	resp, err := c.common.DoReq(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	var danmuResult DanmuResult
	if err := json.Unmarshal(body, &danmuResult); err != nil {
		return nil, err
	}
	return danmuResult.comments(), nil
}
