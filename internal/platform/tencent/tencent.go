package tencent

import (
	"bytes"
	"danmu-hub/internal/danmaku"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

func init() {
	danmaku.RegisterInitializer(&client{})
}

type client struct {
	common     *danmaku.PlatformClient
	normalizer *danmaku.Normalizer

	searchAPI    string
	seriesAPI    string
	dmConfigAPI  string
	dmSegmentAPI string
}

func (c *client) Init() error {
	common, err := danmaku.InitPlatformClient(danmaku.Tencent)
	if err != nil {
		return err
	}
	c.common = common
	c.normalizer = newNormalizer()
	c.searchAPI = defaultSearchAPI
	c.seriesAPI = defaultSeriesAPI
	c.dmConfigAPI = defaultDMConfigAPI
	c.dmSegmentAPI = defaultDMSegmentAPI
	danmaku.RegisterProvider(c)
	return nil
}

func (c *client) Platform() danmaku.Platform {
	return danmaku.Tencent
}

func newNormalizer() *danmaku.Normalizer {
	n := danmaku.NewNormalizer(danmaku.Tencent)
	n.ContentFields = []string{"content"}
	n.TimeFields = []string{"time_offset"}
	n.SentAtFields = []string{"create_time"}
	n.UserFields = []string{"opername", "uid"}
	// time_offset 单位是毫秒
	n.TimeScale = 0.001
	return n
}

const (
	defaultSearchAPI    = "https://pbaccess.video.qq.com/trpc.videosearch.mobile_search.MultiTerminalSearch/MbSearch?vversion_platform=2"
	defaultSeriesAPI    = "https://pbaccess.video.qq.com/trpc.universal_backend_service.page_server_rpc.PageServer/GetPageData?video_appid=3000010&vversion_name=8.2.96&vversion_platform=2"
	defaultDMConfigAPI  = "https://pbaccess.video.qq.com/trpc.barrage.custom_barrage.CustomBarrage/GetDMStartUpConfig"
	defaultDMSegmentAPI = "https://dm.video.qq.com/barrage/segment"
)

// 黑名单 基本都是外站视频
var excludeRegex = regexp.MustCompile(`来自：|短视频|预告片`)

var coverUrlRegex = regexp.MustCompile(`/x/cover/([a-zA-Z0-9]+)/([a-zA-Z0-9]+)\.html`)

func (c *client) Search(keyword string) []*danmaku.SearchResult {
	searchParam := SearchParam{
		Version:    "25101301",
		ClientType: 1,
		Query:      keyword,
		PageNum:    0,
		IsPrefetch: true,
		PageSize:   30,
		QueryFrom:  102,
		NeedQc:     true,
		ExtraInfo: SearchExtraInfo{
			IsNewMarkLabel:  "1",
			MultiTerminalPc: "1",
			ThemeType:       "1",
		},
	}
	paramBytes, err := json.Marshal(searchParam)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	req, err := http.NewRequest(http.MethodPost, c.searchAPI, bytes.NewBuffer(paramBytes))
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	c.setRequest(req)

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
	if searchResult.Ret != 0 {
		c.common.Logger.Error(fmt.Sprintf("search ret code: %v %s", searchResult.Ret, searchResult.Msg))
		return nil
	}

	var itemList []SearchResultItem
	itemList = append(itemList, searchResult.Data.NormalList.ItemList...)
	for _, v := range searchResult.Data.AreaBoxList {
		// 有时候normalList不出数据 需要从areaBoxList中获取
		if v.BoxId == "MainNeed" {
			itemList = append(itemList, v.ItemList...)
		}
	}

	// 标题去重
	var seen = make(map[string]bool, len(itemList))
	var result []*danmaku.SearchResult
	for _, v := range itemList {
		if v.Doc.Id == "" || v.VideoInfo.Title == "" || seen[v.VideoInfo.Title] {
			continue
		}
		seen[v.VideoInfo.Title] = true

		if excludeRegex.MatchString(v.VideoInfo.SubTitle) {
			continue
		}

		var mediaType danmaku.MediaType
		if v.VideoInfo.TypeName == "电影" {
			mediaType = danmaku.Movie
		} else {
			if v.VideoInfo.SubjectDoc.VideoNum <= 0 {
				// 没有集数信息
				continue
			}
			mediaType = danmaku.TVSeries
		}

		result = append(result, &danmaku.SearchResult{
			Platform:     danmaku.Tencent,
			MediaId:      v.Doc.Id,
			Title:        v.VideoInfo.Title,
			Type:         mediaType,
			Year:         v.VideoInfo.Year,
			Cover:        v.VideoInfo.ImgUrl,
			PageUrl:      "https://v.qq.com/x/cover/" + v.Doc.Id + ".html",
			EpisodeCount: v.VideoInfo.SubjectDoc.VideoNum,
		})
	}

	return result
}

func (c *client) Episodes(mediaId string) []*danmaku.Episode {
	seriesReqParam := SeriesReqParam{
		HasCache: 1,
		PageParams: SeriesReqPageParam{
			ReqFrom:        "web_vsite",
			PageId:         seriesEPPageId,
			PageType:       "detail_operation",
			IdType:         "1",
			CID:            mediaId,
			DetailPageType: "1",
		},
	}
	jsonBytes, err := json.Marshal(seriesReqParam)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	req, err := http.NewRequest(http.MethodPost, c.seriesAPI, bytes.NewBuffer(jsonBytes))
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	c.setRequest(req)

	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Error("series request error", "cid", mediaId, "error", err.Error())
		return nil
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Error("series read body error", "cid", mediaId, "error", err.Error())
		return nil
	}

	var seriesResult SeriesResult
	if err := json.Unmarshal(body, &seriesResult); err != nil {
		c.common.Logger.Error("series decode error", "cid", mediaId, "error", err.Error())
		return nil
	}
	items, err := seriesResult.series()
	if err != nil {
		c.common.Logger.Error("series result error", "cid", mediaId, "error", err.Error())
		return nil
	}

	var eps = make([]*danmaku.Episode, 0, len(items))
	for i, ep := range items {
		if ep.ItemParams.IsTrailer == "1" {
			continue
		}
		// 有可能vid为空
		if ep.ItemParams.VID == "" {
			continue
		}
		title := ep.ItemParams.Title
		if title == "" {
			title = fmt.Sprintf("第%d集", i+1)
		}
		eps = append(eps, &danmaku.Episode{
			Id:          ep.ItemParams.VID,
			Title:       title,
			CompositeId: ep.ItemParams.VID + ":" + mediaId,
			Url:         "https://v.qq.com/x/cover/" + mediaId + "/" + ep.ItemParams.VID + ".html",
		})
	}
	if len(eps) == 0 {
		c.common.Logger.Warn("series empty", "cid", mediaId)
	}
	return eps
}

func (s *SeriesResult) series() ([]SeriesItem, error) {
	if s.Ret != 0 {
		return nil, fmt.Errorf("series result: %v %s", s.Ret, s.Msg)
	}
	if len(s.Data.ModuleListData) == 0 {
		return nil, fmt.Errorf("empty ModuleListData")
	}
	d := s.Data.ModuleListData[0]
	if len(d.ModuleData) == 0 {
		return nil, fmt.Errorf("empty ModuleData")
	}
	return d.ModuleData[0].ItemDataLists.ItemData, nil
}

// EpisodeDanmu locator是播放页URL或vid 腾讯的弹幕分段索引由上游接口直接给出
// 不需要按时长切窗口 拿到索引后并发抓取每个分段即可
func (c *client) EpisodeDanmu(locator string) []danmaku.RawComment {
	vid := locator
	if strings.Contains(locator, "://") {
		matches := coverUrlRegex.FindStringSubmatch(locator)
		if len(matches) < 3 {
			c.common.Logger.Error("vid not found in locator", "locator", locator)
			return nil
		}
		vid = matches[2]
	}
	if vid == "" {
		c.common.Logger.Error("empty vid")
		return nil
	}

	param := map[string]string{
		"vid":            vid,
		"engine_version": "2.1.10",
	}
	configBytes, err := json.Marshal(param)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	req, err := http.NewRequest(http.MethodPost, c.dmConfigAPI, bytes.NewBuffer(configBytes))
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	c.setRequest(req)

	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Error("dm config request error", "vid", vid, "error", err.Error())
		return nil
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Error("dm config read body error", "vid", vid, "error", err.Error())
		return nil
	}

	var segmentResult DanmakuSegmentResult
	if err := json.Unmarshal(body, &segmentResult); err != nil {
		c.common.Logger.Error("dm config decode error", "vid", vid, "error", err.Error())
		return nil
	}
	if len(segmentResult.Data.SegmentIndex) == 0 {
		c.common.Logger.Warn("no danmu segments", "vid", vid)
		return nil
	}
	c.common.Logger.Debug("danmu segments resolved", "vid", vid, "size", len(segmentResult.Data.SegmentIndex))

	var result []danmaku.RawComment
	lock := sync.Mutex{}
	tasks := make(chan string, len(segmentResult.Data.SegmentIndex))
	var wg sync.WaitGroup
	for w := 0; w < c.common.MaxWorker; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for segment := range tasks {
				data := c.fetchSegment(vid, segment)
				if len(data) == 0 {
					continue
				}
				lock.Lock()
				result = append(result, data...)
				lock.Unlock()
			}
		}()
	}

	go func() {
		for _, v := range segmentResult.Data.SegmentIndex {
			tasks <- v.SegmentName
		}
		close(tasks)
	}()

	wg.Wait()

	return result
}

func (c *client) fetchSegment(vid, segment string) []danmaku.RawComment {
	api := fmt.Sprintf("%s/%s/%s", c.dmSegmentAPI, vid, segment)
	req, err := http.NewRequest(http.MethodGet, api, nil)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Warn("segment request error", "vid", vid, "segment", segment, "error", err.Error())
		return nil
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Warn("segment read body error", "vid", vid, "segment", segment, "error", err.Error())
		return nil
	}

	var danmakuResult DanmakuResult
	if err := json.Unmarshal(body, &danmakuResult); err != nil {
		c.common.Logger.Warn("segment decode error", "vid", vid, "segment", segment, "error", err.Error())
		return nil
	}
	return danmakuResult.BarrageList
}

// FormatComments content_style里带的颜色和位置先展开成普通字段 再走统一规范化
func (c *client) FormatComments(raw []danmaku.RawComment) []*danmaku.StandardComment {
	for _, record := range raw {
		styleStr, ok := record["content_style"].(string)
		if !ok || styleStr == "" {
			continue
		}
		var style ContentStyle
		if err := json.Unmarshal([]byte(styleStr), &style); err != nil {
			continue
		}
		switch style.Position {
		case 2:
			record["mode"] = danmaku.TopMode
		case 3:
			record["mode"] = danmaku.BottomMode
		}
		colorStr := style.Color
		if len(style.GradientColors) > 0 {
			colorStr = style.GradientColors[0]
		}
		if colorStr != "" {
			record["color"] = colorStr
		}
	}
	return c.normalizer.Normalize(raw)
}

func (c *client) setRequest(req *http.Request) {
	req.Header.Set("Origin", "https://v.qq.com/")
	req.Header.Set("Referer", "https://v.qq.com/")
	// json请求不设置该请求头 部分接口会异常返回400
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
}
