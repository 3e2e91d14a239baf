package sohu

import (
	"bytes"
	"danmu-hub/internal/danmaku"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func (c *client) Episodes(mediaId string) []*danmaku.Episode {
	c.inlineLock.Lock()
	cached, ok := c.inline[mediaId]
	c.inlineLock.Unlock()
	if ok {
		c.common.Logger.Debug("inline episode cache hit", "mediaId", mediaId)
		return cached
	}

	params := url.Values{
		"playlistid": {mediaId},
		"api_key":    {playlistAPIKey},
	}
	req, err := http.NewRequest(http.MethodGet, c.playlistAPI+"?"+params.Encode(), nil)
	if err != nil {
		c.common.Logger.Error(err.Error())
		return nil
	}
	resp, err := c.common.DoReq(req)
	if err != nil {
		c.common.Logger.Error("videolist request error", "mediaId", mediaId, "error", err.Error())
		return nil
	}
	body, err := c.common.ReadBody(resp)
	if err != nil {
		c.common.Logger.Error("videolist read body error", "mediaId", mediaId, "error", err.Error())
		return nil
	}

	payload := unwrapJSONP(body)
	if payload == nil {
		c.common.Logger.Error("videolist jsonp markers not found", "mediaId", mediaId)
		return nil
	}

	var playlist PlaylistResult
	if err := json.Unmarshal(payload, &playlist); err != nil {
		c.common.Logger.Error("videolist decode error", "mediaId", mediaId, "error", err.Error())
		return nil
	}
	if len(playlist.Videos) == 0 {
		c.common.Logger.Warn("videolist empty", "mediaId", mediaId)
		return nil
	}

	return c.episodesFromVideos(mediaId, playlist.Videos)
}

func (c *client) episodesFromVideos(mediaId string, videos []PlaylistVideo) []*danmaku.Episode {
	eps := make([]*danmaku.Episode, 0, len(videos))
	for i, v := range videos {
		vid := v.Vid.String()
		if vid == "" || vid == "0" {
			continue
		}
		title := strings.TrimSpace(v.Name)
		if title == "" {
			title = fmt.Sprintf("第%d集", i+1)
		}
		eps = append(eps, &danmaku.Episode{
			Id:          vid,
			Title:       title,
			CompositeId: vid + ":" + mediaId,
			Url:         upgradeScheme(v.playUrl()),
		})
	}
	return eps
}

func upgradeScheme(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// unwrapJSONP videolist可能包在 jsonp(...) 回调里
// 按前缀识别 取第一个左括号到最后一个右括号之间的内容 找不到标记返回nil
func unwrapJSONP(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte(jsonpPrefix)) {
		return trimmed
	}
	start := bytes.IndexByte(trimmed, '(')
	end := bytes.LastIndexByte(trimmed, ')')
	if start < 0 || end <= start {
		return nil
	}
	return trimmed[start+1 : end]
}

const jsonpPrefix = "jsonp"
