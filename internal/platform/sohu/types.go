package sohu

import (
	"danmu-hub/internal/danmaku"
	"encoding/json"
)

type SearchResult struct {
	Data struct {
		Items []SearchItem `json:"items"`
	} `json:"data"`
}

type SearchItem struct {
	Aid json.Number `json:"aid"`
	// 标题中命中的搜索词带 <<< >>> 高亮标记
	Title string `json:"tv_name"`
	// 内容类型 2=剧集类 其他类型(资讯/短视频等)直接跳过
	DataType int    `json:"data_type"`
	Cover    string `json:"ver_big_pic"`
	PageUrl  string `json:"url_html5"`
	// 元信息 形如 "电视剧|中国大陆|2019" 第一段是分类 末段可能是年份
	Meta       []string        `json:"meta"`
	TotalCount int             `json:"total_video_count"`
	Videos     []PlaylistVideo `json:"videos"`
}

type PlaylistResult struct {
	Videos []PlaylistVideo `json:"videos"`
}

type PlaylistVideo struct {
	Vid   json.Number `json:"vid"`
	Name  string      `json:"name"`
	Order int         `json:"order"`
	// 播放页地址按顺序取第一个非空字段
	PageUrl  string `json:"pageUrl"`
	UrlHtml5 string `json:"url_html5"`
	Url      string `json:"url"`
}

func (v *PlaylistVideo) playUrl() string {
	for _, u := range []string{v.PageUrl, v.UrlHtml5, v.Url} {
		if u != "" {
			return u
		}
	}
	return ""
}

// DanmuResult 弹幕接口历史上有两种包装 comments在顶层或在info下一层
type DanmuResult struct {
	Info struct {
		Comments []danmaku.RawComment `json:"comments"`
	} `json:"info"`
	Comments []danmaku.RawComment `json:"comments"`
}

func (d *DanmuResult) comments() []danmaku.RawComment {
	if len(d.Comments) > 0 {
		return d.Comments
	}
	return d.Info.Comments
}
