package tencent

import "danmu-hub/internal/danmaku"

type SearchParam struct {
	Version    string          `json:"version"`
	ClientType int             `json:"clientType"`
	Query      string          `json:"query"`
	PageNum    int             `json:"pageNum"`
	PageSize   int             `json:"pageSize"`
	IsPrefetch bool            `json:"isPrefetch"`
	QueryFrom  int             `json:"queryFrom"`
	NeedQc     bool            `json:"needQC"`
	ExtraInfo  SearchExtraInfo `json:"extraInfo"`
}

type SearchExtraInfo struct {
	IsNewMarkLabel  string `json:"isNewMarkLabel"`
	MultiTerminalPc string `json:"multi_terminal_pc"`
	ThemeType       string `json:"themeType"`
}

type SearchResult struct {
	Ret  int    `json:"ret"`
	Msg  string `json:"msg"`
	Data struct {
		NormalList struct {
			ItemList []SearchResultItem `json:"itemList"`
		} `json:"normalList"`
		AreaBoxList []struct {
			BoxId    string             `json:"boxId"`
			ItemList []SearchResultItem `json:"itemList"`
		} `json:"areaBoxList"`
	} `json:"data"`
}

type SearchResultItem struct {
	Doc struct {
		Id string `json:"id"` // cid
	} `json:"doc"`
	VideoInfo struct {
		Title      string `json:"title"`
		SubTitle   string `json:"subTitle"`
		TypeName   string `json:"typeName"` // 电影 电视剧 动漫
		Year       int    `json:"year"`
		ImgUrl     string `json:"imgUrl"`
		SubjectDoc struct {
			VideoNum int `json:"videoNum"`
		} `json:"subjectDoc"`
	} `json:"videoInfo"`
}

type SeriesReqParam struct {
	HasCache   int                `json:"has_cache"`
	PageParams SeriesReqPageParam `json:"page_params"`
}

type SeriesReqPageParam struct {
	ReqFrom        string `json:"req_from"`
	PageId         string `json:"page_id"`
	PageType       string `json:"page_type"`
	IdType         string `json:"id_type"`
	CID            string `json:"cid"`
	VID            string `json:"vid"`
	DetailPageType string `json:"detail_page_type"`
	PageContext    string `json:"page_context"`
}

const seriesEPPageId = "vsite_episode_list"

type SeriesItem struct {
	ItemId     string `json:"item_id"`
	ItemParams struct {
		VID          string `json:"vid"`
		Duration     string `json:"duration"`
		CTitleOutput string `json:"c_title_output"`
		Title        string `json:"title"`
		IsTrailer    string `json:"is_trailer"` // 1=预告
		CID          string `json:"cid"`
	} `json:"item_params"`
}

type SeriesResult struct {
	Ret  int    `json:"ret"`
	Msg  string `json:"msg"`
	Data struct {
		ModuleListData []struct {
			ModuleData []struct {
				ItemDataLists struct {
					ItemData []SeriesItem `json:"item_datas"`
				} `json:"item_data_lists"`
			} `json:"module_datas"`
		} `json:"module_list_datas"`
	} `json:"data"`
}

type DanmakuSegmentResult struct {
	Ret  int    `json:"ret"`
	Msg  string `json:"msg"`
	Data struct {
		SegmentSpan  string `json:"segment_span"`
		SegmentStart string `json:"segment_start"`
		SegmentIndex map[string]struct {
			SegmentStart string `json:"segment_start"`
			SegmentName  string `json:"segment_name"`
		} `json:"segment_index"`
	} `json:"data"`
}

type DanmakuResult struct {
	BarrageList []danmaku.RawComment `json:"barrage_list"`
}

// ContentStyle 弹幕颜色和位置信息 是个json字符串
type ContentStyle struct {
	Color          string   `json:"color"`
	GradientColors []string `json:"gradient_colors"`
	Position       int      `json:"position"` // 2=顶部 3=底部
}
