package tencent

import (
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *client {
	return &client{
		common: &danmaku.PlatformClient{
			MaxWorker:  2,
			HttpClient: srv.Client(),
			Logger:     utils.GetComponentLogger("tencent-test"),
		},
		normalizer:   newNormalizer(),
		searchAPI:    srv.URL + "/search",
		seriesAPI:    srv.URL + "/series",
		dmConfigAPI:  srv.URL + "/dmconfig",
		dmSegmentAPI: srv.URL + "/barrage/segment",
	}
}

const searchFixture = `{
  "ret": 0,
  "data": {
    "normalList": {
      "itemList": [
        {
          "doc": {"id": "mzc002001"},
          "videoInfo": {
            "title": "庆余年",
            "typeName": "电视剧",
            "year": 2019,
            "imgUrl": "https://img.qq.com/1.jpg",
            "subjectDoc": {"videoNum": 46}
          }
        },
        {
          "doc": {"id": "mzc002002"},
          "videoInfo": {
            "title": "庆余年 短视频合集",
            "subTitle": "来自：某某号",
            "typeName": "电视剧",
            "subjectDoc": {"videoNum": 10}
          }
        },
        {
          "doc": {"id": "mzc002003"},
          "videoInfo": {
            "title": "某个没有集数的条目",
            "typeName": "电视剧",
            "subjectDoc": {"videoNum": 0}
          }
        }
      ]
    },
    "areaBoxList": [
      {
        "boxId": "MainNeed",
        "itemList": [
          {
            "doc": {"id": "mzc002004"},
            "videoInfo": {
              "title": "某部电影",
              "typeName": "电影",
              "year": 2021
            }
          },
          {
            "doc": {"id": "mzc002005"},
            "videoInfo": {
              "title": "庆余年",
              "typeName": "电视剧",
              "subjectDoc": {"videoNum": 46}
            }
          }
        ]
      },
      {
        "boxId": "Other",
        "itemList": [
          {
            "doc": {"id": "mzc002006"},
            "videoInfo": {"title": "不该出现", "typeName": "电影"}
          }
        ]
      }
    ]
  }
}`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var param SearchParam
		if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
			t.Errorf("decode search param: %v", err)
		}
		if param.Query != "庆余年" {
			t.Errorf("query = %s", param.Query)
		}
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	result := c.Search("庆余年")
	// 短视频黑名单 无集数条目 非MainNeed盒子 重复标题都被过滤
	if len(result) != 2 {
		t.Fatalf("result size = %d, want 2", len(result))
	}
	if result[0].MediaId != "mzc002001" || result[0].Type != danmaku.TVSeries {
		t.Fatalf("first = %s %s", result[0].MediaId, result[0].Type)
	}
	if result[0].PageUrl != "https://v.qq.com/x/cover/mzc002001.html" {
		t.Fatalf("page url = %s", result[0].PageUrl)
	}
	if result[1].MediaId != "mzc002004" || result[1].Type != danmaku.Movie {
		t.Fatalf("second = %s %s", result[1].MediaId, result[1].Type)
	}
}

func TestSearchRetError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ret": 1001, "msg": "rate limited"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if result := c.Search("庆余年"); result != nil {
		t.Fatalf("result = %v, want nil on upstream error", result)
	}
}

const seriesFixture = `{
  "ret": 0,
  "data": {
    "module_list_datas": [
      {
        "module_datas": [
          {
            "item_data_lists": {
              "item_datas": [
                {"item_params": {"vid": "v0001", "title": "第1集", "cid": "mzc002001"}},
                {"item_params": {"vid": "v0002", "title": "预告", "is_trailer": "1", "cid": "mzc002001"}},
                {"item_params": {"vid": "", "title": "坑位", "cid": "mzc002001"}},
                {"item_params": {"vid": "v0003", "cid": "mzc002001"}}
              ]
            }
          }
        ]
      }
    ]
  }
}`

func TestEpisodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var param SeriesReqParam
		if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
			t.Errorf("decode series param: %v", err)
		}
		if param.PageParams.CID != "mzc002001" {
			t.Errorf("cid = %s", param.PageParams.CID)
		}
		if param.PageParams.PageId != seriesEPPageId {
			t.Errorf("page id = %s", param.PageParams.PageId)
		}
		_, _ = w.Write([]byte(seriesFixture))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	eps := c.Episodes("mzc002001")
	if len(eps) != 2 {
		t.Fatalf("episodes size = %d, want 2", len(eps))
	}
	if eps[0].Id != "v0001" || eps[0].Title != "第1集" {
		t.Fatalf("first = %s %s", eps[0].Id, eps[0].Title)
	}
	if eps[0].Url != "https://v.qq.com/x/cover/mzc002001/v0001.html" {
		t.Fatalf("url = %s", eps[0].Url)
	}
	// 标题缺失按位置命名
	if eps[1].Title != "第4集" {
		t.Fatalf("default title = %s", eps[1].Title)
	}
}

func TestEpisodeDanmu(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dmconfig", func(w http.ResponseWriter, r *http.Request) {
		var param map[string]string
		if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
			t.Errorf("decode config param: %v", err)
		}
		if param["vid"] != "v0001" {
			t.Errorf("vid = %s", param["vid"])
		}
		_, _ = w.Write([]byte(`{
          "ret": 0,
          "data": {
            "segment_index": {
              "0": {"segment_start": "0", "segment_name": "t/v/0_30000"},
              "1": {"segment_start": "30000", "segment_name": "t/v/30000_60000"}
            }
          }
        }`))
	})
	mux.HandleFunc("/barrage/segment/v0001/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"barrage_list":[{"content":"哈哈哈","time_offset":"15000","create_time":"1700000000"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv)
	// 播放页URL里提取vid
	raw := c.EpisodeDanmu("https://v.qq.com/x/cover/mzc002001/v0001.html")
	if len(raw) != 2 {
		t.Fatalf("raw size = %d, want 2", len(raw))
	}

	data := c.FormatComments(raw)
	if len(data) != 2 {
		t.Fatalf("formatted size = %d", len(data))
	}
	if data[0].Timepoint != 15 {
		t.Fatalf("timepoint = %v, want 15 (ms scaled to s)", data[0].Timepoint)
	}
	if data[0].Platform != danmaku.Tencent {
		t.Fatalf("platform = %s", data[0].Platform)
	}
}

func TestEpisodeDanmuBadLocator(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := newTestClient(srv)
	if raw := c.EpisodeDanmu("https://v.qq.com/x/page/other.html"); raw != nil {
		t.Fatalf("raw = %v, want nil for unmatched url", raw)
	}
}

func TestFormatCommentsContentStyle(t *testing.T) {
	c := &client{normalizer: newNormalizer()}
	raw := []danmaku.RawComment{
		{"content": "顶部渐变", "time_offset": "1000", "content_style": `{"gradient_colors":["FF0000","00FF00"],"position":2}`},
		{"content": "底部纯色", "time_offset": "2000", "content_style": `{"color":"0000FF","position":3}`},
		{"content": "普通", "time_offset": "3000"},
		{"content": "坏样式", "time_offset": "4000", "content_style": `{not json`},
	}
	data := c.FormatComments(raw)
	if len(data) != 4 {
		t.Fatalf("formatted size = %d", len(data))
	}
	if data[0].Mode != danmaku.TopMode || data[0].Color != 0xFF0000 {
		t.Fatalf("gradient comment = mode %d color %d", data[0].Mode, data[0].Color)
	}
	if data[1].Mode != danmaku.BottomMode || data[1].Color != 0x0000FF {
		t.Fatalf("solid comment = mode %d color %d", data[1].Mode, data[1].Color)
	}
	if data[2].Mode != danmaku.NormalMode || data[2].Color != danmaku.WhiteColor {
		t.Fatalf("plain comment = mode %d color %d", data[2].Mode, data[2].Color)
	}
	if data[3].Mode != danmaku.NormalMode {
		t.Fatalf("broken style comment = mode %d", data[3].Mode)
	}
}
