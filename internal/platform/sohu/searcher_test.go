package sohu

import (
	"danmu-hub/internal/danmaku"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const searchFixture = `{
  "data": {
    "items": [
      {
        "aid": 9001,
        "tv_name": "<<<庆余年>>>",
        "data_type": 2,
        "ver_big_pic": "https://img.sohu.com/9001.jpg",
        "url_html5": "https://tv.sohu.com/s/9001.html",
        "meta": ["电视剧|中国大陆|2019"],
        "total_video_count": 46
      },
      {
        "aid": 9002,
        "tv_name": "庆余年幕后花絮",
        "data_type": 1,
        "meta": ["资讯"]
      },
      {
        "aid": 9003,
        "tv_name": "某新闻节目",
        "data_type": 2,
        "meta": ["新闻|2020"]
      },
      {
        "aid": 9004,
        "tv_name": "连城诀",
        "data_type": 2,
        "meta": ["连续剧|2004"],
        "videos": [
          {"vid": 111, "name": "第一话", "url_html5": "http://tv.sohu.com/v/111.html"}
        ]
      }
    ]
  }
}`

func TestSearch(t *testing.T) {
	var playlistCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/mts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "庆余年" {
			t.Errorf("unexpected search key: %s", r.URL.Query().Get("key"))
		}
		_, _ = w.Write([]byte(searchFixture))
	})
	mux.HandleFunc("/videolist", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&playlistCalls, 1)
		_, _ = w.Write([]byte(`{"videos":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	result := c.Search("庆余年")
	if len(result) != 2 {
		t.Fatalf("result size = %d, want 2", len(result))
	}

	first := result[0]
	if first.MediaId != "9001" {
		t.Fatalf("media id = %s", first.MediaId)
	}
	if first.Title != "庆余年" {
		t.Fatalf("highlight marks not stripped: %s", first.Title)
	}
	if first.Type != danmaku.TVSeries {
		t.Fatalf("type = %s", first.Type)
	}
	if first.Year != 2019 {
		t.Fatalf("year = %d", first.Year)
	}
	if first.EpisodeCount != 46 {
		t.Fatalf("episode count = %d", first.EpisodeCount)
	}

	// 内联剧集不再触发videolist请求
	second := result[1]
	if len(second.Episodes) != 1 {
		t.Fatalf("inline episodes size = %d", len(second.Episodes))
	}
	eps := c.Episodes("9004")
	if len(eps) != 1 {
		t.Fatalf("episodes size = %d", len(eps))
	}
	if eps[0].Url != "https://tv.sohu.com/v/111.html" {
		t.Fatalf("episode url = %s", eps[0].Url)
	}
	if atomic.LoadInt32(&playlistCalls) != 0 {
		t.Fatalf("videolist called %d times, want 0", playlistCalls)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if result := c.Search("庆余年"); result != nil {
		t.Fatalf("result = %v, want nil on decode failure", result)
	}
}

func TestEpisodesJSONP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("playlistid") != "9001" {
			t.Errorf("playlistid = %s", r.URL.Query().Get("playlistid"))
		}
		if r.URL.Query().Get("api_key") == "" {
			t.Error("api_key missing")
		}
		_, _ = w.Write([]byte(`jsonp_1700000000({"videos":[{"vid":111,"name":"第一话","url_html5":"http://tv.sohu.com/v/111.html"},{"vid":222,"name":"第二话","pageUrl":"https://tv.sohu.com/v/222.html"}]})`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	eps := c.Episodes("9001")
	if len(eps) != 2 {
		t.Fatalf("episodes size = %d, want 2", len(eps))
	}
	if eps[0].Id != "111" || eps[1].Id != "222" {
		t.Fatalf("episode ids = %s %s", eps[0].Id, eps[1].Id)
	}
	if eps[1].Url != "https://tv.sohu.com/v/222.html" {
		t.Fatalf("pageUrl should win: %s", eps[1].Url)
	}
}

func TestEpisodesEmptyPlaylist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"videos":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if eps := c.Episodes("9001"); eps != nil {
		t.Fatalf("episodes = %v, want nil", eps)
	}
}
