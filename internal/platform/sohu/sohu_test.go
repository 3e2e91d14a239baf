package sohu

import (
	"danmu-hub/internal/danmaku"
	"danmu-hub/internal/utils"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestClient(t *testing.T, srv *httptest.Server) *client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return &client{
		common: &danmaku.PlatformClient{
			MaxWorker:  4,
			HttpClient: srv.Client(),
			Logger:     utils.GetComponentLogger("sohu-test"),
		},
		inline:      make(map[string][]*danmaku.Episode),
		normalizer:  danmaku.NewNormalizer(danmaku.Sohu),
		searchAPI:   srv.URL + "/mts",
		playlistAPI: srv.URL + "/videolist",
		danmuAPI:    srv.URL + "/dmh5/dmListAll",
		pageHost:    u.Host,
	}
}

func TestMapCategory(t *testing.T) {
	tests := []struct {
		label string
		want  danmaku.MediaType
		ok    bool
	}{
		{"电视剧", danmaku.TVSeries, true},
		{"国产连续剧", danmaku.TVSeries, true},
		{"电影", danmaku.Movie, true},
		{"动漫", danmaku.Anime, true},
		{"动画片", danmaku.Anime, true},
		{"纪录片", danmaku.Documentary, true},
		{"综艺", danmaku.Variety, true},
		{"新闻", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := mapCategory(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("mapCategory(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseMeta(t *testing.T) {
	tests := []struct {
		meta     []string
		category string
		year     int
	}{
		{[]string{"电视剧|中国大陆|2019"}, "电视剧", 2019},
		{[]string{"电影|2021"}, "电影", 2021},
		{[]string{"综艺"}, "综艺", 0},
		{[]string{"电视剧|中国大陆|更新中"}, "电视剧", 0},
		{[]string{"电视剧|内地|123"}, "电视剧", 0}, // 不是合法年份
		{nil, "", 0},
	}
	for _, tt := range tests {
		category, year := parseMeta(tt.meta)
		if category != tt.category || year != tt.year {
			t.Errorf("parseMeta(%v) = (%q, %d), want (%q, %d)", tt.meta, category, year, tt.category, tt.year)
		}
	}
}

func TestUnwrapJSONP(t *testing.T) {
	payload := `{"videos":[{"vid":1}]}`
	tests := []struct {
		in   string
		want string
	}{
		{"jsonp_1700000000(" + payload + ")", payload},
		{"jsonp(" + payload + ");", payload},
		{payload, payload}, // 裸json原样返回
	}
	for _, tt := range tests {
		got := unwrapJSONP([]byte(tt.in))
		if string(got) != tt.want {
			t.Errorf("unwrapJSONP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := unwrapJSONP([]byte("jsonp_no_parens")); got != nil {
		t.Errorf("missing markers should return nil, got %q", got)
	}
}

func TestUpgradeScheme(t *testing.T) {
	if got := upgradeScheme("http://tv.sohu.com/v/1.html"); got != "https://tv.sohu.com/v/1.html" {
		t.Fatalf("upgradeScheme = %s", got)
	}
	if got := upgradeScheme("https://tv.sohu.com/v/1.html"); got != "https://tv.sohu.com/v/1.html" {
		t.Fatalf("https should pass through, got %s", got)
	}
}

func TestEpisodesFromVideos(t *testing.T) {
	c := &client{common: &danmaku.PlatformClient{Logger: utils.GetComponentLogger("sohu-test")}}
	videos := []PlaylistVideo{
		{Vid: json.Number("111"), Name: "第一话", UrlHtml5: "http://tv.sohu.com/v/111.html"},
		{Vid: json.Number("0")},  // 无效vid
		{Vid: json.Number("")},   // 空vid
		{Vid: json.Number("333")}, // 标题缺失
	}
	eps := c.episodesFromVideos("9001", videos)
	if len(eps) != 2 {
		t.Fatalf("episodes size = %d, want 2", len(eps))
	}
	if eps[0].Url != "https://tv.sohu.com/v/111.html" {
		t.Fatalf("url not upgraded: %s", eps[0].Url)
	}
	if eps[0].CompositeId != "111:9001" {
		t.Fatalf("composite id = %s", eps[0].CompositeId)
	}
	if eps[1].Title != "第4集" {
		t.Fatalf("default title = %s", eps[1].Title)
	}
}
