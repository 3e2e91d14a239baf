package danmaku

import (
	"danmu-hub/internal/utils"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var MarkRegex = regexp.MustCompile(`[\p{P}\p{S}\s]`)

// NormalizeTitle 去除html标签 标点符号和空白 并小写化
func NormalizeTitle(title string) string {
	clearTitle := utils.StripHTMLTags(title)
	clearTitle = MarkRegex.ReplaceAllLiteralString(clearTitle, "")
	return strings.ToLower(clearTitle)
}

// TitleMatcher 搜索结果标题过滤 在获取剧集列表之前执行 控制后续请求扇出
type TitleMatcher struct {
	// 归一化后标题的最大编辑距离 双向包含优先于编辑距离判断
	MaxDistance int
}

func NewTitleMatcher() *TitleMatcher {
	return &TitleMatcher{MaxDistance: 2}
}

func (m *TitleMatcher) Match(candidate, query string) bool {
	c := NormalizeTitle(candidate)
	q := NormalizeTitle(query)
	if c == "" || q == "" {
		return false
	}
	if strings.Contains(c, q) || strings.Contains(q, c) {
		return true
	}
	return fuzzy.LevenshteinDistance(q, c) <= m.MaxDistance
}
