package danmaku

import (
	"danmu-hub/internal/utils"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// TryFields 按别名顺序在原始记录中取第一个存在的字段
// 各平台字段别名差异都收敛到声明式的别名表里
func TryFields(record map[string]any, fields []string) (any, bool) {
	for _, f := range fields {
		if v, ok := record[f]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Normalizer 平台原始弹幕到规范格式的转换
// 别名表由各平台适配器初始化时给定 单条解析失败只跳过该条
type Normalizer struct {
	Platform Platform

	ContentFields []string
	TimeFields    []string
	ColorFields   []string
	SentAtFields  []string
	UserFields    []string
	ModeFields    []string

	// 时间字段到秒的换算系数 默认1 腾讯为0.001(毫秒)
	TimeScale float64

	logger *slog.Logger
}

func NewNormalizer(platform Platform) *Normalizer {
	return &Normalizer{
		Platform:      platform,
		ContentFields: []string{"c", "content", "text", "msg"},
		TimeFields:    []string{"v", "vtime", "time_point", "time"},
		ColorFields:   []string{"color", "c_color"},
		SentAtFields:  []string{"t", "ctime", "create_time"},
		UserFields:    []string{"uid", "user_id"},
		ModeFields:    []string{"m", "mode"},
		TimeScale:     1,
		logger:        utils.GetComponentLogger(string(platform) + "-normalizer"),
	}
}

func (n *Normalizer) Normalize(raw []RawComment) []*StandardComment {
	result := make([]*StandardComment, 0, len(raw))
	for _, record := range raw {
		if record == nil {
			continue
		}
		c, ok := n.normalizeOne(record)
		if !ok {
			n.logger.Debug("comment record skipped", "record_keys", len(record))
			continue
		}
		result = append(result, c)
	}
	return result
}

func (n *Normalizer) normalizeOne(record RawComment) (*StandardComment, bool) {
	content := n.extractContent(record)
	if content == "" || content == "null" || content == "undefined" {
		return nil, false
	}

	scale := n.TimeScale
	if scale == 0 {
		scale = 1
	}
	timepoint := 0.0
	if v, ok := TryFields(record, n.TimeFields); ok {
		if f, ok := toFloat(v); ok {
			timepoint = f * scale
		}
	}

	color := WhiteColor
	if v, ok := TryFields(record, n.ColorFields); ok {
		color = parseColor(v)
	}

	sentAt := int64(0)
	if v, ok := TryFields(record, n.SentAtFields); ok {
		if f, ok := toFloat(v); ok {
			sentAt = int64(f)
		}
	}
	if sentAt == 0 {
		sentAt = time.Now().Unix()
	}

	userId := "0"
	if v, ok := TryFields(record, n.UserFields); ok {
		if s := strings.TrimSpace(stringify(v)); s != "" {
			userId = s
		}
	}

	mode := NormalMode
	if v, ok := TryFields(record, n.ModeFields); ok {
		if f, ok := toFloat(v); ok {
			switch int(f) {
			case BottomMode:
				mode = BottomMode
			case TopMode:
				mode = TopMode
			}
		}
	}

	return &StandardComment{
		Timepoint: timepoint,
		Mode:      mode,
		FontSize:  DefaultFontSize,
		Color:     color,
		SentAt:    sentAt,
		UserId:    userId,
		Content:   content,
		Platform:  n.Platform,
	}, true
}

// extractContent 别名取值 命中嵌套对象时在下一层再按别名取一次
func (n *Normalizer) extractContent(record RawComment) string {
	v, ok := TryFields(record, n.ContentFields)
	if !ok {
		return ""
	}
	if nested, ok := v.(map[string]any); ok {
		if inner, ok := TryFields(nested, n.ContentFields); ok {
			v = inner
		} else {
			return ""
		}
	}
	return strings.TrimSpace(stringify(v))
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	case json.Number:
		value, err := f.Float64()
		return value, err == nil
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		return value, err == nil
	}
	return 0, false
}

// parseColor 16进制字符串(带不带#都行)或数值 解析失败回退白色
func parseColor(v any) int {
	switch c := v.(type) {
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(c), "#")
		value, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return WhiteColor
		}
		return int(value & 0xffffff)
	default:
		if f, ok := toFloat(v); ok {
			return int(int64(f) & 0xffffff)
		}
	}
	return WhiteColor
}
