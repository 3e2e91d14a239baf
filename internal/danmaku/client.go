package danmaku

import (
	"danmu-hub/internal/config"
	"danmu-hub/internal/utils"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

type PlatformClient struct {
	MaxWorker  int
	Cookie     string
	HttpClient *http.Client

	Logger *slog.Logger
}

// InitPlatformClient 按平台配置构造http客户端 未配置或优先级为负时返回错误表示禁用
func InitPlatformClient(platform Platform) (*PlatformClient, error) {
	conf := config.GetConfig().GetPlatformConfig(string(platform))
	if conf == nil {
		return nil, fmt.Errorf("[%s] is not configured", platform)
	}
	if conf.Priority < 0 {
		return nil, fmt.Errorf("[%s] is disabled", platform)
	}

	c := &PlatformClient{
		Cookie:    conf.Cookie,
		MaxWorker: conf.MaxWorker,
		Logger:    utils.GetComponentLogger(string(platform)),
	}
	if c.MaxWorker <= 0 {
		c.MaxWorker = defaultMaxWorker
	}
	var timeout = conf.Timeout
	if timeout <= 0 {
		timeout = defaultTimeoutInSeconds
	}
	c.HttpClient = &http.Client{Timeout: time.Duration(timeout * 1e9)}

	return c, nil
}

const defaultUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"

func (p *PlatformClient) DoReq(req *http.Request) (*http.Response, error) {
	ua := config.GetConfig().UA
	if ua == "" {
		ua = defaultUA
	}
	req.Header.Set("User-Agent", ua)
	if p.Cookie != "" {
		req.Header.Set("Cookie", p.Cookie)
	}
	return p.HttpClient.Do(req)
}

// ReadBody 读取响应体 响应可能是brotli压缩的
func (p *PlatformClient) ReadBody(resp *http.Response) ([]byte, error) {
	defer utils.SafeClose(resp.Body)
	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "br") {
		reader = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(reader)
}

const (
	defaultMaxWorker        = 4
	defaultTimeoutInSeconds = 30
)
