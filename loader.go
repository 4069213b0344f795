package gotvdb

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/wenluo/gotvdb/internal/infra/cache"
	"github.com/wenluo/gotvdb/internal/infra/httpx"
)

// Loader 是核心面向传输层的唯一契约：按 URL 取字节。
//
// 约束：
// - useCache=false 时必须绕过缓存读（仍允许写回）
// - 非 2xx 状态返回 *httpx.StatusError，网络不可达返回底层错误；
//   两者如何折叠进错误家族由门面决定
// - 取消/超时语义属于 Loader，核心不重试
type Loader interface {
	Load(ctx context.Context, url string, useCache bool) ([]byte, error)
}

// netLoader 是默认实现：有界重试的 HTTP client + SQLite 响应缓存。
type netLoader struct {
	client *http.Client
	cache  *cache.Store
	log    zerolog.Logger
}

func newNetLoader(client *http.Client, store *cache.Store, log zerolog.Logger) *netLoader {
	return &netLoader{client: client, cache: store, log: log}
}

func (l *netLoader) Load(ctx context.Context, url string, useCache bool) ([]byte, error) {
	if useCache && l.cache != nil {
		if body, ok, err := l.cache.Get(url); err == nil && ok {
			l.log.Debug().Str("url", url).Msg("cache hit")
			return body, nil
		} else if err != nil {
			// 缓存读失败不致命：继续走网络。
			l.log.Warn().Err(err).Str("url", url).Msg("cache read failed")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	l.log.Debug().Str("url", url).Msg("loading")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpx.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败：%w", err)
	}

	if l.cache != nil {
		if err := l.cache.Put(url, body); err != nil {
			// 缓存写失败同样不致命。
			l.log.Warn().Err(err).Str("url", url).Msg("cache write failed")
		}
	}
	return body, nil
}
