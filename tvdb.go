package gotvdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/wenluo/gotvdb/internal/infra/cache"
	"github.com/wenluo/gotvdb/internal/infra/httpx"
	"github.com/wenluo/gotvdb/internal/xmltree"
)

const searchBufferSize = 128

// Config 控制 TVDB 门面的构造。
type Config struct {
	// APIKey 是 thetvdb 分配的接口密钥（必填）。
	APIKey string

	// BaseURL 为空时使用官方镜像。
	BaseURL string

	// CacheDir 是默认 Loader 的响应缓存目录；为空时用平台 temp 目录下的 gotvdb/。
	CacheDir string

	// IgnoreCase 打开后，所有实体的字段访问大小写不敏感。
	IgnoreCase bool

	// ProxyURL 非空时默认 Loader 走代理。
	ProxyURL string

	// Logger 为 nil 时不输出日志。
	Logger *zerolog.Logger

	// Loader 非 nil 时替换默认实现（测试注入点）；此时 CacheDir/ProxyURL 被忽略。
	Loader Loader
}

// TVDB 是库的门面：检索、按 id 取剧集/集，并把外部协作者
//（Loader、XML 解析）组装成实体图。
//
// 并发模型：每个操作同步阻塞到 Loader 返回为止。多个互不相关的
// TVDB/Show 可以并发使用；对同一实体的并发 Update/LoadX 需要调用方自己加锁。
type TVDB struct {
	apiKey     string
	baseURL    string
	ignoreCase bool

	loader Loader
	cache  *cache.Store // 仅默认 Loader 时非 nil，由 Close 释放
	log    zerolog.Logger

	// searchBuf 缓存本会话内的检索结果，避免重复打服务端（有界 LRU）。
	searchBuf *lru.Cache[searchKey, []*Show]
}

type searchKey struct {
	name string
	lang string
}

// New 构造门面。APIKey 缺失直接失败；默认 Loader 的缓存库打不开也失败。
func New(cfg Config) (*TVDB, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key 不能为空")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "http://thetvdb.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "gotvdb").Logger()
	}

	buf, err := lru.New[searchKey, []*Show](searchBufferSize)
	if err != nil {
		return nil, err
	}

	t := &TVDB{
		apiKey:     apiKey,
		baseURL:    baseURL,
		ignoreCase: cfg.IgnoreCase,
		log:        log,
		searchBuf:  buf,
	}

	if cfg.Loader != nil {
		t.loader = cfg.Loader
		return t, nil
	}

	client, err := httpx.NewClient(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	cacheDir := strings.TrimSpace(cfg.CacheDir)
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "gotvdb")
	}
	store, err := cache.Open(cacheDir)
	if err != nil {
		return nil, err
	}
	t.cache = store
	t.loader = newNetLoader(client, store, log)
	return t, nil
}

// Close 释放默认 Loader 的缓存库；注入 Loader 时为 no-op。
func (t *TVDB) Close() error {
	if t.cache != nil {
		return t.cache.Close()
	}
	return nil
}

// ParseID 校验文本形式的标识：非数字、空串、非正数都报 id 错误。
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &IDError{Kind: "show", Value: s}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &IDError{Kind: "show", Value: s, Err: err}
	}
	return n, nil
}

// Search 按名字检索剧集。language 必须在受支持集合内（或为 LanguageAll），
// 非法语言码在发起任何网络请求之前被拒绝。
//
// 返回的 Show 只有检索级字段；全量数据需调用 Show.Update。
// 同一 (检索词, 语言) 在本会话内命中缓冲，不重复抓取。
func (t *TVDB) Search(ctx context.Context, name, language string) (*SearchResult, error) {
	if err := validateLanguage(language, true); err != nil {
		return nil, err
	}

	key := searchKey{name: name, lang: language}
	if shows, ok := t.searchBuf.Get(key); ok {
		return newSearchResult(name, language, shows), nil
	}

	root, err := t.loadTree(ctx, t.searchURL(name, language), true, "", "")
	if err != nil {
		return nil, err
	}

	var shows []*Show
	for _, el := range root.FindAll("Series") {
		shows = append(shows, newShow(t, language, mapElement(el, searchSeriesSchema, t.ignoreCase)))
	}
	t.searchBuf.Add(key, shows)
	t.log.Debug().Str("search", name).Str("lang", language).Int("hits", len(shows)).Msg("search done")

	return newSearchResult(name, language, shows), nil
}

// Get 按 id 取单个剧集（检索级水合；全量数据需调用方再 Update）。
// 非正数 id 与服务端 404 都归并为 id 错误。
func (t *TVDB) Get(ctx context.Context, id int, language string) (*Show, error) {
	if err := validateLanguage(language, true); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, &IDError{Kind: "show", Value: strconv.Itoa(id)}
	}

	root, err := t.loadTree(ctx, t.seriesURL(id, language), true, "show", strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	series := root.Find("Series")
	if series == nil {
		// 200 但没有记录：按“查不到”处理。
		return nil, &IDError{Kind: "show", Value: strconv.Itoa(id)}
	}
	return newShow(t, language, mapElement(series, searchSeriesSchema, t.ignoreCase)), nil
}

// GetSeries 是 Get 的别名（沿用服务端的叫法）。
func (t *TVDB) GetSeries(ctx context.Context, id int, language string) (*Show, error) {
	return t.Get(ctx, id, language)
}

// GetEpisode 按 id 取单集，并补全 Season/Show 回指
//（会为所属剧集多发一次检索级请求）。
func (t *TVDB) GetEpisode(ctx context.Context, id int, language string) (*Episode, error) {
	if err := validateLanguage(language, true); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, &IDError{Kind: "episode", Value: strconv.Itoa(id)}
	}

	root, err := t.loadTree(ctx, t.episodeURL(id, language), true, "episode", strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	el := root.Find("Episode")
	if el == nil {
		return nil, &IDError{Kind: "episode", Value: strconv.Itoa(id)}
	}

	bag := mapElement(el, episodeSchema, t.ignoreCase)
	episode := &Episode{attrs: bag}

	seriesID, ok := bagIntOK(bag, "seriesid")
	if !ok {
		return nil, &BadData{Err: fmt.Errorf("Episode 元素缺少 seriesid")}
	}
	show, err := t.Get(ctx, seriesID, language)
	if err != nil {
		return nil, err
	}

	season := newSeason(show, episode.SeasonNumber())
	season.put(episode.Number(), episode)
	show.seasons[season.Number()] = season

	return episode, nil
}

// loadTree 取字节并解析为元素树，同时把传输层错误折叠进错误家族：
// - 404 且请求是按 id 寻址（idKind 非空）=> *IDError
// - 其余状态码与网络错误 => *ConnectionError
// - 非 well-formed XML => *BadData
func (t *TVDB) loadTree(ctx context.Context, u string, useCache bool, idKind, idValue string) (*xmltree.Node, error) {
	body, err := t.loader.Load(ctx, u, useCache)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.StatusCode == 404 && idKind != "" {
			return nil, &IDError{Kind: idKind, Value: idValue, Err: err}
		}
		return nil, &ConnectionError{URL: u, Err: err}
	}

	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, &BadData{Err: err}
	}
	return root, nil
}

// 服务端 URL 集（旧版 XML 接口的固定形状）。

func (t *TVDB) searchURL(name, language string) string {
	return fmt.Sprintf("%s/api/GetSeries.php?seriesname=%s&language=%s",
		t.baseURL, url.QueryEscape(name), url.QueryEscape(language))
}

func (t *TVDB) seriesURL(id int, language string) string {
	return fmt.Sprintf("%s/api/%s/series/%d/%s.xml", t.baseURL, t.apiKey, id, language)
}

func (t *TVDB) seriesAllURL(id int, language string) string {
	return fmt.Sprintf("%s/api/%s/series/%d/all/%s.xml", t.baseURL, t.apiKey, id, language)
}

func (t *TVDB) actorsURL(id int) string {
	return fmt.Sprintf("%s/api/%s/series/%d/actors.xml", t.baseURL, t.apiKey, id)
}

func (t *TVDB) bannersURL(id int) string {
	return fmt.Sprintf("%s/api/%s/series/%d/banners.xml", t.baseURL, t.apiKey, id)
}

func (t *TVDB) episodeURL(id int, language string) string {
	return fmt.Sprintf("%s/api/%s/episodes/%d/%s.xml", t.baseURL, t.apiKey, id, language)
}
