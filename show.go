package gotvdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wenluo/gotvdb/internal/attrs"
)

// Show 表示一部剧集。由 Search/Get 返回时只带检索级的最小字段集；
// Update 拉取全量文档后才拥有完整字段与 Season/Episode 树。
//
// 所有权是严格的树：Show 独占其 Season，Season 独占其 Episode；
// 向上的引用（Episode→Season→Show→TVDB）只携带身份，从不携带所有权。
//
// 字段访问永远不会隐式触发网络 I/O，水合只能通过显式的
// Update / LoadActors / LoadBanners。
type Show struct {
	api  *TVDB
	lang string

	attrs   *attrs.Bag
	seasons map[int]*Season
	actors  []*Actor
	banners []*Banner
}

func newShow(api *TVDB, lang string, bag *attrs.Bag) *Show {
	return &Show{
		api:     api,
		lang:    lang,
		attrs:   bag,
		seasons: make(map[int]*Season),
	}
}

// ID 返回服务端分配的数字标识（未水合时为 0，正常响应必带 id）。
func (s *Show) ID() int { return bagInt(s.attrs, "id") }

// Language 返回该 Show 绑定的语言码。
func (s *Show) Language() string { return s.lang }

// Attr 是通用字段访问：未建模的服务端字段也可以用它取到。
func (s *Show) Attr(name string) (attrs.Value, error) {
	v, err := s.attrs.Get(name)
	if err != nil {
		return attrs.Value{}, &AttributeError{Kind: "Show", Name: name, Known: isKnown(showKnown, name)}
	}
	return v, nil
}

// 常用字段的强类型捷径（派生自 schema，未水合时返回零值）。

func (s *Show) SeriesName() string { return bagString(s.attrs, "SeriesName") }
func (s *Show) IMDBID() string     { return bagString(s.attrs, "IMDB_ID") }
func (s *Show) Overview() string   { return bagString(s.attrs, "Overview") }

// FirstAired 返回首播日期；字段未水合时 ok=false。
func (s *Show) FirstAired() (time.Time, bool) { return bagDate(s.attrs, "FirstAired") }

// Len 返回已知的季数（未 Update 时为 0）。
func (s *Show) Len() int { return len(s.seasons) }

// Season 按季号取季（0 = specials）。不存在的季号报索引错误，绝不钳位。
func (s *Show) Season(number int) (*Season, error) {
	if se, ok := s.seasons[number]; ok {
		return se, nil
	}
	return nil, &IndexError{Kind: "Show", Index: number}
}

// Seasons 按季号升序返回全部季。每次调用都重新排序，
// 与源文档中的出现顺序无关，可重复迭代且顺序恒定。
func (s *Show) Seasons() []*Season {
	out := make([]*Season, 0, len(s.seasons))
	for _, se := range s.seasons {
		out = append(out, se)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out
}

// Actors / Banners 返回已加载的列表（未显式 LoadX 前为空）。
func (s *Show) Actors() []*Actor   { return s.actors }
func (s *Show) Banners() []*Banner { return s.banners }

// Update 拉取全量剧集文档（series/<id>/all/<lang>.xml），把字段并入
// 现有字段包（新值覆盖、旧的无关字段保留、永不删除），并就地合并
// Season/Episode 树。
//
// 不变量：
// - 幂等：重复调用得到相等的树
// - (season_number, episode_number) 身份永不重复：同号必覆盖
func (s *Show) Update(ctx context.Context) error {
	if s.api == nil {
		return &ConnectionError{Err: fmt.Errorf("Show 未绑定 TVDB 实例")}
	}
	id := s.ID()
	if id <= 0 {
		return &IDError{Kind: "show", Value: fmt.Sprintf("%d", id)}
	}

	root, err := s.api.loadTree(ctx, s.api.seriesAllURL(id, s.lang), true, "show", fmt.Sprintf("%d", id))
	if err != nil {
		return err
	}

	series := root.Find("Series")
	if series == nil {
		return &BadData{Err: fmt.Errorf("文档缺少 Series 元素")}
	}
	s.attrs.Merge(mapElement(series, seriesSchema, s.api.ignoreCase))

	for _, el := range root.FindAll("Episode") {
		bag := mapElement(el, episodeSchema, s.api.ignoreCase)
		seasonNumber, ok := bagIntOK(bag, "SeasonNumber")
		if !ok {
			return &BadData{Err: fmt.Errorf("Episode 元素缺少 SeasonNumber")}
		}
		episodeNumber, ok := bagIntOK(bag, "EpisodeNumber")
		if !ok {
			return &BadData{Err: fmt.Errorf("Episode 元素缺少 EpisodeNumber")}
		}

		season, ok := s.seasons[seasonNumber]
		if !ok {
			season = newSeason(s, seasonNumber)
			s.seasons[seasonNumber] = season
		}
		season.put(episodeNumber, &Episode{season: season, attrs: bag})
	}

	s.api.log.Debug().Int("id", id).Int("seasons", len(s.seasons)).Msg("show updated")
	return nil
}

// LoadActors 按需加载演员列表（actors.xml，文档顺序）。
// 列表已非空时立即返回，不重复抓取。
func (s *Show) LoadActors(ctx context.Context) error {
	if len(s.actors) > 0 {
		return nil
	}
	if s.api == nil {
		return &ConnectionError{Err: fmt.Errorf("Show 未绑定 TVDB 实例")}
	}

	root, err := s.api.loadTree(ctx, s.api.actorsURL(s.ID()), true, "", "")
	if err != nil {
		return err
	}
	for _, el := range root.FindAll("Actor") {
		s.actors = append(s.actors, &Actor{attrs: mapElement(el, actorSchema, s.api.ignoreCase)})
	}
	return nil
}

// LoadBanners 按需加载横幅列表（banners.xml，文档顺序）。
// 列表已非空时立即返回，不重复抓取。
func (s *Show) LoadBanners(ctx context.Context) error {
	if len(s.banners) > 0 {
		return nil
	}
	if s.api == nil {
		return &ConnectionError{Err: fmt.Errorf("Show 未绑定 TVDB 实例")}
	}

	root, err := s.api.loadTree(ctx, s.api.bannersURL(s.ID()), true, "", "")
	if err != nil {
		return err
	}
	for _, el := range root.FindAll("Banner") {
		s.banners = append(s.banners, &Banner{
			mirror: s.api.baseURL,
			attrs:  mapElement(el, bannerSchema, s.api.ignoreCase),
		})
	}
	return nil
}

// Equal 比较两个 Show 的全部可观测状态：字段包、语言、季/集树、演员与横幅。
// 回指的 TVDB 实例只携带身份，不参与比较。
func (s *Show) Equal(o *Show) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.lang != o.lang || !s.attrs.Equal(o.attrs) || len(s.seasons) != len(o.seasons) {
		return false
	}
	for n, se := range s.seasons {
		oe, ok := o.seasons[n]
		if !ok || !se.equal(oe) {
			return false
		}
	}
	if len(s.actors) != len(o.actors) || len(s.banners) != len(o.banners) {
		return false
	}
	for i := range s.actors {
		if !s.actors[i].attrs.Equal(o.actors[i].attrs) {
			return false
		}
	}
	for i := range s.banners {
		if !s.banners[i].attrs.Equal(o.banners[i].attrs) {
			return false
		}
	}
	return true
}

func isKnown(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// bag 取值捷径：字段缺失时返回零值（供强类型 getter 用）。

func bagString(b *attrs.Bag, name string) string {
	if v, err := b.Get(name); err == nil {
		return v.Str
	}
	return ""
}

func bagInt(b *attrs.Bag, name string) int {
	n, _ := bagIntOK(b, name)
	return n
}

func bagIntOK(b *attrs.Bag, name string) (int, bool) {
	if v, err := b.Get(name); err == nil && v.Kind == attrs.KindInt {
		return v.Int, true
	}
	return 0, false
}

func bagDate(b *attrs.Bag, name string) (time.Time, bool) {
	if v, err := b.Get(name); err == nil && v.Kind == attrs.KindDate {
		return v.Date, true
	}
	return time.Time{}, false
}
