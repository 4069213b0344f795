package gotvdb

import (
	"encoding/json"
	"fmt"

	"github.com/wenluo/gotvdb/internal/attrs"
)

// 快照是显式的 (名, 值) 对 + 树形结构，而不是不透明的对象序列化：
// 恢复后的对象在全部可观测字段与子结构上与原对象相等，且无需任何网络请求。

type showSnapshot struct {
	Language string            `json:"language"`
	Attrs    *attrs.Bag        `json:"attrs"`
	Seasons  []*seasonSnapshot `json:"seasons,omitempty"`
	Actors   []*attrs.Bag      `json:"actors,omitempty"`
	Banners  []*attrs.Bag      `json:"banners,omitempty"`
}

type seasonSnapshot struct {
	Number   int          `json:"number"`
	Episodes []*attrs.Bag `json:"episodes"`
}

// Snapshot 把 Show（含季/集树、演员与横幅）序列化为不透明的字节串。
// 回指与 TVDB 实例不入快照：它们只携带身份，由 RestoreShow 重新接好。
func (s *Show) Snapshot() ([]byte, error) {
	snap := showSnapshot{
		Language: s.lang,
		Attrs:    s.attrs,
	}
	for _, season := range s.Seasons() {
		ss := &seasonSnapshot{Number: season.number, Episodes: []*attrs.Bag{}}
		for _, e := range season.Episodes() {
			ss.Episodes = append(ss.Episodes, e.attrs)
		}
		snap.Seasons = append(snap.Seasons, ss)
	}
	for _, a := range s.actors {
		snap.Actors = append(snap.Actors, a.attrs)
	}
	for _, b := range s.banners {
		snap.Banners = append(snap.Banners, b.attrs)
	}
	return json.Marshal(snap)
}

// RestoreShow 从快照恢复一个等价的 Show，并把回指重新绑定到本实例
//（之后的 Update/LoadX 照常可用）。
func (t *TVDB) RestoreShow(data []byte) (*Show, error) {
	var snap showSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &BadData{Err: fmt.Errorf("快照无效：%w", err)}
	}
	if snap.Attrs == nil {
		return nil, &BadData{Err: fmt.Errorf("快照缺少字段包")}
	}

	show := newShow(t, snap.Language, snap.Attrs)
	for _, ss := range snap.Seasons {
		season := newSeason(show, ss.Number)
		for _, bag := range ss.Episodes {
			e := &Episode{attrs: bag}
			season.put(e.Number(), e)
		}
		show.seasons[ss.Number] = season
	}
	for _, bag := range snap.Actors {
		show.actors = append(show.actors, &Actor{attrs: bag})
	}
	for _, bag := range snap.Banners {
		show.banners = append(show.banners, &Banner{mirror: t.baseURL, attrs: bag})
	}

	return show, nil
}
