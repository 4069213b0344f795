package gotvdb

import (
	"time"

	"github.com/wenluo/gotvdb/internal/attrs"
)

// Episode 是叶子实体：一集。由所属 Season 独占，向上只保留身份引用。
type Episode struct {
	season *Season
	attrs  *attrs.Bag
}

// ID 返回服务端分配的数字标识。
func (e *Episode) ID() int { return bagInt(e.attrs, "id") }

// Number 返回集号（本季内）。
func (e *Episode) Number() int { return bagInt(e.attrs, "EpisodeNumber") }

// SeasonNumber 返回季号。
func (e *Episode) SeasonNumber() int { return bagInt(e.attrs, "SeasonNumber") }

// Season 返回所属的季（回指，只携带身份）。
func (e *Episode) Season() *Season { return e.season }

// Attr 是通用字段访问：未建模的服务端字段也可以用它取到。
func (e *Episode) Attr(name string) (attrs.Value, error) {
	v, err := e.attrs.Get(name)
	if err != nil {
		return attrs.Value{}, &AttributeError{Kind: "Episode", Name: name, Known: isKnown(episodeKnown, name)}
	}
	return v, nil
}

// 常用字段的强类型捷径。

func (e *Episode) Name() string     { return bagString(e.attrs, "EpisodeName") }
func (e *Episode) Overview() string { return bagString(e.attrs, "Overview") }

// FirstAired 返回首播日期；字段未水合时 ok=false。
func (e *Episode) FirstAired() (time.Time, bool) { return bagDate(e.attrs, "FirstAired") }

// GuestStars 返回客串列表（字段未水合时为 nil）。
func (e *Episode) GuestStars() []string {
	if v, err := e.attrs.Get("GuestStars"); err == nil && v.Kind == attrs.KindStringList {
		return v.List
	}
	return nil
}
