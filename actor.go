package gotvdb

import "github.com/wenluo/gotvdb/internal/attrs"

// Actor 是 actors.xml 中一条演员记录的值对象。
type Actor struct {
	attrs *attrs.Bag
}

func (a *Actor) ID() int       { return bagInt(a.attrs, "id") }
func (a *Actor) Name() string  { return bagString(a.attrs, "Name") }
func (a *Actor) Image() string { return bagString(a.attrs, "Image") }

// Role 返回该演员的角色列表（服务端用 | 分隔多个角色）。
func (a *Actor) Role() []string {
	if v, err := a.attrs.Get("Role"); err == nil && v.Kind == attrs.KindStringList {
		return v.List
	}
	return nil
}

func (a *Actor) SortOrder() int { return bagInt(a.attrs, "SortOrder") }

// Attr 是通用字段访问。
func (a *Actor) Attr(name string) (attrs.Value, error) {
	v, err := a.attrs.Get(name)
	if err != nil {
		return attrs.Value{}, &AttributeError{Kind: "Actor", Name: name, Known: isKnown(actorKnown, name)}
	}
	return v, nil
}
