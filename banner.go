package gotvdb

import "github.com/wenluo/gotvdb/internal/attrs"

// Banner 是 banners.xml 中一条横幅记录的值对象。
type Banner struct {
	mirror string // 拼 BannerURL 用的镜像基址
	attrs  *attrs.Bag
}

func (b *Banner) ID() int             { return bagInt(b.attrs, "id") }
func (b *Banner) BannerPath() string  { return bagString(b.attrs, "BannerPath") }
func (b *Banner) BannerType() string  { return bagString(b.attrs, "BannerType") }
func (b *Banner) BannerType2() string { return bagString(b.attrs, "BannerType2") }

// Season 返回横幅关联的季号文本；该字段在 XML 中不总是存在，缺失时为空串。
func (b *Banner) Season() string { return bagString(b.attrs, "Season") }

// BannerURL 返回横幅图片的完整 URL（镜像基址 + /banners/ + BannerPath）。
// BannerPath 缺失时返回空串。
func (b *Banner) BannerURL() string {
	p := b.BannerPath()
	if p == "" {
		return ""
	}
	return b.mirror + "/banners/" + p
}

// Attr 是通用字段访问。
func (b *Banner) Attr(name string) (attrs.Value, error) {
	v, err := b.attrs.Get(name)
	if err != nil {
		return attrs.Value{}, &AttributeError{Kind: "Banner", Name: name, Known: isKnown(bannerKnown, name)}
	}
	return v, nil
}
