package gotvdb

import (
	"testing"
	"time"

	"github.com/wenluo/gotvdb/internal/attrs"
	"github.com/wenluo/gotvdb/internal/xmltree"
)

func mustParse(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("解析测试文档失败：%v", err)
	}
	return root
}

func TestMapElement_TypeConversion(t *testing.T) {
	root := mustParse(t, `<Data><Episode>
		<id>307473</id>
		<EpisodeName>Love American Style</EpisodeName>
		<EpisodeNumber>5</EpisodeNumber>
		<SeasonNumber>1</SeasonNumber>
		<Rating>7.5</Rating>
		<FirstAired>2006-10-29</FirstAired>
		<GuestStars>Terry Woodberry|Carmen Olivares|Ashley Rose Orr</GuestStars>
	</Episode></Data>`)

	bag := mapElement(root.Find("Episode"), episodeSchema, false)

	if v, _ := bag.Get("id"); v.Kind != attrs.KindInt || v.Int != 307473 {
		t.Fatalf("id 应转成 int，实际：%+v", v)
	}
	if v, _ := bag.Get("Rating"); v.Kind != attrs.KindFloat || v.Float != 7.5 {
		t.Fatalf("Rating 应转成 float，实际：%+v", v)
	}
	if v, _ := bag.Get("FirstAired"); v.Kind != attrs.KindDate || !v.Date.Equal(time.Date(2006, 10, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("FirstAired 应转成日期，实际：%+v", v)
	}
	v, _ := bag.Get("GuestStars")
	if v.Kind != attrs.KindStringList || len(v.List) != 3 || v.List[1] != "Carmen Olivares" {
		t.Fatalf("GuestStars 应按 | 切分，实际：%+v", v)
	}
}

func TestMapElement_EmptyNumericOmitted(t *testing.T) {
	root := mustParse(t, `<Data><Episode>
		<EpisodeNumber></EpisodeNumber>
		<Rating></Rating>
		<RatingCount>abc</RatingCount>
	</Episode></Data>`)

	bag := mapElement(root.Find("Episode"), episodeSchema, false)

	// 空或无法解析的数字字段整个省略，绝不补零。
	for _, name := range []string{"EpisodeNumber", "Rating", "RatingCount"} {
		if bag.Has(name) {
			t.Fatalf("字段 %q 应被省略", name)
		}
	}
}

func TestMapElement_MalformedDateOmitted(t *testing.T) {
	root := mustParse(t, `<Data><Series>
		<FirstAired>29/10/2006</FirstAired>
	</Series></Data>`)

	bag := mapElement(root.Find("Series"), seriesSchema, false)
	if bag.Has("FirstAired") {
		t.Fatalf("畸形日期应被省略，不算错误")
	}
}

func TestMapElement_EmptyListIsSet(t *testing.T) {
	root := mustParse(t, `<Data><Series>
		<Genre></Genre>
		<Actors>|</Actors>
	</Series></Data>`)

	bag := mapElement(root.Find("Series"), seriesSchema, false)

	// 空文本 => 空列表已设置（“已知为空”与“未知”要能区分）。
	v, err := bag.Get("Genre")
	if err != nil || v.Kind != attrs.KindStringList || len(v.List) != 0 {
		t.Fatalf("Genre 应为已设置的空列表，v=%+v err=%v", v, err)
	}
	// 只有分隔符的文本同理：空项全部丢弃。
	v, err = bag.Get("Actors")
	if err != nil || len(v.List) != 0 {
		t.Fatalf("Actors 应为空列表，v=%+v err=%v", v, err)
	}
}

func TestMapElement_UnmodeledTagKeptAsString(t *testing.T) {
	root := mustParse(t, `<Data><Series>
		<SomeNewField>hello</SomeNewField>
	</Series></Data>`)

	bag := mapElement(root.Find("Series"), seriesSchema, false)
	v, err := bag.Get("SomeNewField")
	if err != nil || v.Kind != attrs.KindString || v.Str != "hello" {
		t.Fatalf("schema 外的标签应按 string 保留，v=%+v err=%v", v, err)
	}
}

func TestMapElement_EmptyStringKept(t *testing.T) {
	root := mustParse(t, `<Data><Series>
		<Overview></Overview>
	</Series></Data>`)

	bag := mapElement(root.Find("Series"), seriesSchema, false)
	if v, err := bag.Get("Overview"); err != nil || v.Str != "" {
		t.Fatalf("空字符串字段应按空串设置，v=%+v err=%v", v, err)
	}
}
