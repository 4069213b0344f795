package gotvdb

import (
	"strconv"
	"strings"
	"time"

	"github.com/wenluo/gotvdb/internal/attrs"
	"github.com/wenluo/gotvdb/internal/xmltree"
)

// Field 是 schema 中的一项：服务端字段名（规范大小写）+ 目标类型。
type Field struct {
	Name string
	Kind attrs.Kind
}

// 每种实体的字段 schema。字段集与大小写严格按服务端文档顺序记录；
// schema 同时充当“该实体已知的字段”集合，用于错误细节的区分。
//
// 文档里出现、但 schema 未建模的标签按 string 保留（向前兼容）。
var (
	// 检索结果（GetSeries.php）与按 id 取剧集基础记录共用的最小字段集。
	searchSeriesSchema = []Field{
		{"seriesid", attrs.KindInt},
		{"language", attrs.KindString},
		{"SeriesName", attrs.KindString},
		{"banner", attrs.KindString},
		{"Overview", attrs.KindString},
		{"FirstAired", attrs.KindDate},
		{"IMDB_ID", attrs.KindString},
		{"zap2it_id", attrs.KindString},
		{"id", attrs.KindInt},
	}

	// 全量剧集记录（series/<id>/all/<lang>.xml 的 <Series> 元素）。
	seriesSchema = []Field{
		{"id", attrs.KindInt},
		{"Actors", attrs.KindStringList},
		{"Airs_DayOfWeek", attrs.KindString},
		{"Airs_Time", attrs.KindString},
		{"ContentRating", attrs.KindString},
		{"FirstAired", attrs.KindDate},
		{"Genre", attrs.KindStringList},
		{"IMDB_ID", attrs.KindString},
		{"Language", attrs.KindString},
		{"Network", attrs.KindString},
		{"NetworkID", attrs.KindString},
		{"Overview", attrs.KindString},
		{"Rating", attrs.KindFloat},
		{"RatingCount", attrs.KindInt},
		{"Runtime", attrs.KindInt},
		{"SeriesID", attrs.KindInt},
		{"SeriesName", attrs.KindString},
		{"Status", attrs.KindString},
		{"added", attrs.KindString},
		{"addedBy", attrs.KindInt},
		{"banner", attrs.KindString},
		{"fanart", attrs.KindString},
		{"lastupdated", attrs.KindInt},
		{"poster", attrs.KindString},
		{"zap2it_id", attrs.KindString},
	}

	episodeSchema = []Field{
		{"id", attrs.KindInt},
		{"Combined_episodenumber", attrs.KindFloat},
		{"Combined_season", attrs.KindFloat},
		{"DVD_chapter", attrs.KindString},
		{"DVD_discid", attrs.KindString},
		{"DVD_episodenumber", attrs.KindFloat},
		{"DVD_season", attrs.KindInt},
		{"Director", attrs.KindStringList},
		{"EpImgFlag", attrs.KindInt},
		{"EpisodeName", attrs.KindString},
		{"EpisodeNumber", attrs.KindInt},
		{"FirstAired", attrs.KindDate},
		{"GuestStars", attrs.KindStringList},
		{"IMDB_ID", attrs.KindString},
		{"Language", attrs.KindString},
		{"Overview", attrs.KindString},
		{"ProductionCode", attrs.KindString},
		{"Rating", attrs.KindFloat},
		{"RatingCount", attrs.KindInt},
		{"SeasonNumber", attrs.KindInt},
		{"Writer", attrs.KindStringList},
		{"absolute_number", attrs.KindInt},
		{"filename", attrs.KindString},
		{"lastupdated", attrs.KindInt},
		{"seasonid", attrs.KindInt},
		{"seriesid", attrs.KindInt},
	}

	actorSchema = []Field{
		{"id", attrs.KindInt},
		{"Image", attrs.KindString},
		{"Name", attrs.KindString},
		{"Role", attrs.KindStringList},
		{"SortOrder", attrs.KindInt},
	}

	bannerSchema = []Field{
		{"id", attrs.KindInt},
		{"BannerPath", attrs.KindString},
		{"BannerType", attrs.KindString},
		{"BannerType2", attrs.KindString},
		{"Colors", attrs.KindString},
		{"Language", attrs.KindString},
		{"Rating", attrs.KindFloat},
		{"RatingCount", attrs.KindInt},
		{"SeriesName", attrs.KindString},
		{"Season", attrs.KindString},
		{"ThumbnailPath", attrs.KindString},
		{"VignettePath", attrs.KindString},
	}
)

// 各实体的“已知字段”集（AttributeError.Known 的判定依据）。
var (
	showKnown    = fieldNames(searchSeriesSchema, seriesSchema)
	episodeKnown = fieldNames(episodeSchema)
	actorKnown   = fieldNames(actorSchema)
	bannerKnown  = fieldNames(bannerSchema)
)

func fieldNames(schemas ...[]Field) map[string]struct{} {
	out := make(map[string]struct{})
	for _, schema := range schemas {
		for _, f := range schema {
			out[f.Name] = struct{}{}
		}
	}
	return out
}

// mapElement 按 schema 把一个 XML 元素的直接子元素转成字段包。
//
// 转换规则：
// - int/float：文本为空或无法解析 => 整个字段省略（保持未水合），绝不补零
// - date：YYYY-MM-DD；畸形或为空 => 字段省略（源数据缺失很常见，不算错误）
// - string_list：按 | 切分，丢弃空项；空文本 => 空列表（“已知为空”≠“未知”）
// - string：原样保留（含空串）
// - schema 外的标签：按 string 保留
func mapElement(el *xmltree.Node, schema []Field, ignoreCase bool) *attrs.Bag {
	kinds := make(map[string]attrs.Kind, len(schema))
	for _, f := range schema {
		kinds[f.Name] = f.Kind
	}

	bag := attrs.New(ignoreCase)
	for _, c := range el.Children {
		kind, ok := kinds[c.Name]
		if !ok {
			kind = attrs.KindString
		}
		text := strings.TrimSpace(c.Text)

		switch kind {
		case attrs.KindInt:
			if text == "" {
				continue
			}
			n, err := strconv.Atoi(text)
			if err != nil {
				continue
			}
			bag.Set(c.Name, attrs.Int(n))
		case attrs.KindFloat:
			if text == "" {
				continue
			}
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				continue
			}
			bag.Set(c.Name, attrs.Float(f))
		case attrs.KindDate:
			if text == "" {
				continue
			}
			d, err := time.Parse("2006-01-02", text)
			if err != nil {
				continue
			}
			bag.Set(c.Name, attrs.Date(d))
		case attrs.KindStringList:
			bag.Set(c.Name, attrs.StringList(splitList(text)))
		default:
			bag.Set(c.Name, attrs.String(c.Text))
		}
	}
	return bag
}

func splitList(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
