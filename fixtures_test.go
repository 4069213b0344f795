package gotvdb

import (
	"context"
	"testing"

	"github.com/wenluo/gotvdb/internal/infra/httpx"
)

// 测试夹具：按 thetvdb 旧版接口的真实形状裁剪的 XML 文档。

const searchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Data>
<Series>
  <seriesid>79349</seriesid>
  <language>en</language>
  <SeriesName>Dexter</SeriesName>
  <banner>graphical/79349-g6.jpg</banner>
  <Overview>Dexter Morgan is a forensics expert.</Overview>
  <FirstAired>2006-10-01</FirstAired>
  <IMDB_ID>tt0773262</IMDB_ID>
  <zap2it_id>SH859795</zap2it_id>
  <id>79349</id>
</Series>
<Series>
  <seriesid>222461</seriesid>
  <language>en</language>
  <SeriesName>Cliff Dexter</SeriesName>
  <FirstAired></FirstAired>
  <id>222461</id>
</Series>
</Data>`

const seriesBaseXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Data>
<Series>
  <seriesid>79349</seriesid>
  <language>en</language>
  <SeriesName>Dexter</SeriesName>
  <Overview>Dexter Morgan is a forensics expert.</Overview>
  <FirstAired>2006-10-01</FirstAired>
  <IMDB_ID>tt0773262</IMDB_ID>
  <zap2it_id>SH859795</zap2it_id>
  <id>79349</id>
</Series>
</Data>`

// 全量文档：Episode 故意乱序排列，迭代顺序必须与此无关。
const seriesAllXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Data>
<Series>
  <id>79349</id>
  <Actors>|Michael C. Hall|Jennifer Carpenter|</Actors>
  <Airs_DayOfWeek>Sunday</Airs_DayOfWeek>
  <ContentRating>TV-MA</ContentRating>
  <FirstAired>2006-10-01</FirstAired>
  <Genre>|Crime|Drama|</Genre>
  <IMDB_ID>tt0773262</IMDB_ID>
  <Language>en</Language>
  <Network>Showtime</Network>
  <Rating>8.7</Rating>
  <RatingCount>271</RatingCount>
  <Runtime>50</Runtime>
  <SeriesName>Dexter</SeriesName>
  <Status>Ended</Status>
</Series>
<Episode>
  <id>1179761</id>
  <EpisodeName>Our Father</EpisodeName>
  <EpisodeNumber>1</EpisodeNumber>
  <SeasonNumber>2</SeasonNumber>
  <FirstAired>2007-09-30</FirstAired>
  <seriesid>79349</seriesid>
</Episode>
<Episode>
  <id>307469</id>
  <EpisodeName>Crocodile</EpisodeName>
  <EpisodeNumber>2</EpisodeNumber>
  <SeasonNumber>1</SeasonNumber>
  <Rating>7.6</Rating>
  <seriesid>79349</seriesid>
</Episode>
<Episode>
  <id>307468</id>
  <EpisodeName>Dexter</EpisodeName>
  <EpisodeNumber>1</EpisodeNumber>
  <SeasonNumber>1</SeasonNumber>
  <FirstAired>2006-10-01</FirstAired>
  <GuestStars>Terry Woodberry|Monique Curnen</GuestStars>
  <Rating>7.8</Rating>
  <seriesid>79349</seriesid>
</Episode>
<Episode>
  <id>403521</id>
  <EpisodeName>Early Cuts</EpisodeName>
  <EpisodeNumber>1</EpisodeNumber>
  <SeasonNumber>0</SeasonNumber>
  <seriesid>79349</seriesid>
</Episode>
</Data>`

const actorsXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Actors>
<Actor>
  <id>23522</id>
  <Image>actors/23522.jpg</Image>
  <Name>Michael C. Hall</Name>
  <Role>Dexter Morgan</Role>
  <SortOrder>0</SortOrder>
</Actor>
<Actor>
  <id>23524</id>
  <Image>actors/23524.jpg</Image>
  <Name>Jennifer Carpenter</Name>
  <Role>Debra Morgan</Role>
  <SortOrder>1</SortOrder>
</Actor>
</Actors>`

const bannersXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Banners>
<Banner>
  <id>23585</id>
  <BannerPath>fanart/original/79349-2.jpg</BannerPath>
  <BannerType>fanart</BannerType>
  <BannerType2>1920x1080</BannerType2>
  <Language>en</Language>
  <Rating>6.5</Rating>
  <RatingCount>2</RatingCount>
</Banner>
<Banner>
  <id>876814</id>
  <BannerPath>seasons/79349-1-2.jpg</BannerPath>
  <BannerType>season</BannerType>
  <BannerType2>season</BannerType2>
  <Season>1</Season>
</Banner>
</Banners>`

const episodeXML = `<?xml version="1.0" encoding="UTF-8" ?>
<Data>
<Episode>
  <id>307473</id>
  <EpisodeName>Love American Style</EpisodeName>
  <EpisodeNumber>5</EpisodeNumber>
  <SeasonNumber>1</SeasonNumber>
  <FirstAired>2006-10-29</FirstAired>
  <seriesid>79349</seriesid>
</Episode>
</Data>`

// fakeLoader 把 URL 映射到固定响应；未注册的 URL 一律 404。
// 同时记录每个 URL 的访问次数，幂等性断言依赖它。
type fakeLoader struct {
	responses map[string]string
	errs      map[string]error
	calls     map[string]int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		responses: make(map[string]string),
		errs:      make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (f *fakeLoader) Load(_ context.Context, url string, _ bool) ([]byte, error) {
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if body, ok := f.responses[url]; ok {
		return []byte(body), nil
	}
	return nil, &httpx.StatusError{URL: url, StatusCode: 404}
}

func (f *fakeLoader) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// newTestTVDB 构造注入了 fakeLoader 的门面，并预注册 Dexter 的全套响应。
func newTestTVDB(t *testing.T, ignoreCase bool) (*TVDB, *fakeLoader) {
	t.Helper()

	fl := newFakeLoader()
	db, err := New(Config{
		APIKey:     "APIKEY",
		IgnoreCase: ignoreCase,
		Loader:     fl,
	})
	if err != nil {
		t.Fatalf("构造 TVDB 失败：%v", err)
	}

	fl.responses[db.searchURL("dexter", "en")] = searchXML
	fl.responses[db.seriesURL(79349, "en")] = seriesBaseXML
	fl.responses[db.seriesAllURL(79349, "en")] = seriesAllXML
	fl.responses[db.actorsURL(79349)] = actorsXML
	fl.responses[db.bannersURL(79349)] = bannersXML
	fl.responses[db.episodeURL(307473, "en")] = episodeXML

	return db, fl
}

// loadDexter 取检索结果里的第一个 Show。
func loadDexter(t *testing.T, db *TVDB) *Show {
	t.Helper()
	result, err := db.Search(context.Background(), "dexter", "en")
	if err != nil {
		t.Fatalf("检索失败：%v", err)
	}
	show, err := result.Show(0)
	if err != nil {
		t.Fatalf("取第一个结果失败：%v", err)
	}
	if show.ID() != 79349 {
		t.Fatalf("期望 Dexter (79349)，实际 %d", show.ID())
	}
	return show
}
