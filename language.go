package gotvdb

import "sort"

// LanguageAll 只对 Search 有效：让服务端在全部语言里检索。
const LanguageAll = "all"

// languages 是 thetvdb 旧版接口支持的固定语言集（ISO 两字母码，
// 来自服务端 languages.xml 的 abbreviation 列）。集外的码一律在
// 发起任何网络请求之前被拒绝。
var languages = map[string]struct{}{
	"cs": {}, "da": {}, "de": {}, "el": {}, "en": {},
	"es": {}, "fi": {}, "fr": {}, "he": {}, "hr": {},
	"hu": {}, "it": {}, "ja": {}, "ko": {}, "nl": {},
	"no": {}, "pl": {}, "pt": {}, "ru": {}, "sl": {},
	"sv": {}, "tr": {}, "zh": {},
}

// IsLanguage 判断 abbr 是否在受支持的语言集内（不含 LanguageAll）。
func IsLanguage(abbr string) bool {
	_, ok := languages[abbr]
	return ok
}

// Languages 返回排序后的受支持语言码列表。
func Languages() []string {
	out := make([]string, 0, len(languages))
	for l := range languages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// validateLanguage 在边界处拒绝非法语言码（含空串）。
func validateLanguage(lang string, allowAll bool) error {
	if allowAll && lang == LanguageAll {
		return nil
	}
	if !IsLanguage(lang) {
		return &ValueError{What: "语言码", Value: lang}
	}
	return nil
}
