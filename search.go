package gotvdb

// SearchResult 是一次检索返回的有序 Show 列表。构造后不可变；
// Search 字段保留调用方的原始检索词（大小写不动），用于诊断与相等性。
//
// 服务端承诺：若有完全匹配，它是第一个元素。列表保持文档顺序。
type SearchResult struct {
	Search string

	language string
	shows    []*Show
}

func newSearchResult(search, language string, shows []*Show) *SearchResult {
	return &SearchResult{Search: search, language: language, shows: shows}
}

// Language 返回检索使用的语言码。
func (r *SearchResult) Language() string { return r.language }

// Len 返回匹配的 Show 数量。
func (r *SearchResult) Len() int { return len(r.shows) }

// Show 按位置（0 起）取一个匹配项。越界报索引错误，绝不钳位。
func (r *SearchResult) Show(i int) (*Show, error) {
	if i < 0 || i >= len(r.shows) {
		return nil, &IndexError{Kind: "SearchResult", Index: i}
	}
	return r.shows[i], nil
}

// Shows 返回全部匹配项的副本（保护内部列表的不可变性）。
func (r *SearchResult) Shows() []*Show {
	out := make([]*Show, len(r.shows))
	copy(out, r.shows)
	return out
}
