package gotvdb

import "sort"

// Season 是某一季的集合（0 = specials）。由 Show 在 Update 时构建并独占，
// 向上只保留身份引用。
type Season struct {
	show     *Show
	number   int
	episodes map[int]*Episode
}

func newSeason(show *Show, number int) *Season {
	return &Season{
		show:     show,
		number:   number,
		episodes: make(map[int]*Episode),
	}
}

// Number 返回季号。
func (s *Season) Number() int { return s.number }

// Show 返回所属的剧集（回指，只携带身份）。
func (s *Season) Show() *Show { return s.show }

// Len 返回本季的集数。
func (s *Season) Len() int { return len(s.episodes) }

// Episode 按集号取集。不存在的集号报索引错误，绝不钳位。
func (s *Season) Episode(number int) (*Episode, error) {
	if e, ok := s.episodes[number]; ok {
		return e, nil
	}
	return nil, &IndexError{Kind: "Season", Index: number}
}

// Episodes 按集号升序返回全部集。与源文档顺序无关，可重复迭代且顺序恒定。
func (s *Season) Episodes() []*Episode {
	out := make([]*Episode, 0, len(s.episodes))
	for _, e := range s.episodes {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// put 记录一集：同号覆盖，保证 (季号, 集号) 身份唯一。
func (s *Season) put(number int, e *Episode) {
	e.season = s
	s.episodes[number] = e
}

func (s *Season) equal(o *Season) bool {
	if s.number != o.number || len(s.episodes) != len(o.episodes) {
		return false
	}
	for n, e := range s.episodes {
		oe, ok := o.episodes[n]
		if !ok || !e.attrs.Equal(oe.attrs) {
			return false
		}
	}
	return true
}
