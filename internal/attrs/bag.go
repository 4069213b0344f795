package attrs

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Kind 标记 Value 的类型（来自每种实体的字段 schema）。
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindStringList:
		return "string_list"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value 是带类型标签的字段值。
//
// 约束：只有 Kind 对应的那一个载荷字段有意义，其余保持零值。
// 用显式载荷而不是 interface{}，是为了让快照（JSON）往返后类型不丢失。
type Value struct {
	Kind  Kind      `json:"kind"`
	Str   string    `json:"str,omitempty"`
	Int   int       `json:"int,omitempty"`
	Float float64   `json:"float,omitempty"`
	Date  time.Time `json:"date,omitempty"`
	List  []string  `json:"list,omitempty"`
}

func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Int(i int) Value        { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

func StringList(l []string) Value {
	if l == nil {
		// 空列表也要是“已设置”的状态（区别于未水合）。
		l = []string{}
	}
	return Value{Kind: KindStringList, List: l}
}

// Equal 比较两个值（Date 用 time.Equal，List 逐项比较）。
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindDate:
		return v.Date.Equal(o.Date)
	case KindStringList:
		return slices.Equal(v.List, o.List)
	default:
		return v.Str == o.Str && v.Int == o.Int && v.Float == o.Float
	}
}

// NotFoundError 表示 Bag 中不存在请求的字段名。
// 上层（实体）会补充实体种类与“是否为已知但未水合字段”的细节。
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Name)
}

// Bag 是规范名 -> 带类型值 的字段容器。
//
// 不变量：
// - 每个规范名最多一个值
// - ignoreCase=true 时额外维护 小写名 -> 规范名 的索引；
//   两个规范名小写后冲突时 last-write-wins（继承自原始设计的已知歧义）
// - 枚举（Names）始终返回规范名
type Bag struct {
	ignoreCase bool
	values     map[string]Value
	fold       map[string]string // 小写名 -> 规范名；仅 ignoreCase=true 时维护
}

func New(ignoreCase bool) *Bag {
	b := &Bag{
		ignoreCase: ignoreCase,
		values:     make(map[string]Value),
	}
	if ignoreCase {
		b.fold = make(map[string]string)
	}
	return b
}

func (b *Bag) IgnoreCase() bool { return b.ignoreCase }

// Set 记录一个值；name 始终作为规范名保留。
func (b *Bag) Set(name string, v Value) {
	if b.ignoreCase {
		low := strings.ToLower(name)
		if prev, ok := b.fold[low]; ok && prev != name {
			// 冲突的旧规范名让位（last-write-wins）。
			delete(b.values, prev)
		}
		b.fold[low] = name
	}
	b.values[name] = v
}

// Get 按名字查找；ignoreCase=true 时先经过小写索引。
func (b *Bag) Get(name string) (Value, error) {
	if v, ok := b.values[name]; ok {
		return v, nil
	}
	if b.ignoreCase {
		if canon, ok := b.fold[strings.ToLower(name)]; ok {
			if v, ok := b.values[canon]; ok {
				return v, nil
			}
		}
	}
	return Value{}, &NotFoundError{Name: name}
}

func (b *Bag) Has(name string) bool {
	_, err := b.Get(name)
	return err == nil
}

func (b *Bag) Len() int { return len(b.values) }

// Names 返回排序后的规范名列表（确定性枚举）。
func (b *Bag) Names() []string {
	out := make([]string, 0, len(b.values))
	for k := range b.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge 把 other 的全部值并入 b：新键/同键覆盖，b 独有的键保留。
// update 的“只增改、不删除”语义由这里保证。
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for name, v := range other.values {
		b.Set(name, v)
	}
}

// Equal 是结构相等：ignoreCase 标志与全部 (规范名, 值) 对一致。
func (b *Bag) Equal(other *Bag) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.ignoreCase != other.ignoreCase || len(b.values) != len(other.values) {
		return false
	}
	for name, v := range b.values {
		ov, ok := other.values[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

type bagJSON struct {
	IgnoreCase bool             `json:"ignore_case"`
	Values     map[string]Value `json:"values"`
}

// MarshalJSON / UnmarshalJSON 实现快照往返：值、规范名与 ignoreCase 全部保留，
// 小写索引在恢复时重建。
func (b *Bag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bagJSON{IgnoreCase: b.ignoreCase, Values: b.values})
}

func (b *Bag) UnmarshalJSON(data []byte) error {
	var raw bagJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	nb := New(raw.IgnoreCase)
	for name, v := range raw.Values {
		nb.Set(name, v)
	}
	*b = *nb
	return nil
}
