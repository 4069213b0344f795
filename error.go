package gotvdb

import (
	"errors"
	"fmt"
)

// ErrTVDB 是整个错误家族的根：库抛出的所有错误都满足 errors.Is(err, ErrTVDB)。
// 调用方可以宽泛地捕获整个家族，也可以用 errors.As 精确匹配具体种类。
var ErrTVDB = errors.New("gotvdb")

// BadData 表示服务端返回的 XML 不是 well-formed。
// 解析失败原样向上传播，核心不做任何恢复或重试。
type BadData struct {
	Err error
}

func (e *BadData) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("XML 数据无效：%v", e.Err)
	}
	return "XML 数据无效"
}

func (e *BadData) Unwrap() []error { return family(e.Err) }

// ConnectionError 表示传输层无法到达目标 URL。
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("无法连接 %s：%v", e.URL, e.Err)
	}
	return fmt.Sprintf("无法连接 %s", e.URL)
}

func (e *ConnectionError) Unwrap() []error { return family(e.Err) }

// AttributeError 表示访问了实体上不存在的字段。
//
// Known 区分两种逻辑情形（错误种类相同，错误细节不同）：
// - true：该实体种类声明过这个字段，只是还没水合（先调用 Update/LoadX）
// - false：字段名根本不被认识（多半是拼写错误）
type AttributeError struct {
	Kind  string // 实体种类：Show / Season / Episode / Actor / Banner
	Name  string
	Known bool
}

func (e *AttributeError) Error() string {
	if e.Known {
		return fmt.Sprintf("%s 的字段 %q 尚未加载（先调用 Update 或对应的 LoadX）", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s 没有字段 %q", e.Kind, e.Name)
}

func (e *AttributeError) Unwrap() []error { return family(nil) }

// IndexError 表示对 Show/Season/SearchResult 的越界索引。永远不会被静默钳位。
type IndexError struct {
	Kind  string // Show / Season / SearchResult
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s 中不存在索引 %d", e.Kind, e.Index)
}

func (e *IndexError) Unwrap() []error { return family(nil) }

// ValueError 表示参数值非法（目前只有语言码一种来源）。
type ValueError struct {
	What  string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("非法%s：%q", e.What, e.Value)
}

func (e *ValueError) Unwrap() []error { return family(nil) }

// IDError 表示 show/episode 标识无效或服务端查不到
//（非数字、空串、非正数与服务端 404 统一归并到这一种）。
type IDError struct {
	Kind  string // show / episode
	Value string
	Err   error
}

func (e *IDError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("无效的 %s id %q：%v", e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("无效的 %s id %q", e.Kind, e.Value)
}

func (e *IDError) Unwrap() []error { return family(e.Err) }

func family(cause error) []error {
	if cause != nil {
		return []error{ErrTVDB, cause}
	}
	return []error{ErrTVDB}
}
