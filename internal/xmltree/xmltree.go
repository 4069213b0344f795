package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrBadXML 标记输入不是 well-formed XML。上层会把它折叠进自己的错误家族。
var ErrBadXML = errors.New("xmltree: bad xml")

// Node 是通用元素树节点：标签名保持文档里的原始大小写。
//
// 约束：只保留元素名 / 文本 / 直接子元素；属性与命名空间对 thetvdb 的
// 旧版 XML 没有意义，解析时丢弃。
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Parse 把原始字节解析为元素树。
// 非 well-formed 的输入返回包装了 ErrBadXML 的错误，不做任何恢复。
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple document elements", ErrBadXML)
				}
				root = n
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrBadXML)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element", ErrBadXML)
	}
	root.trim()
	return root, nil
}

// trim 去掉文本两端的空白（元素间缩进会被解析为 CharData）。
func (n *Node) trim() {
	n.Text = strings.TrimSpace(n.Text)
	for _, c := range n.Children {
		c.trim()
	}
}

// Find 返回第一个名字完全匹配的直接子元素，找不到时返回 nil。
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll 按文档顺序返回全部名字匹配的直接子元素。
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
