package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/format"
)

// Source 是从文档中提取出的书：标题、作者与各页文本。
type Source struct {
	Title  string
	Author string
	Pages  []string
}

// Extract 校验文档并提取元数据与页面。title/author 各至多出现一次，其他键视为错误。
func Extract(doc *Document) (*Source, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	src := &Source{}
	seen := map[string]bool{}
	for _, e := range doc.Entries {
		switch {
		case e.Page != nil:
			src.Pages = append(src.Pages, e.Page.Text())
		case e.Assignment != nil:
			a := e.Assignment
			if seen[a.Key] {
				return nil, fmt.Errorf("%s: 重复的字段 %s", a.Pos, a.Key)
			}
			seen[a.Key] = true
			switch a.Key {
			case "title":
				src.Title = string(a.Value)
			case "author":
				src.Author = string(a.Value)
			default:
				return nil, fmt.Errorf("%s: 未知字段 %s", a.Pos, a.Key)
			}
		}
	}
	return src, nil
}

// Load 解析文档并用 JSON 数据替换 ${path} 占位符；data 为空时不做替换。
func Load(name string, r io.Reader, data []byte, p format.Provider) (*Source, error) {
	if len(data) > 0 && !binding.Valid(data) {
		return nil, fmt.Errorf("数据不是合法的 JSON")
	}
	doc, err := Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", name, err)
	}
	src, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	src.Title = binding.Interpolate(src.Title, data, p)
	src.Author = binding.Interpolate(src.Author, data, p)
	for i, page := range src.Pages {
		src.Pages[i] = binding.Interpolate(page, data, p)
	}
	return src, nil
}

// Encode 以文档语法写出书：每页一个 page 块，每行文本一个字符串字面量。
func Encode(w io.Writer, src *Source) error {
	var b strings.Builder
	if src.Title != "" {
		fmt.Fprintf(&b, "title: %s\n", strconv.Quote(src.Title))
	}
	if src.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", strconv.Quote(src.Author))
	}
	for _, page := range src.Pages {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("page {\n")
		for _, part := range strings.SplitAfter(page, "\n") {
			if part == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", strconv.Quote(part))
		}
		b.WriteString("}\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
