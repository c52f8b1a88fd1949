package book

import "strings"

// PageCount 返回页数。
func (b *Book) PageCount() int { return len(b.pages) }

// Page 返回第 i 页，越界时返回 nil。
func (b *Book) Page(i int) *Page {
	if i < 0 || i >= len(b.pages) {
		return nil
	}
	return b.pages[i]
}

// PageText 返回第 i 页的渲染文本：首行继承前缀加全部内容。
func (b *Book) PageText(i int) string {
	pg := b.Page(i)
	if pg == nil {
		return ""
	}
	return pg.Rendered()
}

// CurrentPageText 返回光标所在页的渲染文本。
func (b *Book) CurrentPageText() string { return b.PageText(b.cur.Page) }

// CurrentLineText 返回光标所在行的原始内容。
func (b *Book) CurrentLineText() string {
	p, l, _ := b.clamp(b.cur.Page, b.cur.Line, 0)
	return b.line(p, l).Text()
}

// CurrentLineRendered 返回光标所在行带继承前缀的内容。
func (b *Book) CurrentLineRendered() string {
	p, l, _ := b.clamp(b.cur.Page, b.cur.Line, 0)
	return string(b.line(p, l).rendered())
}

// IsEmpty 判断书中是否只有空白。
func (b *Book) IsEmpty() bool {
	for _, pg := range b.pages {
		if !pg.blank() {
			return false
		}
	}
	return true
}

// Text 返回整本书的原始字符流。
func (b *Book) Text() string {
	return string(b.collect(0, 0, 0))
}

// PageStrings 返回可导出的各页文本，等同于复制全部页面。
func (b *Book) PageStrings() []string {
	return b.CopyPages(0, len(b.pages)-1)
}

// Snapshot 是书的只读快照，供渲染器与调试输出使用。
type Snapshot struct {
	Title    string         `json:"title"`
	Author   string         `json:"author"`
	Provider string         `json:"provider"`
	Width    float64        `json:"width"`
	MaxLines int            `json:"maxLines"`
	MaxChars int            `json:"maxChars"`
	Cursor   Cursor         `json:"cursor"`
	Pages    []PageSnapshot `json:"pages"`
}

// PageSnapshot 记录一页的行与字符数。
type PageSnapshot struct {
	Chars int            `json:"chars"`
	Lines []LineSnapshot `json:"lines"`
}

// LineSnapshot 记录一行的继承前缀、原始内容与像素宽度。
type LineSnapshot struct {
	Prefix string  `json:"prefix,omitempty"`
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
}

// Rendered 返回 prefix + text，去掉行尾换行。
func (l LineSnapshot) Rendered() string {
	return l.Prefix + strings.TrimSuffix(l.Text, "\n")
}

// Snapshot 生成当前状态的快照。
func (b *Book) Snapshot() *Snapshot {
	snap := &Snapshot{
		Title:    b.Title,
		Author:   b.Author,
		Provider: b.box.Provider.Name(),
		Width:    b.box.Width,
		MaxLines: b.box.MaxLines,
		MaxChars: b.box.MaxChars,
		Cursor:   b.cur,
		Pages:    make([]PageSnapshot, 0, len(b.pages)),
	}
	for _, pg := range b.pages {
		ps := PageSnapshot{Chars: pg.Len(), Lines: make([]LineSnapshot, 0, len(pg.lines))}
		for _, ln := range pg.lines {
			ps.Lines = append(ps.Lines, LineSnapshot{
				Prefix: ln.prefix,
				Text:   string(ln.text),
				Width:  b.box.TextWidth(ln.rendered()),
			})
		}
		snap.Pages = append(snap.Pages, ps)
	}
	return snap
}
