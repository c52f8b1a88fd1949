package book

import "strings"

// CopyPages 以纯文本返回第 from 到 to 页（含两端）：页内原始内容，去掉截断的指令与末尾的换行，
// 与分行状态无关。首行继承的格式前缀不写入文本，交给 InsertPages 或 Load 时由前一页重新推导，
// 因此导出再载入的结果保持不变。
func (b *Book) CopyPages(from, to int) []string {
	from = clampInt(from, 0, len(b.pages)-1)
	to = clampInt(to, 0, len(b.pages)-1)
	if to < from {
		return nil
	}
	out := make([]string, 0, to-from+1)
	for _, pg := range b.pages[from : to+1] {
		out = append(out, b.plain(pg))
	}
	return out
}

func (b *Book) plain(pg *Page) string {
	text := b.box.Provider.Sanitize(pg.stream())
	return strings.TrimRight(string(text), "\n")
}

// CutPages 复制第 from 到 to 页后将其从书中删除，返回复制的文本。
func (b *Book) CutPages(from, to int) []string {
	out := b.CopyPages(from, to)
	if out == nil {
		return nil
	}
	from = clampInt(from, 0, len(b.pages)-1)
	to = clampInt(to, 0, len(b.pages)-1)

	switch {
	case from == 0 && to == len(b.pages)-1:
		b.Clear()
	case to == len(b.pages)-1:
		// 删到文档末尾：从上一页内容末尾（其最后的换行之前）开始删除，避免留下以换行结束的文档。
		pl := len(b.pages[from-1].lines) - 1
		end := b.pages[from-1].lines[pl].contentEnd()
		b.removeSpan(from-1, pl, b.offsetOf(from-1, pl, end), b.length())
	default:
		b.removeSpan(from, 0, b.offsetOf(from, 0, 0), b.offsetOf(to+1, 0, 0))
	}
	return out
}

// InsertPages 在第 at 页之前插入若干页文本，每段文本至少占据一整页；原有的后续页面顺延。
// 光标移到第一张插入页的开头。
func (b *Book) InsertPages(at int, texts []string) {
	if len(texts) == 0 {
		return
	}
	at = clampInt(at, 0, len(b.pages))
	emptyBook := len(b.pages) == 1 && b.pages[0].empty()
	if emptyBook {
		at = 0
	}

	var tail []rune
	hasTail := at < len(b.pages) && !emptyBook
	if hasTail {
		tail = b.collect(at, 0, 0)
	}
	fresh := at == 0
	if fresh {
		b.pages = []*Page{newPageWith(b.box, "")}
	} else {
		b.pages = b.pages[:at]
	}

	for i, text := range texts {
		b.appendStream([]rune(text), !(fresh && i == 0))
	}
	if hasTail {
		b.appendStream(tail, true)
	}
	b.cur = Cursor{Page: clampInt(at, 0, len(b.pages)-1)}
}

// Clone 深拷贝整本书，包括光标。
func (b *Book) Clone() *Book {
	out := &Book{Title: b.Title, Author: b.Author, box: b.box, cur: b.cur}
	out.pages = make([]*Page, len(b.pages))
	for i, pg := range b.pages {
		out.pages[i] = pg.clone(b.box)
	}
	return out
}

// Clear 清空内容，只保留一个空页；标题与作者不变。
func (b *Book) Clear() {
	b.pages = []*Page{newPageWith(b.box, "")}
	b.cur = Cursor{}
}
