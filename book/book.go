package book

// 该文件定义 Book 文档模型：页面序列、元数据与光标，以及所有编辑共用的重排流程。
//
// 整本书被视为一条连续的字符流。每次编辑都从编辑点的上一行截断（便于文本回流到软换行的上一行），
// 再把之后的全部内容重新灌入页面；光标通过逻辑偏移（距文档开头的字符数）在重排后重新定位。

// Cursor 记录光标所在的页、行与行内字符偏移（不含继承前缀）。
type Cursor struct {
	Page int `json:"page"`
	Line int `json:"line"`
	Pos  int `json:"pos"`
}

// Book 是一本书：至少一页、每页至少一行，外加标题、作者与光标。
// Book 不是并发安全的，多线程宿主需自行串行化调用。
type Book struct {
	Title  string
	Author string

	box   *Box
	pages []*Page
	cur   Cursor
}

// New 创建只含一个空页的书。
func New(box Box) *Book {
	nb := box.normalized()
	return &Book{box: &nb, pages: []*Page{newPageWith(&nb, "")}}
}

// Load 由一组页面文本批量创建书：每段文本至少占据一页，放不下时自动续页。
func Load(box Box, title, author string, pages []string) *Book {
	b := New(box)
	b.Title = title
	b.Author = author
	for i, text := range pages {
		b.appendStream([]rune(text), i > 0)
	}
	b.cur = Cursor{}
	return b
}

// Box 返回书使用的文本框配置。
func (b *Book) Box() Box { return *b.box }

// appendStream 把 text 写到书末尾。newPage 为真时先填满最后一页再另起一页，
// 否则覆盖最后一页（调用方保证它是空页）。
func (b *Book) appendStream(text []rune, newPage bool) {
	if newPage {
		last := b.pages[len(b.pages)-1]
		last.Pad()
		b.pages = append(b.pages, newPageWith(b.box, last.endFormatting()))
	}
	b.restream(len(b.pages)-1, 0, text)
}

// line 返回 (p, l) 处的行。
func (b *Book) line(p, l int) *Line {
	return b.pages[p].lines[l]
}

// clamp 把坐标收敛到合法范围。
func (b *Book) clamp(p, l, c int) (int, int, int) {
	p = clampInt(p, 0, len(b.pages)-1)
	l = clampInt(l, 0, len(b.pages[p].lines)-1)
	c = clampInt(c, 0, len(b.pages[p].lines[l].text))
	return p, l, c
}

// backOne 返回 (p, l) 的上一行，可能位于上一页末尾；文档首行返回自身。
func (b *Book) backOne(p, l int) (int, int) {
	if l > 0 {
		return p, l - 1
	}
	if p > 0 {
		return p - 1, len(b.pages[p-1].lines) - 1
	}
	return p, l
}

// nextLine 返回 (p, l) 的下一行。
func (b *Book) nextLine(p, l int) (int, int, bool) {
	if l+1 < len(b.pages[p].lines) {
		return p, l + 1, true
	}
	if p+1 < len(b.pages) {
		return p + 1, 0, true
	}
	return p, l, false
}

// offsetOf 返回 (p, l, c) 距文档开头的逻辑偏移。
func (b *Book) offsetOf(p, l, c int) int {
	off := 0
	for i := 0; i < p; i++ {
		off += b.pages[i].Len()
	}
	for i := 0; i < l; i++ {
		off += len(b.pages[p].lines[i].text)
	}
	return off + c
}

// length 返回整本书的字符数。
func (b *Book) length() int {
	n := 0
	for _, pg := range b.pages {
		n += pg.Len()
	}
	return n
}

// collect 返回从 (p, l, c) 起直到文档末尾的全部内容。
func (b *Book) collect(p, l, c int) []rune {
	var out []rune
	out = append(out, b.pages[p].lines[l].text[c:]...)
	for _, ln := range b.pages[p].lines[l+1:] {
		out = append(out, ln.text...)
	}
	for _, pg := range b.pages[p+1:] {
		out = append(out, pg.stream()...)
	}
	return out
}

// restream 从 (sp, sl) 截断文档并把 stream 重新灌入，页面溢出时追加新页。
func (b *Book) restream(sp, sl int, stream []rune) {
	pg := b.pages[sp]
	pg.lines = pg.lines[:sl+1]
	pg.lines[sl].text = nil
	b.pages = b.pages[:sp+1]

	rest, spill := pg.insert(sl, 0, stream)
	for spill {
		prev := b.pages[len(b.pages)-1]
		np := newPageWith(b.box, prev.endFormatting())
		b.pages = append(b.pages, np)
		rest, spill = np.insert(0, 0, rest)
	}
}

// splice 用 text 替换逻辑区间 [from, to)；(p, l) 为 from 所在的行。
func (b *Book) splice(p, l, from, to int, text []rune) {
	sp, sl := b.backOne(p, l)
	base := b.offsetOf(sp, sl, 0)
	stream := b.collect(sp, sl, 0)
	from = clampInt(from-base, 0, len(stream))
	to = clampInt(to-base, from, len(stream))

	out := make([]rune, 0, len(stream)-(to-from)+len(text))
	out = append(out, stream[:from]...)
	out = append(out, text...)
	out = append(out, stream[to:]...)
	b.restream(sp, sl, out)
}

// locate 把逻辑偏移换算为光标坐标，并把落在指令内部的位置移到较近的边界
// （删除或插入可能让孤立的标记与后面的字符组成新的指令）。
func (b *Book) locate(off int) Cursor {
	c := b.position(off)
	c.Pos = b.box.snapOut(b.line(c.Page, c.Line).text, c.Pos)
	return c
}

// position 把逻辑偏移换算为坐标。
//
// 偏移恰好落在行尾时：行以换行结束则落到下一行开头（光标不停在换行之后）；
// 软换行的行落到下一行开头，但页内最后一行停在行尾。超出文档末尾时收敛到最后位置。
func (b *Book) position(off int) Cursor {
	if off < 0 {
		off = 0
	}
	for pi, pg := range b.pages {
		last := pi == len(b.pages)-1
		if n := pg.Len(); off > n && !last {
			off -= n
			continue
		}
		for li, ln := range pg.lines {
			n := len(ln.text)
			if off < n {
				return Cursor{Page: pi, Line: li, Pos: off}
			}
			if off == n && !endsWithNewline(ln.text) && li == len(pg.lines)-1 {
				return Cursor{Page: pi, Line: li, Pos: n}
			}
			off -= n
		}
		if !last {
			continue
		}
		li := len(pg.lines) - 1
		return Cursor{Page: pi, Line: li, Pos: pg.lines[li].contentEnd()}
	}
	return Cursor{}
}
