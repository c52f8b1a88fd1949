package book

// InsertText 在 (page, line, char) 处插入 text 并重排后续内容。
// 光标落在插入点；moveAfter 为真时落在插入内容之后。坐标越界时收敛，插入点不会落在指令内部。
func (b *Book) InsertText(page, line, char int, text string, moveAfter bool) {
	p, l, c := b.clamp(page, line, char)
	c = b.box.snapStart(b.line(p, l).text, c)

	rs := []rune(text)
	off := b.offsetOf(p, l, c)
	if len(rs) > 0 {
		b.splice(p, l, off, off, rs)
	}
	if moveAfter {
		off += len(rs)
	}
	b.cur = b.locate(off)
}

// RemoveRange 删除 from 与 to 之间的内容，区间端点向外扩展到完整指令。
// to 不在 from 之后时什么也不做。光标保持其逻辑位置：位于区间之前不变，
// 位于区间内移到区间起点，位于区间之后随删除内容前移。
func (b *Book) RemoveRange(fromPage, fromLine, fromChar, toPage, toLine, toChar int) {
	fp, fl, fc := b.clamp(fromPage, fromLine, fromChar)
	tp, tl, tc := b.clamp(toPage, toLine, toChar)
	fc = b.box.snapStart(b.line(fp, fl).text, fc)
	tc = b.box.snapEnd(b.line(tp, tl).text, tc)
	b.removeSpan(fp, fl, b.offsetOf(fp, fl, fc), b.offsetOf(tp, tl, tc))
}

// removeSpan 删除逻辑区间 [from, to) 并按删除规则调整光标；(p, l) 为 from 所在的行。
func (b *Book) removeSpan(p, l, from, to int) {
	if to <= from {
		return
	}
	cur := b.offsetOf(b.cur.Page, b.cur.Line, b.cur.Pos)
	switch {
	case cur >= to:
		cur -= to - from
	case cur > from:
		cur = from
	}
	b.splice(p, l, from, to, nil)
	b.cur = b.locate(cur)
}

// RemoveChar 删除光标处的一个原子单元：连续的完整指令整体删除，否则删除一个字符。
//
// 向前删除到达行尾时与下一行（或下一页）合并；若下一页全为空白则整页删除。
// 向后删除位于行首时与上一行（或上一页末尾）合并。到达文档边界时什么也不做。
func (b *Book) RemoveChar(forward bool) {
	p, l, c := b.clamp(b.cur.Page, b.cur.Line, b.cur.Pos)
	b.cur = Cursor{Page: p, Line: l, Pos: c}
	if forward {
		b.removeForward(p, l, c)
		return
	}
	b.removeBackward(p, l, c)
}

func (b *Book) removeForward(p, l, c int) {
	ln := b.line(p, l)
	if l == len(b.pages[p].lines)-1 && c >= ln.contentEnd() && p+1 < len(b.pages) && b.pages[p+1].blank() {
		b.dropBlankPage(p, l, c)
		return
	}

	from := b.offsetOf(p, l, c)
	tp, tl, text, at := p, l, ln.text, c
	if c >= len(ln.text) {
		np, nl, ok := b.nextLine(p, l)
		if !ok {
			return
		}
		tp, tl, text, at = np, nl, b.line(np, nl).text, 0
	}
	n := b.box.unitAfter(text, at)
	if n == 0 {
		return
	}
	b.removeSpan(tp, tl, from, from+n)
}

// dropBlankPage 删除光标所在页之后的空白页。若它是最后一页，连同本页末尾的换行一并删除，
// 保证文档不以换行结束。
func (b *Book) dropBlankPage(p, l, c int) {
	start := b.offsetOf(p+1, 0, 0)
	if p+2 < len(b.pages) {
		b.removeSpan(p+1, 0, start, b.offsetOf(p+2, 0, 0))
		return
	}
	b.removeSpan(p, l, b.offsetOf(p, l, c), b.length())
}

func (b *Book) removeBackward(p, l, c int) {
	to := b.offsetOf(p, l, c)
	if c > 0 {
		n := b.box.unitBefore(b.line(p, l).text, c)
		b.removeSpan(p, l, to-n, to)
		return
	}
	pp, pl := b.backOne(p, l)
	if pp == p && pl == l {
		return
	}
	prev := b.line(pp, pl).text
	n := 1
	if !endsWithNewline(prev) {
		n = b.box.unitBefore(prev, len(prev))
	}
	if n == 0 {
		// 上一行为空（只会出现在页尾），继续向前合并。
		b.cur = Cursor{Page: pp, Line: pl, Pos: 0}
		b.removeBackward(pp, pl, 0)
		return
	}
	b.removeSpan(pp, pl, to-n, to)
}
