package book

// Direction 是光标移动方向。
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Cursor 返回当前光标。
func (b *Book) Cursor() Cursor { return b.cur }

// SetCursor 把光标放到 (page, line, char)：坐标收敛到合法范围，不停在行尾换行之后，也不停在指令内部。
func (b *Book) SetCursor(page, line, char int) {
	p, l, c := b.clamp(page, line, char)
	ln := b.line(p, l)
	if c > ln.contentEnd() {
		c = ln.contentEnd()
	}
	b.cur = Cursor{Page: p, Line: l, Pos: b.box.snapOut(ln.text, c)}
}

// CursorX 返回光标在当前行的像素横坐标（包含继承前缀的格式影响）。
func (b *Book) CursorX() float64 {
	p, l, c := b.clamp(b.cur.Page, b.cur.Line, b.cur.Pos)
	ln := b.line(p, l)
	text := append([]rune(ln.prefix), ln.text[:c]...)
	return b.box.TextWidth(text)
}

// MoveCursor 按方向移动光标。
//
// 左右移动一次跨过一个字符或一个完整指令，到达行尾/行首时换到相邻行（或相邻页），
// 行尾换行视为一个字符。上下移动保持像素横坐标，在目标行上按就近原则定位；
// 文档首行向上、末行向下只做位置收敛。
func (b *Book) MoveCursor(dir Direction) {
	p, l, c := b.clamp(b.cur.Page, b.cur.Line, b.cur.Pos)
	b.cur = Cursor{Page: p, Line: l, Pos: c}
	switch dir {
	case Left:
		b.moveLeft(p, l, c)
	case Right:
		b.moveRight(p, l, c)
	case Up, Down:
		b.moveVertical(p, l, c, dir == Down)
	}
}

func (b *Book) moveRight(p, l, c int) {
	ln := b.line(p, l)
	if c < ln.contentEnd() {
		c = b.box.step(ln.text, c)
		if c < len(ln.text) || l == len(b.pages[p].lines)-1 {
			b.cur.Pos = c
			return
		}
	}
	if np, nl, ok := b.nextLine(p, l); ok {
		b.cur = Cursor{Page: np, Line: nl}
	}
}

func (b *Book) moveLeft(p, l, c int) {
	if c > 0 {
		b.cur.Pos = b.box.stepBack(b.line(p, l).text, c)
		return
	}
	pp, pl := b.backOne(p, l)
	if pp == p && pl == l {
		return
	}
	prev := b.line(pp, pl)
	pos := prev.contentEnd()
	if !endsWithNewline(prev.text) {
		pos = b.box.stepBack(prev.text, pos)
	}
	b.cur = Cursor{Page: pp, Line: pl, Pos: pos}
}

func (b *Book) moveVertical(p, l, c int, down bool) {
	tp, tl, ok := b.nextLine(p, l)
	if !down {
		tp, tl = b.backOne(p, l)
		ok = tp != p || tl != l
	}
	if !ok {
		ln := b.line(p, l)
		b.cur.Pos = b.box.snapOut(ln.text, min(c, ln.contentEnd()))
		return
	}

	x := b.CursorX()
	target := b.line(tp, tl)
	idx := b.box.FitIndexBlind(target.rendered(), x) - len([]rune(target.prefix))
	idx = clampInt(idx, 0, len(target.text))
	if idx > 0 && target.text[idx-1] == '\n' {
		idx--
	}
	b.cur = Cursor{Page: tp, Line: tl, Pos: b.box.snapOut(target.text, idx)}
}

// TurnPage 按 delta 翻页，光标落在目标页首行开头。翻过最后一页时填满最后一页并追加一个新空页，
// 最后一页本身为空页时停在该页。
func (b *Book) TurnPage(delta int) {
	t := b.cur.Page + delta
	if t < 0 {
		t = 0
	}
	if t >= len(b.pages) {
		t = len(b.pages) - 1
		if !b.pages[t].empty() {
			b.appendStream(nil, true)
			t = len(b.pages) - 1
		}
	}
	b.cur = Cursor{Page: t}
}
