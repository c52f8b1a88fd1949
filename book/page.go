package book

// Page 是容量受限的行序列：至多 MaxLines 行，内容合计至多 MaxChars 个字符。
type Page struct {
	box   *Box
	lines []*Line
}

// NewPage 创建只含一个空行的页面。
func NewPage(box Box) *Page {
	nb := box.normalized()
	return newPageWith(&nb, "")
}

func newPageWith(box *Box, prefix string) *Page {
	return &Page{box: box, lines: []*Line{{prefix: prefix}}}
}

// LineCount 返回行数。
func (p *Page) LineCount() int { return len(p.lines) }

// Line 返回第 i 行，越界时返回 nil。
func (p *Page) Line(i int) *Line {
	if i < 0 || i >= len(p.lines) {
		return nil
	}
	return p.lines[i]
}

// Len 返回全部行内容的字符数之和。
func (p *Page) Len() int {
	n := 0
	for _, l := range p.lines {
		n += len(l.text)
	}
	return n
}

// Text 返回各行原始内容拼接的结果（不含前缀）。
func (p *Page) Text() string {
	return string(p.stream())
}

func (p *Page) stream() []rune {
	out := make([]rune, 0, p.Len())
	for _, l := range p.lines {
		out = append(out, l.text...)
	}
	return out
}

// Rendered 返回首行前缀加全部内容，跨页时可独立还原格式。
func (p *Page) Rendered() string {
	return p.lines[0].prefix + p.Text()
}

// blank 判断页面是否只含空格与换行。
func (p *Page) blank() bool {
	for _, l := range p.lines {
		for _, r := range l.text {
			if r != ' ' && r != '\n' {
				return false
			}
		}
	}
	return true
}

// empty 判断页面是否只有一个空行。
func (p *Page) empty() bool {
	return len(p.lines) == 1 && len(p.lines[0].text) == 0
}

// endFormatting 返回页尾的格式状态，作为下一页首行的前缀。
func (p *Page) endFormatting() string {
	last := p.lines[len(p.lines)-1]
	return p.box.Provider.ActiveFormatting(last.rendered())
}

// prefixAfter 返回第 i 行之后一行应继承的前缀。
func (p *Page) prefixAfter(i int) string {
	return p.box.Provider.ActiveFormatting(p.lines[i].rendered())
}

// InsertAt 在 (line, char) 处插入 text 并重新分行，返回放不下的溢出文本。
func (p *Page) InsertAt(line, char int, text string) string {
	rest, _ := p.insert(line, char, []rune(text))
	return string(rest)
}

// insert 把 text 合并进目标行，与其后所有行一起重新换行。
//
// 若合并后的字符数超出本页剩余容量，先做硬切分：在容量边界之前最后一个空格（或换行）处截断，
// 没有空格时在边界处截断（不拆开指令）；截断之后的内容作为溢出。换行结果超过行数上限时，
// 多出的段同样并入溢出。spill 表示需要下一页承接，即使溢出为空（页尾以换行结束，下一页从空行开始）。
func (p *Page) insert(li, c int, text []rune) ([]rune, bool) {
	li = clampInt(li, 0, len(p.lines)-1)
	cur := p.lines[li]
	c = clampInt(c, 0, len(cur.text))

	prefix := cur.prefix
	if li > 0 {
		prefix = p.prefixAfter(li - 1)
	}

	merged := make([]rune, 0, len(cur.text)+len(text))
	merged = append(merged, cur.text[:c]...)
	merged = append(merged, text...)
	merged = append(merged, cur.text[c:]...)
	for _, l := range p.lines[li+1:] {
		merged = append(merged, l.text...)
	}
	p.lines = p.lines[:li]

	var (
		carry []rune
		spill bool
	)
	if budget := p.box.MaxChars - p.Len(); len(merged) > budget {
		cut := p.hardSplit(merged, budget)
		if cut <= 0 && li > 0 {
			return merged, true
		}
		if cut <= 0 {
			cut = len(merged)
		}
		carry = append([]rune(nil), merged[cut:]...)
		merged = merged[:cut]
		spill = len(carry) > 0
	}

	segs := p.box.Wrap(merged, prefix)
	if spill && len(segs) > 1 && len(segs[len(segs)-1].Text) == 0 {
		segs = segs[:len(segs)-1]
	}
	for k, s := range segs {
		if len(p.lines) >= p.box.MaxLines {
			var rest []rune
			for _, r := range segs[k:] {
				rest = append(rest, r.Text...)
			}
			return append(rest, carry...), true
		}
		p.lines = append(p.lines, &Line{text: append([]rune(nil), s.Text...), prefix: s.Prefix})
	}
	if len(p.lines) == 0 {
		p.lines = append(p.lines, &Line{prefix: prefix})
	}
	return carry, spill
}

// hardSplit 返回 merged 在 budget 个字符以内的截断位置。
func (p *Page) hardSplit(merged []rune, budget int) int {
	if budget <= 0 {
		return 0
	}
	for i := budget - 1; i >= 0; i-- {
		if merged[i] == ' ' || merged[i] == '\n' {
			return i + 1
		}
	}
	if s := p.box.snapStart(merged, budget); s > 0 || p.Len() > 0 {
		return s
	}
	return p.box.snapEnd(merged, budget)
}

// Pad 用换行填满页面：最后一行补一个换行，然后追加只含换行的行，直到行数或字符数达到上限。
// 在其后追加新页面之前调用，以固定页面边界。
func (p *Page) Pad() *Page {
	last := p.lines[len(p.lines)-1]
	last.text = p.box.Provider.Sanitize(last.text)
	if !endsWithNewline(last.text) && p.Len() < p.box.MaxChars {
		last.text = append(last.text, '\n')
	}
	for len(p.lines) < p.box.MaxLines && p.Len() < p.box.MaxChars {
		prefix := p.prefixAfter(len(p.lines) - 1)
		p.lines = append(p.lines, &Line{text: []rune{'\n'}, prefix: prefix})
	}
	return p
}

func (p *Page) clone(box *Box) *Page {
	out := &Page{box: box, lines: make([]*Line, len(p.lines))}
	for i, l := range p.lines {
		out.lines[i] = l.clone()
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
