package book

// Line 是最小的可寻址文本单元。text 为原始内容（含指令，不含继承前缀），
// prefix 是从上一行末尾继承的格式状态，仅用于测量与渲染，不参与光标寻址。
type Line struct {
	text   []rune
	prefix string
}

// Text 返回行的原始内容。
func (l *Line) Text() string { return string(l.text) }

// Prefix 返回继承的格式前缀。
func (l *Line) Prefix() string { return l.prefix }

// Len 返回原始内容的字符数。
func (l *Line) Len() int { return len(l.text) }

// rendered 返回 prefix + text，用于测量与渲染。
func (l *Line) rendered() []rune {
	out := make([]rune, 0, len(l.prefix)+len(l.text))
	out = append(out, []rune(l.prefix)...)
	return append(out, l.text...)
}

// contentEnd 返回光标在该行可到达的最远位置：行尾换行符之前。
func (l *Line) contentEnd() int {
	if endsWithNewline(l.text) {
		return len(l.text) - 1
	}
	return len(l.text)
}

func (l *Line) clone() *Line {
	return &Line{text: append([]rune(nil), l.text...), prefix: l.prefix}
}

func endsWithNewline(text []rune) bool {
	return len(text) > 0 && text[len(text)-1] == '\n'
}

// Segment 是换行算法产出的一行：内容以及该行继承的格式前缀。
type Segment struct {
	Text   []rune
	Prefix string
}

// Wrap 按像素宽度把 raw 切分为若干行。
//
// 每一段先求出 prefix+raw 在宽度内能容纳的字符数；剩余内容放得下时即为最后一段。
// 否则依次寻找换行、空格作为断点（断点字符留在当前段末尾），都没有时在可容纳处硬断。
// 下一段的前缀由 prefix+当前段 重放得到。以换行结尾的内容总会再产出一个空段。
func (b *Box) Wrap(raw []rune, inherited string) []Segment {
	var out []Segment
	prefix := inherited
	for {
		pre := []rune(prefix)
		full := make([]rune, 0, len(pre)+len(raw))
		full = append(append(full, pre...), raw...)
		maxChars := b.FitIndex(full) - len(pre)
		if maxChars < 1 {
			maxChars = 1
		}

		cut := -1
		if k := indexRune(raw, '\n'); k >= 0 && k < maxChars {
			cut = k + 1
		} else if len(raw) <= maxChars {
			return append(out, Segment{Text: raw, Prefix: prefix})
		} else {
			cut = b.breakPoint(raw, maxChars)
		}

		seg := raw[:cut:cut]
		raw = raw[cut:]
		out = append(out, Segment{Text: seg, Prefix: prefix})
		prefix = b.Provider.ActiveFormatting(append(append([]rune(nil), pre...), seg...))
		if len(raw) == 0 {
			// 以换行结尾：后面仍有一个（空）行。
			return append(out, Segment{Prefix: prefix})
		}
	}
}

// breakPoint 在 raw[:maxChars] 中从后向前寻找空格；找不到时在 maxChars 处硬断。
// maxChars 由 fit 给出，总落在指令边界上。
func (b *Box) breakPoint(raw []rune, maxChars int) int {
	for i := maxChars - 1; i >= 0; i-- {
		if raw[i] == ' ' {
			return i + 1
		}
	}
	if e := b.snapEnd(raw, maxChars); e > maxChars && b.snapStart(raw, maxChars) == 0 {
		return e
	}
	return b.snapStart(raw, maxChars)
}

func indexRune(text []rune, r rune) int {
	for i, c := range text {
		if c == r {
			return i
		}
	}
	return -1
}
