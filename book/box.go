package book

import (
	"github.com/ByLCY/quire/format"
	"github.com/ByLCY/quire/metrics"
)

// 该文件定义虚拟文本框（宽度与容量）以及基于像素的测量工具，Line/Page/Book 共用。

const (
	DefaultWidth    = 114.0
	DefaultMaxLines = 13
	DefaultMaxChars = 255

	// minChars 保证一页至少能容纳最长的扩展指令（14 个字符）。
	minChars = 16
)

// Box 描述书页的文本框：格式语法、字宽度量、像素宽度与每页容量。
// 一个 Book 创建后 Box 不再改变。
type Box struct {
	Provider format.Provider
	Metrics  metrics.Metrics
	Width    float64
	MaxLines int
	MaxChars int
}

// DefaultBox 返回默认文本框：legacy 语法、原版字宽、114px、13 行、255 字符。
func DefaultBox() Box {
	return Box{
		Provider: format.Legacy{},
		Metrics:  metrics.Vanilla{},
		Width:    DefaultWidth,
		MaxLines: DefaultMaxLines,
		MaxChars: DefaultMaxChars,
	}
}

// normalized 为缺失字段补上默认值。
func (b Box) normalized() Box {
	if b.Provider == nil {
		b.Provider = format.Legacy{}
	}
	if b.Metrics == nil {
		b.Metrics = metrics.Vanilla{}
	}
	if b.Width <= 0 {
		b.Width = DefaultWidth
	}
	if b.MaxLines <= 0 {
		b.MaxLines = DefaultMaxLines
	}
	if b.MaxChars <= 0 {
		b.MaxChars = DefaultMaxChars
	}
	if b.MaxChars < minChars {
		b.MaxChars = minChars
	}
	return b
}

// TextWidth 返回 text 的像素宽度。指令与换行不占宽度，粗体样式会影响后续字形。
func (b *Box) TextWidth(text []rune) float64 {
	var (
		w    float64
		bold bool
	)
	for i := 0; i < len(text); {
		if n := b.Provider.DirectiveLength(text, i); n > 0 {
			if d, ok := b.Provider.Directive(text, i); ok {
				bold = boldAfter(bold, d)
			}
			i += n
			continue
		}
		w += b.Metrics.Advance(text[i], bold)
		i++
	}
	return w
}

// FitIndex 返回 text 在文本框宽度内能容纳的最长前缀长度。
func (b *Box) FitIndex(text []rune) int {
	idx, _, _ := b.fit(text, b.Width)
	return idx
}

// FitIndexBlind 与 fit 相同，但剩余像素超过下一个字形宽度的一半时多算一个字符，
// 用于上下移动光标时近似定位。
func (b *Box) FitIndexBlind(text []rune, budget float64) int {
	idx, used, next := b.fit(text, budget)
	if next > 0 && budget-used > next/2 {
		idx++
	}
	return idx
}

// fit 向前扫描，整体跳过指令（包括末尾截断的指令），遇到换行时将其计入后停止。
// 返回前缀长度、已用宽度以及第一个放不下的字形宽度。
func (b *Box) fit(text []rune, budget float64) (int, float64, float64) {
	var (
		idx  int
		used float64
		bold bool
	)
	for idx < len(text) {
		if n := b.Provider.DirectiveLength(text, idx); n > 0 {
			if d, ok := b.Provider.Directive(text, idx); ok {
				bold = boldAfter(bold, d)
			}
			idx += n
			if idx > len(text) {
				idx = len(text)
			}
			continue
		}
		r := text[idx]
		if r == '\n' {
			return idx + 1, used, 0
		}
		adv := b.Metrics.Advance(r, bold)
		if used+adv > budget {
			return idx, used, adv
		}
		used += adv
		idx++
	}
	return idx, used, 0
}

func boldAfter(bold bool, d format.Directive) bool {
	switch d.Kind {
	case format.KindColor, format.KindReset:
		return false
	case format.KindStyle:
		return bold || d.Style&format.Bold != 0
	}
	return bold
}

// span 返回严格包含位置 i 的指令区间 [start, end)。
func (b *Box) span(text []rune, i int) (int, int, bool) {
	for j := 0; j < len(text) && j < i; {
		n := b.Provider.DirectiveLength(text, j)
		if n == 0 {
			j++
			continue
		}
		end := j + n
		if end > len(text) {
			end = len(text)
		}
		if i < end {
			return j, end, true
		}
		j = end
	}
	return 0, 0, false
}

// snapStart 把落在指令内部的位置移到指令开头。
func (b *Box) snapStart(text []rune, i int) int {
	if s, _, ok := b.span(text, i); ok {
		return s
	}
	return i
}

// snapEnd 把落在指令内部的位置移到指令末尾。
func (b *Box) snapEnd(text []rune, i int) int {
	if _, e, ok := b.span(text, i); ok {
		return e
	}
	return i
}

// snapOut 把落在指令内部的位置移到较近的边界。
func (b *Box) snapOut(text []rune, i int) int {
	if s, e, ok := b.span(text, i); ok {
		if i-s <= e-i {
			return s
		}
		return e
	}
	return i
}

// unitAfter 返回位置 i 之后的原子单元长度：连续的完整指令整体算一个单元，否则为一个字符。
func (b *Box) unitAfter(text []rune, i int) int {
	j := i
	for j < len(text) {
		n := b.Provider.DirectiveLength(text, j)
		if n == 0 {
			break
		}
		j += n
	}
	if j > len(text) {
		j = len(text)
	}
	if j > i {
		return j - i
	}
	if i < len(text) {
		return 1
	}
	return 0
}

// unitBefore 与 unitAfter 对称，向后寻找结束于 i 的连续指令。
func (b *Box) unitBefore(text []rune, i int) int {
	j := i
	for j > 0 {
		s, ok := b.Provider.DirectiveStart(text, j)
		if !ok {
			break
		}
		j = s
	}
	if j < i {
		return i - j
	}
	if i > 0 {
		return 1
	}
	return 0
}

// step 返回 i 之后单个原子位置：一个完整指令或一个字符，用于左右移动光标。
func (b *Box) step(text []rune, i int) int {
	n := b.Provider.DirectiveLength(text, i)
	if n == 0 {
		n = 1
	}
	if i+n > len(text) {
		return len(text)
	}
	return i + n
}

// stepBack 与 step 对称。
func (b *Box) stepBack(text []rune, i int) int {
	if i <= 0 {
		return 0
	}
	if s, ok := b.Provider.DirectiveStart(text, i); ok {
		// 截断的 §x 指令内部也能解析出完整的短指令。
		return b.snapStart(text, s)
	}
	return b.snapStart(text, i-1)
}
