package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/format"
	"github.com/ByLCY/quire/renderer"
)

const (
	defaultPageWidth  = 120.0
	defaultPageHeight = 160.0
	defaultMargin     = 10.0
	defaultFontSize   = 12.0

	// obfuscatedRune 代替乱码样式下的可见字符，保证输出稳定。
	obfuscatedRune = '#'
)

var headerColor = canvas.Hex("#808080")

// Renderer draws book snapshots into PDF pages via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

var _ renderer.Renderer = (*Renderer)(nil)

type faceKey struct {
	style canvas.FontStyle
	size  float64
	color string
}

// Options configures the canvas renderer. 页面尺寸与边距为毫米，字号为 pt。
type Options struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	FontSize   float64
	Fonts      fonts.Set
	Creator    string
}

// NewRenderer loads the font set into one family. Missing styles fall back
// to the regular face.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.PageWidth <= 0 {
		opts.PageWidth = defaultPageWidth
	}
	if opts.PageHeight <= 0 {
		opts.PageHeight = defaultPageHeight
	}
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaultFontSize
	}
	if opts.Creator == "" {
		opts.Creator = "quire"
	}
	if len(opts.Fonts.Regular) == 0 {
		return nil, fmt.Errorf("缺少正文字体")
	}

	family := canvas.NewFontFamily("quire")
	styles := []struct {
		data  []byte
		style canvas.FontStyle
	}{
		{opts.Fonts.Regular, canvas.FontRegular},
		{orRegular(opts.Fonts.Bold, opts.Fonts.Regular), canvas.FontBold},
		{orRegular(opts.Fonts.Italic, opts.Fonts.Regular), canvas.FontRegular | canvas.FontItalic},
		{orRegular(opts.Fonts.BoldItalic, opts.Fonts.Regular), canvas.FontBold | canvas.FontItalic},
	}
	for _, s := range styles {
		if err := family.LoadFont(s.data, 0, s.style); err != nil {
			return nil, fmt.Errorf("加载字体失败: %w", err)
		}
	}
	return &Renderer{opts: opts, family: family, faces: map[faceKey]*canvas.FontFace{}}, nil
}

func orRegular(data, regular []byte) []byte {
	if len(data) == 0 {
		return regular
	}
	return data
}

// Render renders one PDF page per book page.
func (r *Renderer) Render(snap *book.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("渲染快照为空")
	}
	if len(snap.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	provider, err := format.Lookup(snap.Provider)
	if err != nil {
		return nil, err
	}

	w, h := r.opts.PageWidth, r.opts.PageHeight
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(snap.Title, "", "", snap.Author, r.opts.Creator)
	for i, page := range snap.Pages {
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，y 向下

		r.drawHeader(ctx, i, len(snap.Pages))
		r.drawPage(ctx, provider, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeader 在页顶居中绘制 "Page i of n"。
func (r *Renderer) drawHeader(ctx *canvas.Context, index, total int) {
	face := r.face(0, r.opts.FontSize*0.75, headerColor)
	label := fmt.Sprintf("Page %d of %d", index+1, total)
	line := canvas.NewTextLine(face, label, canvas.Center)
	ctx.DrawText(r.opts.PageWidth/2, r.opts.Margin+face.Metrics().Ascent, line)
}

// drawPage 逐行绘制正文；每行带上继承前缀后解码为样式段，从左到右依次绘制。
func (r *Renderer) drawPage(ctx *canvas.Context, p format.Provider, page book.PageSnapshot) {
	regular := r.face(0, r.opts.FontSize, canvas.Black)
	lineHeight := regular.Metrics().LineHeight
	top := r.opts.Margin + 2*lineHeight

	for i, ln := range page.Lines {
		baseline := top + float64(i)*lineHeight + regular.Metrics().Ascent
		x := r.opts.Margin
		for _, span := range format.Spans(p, []rune(ln.Rendered())) {
			x += r.drawSpan(ctx, span, x, baseline)
		}
	}
}

// drawSpan 绘制一个样式段并返回其宽度（mm）。
func (r *Renderer) drawSpan(ctx *canvas.Context, span format.Span, x, baseline float64) float64 {
	col := color.Color(canvas.Black)
	if span.Colored {
		col = canvas.RGBA(float64(span.Color.R)/255.0, float64(span.Color.G)/255.0, float64(span.Color.B)/255.0, 1.0)
	}
	text := span.Text
	if span.Style&format.Obfuscated != 0 {
		text = obfuscate(text)
	}
	face := r.face(span.Style, r.opts.FontSize, col)
	width := face.TextWidth(text)
	ctx.DrawText(x, baseline, canvas.NewTextLine(face, text, canvas.Left))

	thickness := toMm(r.opts.FontSize / 16)
	if span.Style&format.Underline != 0 {
		r.drawRule(ctx, col, thickness, x, baseline+toMm(r.opts.FontSize*0.12), width)
	}
	if span.Style&format.Strikethrough != 0 {
		r.drawRule(ctx, col, thickness, x, baseline-face.Metrics().XHeight/2, width)
	}
	return width
}

// drawRule 绘制一条水平线（毫米单位）。
func (r *Renderer) drawRule(ctx *canvas.Context, col color.Color, thickness, x, y, width float64) {
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(thickness)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(width, 0)
	ctx.DrawPath(x, y, p)
}

func (r *Renderer) face(style format.Style, size float64, col color.Color) *canvas.FontFace {
	fs := canvas.FontRegular
	if style&format.Bold != 0 {
		fs = canvas.FontBold
	}
	if style&format.Italic != 0 {
		fs |= canvas.FontItalic
	}
	cr, cg, cb, _ := col.RGBA()
	key := faceKey{style: fs, size: size, color: fmt.Sprintf("%04x%04x%04x", cr, cg, cb)}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(size, col, fs, canvas.FontNormal)
	r.faces[key] = f
	return f
}

func obfuscate(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return r
		}
		return obfuscatedRune
	}, s)
}
