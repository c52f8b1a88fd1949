package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/bookjson"
	"github.com/ByLCY/quire/config"
	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/renderer"
	canvasrenderer "github.com/ByLCY/quire/renderer/canvas"
	termrenderer "github.com/ByLCY/quire/renderer/term"
	"github.com/ByLCY/quire/session"
)

var (
	configPath string
	dataJSON   string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "Edit, preview and render paginated books",
	Long: `quire edits books made of pages and lines under a fixed-width text box
and fixed page capacities. Books are read from .quire documents or .json
files and can be rendered to PDF or previewed in the terminal.`,
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render <book>",
	Short: "Render a book to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, b, err := open(args[0])
		if err != nil {
			return err
		}
		set, err := fonts.LoadSet(s.PDF.Font)
		if err != nil {
			return err
		}
		r, err := canvasrenderer.NewRenderer(canvasrenderer.Options{
			PageWidth:  s.PDF.PageWidth,
			PageHeight: s.PDF.PageHeight,
			FontSize:   s.PDF.FontSize,
			Fonts:      set,
		})
		if err != nil {
			return err
		}
		out := outputOr(args[0], ".pdf")
		if err := write(r, b, out); err != nil {
			return err
		}
		fmt.Printf("已生成 PDF：%s\n", out)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <book>",
	Short: "Preview a book in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, b, err := open(args[0])
		if err != nil {
			return err
		}
		r := termrenderer.NewRenderer(termrenderer.Options{
			Plain:  !term.IsTerminal(int(os.Stdout.Fd())),
			Output: os.Stdout,
		})
		data, err := r.Render(b.Snapshot())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <book.quire>",
	Short: "Export a book document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, b, err := open(args[0])
		if err != nil {
			return err
		}
		return save(b, outputOr(args[0], ".json"))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <book.json>",
	Short: "Convert a JSON book into a book document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, b, err := open(args[0])
		if err != nil {
			return err
		}
		return save(b, outputOr(args[0], ".quire"))
	},
}

var (
	scriptPath      string
	scriptText      string
	verbose         bool
	systemClipboard bool
)

var editCmd = &cobra.Command{
	Use:   "edit <book>",
	Short: "Apply an edit script to a book",
	Long: `Apply an edit script to a book and save the result.

Commands, one per line or separated by ';':
  insert "text"        insert at the cursor
  type "text"          insert and move the cursor past the text
  delete [n]           delete forward
  backspace [n]        delete backward
  move up|down|left|right [n]
  turn <delta>         turn pages
  cursor <page> <line> <char>
  remove <p> <l> <c> <p> <l> <c>
  cut <from> <to>, copy <from> <to>, paste <at>
  clear`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, script := "-e", scriptText
		if scriptPath != "" {
			data, err := os.ReadFile(scriptPath)
			if err != nil {
				return fmt.Errorf("读取脚本 %s 失败: %w", scriptPath, err)
			}
			name, script = scriptPath, string(data)
		}
		if script == "" {
			return fmt.Errorf("缺少编辑脚本：请使用 --script 或 -e")
		}

		_, b, err := open(args[0])
		if err != nil {
			return err
		}
		var opts []session.Option
		if verbose {
			opts = append(opts, session.WithLogger(log.New(os.Stderr, "quire: ", 0)))
		}
		if systemClipboard && session.SystemAvailable() {
			opts = append(opts, session.WithClipboard(session.SystemClipboard{}))
		}
		s := session.New(b, opts...)
		if err := s.Run(name, script); err != nil {
			return err
		}
		out := outputPath
		if out == "" {
			out = args[0]
		}
		var saveErr error
		s.Do(func(b *book.Book) { saveErr = save(b, out) })
		return saveErr
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug <book>",
	Short: "Write the page and line structure of a book as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, b, err := open(args[0])
		if err != nil {
			return err
		}
		out := outputOr(args[0], ".debug.json")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := book.WriteDebugJSON(b.Snapshot(), out); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "quire.yaml", "配置文件路径（.yaml/.yml/.toml）")
	rootCmd.PersistentFlags().StringVar(&dataJSON, "data", "", "绑定到文档 ${path} 占位符的 JSON 数据")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "out", "o", "", "输出路径")

	editCmd.Flags().StringVar(&scriptPath, "script", "", "编辑脚本文件")
	editCmd.Flags().StringVarP(&scriptText, "exec", "e", "", "内联编辑脚本")
	editCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "逐条输出执行的命令")
	editCmd.Flags().BoolVar(&systemClipboard, "system-clipboard", false, "剪切/复制页面时使用系统剪贴板")

	rootCmd.AddCommand(renderCmd, showCmd, exportCmd, importCmd, editCmd, debugCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("quire: %v", err)
	}
}

// open 读取配置并按扩展名加载书：.json 走 bookjson，其余按文档语法解析。
func open(path string) (config.Settings, *book.Book, error) {
	s, err := config.Load(configPath)
	if err != nil {
		return s, nil, err
	}
	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return s, nil, err
	}
	box, err := s.Box()
	if err != nil {
		return s, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, nil, fmt.Errorf("无法打开文件 %s: %w", path, err)
	}
	if isJSON(path) {
		doc, err := bookjson.Unmarshal(data)
		if err != nil {
			return s, nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, doc.ToBook(box), nil
	}
	src, err := dsl.Load(path, bytes.NewReader(data), []byte(dataJSON), box.Provider)
	if err != nil {
		return s, nil, err
	}
	return s, book.Load(box, src.Title, src.Author, src.Pages), nil
}

// save 按扩展名写出书：.json 为 JSON，其余为文档语法。
func save(b *book.Book, path string) error {
	var data []byte
	if isJSON(path) {
		out, err := bookjson.Marshal(bookjson.FromBook(b), b.Box().Provider)
		if err != nil {
			return err
		}
		data = out
	} else {
		var buf bytes.Buffer
		src := &dsl.Source{Title: b.Title, Author: b.Author, Pages: b.PageStrings()}
		if err := dsl.Encode(&buf, src); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	return writeFile(path, data)
}

func write(r renderer.Renderer, b *book.Book, path string) error {
	data, err := r.Render(b.Snapshot())
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

// outputOr 返回 --out，未指定时把输入的扩展名替换为 ext。
func outputOr(in, ext string) string {
	if outputPath != "" {
		return outputPath
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
