package renderer

import "github.com/ByLCY/quire/book"

// Renderer 将书的快照输出为最终文件，例如 PDF 或终端预览。
// Render 返回生成的数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(snap *book.Snapshot) ([]byte, error)
}
