package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// builtin 收录 Go 字体族的四种字形，无需外部文件即可渲染与测量。
var builtin = map[string][]byte{
	"regular":    goregular.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
}

// Set 为同一字族的四种字形。
type Set struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// Load 读取字体数据：builtin:<name> 返回内置 Go 字体，其余按文件路径读取。
func Load(src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("字体来源为空")
	}
	if name, ok := builtinName(src); ok {
		data, found := builtin[strings.ToLower(name)]
		if !found {
			return nil, fmt.Errorf("找不到内置字体 builtin:%s", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// LoadSet 以 regular 为主字体加载字族。内置来源自动补齐其余三种字形；
// 文件来源缺失的字形回退到 regular。
func LoadSet(src string) (Set, error) {
	regular, err := Load(src)
	if err != nil {
		return Set{}, err
	}
	set := Set{Regular: regular, Bold: regular, Italic: regular, BoldItalic: regular}
	if _, ok := builtinName(src); ok {
		set.Bold = builtin["bold"]
		set.Italic = builtin["italic"]
		set.BoldItalic = builtin["bolditalic"]
	}
	return set, nil
}

func builtinName(src string) (string, bool) {
	for _, p := range []string{"builtin:", "built-in:"} {
		if strings.HasPrefix(src, p) {
			return strings.TrimPrefix(src, p), true
		}
	}
	return "", false
}
