package binding

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ByLCY/quire/format"
)

var (
	exprPattern  = regexp.MustCompile(`\$\{([^}]+)\}`)
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// Interpolate 将文本中的 ${path.to.value} 替换为 JSON 数据中的值。
// 路径支持 a.b[0].c 写法；data 为空或路径不存在时保留原占位符。
// 替换值经过 p 清理，末尾截断的格式指令不会与后续文本拼成新的指令。
func Interpolate(text string, data []byte, p format.Provider) string {
	if len(data) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := toGJSONPath(groups[1])
		if path == "" {
			return match
		}
		res := gjson.GetBytes(data, path)
		if !res.Exists() {
			return match
		}
		val := res.String()
		if p != nil {
			val = string(p.Sanitize([]rune(val)))
		}
		return val
	})
}

// Valid 判断 data 是否为合法 JSON。
func Valid(data []byte) bool {
	return gjson.ValidBytes(data)
}

// toGJSONPath 把 a.b[0].c 转换为 gjson 的 a.b.0.c。
func toGJSONPath(path string) string {
	path = strings.TrimSpace(path)
	path = indexPattern.ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(path, ".")
}
