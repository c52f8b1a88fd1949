package book

import (
	"encoding/json"
	"os"

	"github.com/tidwall/pretty"
)

// WriteDebugJSON 将快照输出为缩进后的 JSON，便于调试分行与光标。
func WriteDebugJSON(snap *Snapshot, path string) error {
	if snap == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, pretty.PrettyOptions(data, &pretty.Options{Width: 100, Indent: "  "}), 0o644)
}
