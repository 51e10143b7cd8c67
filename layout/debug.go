package layout

import "encoding/json"

// DebugJSON 将布局结果编码为缩进 JSON，便于调试或可视化。
func DebugJSON(res *Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
