package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 通知附加数据的 JSON 自定义类型 ──

// JSONMap 对应 SQLite TEXT 列中的 JSON 对象，实现 GORM Scanner/Valuer 接口。
// 通知的 data 字段承载不透明的事件负载（教授 ID、事件码、获得分数等）。
type JSONMap map[string]interface{}

// Scan 将数据库返回的 JSON 文本解析为 map。
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Value 将 map 序列化为 JSON 文本。
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("JSONMap.Value: %w", err)
	}
	return string(b), nil
}
