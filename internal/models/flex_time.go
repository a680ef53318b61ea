package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// flexTimeLayouts 支持的日期格式（纯日期按 UTC 零点解析）
var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime 宽松日期输入
type FlexTime struct {
	time.Time
}

// NewFlexTime 包装时间
func NewFlexTime(t time.Time) *FlexTime {
	return &FlexTime{Time: t}
}

// ParseFlexTime 按支持的格式解析日期
func ParseFlexTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", raw)
}

// UnmarshalJSON 解析字符串日期
func (t *FlexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseFlexTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON 输出 RFC3339
func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
