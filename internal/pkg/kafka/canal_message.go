package kafka

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Canal 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

const canalDateTimeLayout = "2006-01-02 15:04:05"

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据
	Old []map[string]interface{} `json:"old"`
}

// Canal 的列值统一序列化为字符串，以下函数负责还原

func StrToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func StrToUint64(v interface{}) uint64 {
	n, _ := strconv.ParseUint(StrToString(v), 10, 64)
	return n
}

func StrToInt(v interface{}) int {
	n, _ := strconv.Atoi(StrToString(v))
	return n
}

// StrToIntPtr 空值返回 nil
func StrToIntPtr(v interface{}) *int {
	s := StrToString(v)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func StrToStringPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := StrToString(v)
	return &s
}

func StrToDateTime(v interface{}) time.Time {
	t, err := time.ParseInLocation(canalDateTimeLayout, StrToString(v), time.Local)
	if err != nil {
		// 带毫秒的 datetime(3)
		t, _ = time.ParseInLocation("2006-01-02 15:04:05.000", StrToString(v), time.Local)
	}
	return t
}

// StrToStringList JSON 数组列
func StrToStringList(v interface{}) ([]string, error) {
	s := StrToString(v)
	if s == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
