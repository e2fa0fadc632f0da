package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// StringList 以 JSON 数组形式存储的字符串集合（genres / tags 等）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, (*[]string)(l))
}

// Contains 判断集合中是否包含 s
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Set 转换为查找集合
func (l StringList) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(l))
	for _, v := range l {
		set[v] = struct{}{}
	}
	return set
}

// FilterBlankDistinct 去掉首尾空白、空串与重复项，保持顺序
func FilterBlankDistinct(items []string) StringList {
	out := make(StringList, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// VibePreferences 存储 vibe 维度权重: map[dimension]weight(0-10)
type VibePreferences map[string]float64

func (p VibePreferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]float64(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *VibePreferences) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*p = VibePreferences{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	if len(bytes) == 0 {
		*p = VibePreferences{}
		return nil
	}
	return json.Unmarshal(bytes, (*map[string]float64)(p))
}
