package util

import "strings"

// SplitCSV 兼容 ?mood=a,b 与 ?mood=a&mood=b 两种写法，去空白去重
func SplitCSV(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

// ClampLimit n<=0 取 def，超过 upper 取 upper
func ClampLimit(n, def, upper int) int {
	if n <= 0 {
		n = def
	}
	if upper > 0 && n > upper {
		n = upper
	}
	return n
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}
