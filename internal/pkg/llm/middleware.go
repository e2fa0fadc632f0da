package llm

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ProviderMiddleware 为 chat/completions 请求补全厂商私有参数（如 GLM 的 thinking 开关）
type ProviderMiddleware struct {
	Base         http.RoundTripper
	ThinkingMode string
}

func (m *ProviderMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	if m.ThinkingMode == "" || req.Body == nil || !strings.Contains(req.URL.Path, "chat/completions") {
		return m.Base.RoundTrip(req)
	}

	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err = json.Unmarshal(body, &data); err != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
		return m.Base.RoundTrip(req)
	}

	data["thinking"] = map[string]interface{}{"type": m.ThinkingMode}
	newBody, err := json.Marshal(data)
	if err != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
		return m.Base.RoundTrip(req)
	}

	req.Body = io.NopCloser(bytes.NewReader(newBody))
	req.ContentLength = int64(len(newBody))
	return m.Base.RoundTrip(req)
}
