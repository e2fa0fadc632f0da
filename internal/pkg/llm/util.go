package llm

import (
	"context"
	"errors"
	log "log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

var ErrEmptyResponse = errors.New("AI大模型返回数据为空")

var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

// readPrompt 读取 prompt 文件，读取失败时使用内置 prompt
func readPrompt(file, fallback string) string {
	if file == "" {
		return fallback
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "file", file, "err", err)
		return fallback
	}
	return string(data)
}

func (a *BookAdvisor) fetchModel(ctx context.Context, systemPrompt, userPrompt string, temp float64, maxTokens int) (string, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}
	opts := []llms.CallOption{llms.WithTemperature(temp)}
	if a.name != "" {
		opts = append(opts, llms.WithModel(a.name))
	}
	if maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTokens))
	}

	log.InfoContext(ctx, "正在请求AI大模型")
	resp, err := a.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// extractJSON 去掉 ```json 包裹后取第一个 {...} 片段
func extractJSON(s string) (string, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	block := jsonBlock.FindString(cleaned)
	return block, block != ""
}
