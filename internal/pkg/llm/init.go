// Package llm AI 选书、书目 vibe 分析与简介润色
package llm

import (
	"Lumina/internal/api/config"
	log "log/slog"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/semaphore"
)

// Prompts 各任务的 system prompt
type Prompts struct {
	SuggestTitles      string
	AnalyzeBook        string
	EnhanceDescription string
}

// BookAdvisor 基于 OpenAI 兼容接口的图书助手
type BookAdvisor struct {
	model   llms.Model
	name    string
	prompts Prompts
}

func NewBookAdvisor(model llms.Model, modelName string, prompts Prompts) *BookAdvisor {
	return &BookAdvisor{
		model:   model,
		name:    modelName,
		prompts: prompts,
	}
}

// InitLLM 创建大模型客户端并从 prompts_path 读取 prompt
func InitLLM(cfg config.LLMConfig) (*BookAdvisor, error) {
	client, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
		openai.WithHTTPClient(&http.Client{
			Transport: &ProviderMiddleware{Base: http.DefaultTransport, ThinkingMode: cfg.ThinkingMode},
		}),
	)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}

	if cfg.MaxConcurrent > 0 {
		TextSem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}

	prompts := Prompts{
		SuggestTitles:      readPrompt(cfg.PromptsPath.SuggestTitles, defaultSuggestPrompt),
		AnalyzeBook:        readPrompt(cfg.PromptsPath.AnalyzeBook, defaultAnalyzePrompt),
		EnhanceDescription: readPrompt(cfg.PromptsPath.EnhanceDescription, defaultEnhancePrompt),
	}
	return NewBookAdvisor(client, cfg.TextModel, prompts), nil
}
