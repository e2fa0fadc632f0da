package llm

import (
	"context"
	"fmt"
	log "log/slog"
)

// EnhanceDescription 润色简介，任何失败都返回原始简介
func (a *BookAdvisor) EnhanceDescription(ctx context.Context, title, author, description string) string {
	userPrompt := fmt.Sprintf("Título: %s\nAutor: %s\nDescrição original: %s", title, author, description)

	content, err := a.fetchModel(ctx, a.prompts.EnhanceDescription, userPrompt, 0.8, 300)
	if err != nil {
		log.WarnContext(ctx, "简介润色-AI大模型请求失败，返回原始简介", "err", err)
		return description
	}
	return content
}
