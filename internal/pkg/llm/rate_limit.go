package llm

import (
	"golang.org/x/sync/semaphore"
)

// TextSem 限制同时进行的文本请求数，InitLLM 按 max_concurrent 重建
var TextSem = semaphore.NewWeighted(4)
