package models

import "context"

// CompletionRequest 补全请求, 来自 /api/generate 的请求体
type CompletionRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// CompletionChunk 流式输出中的一段文本
type CompletionChunk struct {
	Text         string
	FinishReason string
}

// CompletionStream 按上游到达顺序返回文本片段, 结束时返回 io.EOF
type CompletionStream interface {
	Recv() (CompletionChunk, error)
	Close() error
}

// Completer 打开补全流
type Completer interface {
	EnsureConfigured() error
	Stream(ctx context.Context, req CompletionRequest) (CompletionStream, error)
}
