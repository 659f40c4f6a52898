// Package llm 定义文本生成提供者的统一契约.
package llm

import (
	"context"
	"strings"
	"time"
)

// GenerateErrorMarker 生成失败文本的统一前缀.
// 生成提供者从不向调用方返回 error：任何失败（网络错误、
// 非成功状态码、响应包格式异常、超时）都降级为以该前缀
// 开头的文本，由响应解析层兜底处理。
const GenerateErrorMarker = "Error calling "

// Provider 定义统一的文本生成提供者接口.
type Provider interface {
	// Name 返回提供者名称.
	Name() string

	// Generate 将 prompt 发送给生成后端并返回原始文本.
	// 永不返回 error；见 GenerateErrorMarker.
	Generate(ctx context.Context, prompt string) string

	// HealthCheck 检查后端可达性.
	HealthCheck(ctx context.Context) (*HealthStatus, error)
}

// HealthStatus 健康检查结果.
type HealthStatus struct {
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
}

// IsErrorText reports whether a generation result is a degraded error text
// rather than real model output.
func IsErrorText(text string) bool {
	return strings.HasPrefix(text, GenerateErrorMarker)
}
