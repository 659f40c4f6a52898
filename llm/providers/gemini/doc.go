// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 gemini 提供 Google Gemini 文本生成服务的 Provider 实现。

# 概述

封装 generateContent REST 端点，实现 llm.Provider 接口。
Generate 遵循 "从不报错" 契约：任何失败（构造请求、网络、非 2xx
状态、空候选）都转换为错误描述文本返回，请求粒度的降级由上层处理。

# 主要能力

  - 文本生成：POST /models/{model}:generateContent，x-goog-api-key 认证。
  - 超时控制：每次请求带独立超时（默认 30s）。
  - 限流：可选的客户端侧速率限制（golang.org/x/time/rate）。
  - 健康检查：GET /models 探测可用性与时延。
*/
package gemini
