// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 types 定义跨包共享的核心数据模型与错误类型。

# 概述

本包不依赖任何其他业务包，是依赖图的最底层。上层包（rag、llm、
study、api）共享这里定义的文档块、测验题、闪卡模型与统一错误结构。

# 核心类型

  - Chunk：索引的最小单元，带稳定 ID 与原文片段。
  - QuizQuestion：四选一测验题，附带正确答案与解析。
  - FlashCard：正反面闪卡。
  - Error：统一错误结构，携带错误码、HTTP 状态、可重试标记与底层原因。

# 错误语义

错误码划分为输入错误（INVALID_REQUEST、EMPTY_DOCUMENT 等，
对应 4xx）与内部/上游错误（UPSTREAM_ERROR、PROVIDER_UNAVAILABLE 等，
对应 5xx）。WithX 链式方法用于补充上下文，GetErrorCode 用于
从任意 error 中提取错误码。
*/
package types
