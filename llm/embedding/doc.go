// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 embedding 提供统一的文本嵌入（Embedding）接口与多服务商实现，
用于将文本转换为向量表示以支持语义检索。

# 概述

不同嵌入服务商在 API 格式、认证方式与输入类型语义上存在差异。
本包通过 Provider 接口屏蔽这些差异，使上层业务可以在不修改调用
代码的前提下切换底层嵌入服务。

# 核心接口

  - Provider：统一嵌入接口，定义 Embed、Name、Dimensions 方法。
  - EmbeddingRequest / EmbeddingResponse：标准化的请求与响应模型。
  - InputType：输入类型枚举，区分 query 与 document。
  - BaseProvider：公共基类，封装 HTTP 请求与错误映射。

# 主要能力

  - 多服务商支持：内置 Google Gemini、OpenAI 与本地哈希三种实现。
  - 批量嵌入：Gemini 走 batchEmbedContents 端点，OpenAI 走官方 SDK。
  - 离线实现：LocalProvider 基于词袋哈希，确定性输出，用于测试与离线场景。
  - 包级辅助：EmbedQuery / EmbedDocuments 统一单条与批量调用形态。
*/
package embedding
