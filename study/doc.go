// 版权所有 2024 StudyBuddy Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 study 是学习辅助管线的编排层，串联分块、嵌入、索引、检索、
提示词渲染、文本生成与响应解析。

# 核心类型

  - Service：管线编排器，持有向量索引所有权，暴露五个业务操作。
  - ParseResult / ParseOutcome：带三态标记的响应解析结果。
  - AnswerCache：生成结果缓存的最小接口。

# 业务操作

  - IndexDocument：分块 → 批量并发嵌入 → 整体替换索引。
  - Explain：检索上下文 → 渲染讲解提示词 → 生成自由文本。
  - GenerateQuiz / GenerateFlashCards：生成 → 解析 JSON 数组 →
    软校验逐条过滤 → 按结局降级为占位记录。
  - ListTopics：对已索引内容的尽力而为主题摘要。

# 降级策略

触及生成后端的操作从不向调用方返回 error：后端失败降级为
错误标记文本或占位记录，检索失败降级为空上下文。只有输入校验
（INVALID_REQUEST、EMPTY_DOCUMENT）和写路径的嵌入失败会让请求失败。
*/
package study
